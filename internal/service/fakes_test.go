package service

import (
	"context"
	"sync"

	"CricketCatalog/internal/interfaces"
	"CricketCatalog/internal/model"
)

type fakeCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	getErr  error
	mgetErr error
	delErr  error
	setErr  error
	// delResult 非 nil 时 Delete 固定返回该值
	delResult *int

	mgetCalls [][]string
	delCalls  [][]string
	setCalls  map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}, setCalls: map[string][]byte{}}
}

func (c *fakeCache) put(key, value string) { c.data[key] = []byte(value) }

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *fakeCache) MultiGet(_ context.Context, keys []string) ([][]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mgetCalls = append(c.mgetCalls, keys)
	if c.mgetErr != nil {
		return nil, c.mgetErr
	}
	out := make([][]byte, len(keys))
	for i, k := range keys {
		out[i] = c.data[k]
	}
	return out, nil
}

func (c *fakeCache) Delete(_ context.Context, keys []string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.delCalls = append(c.delCalls, keys)
	if c.delErr != nil {
		return 0, c.delErr
	}
	n := 0
	for _, k := range keys {
		if _, ok := c.data[k]; ok {
			delete(c.data, k)
			n++
		}
	}
	if c.delResult != nil {
		return *c.delResult, nil
	}
	return n, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.setCalls[key] = value
	c.data[key] = value
	return nil
}

type pushed struct {
	queue   string
	payload interface{}
}

type fakeQueue struct {
	err    error
	pushes []pushed
}

func (q *fakeQueue) Push(_ context.Context, queueName string, payload interface{}) (int, error) {
	if q.err != nil {
		return 0, q.err
	}
	q.pushes = append(q.pushes, pushed{queue: queueName, payload: payload})
	return len(q.pushes), nil
}

type fakeScorecardStore struct {
	records map[string]*model.ScoreCardRecord
	listErr error
	findErr error

	queries []interfaces.ScorecardQuery
	list    []*model.ScoreCardRecord
	upserts map[string]model.FilterSet
}

func newFakeScorecardStore() *fakeScorecardStore {
	return &fakeScorecardStore{
		records: map[string]*model.ScoreCardRecord{},
		upserts: map[string]model.FilterSet{},
	}
}

func (s *fakeScorecardStore) FindActiveScorecard(_ context.Context, matchID string) (*model.ScoreCardRecord, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	rec, ok := s.records[matchID]
	if !ok {
		return nil, model.ErrNotFound
	}
	return rec, nil
}

func (s *fakeScorecardStore) ListScorecards(_ context.Context, q interfaces.ScorecardQuery) ([]*model.ScoreCardRecord, error) {
	s.queries = append(s.queries, q)
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.list, nil
}

func (s *fakeScorecardStore) UpsertScorecardFilters(_ context.Context, matchID string, filters model.FilterSet) error {
	s.upserts[matchID] = filters.Clone()
	return nil
}

type fakeMatchStore struct {
	matches map[string]*model.MatchRecord
	saveErr error
	// beforeSave 在保存前执行，用于模拟并发写入
	beforeSave func()

	saves []saveCall
}

type saveCall struct {
	claim    *model.Reference
	released *model.Reference
}

func newFakeMatchStore(ms ...*model.MatchRecord) *fakeMatchStore {
	s := &fakeMatchStore{matches: map[string]*model.MatchRecord{}}
	for _, m := range ms {
		s.matches[m.ID] = m
	}
	return s
}

// 返回拷贝，模拟从文档库重新读取
func (s *fakeMatchStore) FindActiveMatch(_ context.Context, id string) (*model.MatchRecord, error) {
	m, ok := s.matches[id]
	if !ok || m.Status == model.StatusDeleted {
		return nil, model.ErrNotFound
	}
	cp := *m
	cp.References = append(model.References{}, m.References...)
	cp.Filters = m.Filters.Clone()
	return &cp, nil
}

func (s *fakeMatchStore) FindActiveMatchByReference(_ context.Context, ref model.Reference) (*model.MatchRecord, error) {
	for _, m := range s.matches {
		if m.Status != model.StatusActive {
			continue
		}
		if r := m.References.Find(ref.FeedSource); r != nil && r.Key == ref.Key {
			return m, nil
		}
	}
	return nil, model.ErrNotFound
}

func (s *fakeMatchStore) CreateMatch(_ context.Context, m *model.MatchRecord) error {
	s.matches[m.ID] = m
	return nil
}

func (s *fakeMatchStore) SaveMatch(_ context.Context, m *model.MatchRecord, claim, released *model.Reference) error {
	if s.beforeSave != nil {
		s.beforeSave()
	}
	if s.saveErr != nil {
		return s.saveErr
	}
	if cur, ok := s.matches[m.ID]; !ok || cur.Status != model.StatusActive {
		return model.ErrNotFound
	}
	s.saves = append(s.saves, saveCall{claim: claim, released: released})
	s.matches[m.ID] = m
	return nil
}

func (s *fakeMatchStore) SetMatchStatus(_ context.Context, id, status string) (bool, error) {
	m, ok := s.matches[id]
	if !ok || m.Status != model.StatusActive {
		return false, nil
	}
	m.Status = status
	return true, nil
}

// fakeRefStore 冲突查询基于内存中的实体集合
type fakeRefStore struct {
	kind     model.EntityKind
	entities map[string]*model.EntityDocument
	matches  *fakeMatchStore
	saved    model.References
}

func (s *fakeRefStore) Kind() model.EntityKind { return s.kind }

func (s *fakeRefStore) FindConflict(_ context.Context, ref model.Reference, excludeID string) (string, bool, error) {
	owns := func(refs model.References) bool {
		r := refs.Find(ref.FeedSource)
		return r != nil && r.Key == ref.Key
	}
	if s.matches != nil {
		for id, m := range s.matches.matches {
			if id != excludeID && m.Status == model.StatusActive && owns(m.References) {
				return id, true, nil
			}
		}
	}
	for id, d := range s.entities {
		if id != excludeID && d.Status == model.StatusActive && owns(d.References) {
			return id, true, nil
		}
	}
	return "", false, nil
}

func (s *fakeRefStore) FindActiveEntity(_ context.Context, id string) (*model.EntityDocument, error) {
	d, ok := s.entities[id]
	if !ok || d.Status != model.StatusActive {
		return nil, model.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (s *fakeRefStore) SaveReferences(_ context.Context, id string, refs model.References, _, _ *model.Reference) error {
	d, ok := s.entities[id]
	if !ok {
		return model.ErrNotFound
	}
	d.References = refs
	s.saved = refs
	return nil
}
