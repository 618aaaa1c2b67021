package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"CricketCatalog/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"gorm.io/datatypes"
)

func newScorecardService(t *testing.T) (*ScorecardService, *fakeCache, *fakeScorecardStore, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	c := newFakeCache()
	store := newFakeScorecardStore()
	return NewScorecardService(c, store, logger), c, store, hook
}

func TestResolveCacheHitAttachesPrediction(t *testing.T) {
	svc, c, store, _ := newScorecardService(t)
	c.put("m1MicroScorecard", `{"matchId":"m1","score":"120/3"}`)
	c.put("m1Prediction", `{"winProbability":0.6,"history":[0.5,0.55]}`)
	store.findErr = errors.New("store must not be touched")

	view, err := svc.Resolve(context.Background(), "m1", model.CardTypeMicro)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if view["score"] != "120/3" {
		t.Errorf("score = %v", view["score"])
	}
	pred, ok := view["prediction"].(map[string]interface{})
	if !ok {
		t.Fatalf("prediction = %#v", view["prediction"])
	}
	if _, has := pred["history"]; has {
		t.Error("prediction history must be stripped")
	}
	if pred["winProbability"] != 0.6 {
		t.Errorf("winProbability = %v", pred["winProbability"])
	}
}

func TestResolveDefaultsToMicro(t *testing.T) {
	svc, c, _, _ := newScorecardService(t)
	c.put("m1MicroScorecard", `{"matchId":"m1"}`)
	c.put("m1Prediction", `{}`)

	if _, err := svc.Resolve(context.Background(), "m1", ""); err != nil {
		t.Fatal(err)
	}
	want := []string{"m1MicroScorecard", "m1Prediction"}
	if !reflect.DeepEqual(c.mgetCalls[0], want) {
		t.Errorf("keys = %v, want %v", c.mgetCalls[0], want)
	}
}

func TestResolvePartialHitFallsBackVerbatim(t *testing.T) {
	svc, c, store, _ := newScorecardService(t)
	c.put("m1FullScorecard", `{"matchId":"m1","fromCache":true}`)
	store.records["m1"] = &model.ScoreCardRecord{
		ID:      7,
		MatchID: "m1",
		Card:    datatypes.JSON(`{"score":"88/1"}`),
		Filters: model.FilterSet{"featured": true},
		Status:  model.StatusActive,
	}

	view, err := svc.Resolve(context.Background(), "m1", model.CardTypeFull)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if _, has := view["prediction"]; has {
		t.Error("store result must not be merged with a prediction")
	}
	if _, has := view["fromCache"]; has {
		t.Error("partial cache data must not leak into the store result")
	}
	if view["matchId"] != "m1" || view["status"] != model.StatusActive {
		t.Errorf("view = %v", view)
	}
	card, _ := view["card"].(map[string]interface{})
	if card["score"] != "88/1" {
		t.Errorf("card = %v", view["card"])
	}
	if len(c.setCalls) != 0 {
		t.Error("reader must never write the cache")
	}
}

func TestResolveCacheErrorFallsBack(t *testing.T) {
	svc, c, store, hook := newScorecardService(t)
	c.mgetErr = errors.New("redis down")
	store.records["m1"] = &model.ScoreCardRecord{MatchID: "m1", Status: model.StatusActive}

	view, err := svc.Resolve(context.Background(), "m1", model.CardTypeMicro)
	if err != nil || view["matchId"] != "m1" {
		t.Fatalf("view = %v err = %v", view, err)
	}
	if hook.LastEntry() == nil || hook.LastEntry().Level != logrus.WarnLevel {
		t.Error("cache failure should be logged as a warning")
	}
}

func TestResolveNullCacheValueIsMiss(t *testing.T) {
	svc, c, store, _ := newScorecardService(t)
	c.put("m1MicroScorecard", `null`)
	c.put("m1Prediction", `{"x":1}`)
	store.records["m1"] = &model.ScoreCardRecord{MatchID: "m1", Status: model.StatusActive}

	view, err := svc.Resolve(context.Background(), "m1", model.CardTypeMicro)
	if err != nil || view["matchId"] != "m1" {
		t.Fatalf("view = %v err = %v", view, err)
	}
}

func TestResolveNullPredictionKeepsCachedCard(t *testing.T) {
	svc, c, store, _ := newScorecardService(t)
	c.put("m1MicroScorecard", `{"matchId":"m1","fromCache":true}`)
	c.put("m1Prediction", `null`)
	store.findErr = errors.New("store must not be touched")

	view, err := svc.Resolve(context.Background(), "m1", model.CardTypeMicro)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if view["fromCache"] != true {
		t.Errorf("view = %v, want cached card", view)
	}
	if _, has := view["prediction"]; has {
		t.Error("null prediction must not be attached")
	}
}

func TestResolveNotFound(t *testing.T) {
	svc, _, _, _ := newScorecardService(t)
	if _, err := svc.Resolve(context.Background(), "nope", model.CardTypeMicro); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListFeaturedSkipsUncachedMatches(t *testing.T) {
	svc, c, store, _ := newScorecardService(t)
	c.put("featuredMatches", `["A","B"]`)
	c.put("AMicroScorecard", `{"matchId":"A"}`)
	c.put("APrediction", `{"p":1,"history":[1]}`)
	c.put("BPrediction", `{"p":2}`)

	page, err := svc.List(context.Background(), model.CardTypeMicro, []string{"featured"}, Pagination{Limit: 1, Skip: 5})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0]["matchId"] != "A" {
		t.Fatalf("items = %v", page.Items)
	}
	pred := page.Items[0]["prediction"].(map[string]interface{})
	if _, has := pred["history"]; has {
		t.Error("history must be stripped")
	}
	if len(store.queries) != 0 {
		t.Error("store must not be queried when the index is present")
	}
	wantKeys := [][]string{{"AMicroScorecard", "BMicroScorecard"}, {"APrediction", "BPrediction"}}
	if !reflect.DeepEqual(c.mgetCalls, wantKeys) {
		t.Errorf("mget = %v, want %v", c.mgetCalls, wantKeys)
	}
}

func TestListFeaturedWithoutPrediction(t *testing.T) {
	svc, c, _, _ := newScorecardService(t)
	c.put("featuredMatches", `["A"]`)
	c.put("AMicroScorecard", `{"matchId":"A"}`)

	page, err := svc.List(context.Background(), "", nil, Pagination{})
	if err != nil || len(page.Items) != 1 {
		t.Fatalf("items = %v err = %v", page.Items, err)
	}
	if _, has := page.Items[0]["prediction"]; has {
		t.Error("no prediction should be attached")
	}
}

func TestListEmptyIndexReturnsEmpty(t *testing.T) {
	svc, c, store, _ := newScorecardService(t)
	c.put("featuredMatches", `[]`)

	page, err := svc.List(context.Background(), model.CardTypeMicro, []string{"featured"}, Pagination{})
	if err != nil {
		t.Fatal(err)
	}
	if page.Items == nil || len(page.Items) != 0 || !page.FromCache {
		t.Errorf("page = %#v, want empty cached page", page)
	}
	if len(store.queries) != 0 {
		t.Error("an empty index is still an index")
	}
}

func TestListMultiGetErrorFallsBackToIndexIDs(t *testing.T) {
	svc, c, store, _ := newScorecardService(t)
	c.put("featuredMatches", `["A","B"]`)
	c.mgetErr = errors.New("redis down")
	store.list = []*model.ScoreCardRecord{{MatchID: "B"}, {MatchID: "A"}}

	pg := Pagination{Skip: 1, Limit: 10, SortBy: []string{"-createdAt"}}
	page, err := svc.List(context.Background(), model.CardTypeMicro, []string{"featured"}, pg)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Items) != 2 || page.FromCache {
		t.Fatalf("page = %+v", page)
	}
	q := store.queries[0]
	if !reflect.DeepEqual(q.MatchIDs, []string{"A", "B"}) || q.Filters != nil {
		t.Errorf("query = %+v", q)
	}
	if q.Skip != 1 || q.Limit != 10 || !reflect.DeepEqual(q.SortBy, []string{"-createdAt"}) {
		t.Errorf("pagination not applied: %+v", q)
	}
}

func TestListIndexAbsentQueriesByFlags(t *testing.T) {
	svc, _, store, _ := newScorecardService(t)
	store.list = []*model.ScoreCardRecord{{MatchID: "X"}}

	page, err := svc.List(context.Background(), model.CardTypeMicro, []string{"featured", "domestic"}, Pagination{Limit: 20})
	if err != nil || len(page.Items) != 1 {
		t.Fatalf("items = %v err = %v", page.Items, err)
	}
	q := store.queries[0]
	if q.MatchIDs != nil || !reflect.DeepEqual(q.Filters, []string{"featured", "domestic"}) || q.Limit != 20 {
		t.Errorf("query = %+v", q)
	}
}

func TestListUnreadableIndexTreatedAsAbsent(t *testing.T) {
	svc, c, store, _ := newScorecardService(t)
	c.put("featuredMatches", `not json`)

	if _, err := svc.List(context.Background(), model.CardTypeMicro, nil, Pagination{}); err != nil {
		t.Fatal(err)
	}
	if len(store.queries) != 1 {
		t.Errorf("queries = %d, want flag query", len(store.queries))
	}
}

func TestListStoreErrorPropagates(t *testing.T) {
	svc, _, store, _ := newScorecardService(t)
	store.listErr = errors.New("db down")
	if _, err := svc.List(context.Background(), model.CardTypeMicro, nil, Pagination{}); err == nil {
		t.Fatal("expected store error")
	}
}
