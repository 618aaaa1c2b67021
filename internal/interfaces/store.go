package interfaces

import (
	"context"

	"CricketCatalog/internal/model"
)

// ScorecardQuery 文档库记分卡列表条件。MatchIDs 非 nil 时按 id 列表过滤（空列表即无结果），否则按 Filters 标记过滤
type ScorecardQuery struct {
	MatchIDs []string
	Filters  []string
	SortBy   []string // field 升序，-field 降序
	Skip     int
	Limit    int
}

// MatchStore 比赛文档的权威存储
type MatchStore interface {
	// FindActiveMatch 按 id 查活跃比赛，不存在返回 model.ErrNotFound
	FindActiveMatch(ctx context.Context, id string) (*model.MatchRecord, error)
	// FindActiveMatchByReference 按外部引用查活跃比赛
	FindActiveMatchByReference(ctx context.Context, ref model.Reference) (*model.MatchRecord, error)
	// CreateMatch 新建比赛并占用其引用，引用冲突返回 *model.ConflictError
	CreateMatch(ctx context.Context, m *model.MatchRecord) error
	// SaveMatch 保存比赛；claim 非 nil 时在同一事务内占用新引用，released 非 nil 时释放被替换的旧引用。
	// 比赛已不是 active 时返回 model.ErrNotFound
	SaveMatch(ctx context.Context, m *model.MatchRecord, claim *model.Reference, released *model.Reference) error
	// SetMatchStatus 修改软删除标记，返回是否命中
	SetMatchStatus(ctx context.Context, id, status string) (bool, error)
}

// ScorecardStore 记分卡文档的权威存储
type ScorecardStore interface {
	FindActiveScorecard(ctx context.Context, matchID string) (*model.ScoreCardRecord, error)
	ListScorecards(ctx context.Context, q ScorecardQuery) ([]*model.ScoreCardRecord, error)
	// UpsertScorecardFilters 同步比赛的 filters 到活跃记分卡，不存在则创建
	UpsertScorecardFilters(ctx context.Context, matchID string, filters model.FilterSet) error
}

// ReferenceStore 某一实体类型的引用冲突查询与持久化
type ReferenceStore interface {
	Kind() model.EntityKind
	// FindConflict 在除 excludeID 以外的活跃实体中查找持有 ref 的实体 id
	FindConflict(ctx context.Context, ref model.Reference, excludeID string) (string, bool, error)
	// FindActiveEntity 非比赛实体的活跃文档
	FindActiveEntity(ctx context.Context, id string) (*model.EntityDocument, error)
	// SaveReferences 写回引用列表，并在同一事务内占用 claim、释放 released
	SaveReferences(ctx context.Context, id string, refs model.References, claim *model.Reference, released *model.Reference) error
}
