package repository

import (
	"context"
	"fmt"

	"CricketCatalog/internal/interfaces"
	"CricketCatalog/internal/model"

	"gorm.io/gorm"
)

type scorecardRepository struct {
	db *gorm.DB
}

// NewScorecardRepository 创建记分卡仓储
func NewScorecardRepository(db *gorm.DB) interfaces.ScorecardStore {
	return &scorecardRepository{db: db}
}

func (r *scorecardRepository) FindActiveScorecard(ctx context.Context, matchID string) (*model.ScoreCardRecord, error) {
	var sc model.ScoreCardRecord
	if err := r.db.WithContext(ctx).Where("match_id = ? AND status = ?", matchID, model.StatusActive).First(&sc).Error; err != nil {
		return nil, notFound(err, "查询记分卡失败 match_id=%s", matchID)
	}
	return &sc, nil
}

func (r *scorecardRepository) ListScorecards(ctx context.Context, q interfaces.ScorecardQuery) ([]*model.ScoreCardRecord, error) {
	if q.MatchIDs != nil && len(q.MatchIDs) == 0 {
		return []*model.ScoreCardRecord{}, nil
	}
	var list []*model.ScoreCardRecord
	if err := r.listQuery(ctx, q).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("查询记分卡列表失败: %w", err)
	}
	return list, nil
}

// listQuery 组装列表查询：id 列表与 filters 标记二选一，再加排序分页
func (r *scorecardRepository) listQuery(ctx context.Context, q interfaces.ScorecardQuery) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&model.ScoreCardRecord{}).Where("status = ?", model.StatusActive)
	if q.MatchIDs != nil {
		db = db.Where("match_id IN ?", q.MatchIDs)
	} else {
		for _, flag := range q.Filters {
			db = db.Where("filters @> ?::jsonb", containsFlag(flag))
		}
	}
	for _, col := range parseSortBy(q.SortBy) {
		db = db.Order(col)
	}
	skip, limit := normalizePage(q.Skip, q.Limit)
	return db.Offset(skip).Limit(limit)
}

func (r *scorecardRepository) UpsertScorecardFilters(ctx context.Context, matchID string, filters model.FilterSet) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.ScoreCardRecord{}).
			Where("match_id = ? AND status = ?", matchID, model.StatusActive).
			Update("filters", filters)
		if res.Error != nil {
			return fmt.Errorf("更新记分卡filters失败 match_id=%s: %w", matchID, res.Error)
		}
		if res.RowsAffected > 0 {
			return nil
		}
		sc := &model.ScoreCardRecord{MatchID: matchID, Filters: filters, Status: model.StatusActive}
		if err := tx.Create(sc).Error; err != nil {
			return fmt.Errorf("创建记分卡失败 match_id=%s: %w", matchID, err)
		}
		return nil
	})
}
