package repository

import (
	"context"
	"fmt"

	"CricketCatalog/internal/interfaces"
	"CricketCatalog/internal/model"

	"gorm.io/gorm"
)

type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository 创建比赛仓储
func NewMatchRepository(db *gorm.DB) interfaces.MatchStore {
	return &matchRepository{db: db}
}

func (r *matchRepository) FindActiveMatch(ctx context.Context, id string) (*model.MatchRecord, error) {
	var m model.MatchRecord
	if err := r.db.WithContext(ctx).Where("id = ? AND status = ?", id, model.StatusActive).First(&m).Error; err != nil {
		return nil, notFound(err, "查询比赛失败 id=%s", id)
	}
	return &m, nil
}

func (r *matchRepository) FindActiveMatchByReference(ctx context.Context, ref model.Reference) (*model.MatchRecord, error) {
	var m model.MatchRecord
	if err := r.db.WithContext(ctx).
		Where("status = ? AND refs @> ?::jsonb", model.StatusActive, containsRef(ref)).
		First(&m).Error; err != nil {
		return nil, notFound(err, "按引用查询比赛失败 %s/%s", ref.FeedSource, ref.Key)
	}
	return &m, nil
}

func (r *matchRepository) CreateMatch(ctx context.Context, m *model.MatchRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range m.References {
			if err := claimReference(tx, model.KindMatch, m.References[i], m.ID); err != nil {
				return err
			}
		}
		if err := tx.Create(m).Error; err != nil {
			return fmt.Errorf("创建比赛失败: %w", err)
		}
		return nil
	})
}

// SaveMatch 只更新仍为 active 的比赛；读取后已被软删除时返回 model.ErrNotFound，不会恢复记录也不会占用引用
func (r *matchRepository) SaveMatch(ctx context.Context, m *model.MatchRecord, claim *model.Reference, released *model.Reference) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := updateActiveMatch(tx, m)
		if res.Error != nil {
			return fmt.Errorf("保存比赛失败 id=%s: %w", m.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			return model.ErrNotFound
		}
		return applyClaims(tx, model.KindMatch, m.ID, claim, released)
	})
}

// updateActiveMatch 全字段更新（created_at 除外），条件带 status=active
func updateActiveMatch(tx *gorm.DB, m *model.MatchRecord) *gorm.DB {
	return tx.Model(m).
		Where("id = ? AND status = ?", m.ID, model.StatusActive).
		Select("*").
		Omit("created_at").
		Updates(m)
}

func (r *matchRepository) SetMatchStatus(ctx context.Context, id, status string) (bool, error) {
	var hit bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.MatchRecord{}).
			Where("id = ? AND status = ?", id, model.StatusActive).
			Update("status", status)
		if res.Error != nil {
			return fmt.Errorf("修改比赛状态失败 id=%s: %w", id, res.Error)
		}
		hit = res.RowsAffected > 0
		if hit && status == model.StatusDeleted {
			return releaseAll(tx, model.KindMatch, id)
		}
		return nil
	})
	return hit, err
}
