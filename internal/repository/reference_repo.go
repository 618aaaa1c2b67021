package repository

import (
	"context"
	"fmt"

	"CricketCatalog/internal/interfaces"
	"CricketCatalog/internal/model"

	"gorm.io/gorm"
)

type referenceRepository struct {
	db   *gorm.DB
	kind model.EntityKind
}

// NewReferenceRepository 按实体类型创建引用仓储，查询集合为 kind.Table()
func NewReferenceRepository(db *gorm.DB, kind model.EntityKind) interfaces.ReferenceStore {
	return &referenceRepository{db: db, kind: kind}
}

func (r *referenceRepository) Kind() model.EntityKind { return r.kind }

func (r *referenceRepository) FindConflict(ctx context.Context, ref model.Reference, excludeID string) (string, bool, error) {
	var ids []string
	if err := r.conflictQuery(ctx, ref, excludeID).Limit(1).Pluck("id", &ids).Error; err != nil {
		return "", false, fmt.Errorf("查询%s引用冲突失败: %w", r.kind, err)
	}
	if len(ids) == 0 {
		return "", false, nil
	}
	return ids[0], true, nil
}

// conflictQuery 同类型活跃实体中持有 ref 的记录；excludeID 为空时不排除任何实体
func (r *referenceRepository) conflictQuery(ctx context.Context, ref model.Reference, excludeID string) *gorm.DB {
	db := r.db.WithContext(ctx).Table(r.kind.Table()).
		Where("status = ? AND refs @> ?::jsonb", model.StatusActive, containsRef(ref))
	if excludeID != "" {
		db = db.Where("id <> ?", excludeID)
	}
	return db
}

func (r *referenceRepository) FindActiveEntity(ctx context.Context, id string) (*model.EntityDocument, error) {
	var doc model.EntityDocument
	if err := r.db.WithContext(ctx).Table(r.kind.Table()).
		Where("id = ? AND status = ?", id, model.StatusActive).
		First(&doc).Error; err != nil {
		return nil, notFound(err, "查询%s失败 id=%s", r.kind, id)
	}
	return &doc, nil
}

func (r *referenceRepository) SaveReferences(ctx context.Context, id string, refs model.References, claim *model.Reference, released *model.Reference) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := applyClaims(tx, r.kind, id, claim, released); err != nil {
			return err
		}
		res := tx.Table(r.kind.Table()).
			Where("id = ? AND status = ?", id, model.StatusActive).
			Update("refs", refs)
		if res.Error != nil {
			return fmt.Errorf("保存%s引用失败 id=%s: %w", r.kind, id, res.Error)
		}
		if res.RowsAffected == 0 {
			return model.ErrNotFound
		}
		return nil
	})
}
