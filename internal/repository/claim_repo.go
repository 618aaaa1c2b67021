package repository

import (
	"CricketCatalog/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// claimReference 在事务内占用 (kind, feedSource, key)。依赖 uq_reference_claim 唯一索引，
// ON CONFLICT DO NOTHING 后再查持有者：持有者不是自己即冲突
func claimReference(tx *gorm.DB, kind model.EntityKind, ref model.Reference, entityID string) error {
	claim := &model.ReferenceClaim{
		Kind:       kind,
		FeedSource: ref.FeedSource,
		Key:        ref.Key,
		EntityID:   entityID,
	}
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(claim)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		return nil
	}

	var owner model.ReferenceClaim
	if err := tx.Where(`kind = ? AND feed_source = ? AND "key" = ?`, kind, ref.FeedSource, ref.Key).
		First(&owner).Error; err != nil {
		return err
	}
	if owner.EntityID == entityID {
		return nil
	}
	return &model.ConflictError{Kind: kind, Reference: ref, ConflictID: owner.EntityID}
}

// releaseReference 释放实体持有的单个引用
func releaseReference(tx *gorm.DB, kind model.EntityKind, ref model.Reference, entityID string) error {
	return tx.Where(`kind = ? AND feed_source = ? AND "key" = ? AND entity_id = ?`, kind, ref.FeedSource, ref.Key, entityID).
		Delete(&model.ReferenceClaim{}).Error
}

// releaseAll 软删除实体时释放它的全部引用
func releaseAll(tx *gorm.DB, kind model.EntityKind, entityID string) error {
	return tx.Where("kind = ? AND entity_id = ?", kind, entityID).Delete(&model.ReferenceClaim{}).Error
}

// applyClaims 先释放被替换的旧引用，再占用新引用
func applyClaims(tx *gorm.DB, kind model.EntityKind, entityID string, claim, released *model.Reference) error {
	if released != nil {
		if err := releaseReference(tx, kind, *released, entityID); err != nil {
			return err
		}
	}
	if claim != nil {
		if err := claimReference(tx, kind, *claim, entityID); err != nil {
			return err
		}
	}
	return nil
}
