package repository

import (
	"fmt"

	"CricketCatalog/internal/model"

	"gorm.io/gorm"
)

// entityKinds 使用通用文档表的实体类型（比赛有独立模型）
var entityKinds = []model.EntityKind{
	model.KindTeam, model.KindPlayer, model.KindVenue, model.KindSeries, model.KindSquad,
}

// AutoMigrate 库表不存在则自动创建
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.MatchRecord{},
		&model.ScoreCardRecord{},
		&model.ReferenceClaim{},
	); err != nil {
		return err
	}
	for _, kind := range entityKinds {
		if err := db.Table(kind.Table()).AutoMigrate(&model.EntityDocument{}); err != nil {
			return fmt.Errorf("迁移%s表失败: %w", kind, err)
		}
	}
	return nil
}
