package model

import "time"

// EntityDocument 球队/球员/场馆/系列赛/阵容的通用文档，表名由 EntityKind.Table() 决定
type EntityDocument struct {
	ID         string     `gorm:"column:id;primaryKey;type:varchar(64)" json:"id"`
	Name       string     `gorm:"column:name;type:varchar(256)" json:"name"`
	References References `gorm:"column:refs;type:jsonb;not null;default:'[]'" json:"references"`
	Status     string     `gorm:"column:status;type:varchar(16);default:active;index" json:"status"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// ReferenceClaim (kind, feed_source, key) 唯一约束表，由数据库保证引用不重复
type ReferenceClaim struct {
	ID         uint64     `gorm:"column:id;primaryKey;autoIncrement"`
	Kind       EntityKind `gorm:"column:kind;type:varchar(16);not null;uniqueIndex:uq_reference_claim"`
	FeedSource string     `gorm:"column:feed_source;type:varchar(64);not null;uniqueIndex:uq_reference_claim"`
	Key        string     `gorm:"column:key;type:varchar(128);not null;uniqueIndex:uq_reference_claim"`
	EntityID   string     `gorm:"column:entity_id;type:varchar(64);not null;index"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (ReferenceClaim) TableName() string { return "reference_claims" }
