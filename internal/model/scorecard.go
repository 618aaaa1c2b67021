package model

import (
	"time"

	"gorm.io/datatypes"
)

// 记分卡粒度
const (
	CardTypeMicro   = "Micro"
	CardTypeFull    = "Full"
	CardTypeSummary = "Summary"
)

// CardTypes 所有记分卡粒度，失效缓存时逐个删除
var CardTypes = []string{CardTypeMicro, CardTypeFull, CardTypeSummary}

// ScoreCardRecord 对应 scorecards 表，按 match_id + status=active 唯一定位
type ScoreCardRecord struct {
	ID        uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	MatchID   string         `gorm:"column:match_id;type:varchar(64);not null;index" json:"matchId"`
	Card      datatypes.JSON `gorm:"column:card;type:jsonb" json:"card"`
	Filters   FilterSet      `gorm:"column:filters;type:jsonb;not null;default:'{}'" json:"filters"`
	Status    string         `gorm:"column:status;type:varchar(16);default:active;index" json:"status"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (ScoreCardRecord) TableName() string { return "scorecards" }

// ScorecardView 对外返回的记分卡 JSON 对象
type ScorecardView map[string]interface{}
