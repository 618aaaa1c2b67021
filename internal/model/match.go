package model

import "time"

// 比赛直播状态
const (
	LiveStatusUpcoming  = "upcoming"
	LiveStatusOngoing   = "ongoing"
	LiveStatusCompleted = "completed"
	LiveStatusAbandoned = "abandoned"
)

// 软删除标记，所有实体共用
const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
)

// MatchRecord 对应 matches 表。只做软删除，status=deleted 后不再参与任何查询
type MatchRecord struct {
	ID                     string     `gorm:"column:id;primaryKey;type:varchar(64)" json:"id"`
	Name                   string     `gorm:"column:name;type:varchar(256)" json:"name"`
	ShortName              string     `gorm:"column:short_name;type:varchar(128)" json:"shortName"`
	Format                 string     `gorm:"column:format;type:varchar(16)" json:"format"`
	ApprovalStatus         string     `gorm:"column:approval_status;type:varchar(16)" json:"approvalStatus"`
	SeriesID               string     `gorm:"column:series_id;type:varchar(64);index" json:"seriesId"`
	TeamAID                string     `gorm:"column:team_a_id;type:varchar(64)" json:"teamAId"`
	TeamBID                string     `gorm:"column:team_b_id;type:varchar(64)" json:"teamBId"`
	VenueID                string     `gorm:"column:venue_id;type:varchar(64)" json:"venueId"`
	StartDate              *time.Time `gorm:"column:start_date;type:timestamp" json:"startDate,omitempty"`
	LiveStatus             string     `gorm:"column:live_status;type:varchar(16);default:upcoming" json:"liveStatus"`
	ActiveFeedSource       string     `gorm:"column:active_feed_source;type:varchar(64)" json:"activeFeedSource"`
	ActivePredictionSource string     `gorm:"column:active_prediction_source;type:varchar(64)" json:"activePredictionSource"`
	References             References `gorm:"column:refs;type:jsonb;not null;default:'[]'" json:"references"`
	Filters                FilterSet  `gorm:"column:filters;type:jsonb;not null;default:'{}'" json:"filters"`
	Status                 string     `gorm:"column:status;type:varchar(16);default:active;index" json:"status"`
	CreatedAt              time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt              time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (MatchRecord) TableName() string { return "matches" }

// MatchState 更新前后用于比较的状态快照
type MatchState struct {
	LiveStatus string
	Filters    FilterSet
}

// State 当前记录的状态快照（filters 深拷贝，避免被后续 set 覆盖）
func (m *MatchRecord) State() MatchState {
	return MatchState{
		LiveStatus: m.LiveStatus,
		Filters:    m.Filters.Clone(),
	}
}
