package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// EntityKind 拥有外部引用的实体类型，同一类型内 (feedSource, key) 全局唯一
type EntityKind string

const (
	KindMatch  EntityKind = "match"
	KindTeam   EntityKind = "team"
	KindPlayer EntityKind = "player"
	KindVenue  EntityKind = "venue"
	KindSeries EntityKind = "series"
	KindSquad  EntityKind = "squad"
)

var kindTables = map[EntityKind]string{
	KindMatch:  "matches",
	KindTeam:   "teams",
	KindPlayer: "players",
	KindVenue:  "venues",
	KindSeries: "series",
	KindSquad:  "squads",
}

// Table 实体类型对应的文档表
func (k EntityKind) Table() string { return kindTables[k] }

// Reference 本地实体与外部数据源记录的关联
type Reference struct {
	FeedSource string `json:"feedSource" binding:"required"`
	Key        string `json:"key" binding:"required"`
}

// References 引用列表，jsonb 存储
type References []Reference

// Find 按 feedSource 查找引用，不存在返回 nil
func (rs References) Find(feedSource string) *Reference {
	if feedSource == "" {
		return nil
	}
	for i := range rs {
		if rs[i].FeedSource == feedSource {
			return &rs[i]
		}
	}
	return nil
}

func (rs References) Value() (driver.Value, error) {
	if rs == nil {
		return "[]", nil
	}
	b, err := json.Marshal(rs)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (rs *References) Scan(value interface{}) error {
	b, err := jsonBytes(value)
	if err != nil {
		return fmt.Errorf("扫描 references 失败: %w", err)
	}
	if len(b) == 0 {
		*rs = References{}
		return nil
	}
	return json.Unmarshal(b, rs)
}

func jsonBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, errors.New("unsupported jsonb value type")
	}
}
