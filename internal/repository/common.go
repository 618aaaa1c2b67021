package repository

import (
	"encoding/json"
	"errors"
	"fmt"

	"CricketCatalog/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// notFound gorm 未找到统一转为 model.ErrNotFound，其余错误带上下文包装
func notFound(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ErrNotFound
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// containsRef jsonb 包含查询参数：refs @> '[{"feedSource":..,"key":..}]'
func containsRef(ref model.Reference) string {
	b, _ := json.Marshal(model.References{ref})
	return string(b)
}

// containsFlag jsonb 包含查询参数：filters @> '{"flag":true}'
func containsFlag(flag string) string {
	b, _ := json.Marshal(map[string]bool{flag: true})
	return string(b)
}

// sortColumns 允许排序的字段（接口字段名 -> 列名）
var sortColumns = map[string]string{
	"id":        "id",
	"matchId":   "match_id",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// parseSortBy "field" 升序、"-field" 降序；未知字段忽略
func parseSortBy(sortBy []string) []clause.OrderByColumn {
	var cols []clause.OrderByColumn
	for _, s := range sortBy {
		desc := false
		if len(s) > 0 && s[0] == '-' {
			desc = true
			s = s[1:]
		}
		col, ok := sortColumns[s]
		if !ok {
			continue
		}
		cols = append(cols, clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: desc})
	}
	return cols
}

func normalizePage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return skip, limit
}
