package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
)

// FilterFeatured 推荐标记：带此标记的比赛由外部 worker 写入快速缓存
const FilterFeatured = "featured"

// FilterSet 具名布尔标记集合（如 featured），更新时整体替换
type FilterSet map[string]bool

// NewFilterSet 标记名列表转集合，所有出现的标记置 true
func NewFilterSet(names []string) FilterSet {
	fs := make(FilterSet, len(names))
	for _, n := range names {
		fs[n] = true
	}
	return fs
}

// Has 标记是否为 true；nil 集合视为全 false
func (f FilterSet) Has(name string) bool {
	return f[name]
}

// Names 已置位的标记名，按字典序
func (f FilterSet) Names() []string {
	names := make([]string, 0, len(f))
	for n, on := range f {
		if on {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

// Clone 拷贝，用于更新前快照
func (f FilterSet) Clone() FilterSet {
	if f == nil {
		return nil
	}
	c := make(FilterSet, len(f))
	for k, v := range f {
		c[k] = v
	}
	return c
}

func (f FilterSet) Value() (driver.Value, error) {
	if f == nil {
		return "{}", nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (f *FilterSet) Scan(value interface{}) error {
	b, err := jsonBytes(value)
	if err != nil {
		return fmt.Errorf("扫描 filters 失败: %w", err)
	}
	if len(b) == 0 {
		*f = FilterSet{}
		return nil
	}
	return json.Unmarshal(b, f)
}
