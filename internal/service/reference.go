package service

import (
	"context"
	"fmt"

	"CricketCatalog/internal/interfaces"
	"CricketCatalog/internal/model"

	"github.com/sirupsen/logrus"
)

// ConflictLookup 在同类型的活跃实体（当前实体除外）中查找持有 ref 的实体
type ConflictLookup func(ctx context.Context, ref model.Reference) (conflictID string, found bool, err error)

// LookupExcluding 以 store 为查询集合、排除 selfID 的冲突查询；新建实体时 selfID 为空
func LookupExcluding(store interfaces.ReferenceStore, selfID string) ConflictLookup {
	return func(ctx context.Context, ref model.Reference) (string, bool, error) {
		return store.FindConflict(ctx, ref, selfID)
	}
}

// ReferenceChange 合并结果。Released 为同 feedSource 下被替换掉的旧引用，需要释放占用
type ReferenceChange struct {
	Merged   model.References
	Released *model.Reference
}

// ResolveReference 把单个外部引用合并进实体已有的引用列表：
// 1. 其他活跃实体已持有 (feedSource, key) 时返回 *model.ConflictError
// 2. 已有同 feedSource 的引用则原位替换 key，否则追加
// existing 不会被修改
func ResolveReference(ctx context.Context, kind model.EntityKind, existing model.References, incoming model.Reference, lookup ConflictLookup) (*ReferenceChange, error) {
	conflictID, found, err := lookup(ctx, incoming)
	if err != nil {
		return nil, fmt.Errorf("检查引用冲突失败: %w", err)
	}
	if found {
		return nil, &model.ConflictError{Kind: kind, Reference: incoming, ConflictID: conflictID}
	}

	merged := make(model.References, len(existing), len(existing)+1)
	copy(merged, existing)
	change := &ReferenceChange{}
	for i := range merged {
		if merged[i].FeedSource != incoming.FeedSource {
			continue
		}
		if merged[i].Key != incoming.Key {
			old := merged[i]
			change.Released = &old
			merged[i].Key = incoming.Key
		}
		change.Merged = merged
		return change, nil
	}
	change.Merged = append(merged, incoming)
	return change, nil
}

// ReferenceService 非比赛实体（球队/球员/场馆/系列赛/阵容）的外部引用维护
type ReferenceService struct {
	stores map[model.EntityKind]interfaces.ReferenceStore
	logger *logrus.Logger
}

// NewReferenceService stores 按实体类型索引
func NewReferenceService(logger *logrus.Logger, stores ...interfaces.ReferenceStore) *ReferenceService {
	m := make(map[model.EntityKind]interfaces.ReferenceStore, len(stores))
	for _, st := range stores {
		m[st.Kind()] = st
	}
	return &ReferenceService{stores: m, logger: logger}
}

// Attach 给实体关联一个外部引用，引用列表与占用记录在同一事务内写入
func (s *ReferenceService) Attach(ctx context.Context, kind model.EntityKind, id string, ref model.Reference) (*model.EntityDocument, error) {
	store, ok := s.stores[kind]
	if !ok {
		return nil, fmt.Errorf("未支持的实体类型: %s", kind)
	}
	doc, err := store.FindActiveEntity(ctx, id)
	if err != nil {
		return nil, err
	}
	change, err := ResolveReference(ctx, kind, doc.References, ref, LookupExcluding(store, id))
	if err != nil {
		return nil, err
	}
	if err := store.SaveReferences(ctx, id, change.Merged, &ref, change.Released); err != nil {
		return nil, err
	}
	doc.References = change.Merged
	s.logger.WithFields(logrus.Fields{
		"kind":        kind,
		"id":          id,
		"feed_source": ref.FeedSource,
	}).Info("实体引用已更新")
	return doc, nil
}
