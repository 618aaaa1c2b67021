package model

import (
	"errors"
	"fmt"
)

// ErrNotFound 回退到文档库后仍未找到记录
var ErrNotFound = errors.New("record not found")

// ConflictError 同类型下已有其他活跃实体持有相同 (feedSource, key)
type ConflictError struct {
	Kind       EntityKind
	Reference  Reference
	ConflictID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s reference %s/%s already owned by %s", e.Kind, e.Reference.FeedSource, e.Reference.Key, e.ConflictID)
}
