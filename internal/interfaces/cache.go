package interfaces

import "context"

// FastCache 快速 k/v 缓存。本服务只读取、删除缓存条目，写入只用于重写 featuredMatches 索引
type FastCache interface {
	// Get 未命中返回 (nil, false, nil)
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// MultiGet 结果与 keys 按位置对应，未命中位置为 nil
	MultiGet(ctx context.Context, keys []string) ([][]byte, error)
	// Delete 批量删除，返回实际删除的条目数
	Delete(ctx context.Context, keys []string) (int, error)
	Set(ctx context.Context, key string, value []byte) error
}
