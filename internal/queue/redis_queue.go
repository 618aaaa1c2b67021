package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"CricketCatalog/internal/interfaces"

	"github.com/gomodule/redigo/redis"
)

var _ interfaces.WorkQueue = (*RedisQueue)(nil)

// RedisQueue 以 redis list 作为外部 worker 的任务队列：RPUSH 入队，worker 侧 BLPOP 消费
type RedisQueue struct {
	pool   *redis.Pool
	prefix string
}

// NewRedisQueue prefix 为队列名前缀，可为空
func NewRedisQueue(pool *redis.Pool, prefix string) *RedisQueue {
	return &RedisQueue{pool: pool, prefix: prefix}
}

// Push payload 序列化为 JSON 后追加到队尾，返回入队后的队列长度
func (q *RedisQueue) Push(ctx context.Context, queueName string, payload interface{}) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("序列化任务失败: %w", err)
	}
	conn, err := q.pool.GetContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("获取redis连接失败: %w", err)
	}
	defer conn.Close()

	n, err := redis.Int(redis.DoContext(conn, ctx, "RPUSH", q.prefix+queueName, body))
	if err != nil {
		return 0, fmt.Errorf("redis RPUSH %s: %w", queueName, err)
	}
	return n, nil
}
