package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"CricketCatalog/internal/config"
	"CricketCatalog/internal/interfaces"

	"github.com/gomodule/redigo/redis"
	"github.com/sirupsen/logrus"
)

var _ interfaces.FastCache = (*RedisCache)(nil)

// NewPool 按配置创建 redis 连接池，进程启动时创建一次，缓存与队列共用
func NewPool(cfg config.RedisConfig) *redis.Pool {
	return &redis.Pool{
		MaxIdle:     cfg.MaxIdle,
		MaxActive:   cfg.MaxActive,
		IdleTimeout: cfg.IdleTimeout,
		Wait:        true,
		DialContext: func(ctx context.Context) (redis.Conn, error) {
			return redis.DialContext(ctx, "tcp", cfg.Addr,
				redis.DialPassword(cfg.Password),
				redis.DialDatabase(cfg.DB),
				redis.DialConnectTimeout(cfg.DialTimeout),
			)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
}

// RedisCache 基于 redigo 的快速缓存
type RedisCache struct {
	pool   *redis.Pool
	logger *logrus.Logger
}

// NewRedisCache 创建 RedisCache，连接池由调用方管理
func NewRedisCache(pool *redis.Pool, logger *logrus.Logger) *RedisCache {
	return &RedisCache{pool: pool, logger: logger}
}

// Get 读取单个 key；key 不存在时 found 为 false 且不返回错误
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	conn, err := c.pool.GetContext(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("获取redis连接失败: %w", err)
	}
	defer conn.Close()

	b, err := redis.Bytes(redis.DoContext(conn, ctx, "GET", key))
	if errors.Is(err, redis.ErrNil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis GET %s: %w", key, err)
	}
	return b, true, nil
}

// MultiGet 批量读取，结果与 keys 一一对应，不存在的 key 为 nil
func (c *RedisCache) MultiGet(ctx context.Context, keys []string) ([][]byte, error) {
	if len(keys) == 0 {
		return [][]byte{}, nil
	}
	conn, err := c.pool.GetContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取redis连接失败: %w", err)
	}
	defer conn.Close()

	values, err := redis.ByteSlices(redis.DoContext(conn, ctx, "MGET", interfaces.ToInterfaceSlice(keys)...))
	if err != nil {
		return nil, fmt.Errorf("redis MGET: %w", err)
	}
	hit := 0
	for _, v := range values {
		if v != nil {
			hit++
		}
	}
	c.logger.WithFields(logrus.Fields{"keys": len(keys), "hit": hit}).Debug("redis MGET")
	return values, nil
}

// Delete 删除 keys，返回实际删除的数量
func (c *RedisCache) Delete(ctx context.Context, keys []string) (int, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	conn, err := c.pool.GetContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("获取redis连接失败: %w", err)
	}
	defer conn.Close()

	n, err := redis.Int(redis.DoContext(conn, ctx, "DEL", interfaces.ToInterfaceSlice(keys)...))
	if err != nil {
		return 0, fmt.Errorf("redis DEL: %w", err)
	}
	return n, nil
}

// Set 写入 key，不设置过期时间
func (c *RedisCache) Set(ctx context.Context, key string, value []byte) error {
	conn, err := c.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("获取redis连接失败: %w", err)
	}
	defer conn.Close()

	if _, err := redis.String(redis.DoContext(conn, ctx, "SET", key, value)); err != nil {
		return fmt.Errorf("redis SET %s: %w", key, err)
	}
	return nil
}
