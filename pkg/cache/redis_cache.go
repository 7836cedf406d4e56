package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisCache 上游响应缓存
//
// 属性列表和 id-by-name 查询由多个会话反复拉取，短TTL缓存可以
// 显著减少对网关的请求量。缓存不可用时调用方直接回源。
type RedisCache struct {
	client *redis.Client
	prefix string
}

// Config Redis配置
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	Prefix   string
}

// ErrCacheMiss 缓存未命中
var ErrCacheMiss = redis.Nil

// NewRedisCache 创建Redis缓存实例
func NewRedisCache(config *Config) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	prefix := config.Prefix
	if prefix == "" {
		prefix = "plmc:cache"
	}

	return &RedisCache{
		client: client,
		prefix: prefix,
	}
}

// Close 关闭Redis连接
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ping 测试Redis连接
func (c *RedisCache) Ping() error {
	ctx := context.Background()
	return c.client.Ping(ctx).Err()
}

// GetJSON 读取缓存并反序列化到dest，未命中返回ErrCacheMiss
func (c *RedisCache) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, c.cacheKey(key)).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// SetJSON 序列化value并按TTL写入缓存
func (c *RedisCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("序列化缓存值失败: %v", err)
	}
	return c.client.Set(ctx, c.cacheKey(key), data, ttl).Err()
}

// Delete 删除缓存键（实体变更后主动失效）
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, c.cacheKey(k))
	}
	return c.client.Del(ctx, full...).Err()
}

func (c *RedisCache) cacheKey(key string) string {
	return c.prefix + ":" + key
}
