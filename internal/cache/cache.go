package cache

import (
	"plmc/pkg/cache"
	"plmc/pkg/config"
	"sync"
)

var (
	cacheInstance *cache.RedisCache
	cacheOnce     sync.Once
)

// GetRedisCache 获取Redis缓存的单例实例（未启用时返回nil，调用方需判空）
func GetRedisCache() *cache.RedisCache {
	cacheOnce.Do(func() {
		cfg := config.GetConfig()
		if !cfg.Redis.Enabled {
			return
		}
		cacheInstance = cache.NewRedisCache(&cache.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
	})
	return cacheInstance
}

// CloseRedisCache 关闭Redis连接
func CloseRedisCache() error {
	if cacheInstance != nil {
		return cacheInstance.Close()
	}
	return nil
}
