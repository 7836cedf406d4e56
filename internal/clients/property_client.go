package clients

import (
	"context"
	"fmt"
	"time"

	"plmc/internal/models"
	"plmc/pkg/cache"
	"plmc/pkg/logger"

	"github.com/go-resty/resty/v2"
)

const propertyListCacheKey = "property:fetchAll"

// PropertyClient 房产目录服务客户端
type PropertyClient struct {
	http     *resty.Client
	cache    *cache.RedisCache
	cacheTTL time.Duration
}

// FetchAll 拉取全部房产，命中缓存时不回源
func (c *PropertyClient) FetchAll(ctx context.Context) ([]models.Property, error) {
	if c.cache != nil {
		var cached []models.Property
		if err := c.cache.GetJSON(ctx, propertyListCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	var properties []models.Property
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&properties).
		Get("/property/fetchAll")
	if err != nil {
		return nil, fmt.Errorf("拉取房产列表失败: %w", err)
	}
	if err := checkStatus(resp, "property"); err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.SetJSON(ctx, propertyListCacheKey, properties, c.cacheTTL); err != nil {
			logger.GetLogger().Debugf("写入房产列表缓存失败: %v", err)
		}
	}
	return properties, nil
}

// FetchByID 按ID查询房产
func (c *PropertyClient) FetchByID(ctx context.Context, propertyID int64) (*models.Property, error) {
	var property models.Property
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&property).
		Get(fmt.Sprintf("/property/fetchById/%d", propertyID))
	if err != nil {
		return nil, fmt.Errorf("查询房产失败: %w", err)
	}
	if err := checkStatus(resp, "property"); err != nil {
		return nil, err
	}
	return &property, nil
}

// ByOwner 查询业主名下房产
func (c *PropertyClient) ByOwner(ctx context.Context, ownerID int64) ([]models.Property, error) {
	var properties []models.Property
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&properties).
		Get(fmt.Sprintf("/property/propertiesByOwner/%d", ownerID))
	if err != nil {
		return nil, fmt.Errorf("查询业主房产失败: %w", err)
	}
	if err := checkStatus(resp, "property"); err != nil {
		return nil, err
	}
	return properties, nil
}

// Save 创建房产，上游返回纯文本结果
func (c *PropertyClient) Save(ctx context.Context, property *models.Property) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(property).
		Post("/property/save")
	if err != nil {
		return "", fmt.Errorf("创建房产失败: %w", err)
	}
	if err := checkStatus(resp, "property"); err != nil {
		return "", err
	}
	c.invalidate(ctx)
	return resp.String(), nil
}

// Update 更新房产
func (c *PropertyClient) Update(ctx context.Context, propertyID int64, property *models.Property) (*models.Property, error) {
	var updated models.Property
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(property).
		SetResult(&updated).
		Put(fmt.Sprintf("/property/update/%d", propertyID))
	if err != nil {
		return nil, fmt.Errorf("更新房产失败: %w", err)
	}
	if err := checkStatus(resp, "property"); err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return &updated, nil
}

// Delete 删除房产
func (c *PropertyClient) Delete(ctx context.Context, propertyID int64) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/property/delete/%d", propertyID))
	if err != nil {
		return fmt.Errorf("删除房产失败: %w", err)
	}
	if err := checkStatus(resp, "property"); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// 实体变更后主动失效列表缓存
func (c *PropertyClient) invalidate(ctx context.Context) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Delete(ctx, propertyListCacheKey); err != nil {
		logger.GetLogger().Debugf("失效房产列表缓存失败: %v", err)
	}
}
