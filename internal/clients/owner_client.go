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

// OwnerClient 业主目录服务客户端
type OwnerClient struct {
	http     *resty.Client
	cache    *cache.RedisCache
	cacheTTL time.Duration
}

// FetchAll 拉取全部业主
func (c *OwnerClient) FetchAll(ctx context.Context) ([]models.Owner, error) {
	var owners []models.Owner
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&owners).
		Get("/owner/fetchAll")
	if err != nil {
		return nil, fmt.Errorf("拉取业主列表失败: %w", err)
	}
	if err := checkStatus(resp, "owner"); err != nil {
		return nil, err
	}
	return owners, nil
}

// FetchByID 按ID查询业主
func (c *OwnerClient) FetchByID(ctx context.Context, ownerID int64) (*models.Owner, error) {
	var owner models.Owner
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&owner).
		Get(fmt.Sprintf("/owner/fetchById/%d", ownerID))
	if err != nil {
		return nil, fmt.Errorf("查询业主失败: %w", err)
	}
	if err := checkStatus(resp, "owner"); err != nil {
		return nil, err
	}
	return &owner, nil
}

// IDByName 按用户名解析业主ID（上游返回纯文本数字）
func (c *OwnerClient) IDByName(ctx context.Context, username string) (int64, error) {
	cacheKey := "owner:id-by-name:" + username
	if c.cache != nil {
		var cached int64
		if err := c.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	resp, err := c.http.R().
		SetContext(ctx).
		Get("/owner/id-by-name/" + username)
	if err != nil {
		return 0, fmt.Errorf("解析业主ID失败: %w", err)
	}
	if err := checkStatus(resp, "owner"); err != nil {
		return 0, err
	}

	id, err := parseID(resp.String(), "owner")
	if err != nil {
		return 0, err
	}
	if c.cache != nil {
		if err := c.cache.SetJSON(ctx, cacheKey, id, c.cacheTTL); err != nil {
			logger.GetLogger().Debugf("写入业主ID缓存失败: %v", err)
		}
	}
	return id, nil
}

// Update 更新业主资料
func (c *OwnerClient) Update(ctx context.Context, ownerID int64, payload *models.OwnerUpdatePayload) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		Put(fmt.Sprintf("/owner/update/%d", ownerID))
	if err != nil {
		return fmt.Errorf("更新业主失败: %w", err)
	}
	return checkStatus(resp, "owner")
}

// DeleteWithProperties 删除业主并级联删除其名下房产
func (c *OwnerClient) DeleteWithProperties(ctx context.Context, ownerID int64) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/owner/deleteOwnerAndProperties/%d", ownerID))
	if err != nil {
		return fmt.Errorf("删除业主失败: %w", err)
	}
	return checkStatus(resp, "owner")
}
