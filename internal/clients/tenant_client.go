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

// TenantClient 租户目录服务客户端
type TenantClient struct {
	http     *resty.Client
	cache    *cache.RedisCache
	cacheTTL time.Duration
}

// FetchAll 拉取全部租户
func (c *TenantClient) FetchAll(ctx context.Context) ([]models.Tenant, error) {
	var tenants []models.Tenant
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&tenants).
		Get("/tenant/fetchAll")
	if err != nil {
		return nil, fmt.Errorf("拉取租户列表失败: %w", err)
	}
	if err := checkStatus(resp, "tenant"); err != nil {
		return nil, err
	}
	return tenants, nil
}

// FetchByID 按ID查询租户
func (c *TenantClient) FetchByID(ctx context.Context, tenantID int64) (*models.Tenant, error) {
	var tenant models.Tenant
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&tenant).
		Get(fmt.Sprintf("/tenant/fetchById/%d", tenantID))
	if err != nil {
		return nil, fmt.Errorf("查询租户失败: %w", err)
	}
	if err := checkStatus(resp, "tenant"); err != nil {
		return nil, err
	}
	return &tenant, nil
}

// IDByName 按用户名解析租户ID（上游返回纯文本数字）
func (c *TenantClient) IDByName(ctx context.Context, username string) (int64, error) {
	cacheKey := "tenant:id-by-name:" + username
	if c.cache != nil {
		var cached int64
		if err := c.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	resp, err := c.http.R().
		SetContext(ctx).
		Get("/tenant/id-by-name/" + username)
	if err != nil {
		return 0, fmt.Errorf("解析租户ID失败: %w", err)
	}
	if err := checkStatus(resp, "tenant"); err != nil {
		return 0, err
	}

	id, err := parseID(resp.String(), "tenant")
	if err != nil {
		return 0, err
	}
	if c.cache != nil {
		if err := c.cache.SetJSON(ctx, cacheKey, id, c.cacheTTL); err != nil {
			logger.GetLogger().Debugf("写入租户ID缓存失败: %v", err)
		}
	}
	return id, nil
}

// Update 更新租户资料
func (c *TenantClient) Update(ctx context.Context, tenantID int64, payload *models.TenantUpdatePayload) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		Put(fmt.Sprintf("/tenant/update/%d", tenantID))
	if err != nil {
		return fmt.Errorf("更新租户失败: %w", err)
	}
	return checkStatus(resp, "tenant")
}

// Delete 删除租户
func (c *TenantClient) Delete(ctx context.Context, tenantID int64) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/tenant/delete/%d", tenantID))
	if err != nil {
		return fmt.Errorf("删除租户失败: %w", err)
	}
	return checkStatus(resp, "tenant")
}
