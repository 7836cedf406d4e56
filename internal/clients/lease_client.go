package clients

import (
	"context"
	"fmt"

	"plmc/internal/models"

	"github.com/go-resty/resty/v2"
)

// LeaseClient 租约服务客户端
type LeaseClient struct {
	http *resty.Client
}

// FetchAll 拉取全部租约
func (c *LeaseClient) FetchAll(ctx context.Context) ([]models.Lease, error) {
	var leases []models.Lease
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&leases).
		Get("/lease/fetchAll")
	if err != nil {
		return nil, fmt.Errorf("拉取租约列表失败: %w", err)
	}
	if err := checkStatus(resp, "lease"); err != nil {
		return nil, err
	}
	return leases, nil
}

// FetchByID 按ID查询租约
func (c *LeaseClient) FetchByID(ctx context.Context, leaseID int64) (*models.Lease, error) {
	var lease models.Lease
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&lease).
		Get(fmt.Sprintf("/lease/fetchById/%d", leaseID))
	if err != nil {
		return nil, fmt.Errorf("查询租约失败: %w", err)
	}
	if err := checkStatus(resp, "lease"); err != nil {
		return nil, err
	}
	return &lease, nil
}

// ByOwner 查询业主名下租约
func (c *LeaseClient) ByOwner(ctx context.Context, ownerID int64) ([]models.Lease, error) {
	var leases []models.Lease
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&leases).
		Get(fmt.Sprintf("/lease/leaseByOwner/%d", ownerID))
	if err != nil {
		return nil, fmt.Errorf("查询业主租约失败: %w", err)
	}
	if err := checkStatus(resp, "lease"); err != nil {
		return nil, err
	}
	return leases, nil
}

// ByTenant 查询租户名下租约
func (c *LeaseClient) ByTenant(ctx context.Context, tenantID int64) ([]models.Lease, error) {
	var leases []models.Lease
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&leases).
		Get(fmt.Sprintf("/lease/leaseByTenant/%d", tenantID))
	if err != nil {
		return nil, fmt.Errorf("查询租户租约失败: %w", err)
	}
	if err := checkStatus(resp, "lease"); err != nil {
		return nil, err
	}
	return leases, nil
}

// Save 创建租约，上游返回纯文本结果
func (c *LeaseClient) Save(ctx context.Context, lease *models.Lease) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(lease).
		Post("/lease/save")
	if err != nil {
		return "", fmt.Errorf("创建租约失败: %w", err)
	}
	if err := checkStatus(resp, "lease"); err != nil {
		return "", err
	}
	return resp.String(), nil
}

// Update 更新租约
func (c *LeaseClient) Update(ctx context.Context, leaseID int64, lease *models.Lease) (*models.Lease, error) {
	var updated models.Lease
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(lease).
		SetResult(&updated).
		Put(fmt.Sprintf("/lease/update/%d", leaseID))
	if err != nil {
		return nil, fmt.Errorf("更新租约失败: %w", err)
	}
	if err := checkStatus(resp, "lease"); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete 删除租约
func (c *LeaseClient) Delete(ctx context.Context, leaseID int64) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/lease/delete/%d", leaseID))
	if err != nil {
		return fmt.Errorf("删除租约失败: %w", err)
	}
	return checkStatus(resp, "lease")
}
