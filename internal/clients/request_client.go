package clients

import (
	"context"
	"fmt"

	"plmc/internal/models"

	"github.com/go-resty/resty/v2"
)

// RequestClient 租房申请服务客户端
type RequestClient struct {
	http *resty.Client
}

// ByTenant 查询租户发出的全部申请
func (c *RequestClient) ByTenant(ctx context.Context, tenantID int64) ([]models.Request, error) {
	var requests []models.Request
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&requests).
		Get(fmt.Sprintf("/request/byTenant/%d", tenantID))
	if err != nil {
		return nil, fmt.Errorf("查询租户申请失败: %w", err)
	}
	if err := checkStatus(resp, "request"); err != nil {
		return nil, err
	}
	return requests, nil
}

// ByOwner 查询业主收到的全部申请
func (c *RequestClient) ByOwner(ctx context.Context, ownerID int64) ([]models.Request, error) {
	var requests []models.Request
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&requests).
		Get(fmt.Sprintf("/request/byOwner/%d", ownerID))
	if err != nil {
		return nil, fmt.Errorf("查询业主申请失败: %w", err)
	}
	if err := checkStatus(resp, "request"); err != nil {
		return nil, err
	}
	return requests, nil
}

// Save 创建申请，上游返回纯文本结果
func (c *RequestClient) Save(ctx context.Context, request *models.Request) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(request).
		Post("/request/save")
	if err != nil {
		return "", fmt.Errorf("创建申请失败: %w", err)
	}
	if err := checkStatus(resp, "request"); err != nil {
		return "", err
	}
	return resp.String(), nil
}

// UpdateStatus 更新申请状态（业主审批）
func (c *RequestClient) UpdateStatus(ctx context.Context, request *models.Request) (*models.Request, error) {
	var updated models.Request
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(request).
		SetResult(&updated).
		Put("/request/update")
	if err != nil {
		return nil, fmt.Errorf("更新申请状态失败: %w", err)
	}
	if err := checkStatus(resp, "request"); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete 删除申请（租户撤回）
func (c *RequestClient) Delete(ctx context.Context, requestID int64) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/request/delete/%d", requestID))
	if err != nil {
		return fmt.Errorf("删除申请失败: %w", err)
	}
	return checkStatus(resp, "request")
}
