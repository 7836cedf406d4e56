package clients

import (
	"context"
	"fmt"

	"plmc/internal/models"

	"github.com/go-resty/resty/v2"
)

// PaymentClient 支付微服务客户端（支付处理本身在远端完成，这里只做透传）
type PaymentClient struct {
	http *resty.Client
}

// CreateOrder 创建支付订单
func (c *PaymentClient) CreateOrder(ctx context.Context, order *models.OrderCreateRequest) (*models.OrderCreateResponse, error) {
	var result models.OrderCreateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(order).
		SetResult(&result).
		Post("/createOrder")
	if err != nil {
		return nil, fmt.Errorf("创建支付订单失败: %w", err)
	}
	if err := checkStatus(resp, "payment"); err != nil {
		return nil, err
	}
	return &result, nil
}

// VerifyPayment 支付验签，上游返回纯文本结果
func (c *PaymentClient) VerifyPayment(ctx context.Context, payload *models.PaymentVerifyPayload) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		Post("/verifyPayment")
	if err != nil {
		return "", fmt.Errorf("支付验签失败: %w", err)
	}
	if err := checkStatus(resp, "payment"); err != nil {
		return "", err
	}
	return resp.String(), nil
}
