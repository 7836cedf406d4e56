package clients

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"plmc/pkg/cache"
	"plmc/pkg/config"

	"github.com/go-resty/resty/v2"
)

// Clients 远端协作服务客户端集合
//
// 所有实体（房产、申请、业主、租户、租约）都由网关后的微服务维护，
// 本服务只通过这些客户端读写。客户端负责把上游的响应归一化成
// 单一类型后再交给核心组件，动态判型止步于此边界。
type Clients struct {
	Property *PropertyClient
	Request  *RequestClient
	Owner    *OwnerClient
	Tenant   *TenantClient
	Lease    *LeaseClient
	Payment  *PaymentClient
}

// New 创建客户端集合，store为nil时跳过缓存直连上游
func New(cfg *config.Config, store *cache.RedisCache) *Clients {
	gateway := newRestyClient(cfg.Upstream.GatewayURL, &cfg.Upstream)
	payment := newRestyClient(cfg.Upstream.PaymentURL, &cfg.Upstream)
	cacheTTL := time.Duration(cfg.Console.CacheTTL) * time.Second

	return &Clients{
		Property: &PropertyClient{http: gateway, cache: store, cacheTTL: cacheTTL},
		Request:  &RequestClient{http: gateway},
		Owner:    &OwnerClient{http: gateway, cache: store, cacheTTL: cacheTTL},
		Tenant:   &TenantClient{http: gateway, cache: store, cacheTTL: cacheTTL},
		Lease:    &LeaseClient{http: gateway},
		Payment:  &PaymentClient{http: payment},
	}
}

func newRestyClient(baseURL string, cfg *config.UpstreamConfig) *resty.Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(time.Duration(cfg.Timeout) * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if cfg.RetryCount > 0 {
		client.SetRetryCount(cfg.RetryCount).
			SetRetryWaitTime(1 * time.Second).
			SetRetryMaxWaitTime(5 * time.Second)
	}
	return client
}

// checkStatus 统一处理非2xx响应
func checkStatus(resp *resty.Response, service string) error {
	if resp.IsError() {
		return fmt.Errorf("%s服务返回异常状态 %d: %s", service, resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
	return nil
}

// parseID id-by-name 类接口返回纯文本数字，统一在边界解析为int64
func parseID(text, service string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s服务返回的ID无效: %q", service, strings.TrimSpace(text))
	}
	return id, nil
}
