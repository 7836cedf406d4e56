package services

import (
	"context"
	"time"

	"plmc/internal/models"
	"plmc/pkg/logger"
)

// PropertyDirectory 房产目录读取口
type PropertyDirectory interface {
	FetchAll(ctx context.Context) ([]models.Property, error)
}

// RequestDirectory 申请目录读取口
type RequestDirectory interface {
	ByTenant(ctx context.Context, tenantID int64) ([]models.Request, error)
}

// TenantResolver 用户名到租户ID的解析口
type TenantResolver interface {
	IDByName(ctx context.Context, username string) (int64, error)
}

// ConsoleView 返回给前端的视图载荷
type ConsoleView struct {
	Rows          []models.PropertyView `json:"rows"`
	Notifications []models.Notification `json:"notifications"`
	Loading       bool                  `json:"loading"`
	Error         string                `json:"error,omitempty"`
	Success       string                `json:"success,omitempty"`
	TenantID      int64                 `json:"tenantId,omitempty"`
	RefreshedAt   time.Time             `json:"refreshedAt"`
}

// ViewService 控制台视图服务
//
// 编排一次刷新周期：并发拉取房产列表和租户ID，汇合后拉取租户申请，
// 然后按 换代 -> 注入 -> 跃迁检测 的顺序驱动调和器，最后由富集器和
// 过滤管线产出展示行。周期之间靠会话里的周期编号保证last-cycle-wins。
type ViewService struct {
	properties PropertyDirectory
	requests   RequestDirectory
	tenants    TenantResolver

	enricher        *EntityEnricher
	pipeline        *FilterPipeline
	notificationTTL time.Duration
}

// NewViewService 创建视图服务
func NewViewService(properties PropertyDirectory, requests RequestDirectory, tenants TenantResolver, notificationTTL time.Duration) *ViewService {
	return &ViewService{
		properties:      properties,
		requests:        requests,
		tenants:         tenants,
		enricher:        NewEntityEnricher(),
		pipeline:        NewFilterPipeline(),
		notificationTTL: notificationTTL,
	}
}

// Refresh 执行一次完整的刷新周期
//
// 子请求失败的兜底策略：租户ID解析失败按无租户上下文处理，申请列表
// 拉取失败兜底为空集，周期照常完成并渲染部分数据；只有房产列表这个
// 主请求失败才算终止性错误。loading标志在所有退出路径上都会清除。
func (s *ViewService) Refresh(ctx context.Context, session *ConsoleSession) error {
	session.mu.Lock()
	session.cycleID++
	cycle := session.cycleID
	session.loading = true
	session.errorMsg = ""
	session.successMsg = ""
	// 整页刷新时清空旧通知，和原控制台行为一致
	session.notifications = nil
	auth := session.Auth
	session.mu.Unlock()

	// 并发拉取房产列表与租户ID，全部完成后汇合
	type propertyResult struct {
		properties []models.Property
		err        error
	}
	propertyCh := make(chan propertyResult, 1)
	tenantCh := make(chan int64, 1)

	go func() {
		properties, err := s.properties.FetchAll(ctx)
		propertyCh <- propertyResult{properties: properties, err: err}
	}()
	go func() {
		if auth.Username == "" || !auth.IsTenant() {
			tenantCh <- 0
			return
		}
		id, err := s.tenants.IDByName(ctx, auth.Username)
		if err != nil {
			logger.GetLogger().Warnf("解析租户ID失败（%s）: %v", auth.Username, err)
			tenantCh <- 0
			return
		}
		tenantCh <- id
	}()

	propRes := <-propertyCh
	tenantID := <-tenantCh

	if propRes.err != nil {
		s.completeWithError(session, cycle, "Failed to load data: "+propRes.err.Error())
		return propRes.err
	}

	var requests []models.Request
	if tenantID > 0 {
		fetched, err := s.requests.ByTenant(ctx, tenantID)
		if err != nil {
			logger.GetLogger().Warnf("拉取租户申请失败（tenantId=%d）: %v", tenantID, err)
			fetched = nil
		}
		requests = fetched
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	if session.cycleID != cycle {
		// 已有更新的周期启动，丢弃本次迟到的结果
		logger.GetLogger().Debugf("丢弃过期刷新周期 %d（会话 %s）", cycle, session.ID)
		return nil
	}

	session.tenantID = tenantID
	session.allProperties = propRes.properties
	index := make(map[int64]models.Property, len(propRes.properties))
	for _, property := range propRes.properties {
		index[property.PropertyID] = property
	}
	session.propertyIndex = index

	// 换代必须先于注入完成，否则跃迁检测会被污染
	session.reconciler.BeginRefreshCycle()
	session.reconciler.Ingest(requests)
	detected := session.reconciler.DetectTransitions(func(propertyID int64) (models.Property, bool) {
		property, ok := index[propertyID]
		return property, ok
	})

	now := time.Now()
	for _, notification := range detected {
		notification.ID = session.nextNotificationID
		notification.CreatedAt = now
		session.nextNotificationID++
		session.notifications = append(session.notifications, notification)
	}

	session.lastRefreshed = now
	session.loading = false
	return nil
}

// RefreshIfStale 超过maxAge未刷新时先刷新再返回
func (s *ViewService) RefreshIfStale(ctx context.Context, session *ConsoleSession, maxAge time.Duration) error {
	session.mu.Lock()
	stale := session.lastRefreshed.IsZero() || time.Since(session.lastRefreshed) > maxAge
	session.mu.Unlock()
	if !stale {
		return nil
	}
	return s.Refresh(ctx, session)
}

// View 在会话当前快照上应用富集与过滤，产出视图载荷
func (s *ViewService) View(session *ConsoleSession, filter PropertyFilter) ConsoleView {
	session.mu.Lock()
	defer session.mu.Unlock()

	s.pruneExpiredLocked(session)

	rows := s.enricher.Enrich(session.allProperties, session.reconciler.CurrentGeneration())
	result := s.pipeline.Apply(rows, filter, session.tenantID)

	errorMsg := session.errorMsg
	if result.Message != "" {
		errorMsg = result.Message
	}

	notifications := make([]models.Notification, len(session.notifications))
	copy(notifications, session.notifications)

	return ConsoleView{
		Rows:          result.Rows,
		Notifications: notifications,
		Loading:       session.loading,
		Error:         errorMsg,
		Success:       session.successMsg,
		TenantID:      session.tenantID,
		RefreshedAt:   session.lastRefreshed,
	}
}

// Notifications 返回未过期的通知
func (s *ViewService) Notifications(session *ConsoleSession) []models.Notification {
	session.mu.Lock()
	defer session.mu.Unlock()
	s.pruneExpiredLocked(session)
	notifications := make([]models.Notification, len(session.notifications))
	copy(notifications, session.notifications)
	return notifications
}

// 清除超过展示时长的通知，调用方必须持有会话锁
func (s *ViewService) pruneExpiredLocked(session *ConsoleSession) {
	if len(session.notifications) == 0 {
		return
	}
	cutoff := time.Now().Add(-s.notificationTTL)
	remaining := session.notifications[:0]
	for _, notification := range session.notifications {
		if notification.CreatedAt.After(cutoff) {
			remaining = append(remaining, notification)
		}
	}
	session.notifications = remaining
}

func (s *ViewService) completeWithError(session *ConsoleSession, cycle uint64, message string) {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.cycleID != cycle {
		return
	}
	session.errorMsg = message
	session.loading = false
}
