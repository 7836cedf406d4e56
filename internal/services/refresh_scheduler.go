package services

import (
	"context"
	"fmt"
	"time"

	"plmc/pkg/logger"

	"github.com/robfig/cron/v3"
)

// RefreshScheduler 控制台刷新调度器
//
// 周期性刷新所有活跃会话（驱动调和器产生状态变更通知），并顺带
// 回收空闲会话。原控制台靠浏览器端的手动刷新触发对比，这里改为
// 服务端定时轮询。
type RefreshScheduler struct {
	views    *ViewService
	sessions *SessionService
	cron     *cron.Cron
	spec     string
	running  bool
}

// NewRefreshScheduler 创建刷新调度器
func NewRefreshScheduler(views *ViewService, sessions *SessionService, spec string) *RefreshScheduler {
	return &RefreshScheduler{
		views:    views,
		sessions: sessions,
		cron:     cron.New(),
		spec:     spec,
	}
}

// Start 启动调度器
func (s *RefreshScheduler) Start() error {
	if s.running {
		return fmt.Errorf("调度器已经在运行")
	}

	if _, err := s.cron.AddFunc(s.spec, s.refreshAll); err != nil {
		return fmt.Errorf("注册刷新任务失败: %v", err)
	}

	s.cron.Start()
	s.running = true
	logger.GetLogger().Infof("控制台刷新调度器启动成功（周期 %s）", s.spec)
	return nil
}

// Stop 停止调度器
func (s *RefreshScheduler) Stop() {
	if !s.running {
		return
	}
	s.cron.Stop()
	s.running = false
	logger.GetLogger().Info("控制台刷新调度器已停止")
}

// 刷新全部活跃会话并回收空闲会话
func (s *RefreshScheduler) refreshAll() {
	s.sessions.Sweep()

	sessions := s.sessions.Active()
	if len(sessions) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	for _, session := range sessions {
		if err := s.views.Refresh(ctx, session); err != nil {
			logger.GetLogger().Warnf("后台刷新会话 %s 失败: %v", session.ID, err)
		}
	}
}
