package handlers

import (
	"time"

	"plmc/internal/middleware"
	"plmc/internal/models"
	"plmc/internal/services"
	"plmc/pkg/response"

	"github.com/gin-gonic/gin"
)

// ConsoleHandler 控制台视图接口
//
// 把原浏览器端的 刷新 -> 富集 -> 过滤 -> 渲染 流程搬到服务端：
// 过滤条件从查询参数绑定，视图状态挂在按用户维度的会话上。
type ConsoleHandler struct {
	views    *services.ViewService
	sessions *services.SessionService
	staleAge time.Duration
}

func NewConsoleHandler(views *services.ViewService, sessions *services.SessionService, staleAge time.Duration) *ConsoleHandler {
	return &ConsoleHandler{
		views:    views,
		sessions: sessions,
		staleAge: staleAge,
	}
}

// GetProperties 获取过滤后的房产视图（允许匿名，匿名时无申请状态）
func (h *ConsoleHandler) GetProperties(c *gin.Context) {
	auth, _ := middleware.GetAuth(c)

	var filter services.PropertyFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "过滤参数错误")
		return
	}

	session := h.sessions.GetOrCreate(auth)
	// 视图读取走"过期才刷新"，显式刷新另有接口；
	// 主请求失败时错误消息已写入会话，视图照常返回
	_ = h.views.RefreshIfStale(c.Request.Context(), session, h.staleAge)

	view := h.views.View(session, filter)
	response.Success(c, view)
}

// Refresh 显式触发一次完整刷新（创建/撤回申请、审批完成后由前端调用）
func (h *ConsoleHandler) Refresh(c *gin.Context) {
	auth, _ := middleware.GetAuth(c)
	session := h.sessions.GetOrCreate(auth)

	// 刷新失败时错误消息已写入会话，视图照常返回
	_ = h.views.Refresh(c.Request.Context(), session)

	view := h.views.View(session, services.PropertyFilter{})
	response.Success(c, view)
}

// GetNotifications 获取未过期的状态变更通知
func (h *ConsoleHandler) GetNotifications(c *gin.Context) {
	auth, _ := middleware.GetAuth(c)
	session := h.sessions.GetOrCreate(auth)

	notifications := h.views.Notifications(session)
	if notifications == nil {
		notifications = []models.Notification{}
	}
	response.Success(c, notifications)
}
