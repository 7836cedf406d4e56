package handlers

import (
	"fmt"
	"strconv"

	"plmc/internal/clients"
	"plmc/internal/middleware"
	"plmc/internal/models"
	"plmc/internal/services"
	"plmc/pkg/logger"
	"plmc/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequestHandler 租房申请接口
//
// 租户创建/撤回申请，业主审批。每次变更成功后都触发一次会话刷新，
// 让调和器在下个视图读取前拿到新代数据。
type RequestHandler struct {
	requests   *clients.RequestClient
	properties *clients.PropertyClient
	owners     *clients.OwnerClient
	tenants    *clients.TenantClient
	sessions   *services.SessionService
	views      *services.ViewService
}

func NewRequestHandler(cs *clients.Clients, sessions *services.SessionService, views *services.ViewService) *RequestHandler {
	return &RequestHandler{
		requests:   cs.Request,
		properties: cs.Property,
		owners:     cs.Owner,
		tenants:    cs.Tenant,
		sessions:   sessions,
		views:      views,
	}
}

// CreateRequestPayload 创建申请载荷
type CreateRequestPayload struct {
	PropertyID int64 `json:"propertyId" binding:"required,gt=0"`
}

// Create 租户对房产发起申请
func (h *RequestHandler) Create(c *gin.Context) {
	auth, _ := middleware.GetAuth(c)

	var payload CreateRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	session := h.sessions.GetOrCreate(auth)
	tenantID := session.TenantID()
	if tenantID <= 0 {
		// 会话尚未完成过刷新时直接解析一次
		id, err := h.tenants.IDByName(c.Request.Context(), auth.Username)
		if err != nil {
			response.UpstreamError(c, "无法解析租户身份")
			return
		}
		tenantID = id
	}

	// 重复申请守卫：current代中已有该房产的申请就拒绝
	if existing, ok := session.RequestFor(payload.PropertyID); ok {
		response.BadRequest(c, fmt.Sprintf("已对该房产发起过申请（状态: %s）", existing.RequestStatus))
		return
	}

	property, ok := session.PropertyByID(payload.PropertyID)
	if !ok {
		fetched, err := h.properties.FetchByID(c.Request.Context(), payload.PropertyID)
		if err != nil {
			response.UpstreamError(c, "查询房产失败")
			return
		}
		property = *fetched
	}

	request := &models.Request{
		TenantID:      tenantID,
		OwnerID:       property.OwnerID,
		PropertyID:    property.PropertyID,
		RequestStatus: models.RequestPending,
	}

	if _, err := h.requests.Save(c.Request.Context(), request); err != nil {
		logger.GetLogger().Warnf("创建申请失败（tenantId=%d propertyId=%d）: %v", tenantID, payload.PropertyID, err)
		response.UpstreamError(c, "创建申请失败")
		return
	}

	session.SetSuccess("Request sent successfully!")
	h.refreshSession(c, session)
	response.SuccessWithMessage(c, "申请已提交", nil)
}

// Delete 租户撤回申请
func (h *RequestHandler) Delete(c *gin.Context) {
	auth, _ := middleware.GetAuth(c)

	requestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	if err := h.requests.Delete(c.Request.Context(), requestID); err != nil {
		logger.GetLogger().Warnf("删除申请失败（id=%d）: %v", requestID, err)
		response.UpstreamError(c, "删除申请失败")
		return
	}

	session := h.sessions.GetOrCreate(auth)
	session.SetSuccess("Request deleted successfully!")
	h.refreshSession(c, session)
	response.SuccessWithMessage(c, "申请已撤回", nil)
}

// UpdateStatusPayload 审批载荷
type UpdateStatusPayload struct {
	RequestStatus string `json:"requestStatus" binding:"required,oneof=APPROVED REJECTED"`
}

// UpdateStatus 业主审批申请（批准/拒绝）
func (h *RequestHandler) UpdateStatus(c *gin.Context) {
	auth, _ := middleware.GetAuth(c)

	requestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	var payload UpdateStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "参数错误：状态必须为 APPROVED 或 REJECTED")
		return
	}

	// 在业主的申请列表中定位这条申请，既校验归属又拿到完整实体
	var target *models.Request
	if auth.IsAdmin() {
		target, err = h.findForAdmin(c, requestID)
	} else {
		ownerID, rerr := h.owners.IDByName(c.Request.Context(), auth.Username)
		if rerr != nil {
			response.UpstreamError(c, "无法解析业主身份")
			return
		}
		target, err = h.findForOwner(c, ownerID, requestID)
	}
	if err != nil {
		response.UpstreamError(c, "查询申请失败")
		return
	}
	if target == nil {
		response.NotFound(c, "申请不存在或不属于当前业主")
		return
	}

	if target.RequestStatus.Terminal() {
		response.BadRequest(c, "申请已是终态，不能再次审批")
		return
	}

	target.RequestStatus = models.RequestStatus(payload.RequestStatus)
	updated, err := h.requests.UpdateStatus(c.Request.Context(), target)
	if err != nil {
		logger.GetLogger().Warnf("审批申请失败（id=%d）: %v", requestID, err)
		response.UpstreamError(c, "审批失败")
		return
	}
	response.Success(c, updated)
}

// List 按角色列出申请：业主看收到的，租户看发出的
func (h *RequestHandler) List(c *gin.Context) {
	auth, _ := middleware.GetAuth(c)
	ctx := c.Request.Context()

	switch {
	case auth.IsOwner():
		ownerID, err := h.owners.IDByName(ctx, auth.Username)
		if err != nil {
			response.UpstreamError(c, "无法解析业主身份")
			return
		}
		requests, err := h.requests.ByOwner(ctx, ownerID)
		if err != nil {
			response.UpstreamError(c, "查询申请失败")
			return
		}
		response.Success(c, requests)
	case auth.IsTenant():
		tenantID, err := h.tenants.IDByName(ctx, auth.Username)
		if err != nil {
			response.UpstreamError(c, "无法解析租户身份")
			return
		}
		requests, err := h.requests.ByTenant(ctx, tenantID)
		if err != nil {
			response.UpstreamError(c, "查询申请失败")
			return
		}
		response.Success(c, requests)
	case auth.IsAdmin():
		// 上游没有申请全量接口，管理员按业主或租户维度查询
		if ownerID, err := strconv.ParseInt(c.Query("ownerId"), 10, 64); err == nil && ownerID > 0 {
			requests, err := h.requests.ByOwner(ctx, ownerID)
			if err != nil {
				response.UpstreamError(c, "查询申请失败")
				return
			}
			response.Success(c, requests)
			return
		}
		if tenantID, err := strconv.ParseInt(c.Query("tenantId"), 10, 64); err == nil && tenantID > 0 {
			requests, err := h.requests.ByTenant(ctx, tenantID)
			if err != nil {
				response.UpstreamError(c, "查询申请失败")
				return
			}
			response.Success(c, requests)
			return
		}
		response.BadRequest(c, "管理员查询需要 ownerId 或 tenantId 参数")
	default:
		response.Forbidden(c, "当前角色无法查看申请")
	}
}

func (h *RequestHandler) findForOwner(c *gin.Context, ownerID, requestID int64) (*models.Request, error) {
	requests, err := h.requests.ByOwner(c.Request.Context(), ownerID)
	if err != nil {
		return nil, err
	}
	for i := range requests {
		if requests[i].RequestID == requestID {
			return &requests[i], nil
		}
	}
	return nil, nil
}

// 管理员路径：从查询参数提供的业主维度定位申请
func (h *RequestHandler) findForAdmin(c *gin.Context, requestID int64) (*models.Request, error) {
	ownerID, err := strconv.ParseInt(c.Query("ownerId"), 10, 64)
	if err != nil || ownerID <= 0 {
		return nil, fmt.Errorf("管理员审批需要 ownerId 参数")
	}
	return h.findForOwner(c, ownerID, requestID)
}

// 变更成功后刷新会话，失败只记日志（视图读取时还会按过期刷新兜底）
func (h *RequestHandler) refreshSession(c *gin.Context, session *services.ConsoleSession) {
	if err := h.views.Refresh(c.Request.Context(), session); err != nil {
		logger.GetLogger().Warnf("变更后刷新会话 %s 失败: %v", session.ID, err)
	}
}
