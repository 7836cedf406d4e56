package handlers

import (
	"strconv"

	"plmc/internal/clients"
	"plmc/internal/middleware"
	"plmc/internal/models"
	"plmc/pkg/logger"
	"plmc/pkg/pagination"
	"plmc/pkg/response"

	"github.com/gin-gonic/gin"
)

// TenantHandler 租户目录接口
type TenantHandler struct {
	tenants *clients.TenantClient
}

func NewTenantHandler(tenants *clients.TenantClient) *TenantHandler {
	return &TenantHandler{tenants: tenants}
}

// GetAll 租户列表（管理员，本地分页）
func (h *TenantHandler) GetAll(c *gin.Context) {
	tenants, err := h.tenants.FetchAll(c.Request.Context())
	if err != nil {
		response.UpstreamError(c, "查询租户列表失败")
		return
	}

	pageParams := pagination.ParsePageParams(c)
	start, end := pageParams.Bounds(len(tenants))
	pageInfo := pagination.NewPageInfo(pageParams.Page, pageParams.PageSize, int64(len(tenants)))
	response.SuccessWithPage(c, tenants[start:end], pageInfo)
}

// GetByID 租户详情
func (h *TenantHandler) GetByID(c *gin.Context) {
	tenantID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	tenant, err := h.tenants.FetchByID(c.Request.Context(), tenantID)
	if err != nil {
		response.UpstreamError(c, "查询租户失败")
		return
	}
	response.Success(c, tenant)
}

// Update 更新租户资料（租户改自己，管理员改任何人）
func (h *TenantHandler) Update(c *gin.Context) {
	auth, _ := middleware.GetAuth(c)

	tenantID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	if auth.IsTenant() {
		selfID, err := h.tenants.IDByName(c.Request.Context(), auth.Username)
		if err != nil || selfID != tenantID {
			response.Forbidden(c, "只能修改自己的资料")
			return
		}
	}

	var payload models.TenantUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	if err := h.tenants.Update(c.Request.Context(), tenantID, &payload); err != nil {
		logger.GetLogger().Warnf("更新租户失败（id=%d）: %v", tenantID, err)
		response.UpstreamError(c, "更新租户失败")
		return
	}
	response.SuccessWithMessage(c, "更新成功", nil)
}

// Delete 删除租户（管理员）
func (h *TenantHandler) Delete(c *gin.Context) {
	tenantID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	if err := h.tenants.Delete(c.Request.Context(), tenantID); err != nil {
		logger.GetLogger().Warnf("删除租户失败（id=%d）: %v", tenantID, err)
		response.UpstreamError(c, "删除租户失败")
		return
	}
	response.SuccessWithMessage(c, "删除成功", nil)
}
