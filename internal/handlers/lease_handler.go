package handlers

import (
	"strconv"

	"plmc/internal/clients"
	"plmc/internal/middleware"
	"plmc/internal/models"
	"plmc/pkg/logger"
	"plmc/pkg/response"

	"github.com/gin-gonic/gin"
)

// LeaseHandler 租约接口
type LeaseHandler struct {
	leases  *clients.LeaseClient
	owners  *clients.OwnerClient
	tenants *clients.TenantClient
}

func NewLeaseHandler(leases *clients.LeaseClient, owners *clients.OwnerClient, tenants *clients.TenantClient) *LeaseHandler {
	return &LeaseHandler{
		leases:  leases,
		owners:  owners,
		tenants: tenants,
	}
}

// List 按角色列出租约：管理员看全量，业主/租户看自己相关的
func (h *LeaseHandler) List(c *gin.Context) {
	auth, _ := middleware.GetAuth(c)
	ctx := c.Request.Context()

	switch {
	case auth.IsAdmin():
		leases, err := h.leases.FetchAll(ctx)
		if err != nil {
			response.UpstreamError(c, "查询租约列表失败")
			return
		}
		response.Success(c, leases)
	case auth.IsOwner():
		ownerID, err := h.owners.IDByName(ctx, auth.Username)
		if err != nil {
			response.UpstreamError(c, "无法解析业主身份")
			return
		}
		leases, err := h.leases.ByOwner(ctx, ownerID)
		if err != nil {
			response.UpstreamError(c, "查询租约列表失败")
			return
		}
		response.Success(c, leases)
	case auth.IsTenant():
		tenantID, err := h.tenants.IDByName(ctx, auth.Username)
		if err != nil {
			response.UpstreamError(c, "无法解析租户身份")
			return
		}
		leases, err := h.leases.ByTenant(ctx, tenantID)
		if err != nil {
			response.UpstreamError(c, "查询租约列表失败")
			return
		}
		response.Success(c, leases)
	default:
		response.Forbidden(c, "当前角色无法查看租约")
	}
}

// GetByID 租约详情
func (h *LeaseHandler) GetByID(c *gin.Context) {
	leaseID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	lease, err := h.leases.FetchByID(c.Request.Context(), leaseID)
	if err != nil {
		response.UpstreamError(c, "查询租约失败")
		return
	}
	response.Success(c, lease)
}

// LeasePayload 租约创建/更新载荷
type LeasePayload struct {
	PropertyID       int64   `json:"propertyId" binding:"required,gt=0"`
	TenantID         int64   `json:"tenantId" binding:"required,gt=0"`
	OwnerID          int64   `json:"ownerId" binding:"required,gt=0"`
	Period           int     `json:"period" binding:"required,gt=0"`
	StartDate        string  `json:"startDate" binding:"required"`
	EndDate          string  `json:"endDate" binding:"required"`
	AgreementDetails string  `json:"agreementDetails"`
	RentAmount       float64 `json:"rentAmount" binding:"required,gt=0"`
	LeaseStatus      string  `json:"leaseStatus" binding:"omitempty,oneof=ACTIVE EXTENDED TERMINATED"`
}

// Create 创建租约（支付完成或业主线下确认后）
func (h *LeaseHandler) Create(c *gin.Context) {
	var payload LeasePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	status := models.LeaseStatus(payload.LeaseStatus)
	if status == "" {
		status = models.LeaseActive
	}

	lease := &models.Lease{
		PropertyID:       payload.PropertyID,
		TenantID:         payload.TenantID,
		OwnerID:          payload.OwnerID,
		Period:           payload.Period,
		StartDate:        payload.StartDate,
		EndDate:          payload.EndDate,
		AgreementDetails: payload.AgreementDetails,
		RentAmount:       payload.RentAmount,
		LeaseStatus:      status,
	}

	result, err := h.leases.Save(c.Request.Context(), lease)
	if err != nil {
		logger.GetLogger().Warnf("创建租约失败: %v", err)
		response.UpstreamError(c, "创建租约失败")
		return
	}
	response.SuccessWithMessage(c, result, nil)
}

// Update 更新租约（延期/终止）
func (h *LeaseHandler) Update(c *gin.Context) {
	leaseID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	var payload LeasePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	lease := &models.Lease{
		LeaseID:          leaseID,
		PropertyID:       payload.PropertyID,
		TenantID:         payload.TenantID,
		OwnerID:          payload.OwnerID,
		Period:           payload.Period,
		StartDate:        payload.StartDate,
		EndDate:          payload.EndDate,
		AgreementDetails: payload.AgreementDetails,
		RentAmount:       payload.RentAmount,
		LeaseStatus:      models.LeaseStatus(payload.LeaseStatus),
	}

	updated, err := h.leases.Update(c.Request.Context(), leaseID, lease)
	if err != nil {
		logger.GetLogger().Warnf("更新租约失败（id=%d）: %v", leaseID, err)
		response.UpstreamError(c, "更新租约失败")
		return
	}
	response.Success(c, updated)
}

// Delete 删除租约
func (h *LeaseHandler) Delete(c *gin.Context) {
	leaseID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	if err := h.leases.Delete(c.Request.Context(), leaseID); err != nil {
		logger.GetLogger().Warnf("删除租约失败（id=%d）: %v", leaseID, err)
		response.UpstreamError(c, "删除租约失败")
		return
	}
	response.SuccessWithMessage(c, "删除成功", nil)
}
