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

// PropertyHandler 房产维护接口（创建/更新/删除透传给房产微服务）
type PropertyHandler struct {
	properties *clients.PropertyClient
	owners     *clients.OwnerClient
}

func NewPropertyHandler(properties *clients.PropertyClient, owners *clients.OwnerClient) *PropertyHandler {
	return &PropertyHandler{
		properties: properties,
		owners:     owners,
	}
}

// PropertyPayload 房产创建/更新载荷
type PropertyPayload struct {
	PropertyName       string  `json:"propertyName" binding:"required"`
	Address            string  `json:"address" binding:"required"`
	RentAmount         float64 `json:"rentAmount" binding:"required,gt=0"`
	Period             int     `json:"period" binding:"required,gt=0"`
	PropertyDetails    string  `json:"propertyDetails"`
	Image              string  `json:"image"`
	AvailabilityStatus string  `json:"availabilityStatus" binding:"required,availability"`
	OwnerID            int64   `json:"ownerId"` // 仅管理员可代业主指定
}

// Create 创建房产（业主以令牌身份落主，管理员可指定ownerId）
func (h *PropertyHandler) Create(c *gin.Context) {
	auth, _ := middleware.GetAuth(c)

	var payload PropertyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	ownerID := payload.OwnerID
	if auth.IsOwner() {
		id, err := h.owners.IDByName(c.Request.Context(), auth.Username)
		if err != nil {
			logger.GetLogger().Warnf("解析业主ID失败（%s）: %v", auth.Username, err)
			response.UpstreamError(c, "无法解析业主身份")
			return
		}
		ownerID = id
	}
	if ownerID <= 0 {
		response.BadRequest(c, "缺少业主ID")
		return
	}

	property := &models.Property{
		OwnerID:            ownerID,
		PropertyName:       payload.PropertyName,
		Address:            payload.Address,
		RentAmount:         payload.RentAmount,
		Period:             payload.Period,
		PropertyDetails:    payload.PropertyDetails,
		Image:              payload.Image,
		AvailabilityStatus: models.AvailabilityStatus(payload.AvailabilityStatus),
	}

	result, err := h.properties.Save(c.Request.Context(), property)
	if err != nil {
		logger.GetLogger().Warnf("创建房产失败: %v", err)
		response.UpstreamError(c, "创建房产失败")
		return
	}
	response.SuccessWithMessage(c, result, nil)
}

// GetByID 查询房产详情
func (h *PropertyHandler) GetByID(c *gin.Context) {
	propertyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	property, err := h.properties.FetchByID(c.Request.Context(), propertyID)
	if err != nil {
		response.UpstreamError(c, "查询房产失败")
		return
	}
	response.Success(c, property)
}

// Update 更新房产
func (h *PropertyHandler) Update(c *gin.Context) {
	auth, _ := middleware.GetAuth(c)

	propertyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	var payload PropertyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	existing, err := h.properties.FetchByID(c.Request.Context(), propertyID)
	if err != nil {
		response.UpstreamError(c, "查询房产失败")
		return
	}

	// 业主只能改自己名下的房产
	if auth.IsOwner() {
		ownerID, err := h.owners.IDByName(c.Request.Context(), auth.Username)
		if err != nil || ownerID != existing.OwnerID {
			response.Forbidden(c, "无权修改此房产")
			return
		}
	}

	property := &models.Property{
		PropertyID:         propertyID,
		OwnerID:            existing.OwnerID,
		PropertyName:       payload.PropertyName,
		Address:            payload.Address,
		RentAmount:         payload.RentAmount,
		Period:             payload.Period,
		PropertyDetails:    payload.PropertyDetails,
		Image:              payload.Image,
		AvailabilityStatus: models.AvailabilityStatus(payload.AvailabilityStatus),
	}

	updated, err := h.properties.Update(c.Request.Context(), propertyID, property)
	if err != nil {
		logger.GetLogger().Warnf("更新房产失败（id=%d）: %v", propertyID, err)
		response.UpstreamError(c, "更新房产失败")
		return
	}
	response.Success(c, updated)
}

// Delete 删除房产
func (h *PropertyHandler) Delete(c *gin.Context) {
	auth, _ := middleware.GetAuth(c)

	propertyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	if auth.IsOwner() {
		existing, err := h.properties.FetchByID(c.Request.Context(), propertyID)
		if err != nil {
			response.UpstreamError(c, "查询房产失败")
			return
		}
		ownerID, err := h.owners.IDByName(c.Request.Context(), auth.Username)
		if err != nil || ownerID != existing.OwnerID {
			response.Forbidden(c, "无权删除此房产")
			return
		}
	}

	if err := h.properties.Delete(c.Request.Context(), propertyID); err != nil {
		logger.GetLogger().Warnf("删除房产失败（id=%d）: %v", propertyID, err)
		response.UpstreamError(c, "删除房产失败")
		return
	}
	response.SuccessWithMessage(c, "删除成功", nil)
}

// Mine 业主查看自己名下的房产
func (h *PropertyHandler) Mine(c *gin.Context) {
	auth, _ := middleware.GetAuth(c)

	ownerID, err := h.owners.IDByName(c.Request.Context(), auth.Username)
	if err != nil {
		response.UpstreamError(c, "无法解析业主身份")
		return
	}

	properties, err := h.properties.ByOwner(c.Request.Context(), ownerID)
	if err != nil {
		response.UpstreamError(c, "查询业主房产失败")
		return
	}
	response.Success(c, properties)
}
