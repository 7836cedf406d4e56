package handlers

import (
	"plmc/internal/clients"
	"plmc/internal/middleware"
	"plmc/internal/models"
	"plmc/internal/services"
	"plmc/pkg/logger"
	"plmc/pkg/response"

	"github.com/gin-gonic/gin"
)

// PaymentHandler 支付接口（支付处理在远端完成，这里只做前置校验和透传）
type PaymentHandler struct {
	payments   *clients.PaymentClient
	properties *clients.PropertyClient
	sessions   *services.SessionService
}

func NewPaymentHandler(payments *clients.PaymentClient, properties *clients.PropertyClient, sessions *services.SessionService) *PaymentHandler {
	return &PaymentHandler{
		payments:   payments,
		properties: properties,
		sessions:   sessions,
	}
}

// CreateOrderPayload 创建订单载荷：订单信息加目标房产
type CreateOrderPayload struct {
	PropertyID int64 `json:"propertyId" binding:"required,gt=0"`
	models.OrderCreateRequest
}

// CreateOrder 创建支付订单
//
// 前置条件：目标房产必须处于AVAILABLE状态。优先查会话快照，
// 快照没有时回源查询。
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	auth, _ := middleware.GetAuth(c)

	var payload CreateOrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	session := h.sessions.GetOrCreate(auth)
	property, ok := session.PropertyByID(payload.PropertyID)
	if !ok {
		fetched, err := h.properties.FetchByID(c.Request.Context(), payload.PropertyID)
		if err != nil {
			response.UpstreamError(c, "查询房产失败")
			return
		}
		property = *fetched
	}

	if property.AvailabilityStatus != models.StatusAvailable {
		response.BadRequest(c, "该房产当前状态为 "+string(property.AvailabilityStatus)+"，不能发起支付")
		return
	}

	order, err := h.payments.CreateOrder(c.Request.Context(), &payload.OrderCreateRequest)
	if err != nil {
		logger.GetLogger().Warnf("创建支付订单失败（propertyId=%d）: %v", payload.PropertyID, err)
		response.UpstreamError(c, "创建支付订单失败")
		return
	}
	response.Success(c, order)
}

// Verify 支付验签
func (h *PaymentHandler) Verify(c *gin.Context) {
	var payload models.PaymentVerifyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	result, err := h.payments.VerifyPayment(c.Request.Context(), &payload)
	if err != nil {
		logger.GetLogger().Warnf("支付验签失败（orderId=%s）: %v", payload.RazorpayOrderID, err)
		response.UpstreamError(c, "支付验签失败")
		return
	}
	response.SuccessWithMessage(c, result, nil)
}
