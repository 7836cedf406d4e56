package models

// OrderCreateRequest 创建支付订单请求（透传给支付微服务）
type OrderCreateRequest struct {
	CustomerName string  `json:"customerName" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	PhoneNumber  string  `json:"phoneNumber" binding:"required"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
}

// OrderCreateResponse 支付订单创建结果
type OrderCreateResponse struct {
	RazorpayOrderID string `json:"razorpayOrderId"`
	ApplicationFee  string `json:"applicationFee"` // 上游返回字符串，保持原样
	PgName          string `json:"pgName"`
}

// PaymentVerifyPayload 支付验签载荷
type PaymentVerifyPayload struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}
