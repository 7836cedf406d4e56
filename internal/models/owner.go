package models

// Owner 业主实体（远端owner服务维护）
type Owner struct {
	OwnerID int64  `json:"ownerId"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
	Address string `json:"address"`
}

// OwnerUpdatePayload 业主资料更新载荷
type OwnerUpdatePayload struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Contact string `json:"contact" binding:"required"`
	Address string `json:"address" binding:"required"`
}
