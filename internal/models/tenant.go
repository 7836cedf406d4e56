package models

// Tenant 租户实体（远端tenant服务维护）
type Tenant struct {
	TenantID int64  `json:"tenantId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Contact  string `json:"contact"`
	Address  string `json:"address"`
}

// TenantUpdatePayload 租户资料更新载荷
type TenantUpdatePayload struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Contact string `json:"contact" binding:"required"`
	Address string `json:"address" binding:"required"`
}
