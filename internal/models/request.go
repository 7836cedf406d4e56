package models

// RequestStatus 租房申请状态
//
// 状态机（按租户+房产维度）：PENDING -> APPROVED / REJECTED，均为终态。
// 重新申请需要创建一条新的申请记录。键不存在表示"未申请"，不是第四个枚举值。
type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestApproved RequestStatus = "APPROVED"
	RequestRejected RequestStatus = "REJECTED"
)

// Terminal 判断是否为终态
func (s RequestStatus) Terminal() bool {
	return s == RequestApproved || s == RequestRejected
}

// Request 租房申请实体（远端request服务维护）
type Request struct {
	RequestID     int64         `json:"requestId"`
	TenantID      int64         `json:"tenantId"`
	OwnerID       int64         `json:"ownerId"`
	PropertyID    int64         `json:"propertyId"`
	RequestStatus RequestStatus `json:"requestStatus"`
}
