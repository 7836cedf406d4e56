package models

// LeaseStatus 租约状态
type LeaseStatus string

const (
	LeaseActive     LeaseStatus = "ACTIVE"
	LeaseExtended   LeaseStatus = "EXTENDED"
	LeaseTerminated LeaseStatus = "TERMINATED"
)

// Lease 租约实体（远端lease服务维护）
type Lease struct {
	LeaseID          int64       `json:"leaseId"`
	PropertyID       int64       `json:"propertyId"`
	TenantID         int64       `json:"tenantId"`
	OwnerID          int64       `json:"ownerId"`
	Period           int         `json:"period"`    // 租期（月）
	StartDate        string      `json:"startDate"` // DD/MM/YYYY，沿用上游格式
	EndDate          string      `json:"endDate"`
	AgreementDetails string      `json:"agreementDetails"`
	RentAmount       float64     `json:"rentAmount"`
	LeaseStatus      LeaseStatus `json:"leaseStatus"`
}
