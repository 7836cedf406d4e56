package models

// AvailabilityStatus 房产可租状态
type AvailabilityStatus string

const (
	StatusAvailable        AvailabilityStatus = "AVAILABLE"
	StatusOccupied         AvailabilityStatus = "OCCUPIED"
	StatusUnderMaintenance AvailabilityStatus = "UNDER_MAINTENANCE"
)

// StatusAny 状态筛选的哨兵值，表示不按状态过滤
const StatusAny = "Any"

// Valid 判断是否为合法的状态枚举值
func (s AvailabilityStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusUnderMaintenance:
		return true
	}
	return false
}

// Property 房产实体（由远端property服务维护，本服务只读展示）
type Property struct {
	PropertyID         int64              `json:"propertyId"`
	OwnerID            int64              `json:"ownerId"`
	PropertyName       string             `json:"propertyName"`
	Address            string             `json:"address"`
	RentAmount         float64            `json:"rentAmount"`
	Period             int                `json:"period"` // 租期（月）
	PropertyDetails    string             `json:"propertyDetails"`
	Image              string             `json:"image"`
	AvailabilityStatus AvailabilityStatus `json:"availabilityStatus"`
}
