package services

import (
	"plmc/internal/models"
)

// EntityEnricher 展示行富集器
//
// 把房产列表与current代申请映射做联接，产出脱敏的展示行。
// 纯函数：不修改入参，输出顺序与数量和输入房产列表一致。
type EntityEnricher struct{}

// NewEntityEnricher 创建富集器
func NewEntityEnricher() *EntityEnricher {
	return &EntityEnricher{}
}

// Enrich 逐行联接房产与申请
//
// 命中映射的行携带申请状态和申请ID，未命中是常态（多数房产
// 没有当前用户的申请），容忍nil映射。
func (e *EntityEnricher) Enrich(properties []models.Property, requestsByProperty map[int64]models.Request) []models.PropertyView {
	rows := make([]models.PropertyView, 0, len(properties))

	for _, property := range properties {
		row := models.PropertyView{Property: property}
		if request, ok := requestsByProperty[property.PropertyID]; ok {
			status := request.RequestStatus
			requestID := request.RequestID
			row.HasRequested = true
			row.RequestStatus = &status
			row.RequestID = &requestID
		}
		rows = append(rows, row)
	}

	return rows
}
