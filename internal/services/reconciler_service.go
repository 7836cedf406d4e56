package services

import (
	"fmt"

	"plmc/internal/models"
)

// RequestReconciler 申请状态调和器
//
// 持有某个租户申请映射的两代快照：current（本轮拉取结果）和
// previous（上一轮快照），按propertyId作键。跨代对比检测
// PENDING -> APPROVED/REJECTED 跃迁并生成通知。两个映射整代替换，
// 从不跨代逐字段修改；实例由单个会话独占，调用方负责串行化。
type RequestReconciler struct {
	current  map[int64]models.Request
	previous map[int64]models.Request
}

// NewRequestReconciler 创建调和器，两代快照均为空
func NewRequestReconciler() *RequestReconciler {
	return &RequestReconciler{
		current:  make(map[int64]models.Request),
		previous: make(map[int64]models.Request),
	}
}

// BeginRefreshCycle 开启新刷新周期：把current全量拷贝进previous
//
// 必须是逐项拷贝而不是引用交换，previous在current随后被清空重填时
// 要保持稳定。首个周期两边皆空，等价于空操作。
func (r *RequestReconciler) BeginRefreshCycle() {
	snapshot := make(map[int64]models.Request, len(r.current))
	for propertyID, request := range r.current {
		snapshot[propertyID] = request
	}
	r.previous = snapshot
}

// Ingest 清空current后逐条写入，按propertyId作键
//
// 同一propertyId出现多条时后写覆盖（即输入顺序决定保留哪条）。
// Request没有时间戳字段，这是唯一可用的决胜规则。
func (r *RequestReconciler) Ingest(requests []models.Request) {
	r.current = make(map[int64]models.Request, len(requests))
	for _, request := range requests {
		if request.PropertyID == 0 {
			continue
		}
		r.current[request.PropertyID] = request
	}
}

// Lookup 查询current中指定房产的申请
func (r *RequestReconciler) Lookup(propertyID int64) (models.Request, bool) {
	request, ok := r.current[propertyID]
	return request, ok
}

// CurrentGeneration 返回current代（只读，调用方不得修改）
func (r *RequestReconciler) CurrentGeneration() map[int64]models.Request {
	return r.current
}

// DetectTransitions 检测两代之间的状态跃迁并生成通知
//
// 仅当 previous 为 PENDING、current 存在且为终态、且房产仍可通过
// lookup 解析时才产生通知；键缺失和房产已删除都静默跳过，不是错误。
// 对两代快照只读，期间不换代则重复调用结果一致。通知的ID分配和
// 过期计时由调用方（会话）负责。
func (r *RequestReconciler) DetectTransitions(lookup func(propertyID int64) (models.Property, bool)) []models.Notification {
	var notifications []models.Notification

	for propertyID, previousRequest := range r.previous {
		if previousRequest.RequestStatus != models.RequestPending {
			continue
		}

		currentRequest, ok := r.current[propertyID]
		if !ok || !currentRequest.RequestStatus.Terminal() {
			// 键从current消失（申请被撤回/删除）不算跃迁
			continue
		}

		property, ok := lookup(propertyID)
		if !ok {
			// 房产已被删除，静默跳过
			continue
		}

		notification := models.Notification{}
		if currentRequest.RequestStatus == models.RequestApproved {
			notification.Message = fmt.Sprintf("Your request for '%s' has been APPROVED!", property.PropertyName)
			notification.Severity = models.SeveritySuccess
		} else {
			notification.Message = fmt.Sprintf("Your request for '%s' has been REJECTED.", property.PropertyName)
			notification.Severity = models.SeverityDanger
		}
		notifications = append(notifications, notification)
	}

	return notifications
}
