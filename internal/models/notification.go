package models

import "time"

// NotificationSeverity 通知级别
type NotificationSeverity string

const (
	SeveritySuccess NotificationSeverity = "success"
	SeverityDanger  NotificationSeverity = "danger"
)

// Notification 申请状态变更通知
//
// 由调和器在检测到 PENDING -> APPROVED/REJECTED 跃迁时生成，
// 进入会话的展示队列后按固定时长过期，不做持久化。
type Notification struct {
	ID        int64                `json:"id"` // 会话内单调递增
	Message   string               `json:"message"`
	Severity  NotificationSeverity `json:"severity"`
	CreatedAt time.Time            `json:"-"` // 仅用于过期判定
}
