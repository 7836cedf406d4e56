package services

import (
	"testing"

	"plmc/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func propertyLookup(properties ...models.Property) func(int64) (models.Property, bool) {
	index := make(map[int64]models.Property, len(properties))
	for _, p := range properties {
		index[p.PropertyID] = p
	}
	return func(id int64) (models.Property, bool) {
		p, ok := index[id]
		return p, ok
	}
}

func TestIngestLastWriteWins(t *testing.T) {
	r := NewRequestReconciler()

	r.Ingest([]models.Request{
		{RequestID: 1, PropertyID: 5, RequestStatus: models.RequestPending},
		{RequestID: 2, PropertyID: 5, RequestStatus: models.RequestApproved},
		{RequestID: 3, PropertyID: 7, RequestStatus: models.RequestPending},
	})

	got, ok := r.Lookup(5)
	require.True(t, ok)
	assert.Equal(t, int64(2), got.RequestID, "同一propertyId后写的申请覆盖先写的")

	got, ok = r.Lookup(7)
	require.True(t, ok)
	assert.Equal(t, int64(3), got.RequestID)
}

func TestIngestSkipsZeroPropertyID(t *testing.T) {
	r := NewRequestReconciler()
	r.Ingest([]models.Request{{RequestID: 1, PropertyID: 0, RequestStatus: models.RequestPending}})

	_, ok := r.Lookup(0)
	assert.False(t, ok)
}

func TestIngestReplacesCurrentGeneration(t *testing.T) {
	r := NewRequestReconciler()
	r.Ingest([]models.Request{{RequestID: 1, PropertyID: 5, RequestStatus: models.RequestPending}})
	r.Ingest([]models.Request{{RequestID: 2, PropertyID: 7, RequestStatus: models.RequestPending}})

	_, ok := r.Lookup(5)
	assert.False(t, ok, "注入整代替换，上一轮的键不保留")
	_, ok = r.Lookup(7)
	assert.True(t, ok)
}

func TestBeginRefreshCycleCopiesNotAliases(t *testing.T) {
	r := NewRequestReconciler()
	r.Ingest([]models.Request{{RequestID: 1, PropertyID: 5, RequestStatus: models.RequestPending}})

	r.BeginRefreshCycle()
	// current被清空重填后previous必须保持稳定
	r.Ingest([]models.Request{{RequestID: 2, PropertyID: 9, RequestStatus: models.RequestPending}})

	assert.Len(t, r.previous, 1)
	assert.Equal(t, int64(1), r.previous[5].RequestID)
}

func TestDetectTransitionsApproved(t *testing.T) {
	property := models.Property{PropertyID: 5, PropertyName: "Lakeside Villa"}
	r := NewRequestReconciler()

	r.Ingest([]models.Request{{RequestID: 1, TenantID: 3, PropertyID: 5, RequestStatus: models.RequestPending}})
	r.BeginRefreshCycle()
	r.Ingest([]models.Request{{RequestID: 1, TenantID: 3, PropertyID: 5, RequestStatus: models.RequestApproved}})

	notifications := r.DetectTransitions(propertyLookup(property))
	require.Len(t, notifications, 1)
	assert.Equal(t, models.SeveritySuccess, notifications[0].Severity)
	assert.Contains(t, notifications[0].Message, "Lakeside Villa")
	assert.Contains(t, notifications[0].Message, "APPROVED")
}

func TestDetectTransitionsRejected(t *testing.T) {
	property := models.Property{PropertyID: 5, PropertyName: "Lakeside Villa"}
	r := NewRequestReconciler()

	r.Ingest([]models.Request{{RequestID: 1, PropertyID: 5, RequestStatus: models.RequestPending}})
	r.BeginRefreshCycle()
	r.Ingest([]models.Request{{RequestID: 1, PropertyID: 5, RequestStatus: models.RequestRejected}})

	notifications := r.DetectTransitions(propertyLookup(property))
	require.Len(t, notifications, 1)
	assert.Equal(t, models.SeverityDanger, notifications[0].Severity)
	assert.Contains(t, notifications[0].Message, "REJECTED")
}

func TestDetectTransitionsWithdrawnRequestIsNotATransition(t *testing.T) {
	property := models.Property{PropertyID: 7, PropertyName: "Garden Flat"}
	r := NewRequestReconciler()

	r.Ingest([]models.Request{{RequestID: 1, PropertyID: 7, RequestStatus: models.RequestPending}})
	r.BeginRefreshCycle()
	r.Ingest(nil) // 申请被撤回/删除，current中键消失

	notifications := r.DetectTransitions(propertyLookup(property))
	assert.Empty(t, notifications, "current中键缺失不等于被拒绝")
}

func TestDetectTransitionsDeletedPropertyDropsSilently(t *testing.T) {
	r := NewRequestReconciler()

	r.Ingest([]models.Request{{RequestID: 1, PropertyID: 7, RequestStatus: models.RequestPending}})
	r.BeginRefreshCycle()
	r.Ingest([]models.Request{{RequestID: 1, PropertyID: 7, RequestStatus: models.RequestApproved}})

	// 房产已不可解析：静默跳过，不报错
	notifications := r.DetectTransitions(propertyLookup())
	assert.Empty(t, notifications)
}

func TestDetectTransitionsNonPendingPreviousIgnored(t *testing.T) {
	property := models.Property{PropertyID: 5, PropertyName: "Lakeside Villa"}
	r := NewRequestReconciler()

	r.Ingest([]models.Request{{RequestID: 1, PropertyID: 5, RequestStatus: models.RequestApproved}})
	r.BeginRefreshCycle()
	r.Ingest([]models.Request{{RequestID: 1, PropertyID: 5, RequestStatus: models.RequestRejected}})

	notifications := r.DetectTransitions(propertyLookup(property))
	assert.Empty(t, notifications, "APPROVED是终态，后续变化不再通知")
}

func TestDetectTransitionsIdempotent(t *testing.T) {
	property := models.Property{PropertyID: 5, PropertyName: "Lakeside Villa"}
	r := NewRequestReconciler()

	r.Ingest([]models.Request{{RequestID: 1, PropertyID: 5, RequestStatus: models.RequestPending}})
	r.BeginRefreshCycle()
	r.Ingest([]models.Request{{RequestID: 1, PropertyID: 5, RequestStatus: models.RequestApproved}})

	first := r.DetectTransitions(propertyLookup(property))
	second := r.DetectTransitions(propertyLookup(property))
	assert.Equal(t, first, second, "两次换代之间重复检测结果一致")
}
