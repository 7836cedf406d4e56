package services

import (
	"testing"

	"plmc/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrichPreservesOrderAndCardinality(t *testing.T) {
	e := NewEntityEnricher()
	properties := []models.Property{
		{PropertyID: 3, PropertyName: "C"},
		{PropertyID: 1, PropertyName: "A"},
		{PropertyID: 2, PropertyName: "B"},
	}

	rows := e.Enrich(properties, nil)

	require.Len(t, rows, len(properties))
	for i, property := range properties {
		assert.Equal(t, property.PropertyID, rows[i].PropertyID)
	}
}

func TestEnrichMarksRequestedRows(t *testing.T) {
	e := NewEntityEnricher()
	properties := []models.Property{
		{PropertyID: 1, PropertyName: "A"},
		{PropertyID: 2, PropertyName: "B"},
	}
	requests := map[int64]models.Request{
		2: {RequestID: 42, PropertyID: 2, RequestStatus: models.RequestPending},
	}

	rows := e.Enrich(properties, requests)

	require.Len(t, rows, 2)
	assert.False(t, rows[0].HasRequested)
	assert.Nil(t, rows[0].RequestStatus)
	assert.Nil(t, rows[0].RequestID)

	assert.True(t, rows[1].HasRequested)
	require.NotNil(t, rows[1].RequestStatus)
	assert.Equal(t, models.RequestPending, *rows[1].RequestStatus)
	require.NotNil(t, rows[1].RequestID)
	assert.Equal(t, int64(42), *rows[1].RequestID)
}

func TestEnrichDoesNotMutateInput(t *testing.T) {
	e := NewEntityEnricher()
	properties := []models.Property{{PropertyID: 1, PropertyName: "A"}}
	requests := map[int64]models.Request{
		1: {RequestID: 9, PropertyID: 1, RequestStatus: models.RequestApproved},
	}

	rows := e.Enrich(properties, requests)
	// 修改输出中的指针字段，输入映射不受影响
	*rows[0].RequestStatus = models.RequestRejected

	assert.Equal(t, models.RequestApproved, requests[1].RequestStatus)
}

func TestEnrichEmptyInput(t *testing.T) {
	e := NewEntityEnricher()
	rows := e.Enrich(nil, map[int64]models.Request{1: {RequestID: 1, PropertyID: 1}})
	assert.Empty(t, rows)
	assert.NotNil(t, rows)
}
