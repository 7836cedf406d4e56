package services

import (
	"testing"

	"plmc/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []models.PropertyView {
	return []models.PropertyView{
		{Property: models.Property{PropertyID: 1, PropertyName: "Lakeside Villa", Address: "12 Lake Road", RentAmount: 15000, AvailabilityStatus: models.StatusAvailable}},
		{Property: models.Property{PropertyID: 2, PropertyName: "Garden Flat", Address: "3 Park Avenue", RentAmount: 8000, AvailabilityStatus: models.StatusAvailable}},
		{Property: models.Property{PropertyID: 3, PropertyName: "City Loft", Address: "9 Main Street", RentAmount: 12000, AvailabilityStatus: models.StatusOccupied}},
	}
}

func TestApplyNameFilterCaseInsensitive(t *testing.T) {
	p := NewFilterPipeline()

	result := p.Apply(sampleRows(), PropertyFilter{PropertyName: "  lakeside "}, 0)

	require.Len(t, result.Rows, 1)
	assert.Equal(t, int64(1), result.Rows[0].PropertyID)
	assert.Empty(t, result.Message)
}

func TestApplyAddressFilter(t *testing.T) {
	p := NewFilterPipeline()

	result := p.Apply(sampleRows(), PropertyFilter{Address: "park"}, 0)

	require.Len(t, result.Rows, 1)
	assert.Equal(t, int64(2), result.Rows[0].PropertyID)
}

func TestApplyMalformedRentBoundsSkipped(t *testing.T) {
	p := NewFilterPipeline()

	// 解析失败和空串都视为未设置，不报错也不过滤
	result := p.Apply(sampleRows(), PropertyFilter{MinRent: "abc", MaxRent: ""}, 0)

	assert.Len(t, result.Rows, 3)
	assert.Empty(t, result.Message)
}

func TestApplyNegativeRentBoundSkipped(t *testing.T) {
	p := NewFilterPipeline()

	result := p.Apply(sampleRows(), PropertyFilter{MinRent: "-1"}, 0)

	assert.Len(t, result.Rows, 3)
}

func TestApplyRentRange(t *testing.T) {
	p := NewFilterPipeline()

	result := p.Apply(sampleRows(), PropertyFilter{MinRent: "9000", MaxRent: "13000"}, 0)

	require.Len(t, result.Rows, 1)
	assert.Equal(t, int64(3), result.Rows[0].PropertyID)
}

func TestApplyStatusAnyIsIdentity(t *testing.T) {
	p := NewFilterPipeline()

	result := p.Apply(sampleRows(), PropertyFilter{AvailabilityStatus: models.StatusAny}, 0)

	assert.Len(t, result.Rows, 3)
}

func TestApplyStatusFilter(t *testing.T) {
	p := NewFilterPipeline()

	result := p.Apply(sampleRows(), PropertyFilter{AvailabilityStatus: string(models.StatusOccupied)}, 0)

	require.Len(t, result.Rows, 1)
	assert.Equal(t, int64(3), result.Rows[0].PropertyID)
}

func TestApplyRequestedOnlyWithoutTenantContext(t *testing.T) {
	p := NewFilterPipeline()

	result := p.Apply(sampleRows(), PropertyFilter{RequestedOnly: true}, 0)

	assert.Empty(t, result.Rows)
	assert.Equal(t, "Please log in as a tenant to view your requested properties.", result.Message)
}

func TestApplyRequestedOnly(t *testing.T) {
	p := NewFilterPipeline()
	rows := sampleRows()
	rows[1].HasRequested = true

	result := p.Apply(rows, PropertyFilter{RequestedOnly: true}, 7)

	require.Len(t, result.Rows, 1)
	assert.Equal(t, int64(2), result.Rows[0].PropertyID)
}

func TestApplyRequestedOnlySubset(t *testing.T) {
	p := NewFilterPipeline()
	rows := make([]models.PropertyView, 0, 10)
	for i := int64(1); i <= 10; i++ {
		row := models.PropertyView{Property: models.Property{PropertyID: i}}
		if i%3 == 0 {
			status := models.RequestPending
			row.HasRequested = true
			row.RequestStatus = &status
		}
		rows = append(rows, row)
	}

	result := p.Apply(rows, PropertyFilter{RequestedOnly: true}, 7)

	require.Len(t, result.Rows, 3)
	for _, row := range result.Rows {
		assert.True(t, row.HasRequested)
	}
}

func TestApplyRequestedOnlyNoneRequested(t *testing.T) {
	p := NewFilterPipeline()

	result := p.Apply(sampleRows(), PropertyFilter{RequestedOnly: true}, 7)

	assert.Empty(t, result.Rows)
	assert.Equal(t, "You have no requested properties matching current filters.", result.Message)
}

func TestApplyNoMatchesVersusNoData(t *testing.T) {
	p := NewFilterPipeline()

	// 有数据但过滤后为空
	result := p.Apply(sampleRows(), PropertyFilter{PropertyName: "nonexistent"}, 0)
	assert.Equal(t, "No properties found matching your criteria.", result.Message)

	// 一开始就没有数据
	result = p.Apply(nil, PropertyFilter{PropertyName: "nonexistent"}, 0)
	assert.Equal(t, "No properties available.", result.Message)

	// 无过滤条件且无数据
	result = p.Apply(nil, PropertyFilter{}, 0)
	assert.Equal(t, "No properties available.", result.Message)
}

func TestApplyConjunction(t *testing.T) {
	p := NewFilterPipeline()

	result := p.Apply(sampleRows(), PropertyFilter{
		PropertyName:       "a",
		MinRent:            "10000",
		AvailabilityStatus: string(models.StatusAvailable),
	}, 0)

	require.Len(t, result.Rows, 1)
	assert.Equal(t, int64(1), result.Rows[0].PropertyID)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	p := NewFilterPipeline()
	rows := sampleRows()

	p.Apply(rows, PropertyFilter{PropertyName: "Garden"}, 0)

	require.Len(t, rows, 3)
	assert.Equal(t, int64(1), rows[0].PropertyID)
	assert.Equal(t, int64(3), rows[2].PropertyID)
}

func TestFilterActive(t *testing.T) {
	assert.False(t, PropertyFilter{}.Active())
	assert.False(t, PropertyFilter{AvailabilityStatus: models.StatusAny}.Active())
	assert.False(t, PropertyFilter{PropertyName: "   "}.Active())
	assert.True(t, PropertyFilter{MinRent: "abc"}.Active())
	assert.True(t, PropertyFilter{RequestedOnly: true}.Active())
}
