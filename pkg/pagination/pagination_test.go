package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBounds(t *testing.T) {
	p := &PageParams{Page: 1, PageSize: 10}
	start, end := p.Bounds(25)
	assert.Equal(t, 0, start)
	assert.Equal(t, 10, end)

	p = &PageParams{Page: 3, PageSize: 10}
	start, end = p.Bounds(25)
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)

	// 超出范围的页返回空区间
	p = &PageParams{Page: 5, PageSize: 10}
	start, end = p.Bounds(25)
	assert.Equal(t, 25, start)
	assert.Equal(t, 25, end)
}

func TestNewPageInfo(t *testing.T) {
	info := NewPageInfo(2, 10, 25)
	assert.Equal(t, 3, info.TotalPages)
	assert.True(t, info.HasNext)
	assert.True(t, info.HasPrev)

	info = NewPageInfo(1, 10, 0)
	assert.Equal(t, 0, info.TotalPages)
	assert.False(t, info.HasNext)
	assert.False(t, info.HasPrev)
}
