package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDefaults(t *testing.T) {
	page, limit := Normalize(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)

	page, limit = Normalize(-3, -1)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)

	page, limit = Normalize(4, 25)
	assert.Equal(t, 4, page)
	assert.Equal(t, 25, limit)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 10))
	assert.Equal(t, 10, Offset(2, 10))
	assert.Equal(t, 40, Offset(3, 20))
}

func TestNewMetaTotalPages(t *testing.T) {
	cases := []struct {
		limit      int
		total      int64
		totalPages int
	}{
		{10, 0, 0},
		{10, 1, 1},
		{10, 10, 1},
		{10, 11, 2},
		{3, 7, 3},
		{1, 5, 5},
	}
	for _, tc := range cases {
		m := NewMeta(1, tc.limit, tc.total)
		assert.Equalf(t, tc.totalPages, m.TotalPages, "limit=%d total=%d", tc.limit, tc.total)
		assert.Equal(t, tc.total, m.TotalItems)
	}
}

func TestNewMetaShape(t *testing.T) {
	m := NewMeta(2, 10, 35)
	assert.Equal(t, 2, m.CurrentPage)
	assert.Equal(t, 10, m.Offset)
	assert.Equal(t, 10, m.ItemsPerPage)
	assert.False(t, m.Unpaged)
	assert.NotNil(t, m.SortBy)
	assert.NotNil(t, m.Filter)
}
