package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPagination_Offset(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		want     int
	}{
		{"first page", 1, 20, 0},
		{"second page", 2, 20, 20},
		{"fifth page custom size", 5, 10, 40},
		{"zero page falls back to first", 0, 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Pagination{Page: tt.page, PageSize: tt.pageSize}
			assert.Equal(t, tt.want, p.Offset())
		})
	}
}

func TestPagination_Limit(t *testing.T) {
	assert.Equal(t, DefaultPageSize, (&Pagination{}).Limit())
	assert.Equal(t, MaxPageSize, (&Pagination{PageSize: 500}).Limit())
	assert.Equal(t, 42, (&Pagination{PageSize: 42}).Limit())
}

func TestPagination_TotalPages(t *testing.T) {
	p := &Pagination{Page: 1, PageSize: 20}
	assert.Equal(t, 0, p.TotalPages(0))
	assert.Equal(t, 1, p.TotalPages(20))
	assert.Equal(t, 2, p.TotalPages(21))
	assert.Equal(t, 5, p.TotalPages(100))
}

func TestPagination_Info(t *testing.T) {
	p := &Pagination{Page: 2, PageSize: 10}
	info := p.Info(35)
	assert.Equal(t, 2, info.Page)
	assert.Equal(t, 10, info.PageSize)
	assert.Equal(t, int64(35), info.Total)
	assert.Equal(t, 4, info.TotalPages)
}
