package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	tests := []struct {
		name       string
		items      []int
		page       int
		pageSize   int
		total      int64
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{name: "first of two", items: []int{1, 2, 3, 4}, page: 1, pageSize: 4, total: 6, totalPages: 2, hasNext: true},
		{name: "last of two", items: []int{5, 6}, page: 2, pageSize: 4, total: 6, totalPages: 2, hasPrev: true},
		{name: "exact fit", items: []int{1, 2}, page: 1, pageSize: 2, total: 2, totalPages: 1},
		{name: "empty collection", page: 1, pageSize: 10, total: 0, totalPages: 0},
		{name: "beyond the end", page: 5, pageSize: 4, total: 6, totalPages: 2, hasPrev: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPage(tt.items, tt.page, tt.pageSize, tt.total)
			assert.Equal(t, tt.totalPages, p.TotalPages)
			assert.Equal(t, tt.hasNext, p.HasNext)
			assert.Equal(t, tt.hasPrev, p.HasPrev)
			assert.Equal(t, tt.total, p.TotalItems)
			assert.NotNil(t, p.Items)
		})
	}
}
