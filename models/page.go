package models

// Page is the response shape of every paginated list
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
	TotalItems int64 `json:"total_items"`
}

// NewPage derives the page counters from the total matching item count. items is
// never nil so an out of range page encodes as an empty array.
func NewPage[T any](items []T, page, pageSize int, totalItems int64) *Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((totalItems + int64(pageSize) - 1) / int64(pageSize))
	}
	return &Page[T]{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
		TotalItems: totalItems,
	}
}
