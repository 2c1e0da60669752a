// Package pagination holds the page/offset math and listing metadata shared by
// every list endpoint.
package pagination

// Meta mirrors the listing metadata shape the frontend expects.
type Meta struct {
	CurrentPage  int            `json:"currentPage"`
	Offset       int            `json:"offset"`
	ItemsPerPage int            `json:"itemsPerPage"`
	TotalPages   int            `json:"totalPages"`
	TotalItems   int64          `json:"totalItems"`
	Unpaged      bool           `json:"unpaged"`
	SortBy       []string       `json:"sortBy"`
	Filter       map[string]any `json:"filter"`
}

// Normalize applies the defaults: page 1, limit 10. Non-positive values fall
// back to the default.
func Normalize(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

// Offset returns the row offset for a normalized page/limit pair.
func Offset(page, limit int) int {
	return (page - 1) * limit
}

// NewMeta builds the Meta block for one page of a listing. totalPages is
// ceil(totalItems/limit).
func NewMeta(page, limit int, totalItems int64) Meta {
	page, limit = Normalize(page, limit)
	totalPages := int((totalItems + int64(limit) - 1) / int64(limit))
	return Meta{
		CurrentPage:  page,
		Offset:       Offset(page, limit),
		ItemsPerPage: limit,
		TotalPages:   totalPages,
		TotalItems:   totalItems,
		Unpaged:      false,
		SortBy:       []string{},
		Filter:       map[string]any{},
	}
}
