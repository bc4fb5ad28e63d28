package dto

// PaginationMeta mirrors the page metadata the frontend paginates with.
type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int64 `json:"total_items"`
}

const (
	DefaultPerPage = 15
	MaxPerPage     = 100
)

// ClampPerPage bounds a requested page size to [1, MaxPerPage]. An explicit
// zero clamps to 1; only an absent parameter gets the default.
func ClampPerPage(perPage int) int {
	if perPage < 1 {
		return 1
	}
	if perPage > MaxPerPage {
		return MaxPerPage
	}
	return perPage
}

// ClampPage bounds a requested page number to at least 1.
func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
