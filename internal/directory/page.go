package directory

// Page carries the pagination metadata returned with every directory slice.
type Page struct {
	CurrentPage int `json:"currentPage"`
	PerPage     int `json:"perPage"`
	TotalPages  int `json:"totalPages"`
}

// Offset converts a 1-based page number into the row offset of its first row.
func Offset(page, perPage int) int {
	return perPage * (page - 1)
}

// NewPage derives totalPages from the matching-row count. The count must come
// from the same snapshot as the slice it describes.
func NewPage(page, perPage int, total int64) Page {
	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	return Page{CurrentPage: page, PerPage: perPage, TotalPages: totalPages}
}
