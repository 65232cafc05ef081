package travel

import "math"

// Page size options offered by the dashboard.
const (
	DefaultPerPage = 10
	DefaultPage    = 1
)

// PageSizes returns the selectable items-per-page values.
func PageSizes() []int {
	return []int{5, 10, 15, 20}
}

// ValidPageSize reports whether n is one of PageSizes.
func ValidPageSize(n int) bool {
	for _, size := range PageSizes() {
		if size == n {
			return true
		}
	}
	return false
}

// NextPageSize cycles forward through PageSizes. Unknown sizes restart at the default.
func NextPageSize(current int) int {
	return shiftPageSize(current, 1)
}

// PrevPageSize cycles backward through PageSizes.
func PrevPageSize(current int) int {
	return shiftPageSize(current, -1)
}

func shiftPageSize(current, delta int) int {
	sizes := PageSizes()
	for i, size := range sizes {
		if size == current {
			return sizes[(i+delta+len(sizes))%len(sizes)]
		}
	}
	return DefaultPerPage
}

// PageMeta describes where a page sits within the filtered result set.
type PageMeta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// NewPageMeta computes metadata from the filtered count. TotalPages is the
// ceiling of totalItems/pageSize and is zero for an empty result.
func NewPageMeta(currentPage, pageSize, totalItems int) PageMeta {
	if pageSize <= 0 {
		pageSize = DefaultPerPage
	}
	if currentPage < 1 {
		currentPage = DefaultPage
	}

	totalPages := int(math.Ceil(float64(totalItems) / float64(pageSize)))

	return PageMeta{
		CurrentPage: currentPage,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		HasPrevious: currentPage > 1,
		HasNext:     currentPage < totalPages,
	}
}

// Window returns the [start, end) slice bounds of the page within totalItems.
func (m PageMeta) Window() (int, int) {
	start := (m.CurrentPage - 1) * m.PageSize
	if start > m.TotalItems {
		start = m.TotalItems
	}
	end := start + m.PageSize
	if end > m.TotalItems {
		end = m.TotalItems
	}
	return start, end
}
