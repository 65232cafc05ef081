package pagination

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SumanHE17/tripdesk/internal/travel"
)

// Sort orders and defaults.
const (
	DefaultPage      = travel.DefaultPage
	DefaultPageSize  = travel.DefaultPerPage
	MinPage          = 1
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
	DefaultSortOrder = SortOrderAsc
)

// Validation errors.
var (
	ErrInvalidPage       = errors.New("page must be >= 1")
	ErrInvalidPageSize   = errors.New("page-size must be one of 5, 10, 15, 20")
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'budget:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
	ErrInvalidSortField  = errors.New("invalid sort field")
)

// Params holds the paging flags of a list command.
type Params struct {
	// Page is the 1-based page number.
	Page int

	// PageSize is the number of rows per page.
	PageSize int

	// Sort is the raw --sort expression; empty keeps server order.
	Sort string
}

// NewParams returns page 1 at the default page size, in server order.
func NewParams() *Params {
	return &Params{Page: DefaultPage, PageSize: DefaultPageSize}
}

// Validate checks the page, page size, and sort expression.
func (p Params) Validate() error {
	if p.Page < MinPage {
		return fmt.Errorf("%w, got %d", ErrInvalidPage, p.Page)
	}
	if !travel.ValidPageSize(p.PageSize) {
		return fmt.Errorf("%w, got %d", ErrInvalidPageSize, p.PageSize)
	}
	if p.Sort == "" {
		return nil
	}
	field, _, err := ParseSort(p.Sort)
	if err != nil {
		return err
	}
	if !NewTravelSorter().IsValidField(field) {
		return fmt.Errorf("%w: %q (valid: %s)", ErrInvalidSortField, field,
			strings.Join(NewTravelSorter().ValidFields(), ", "))
	}
	return nil
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses "field" or "field:order". Order defaults to ascending.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = DefaultSortOrder
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}
	return field, order, nil
}
