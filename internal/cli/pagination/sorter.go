package pagination

import (
	"sort"
	"strings"

	"github.com/SumanHE17/tripdesk/internal/travel"
)

// TravelSorter orders travel requests by a named field.
type TravelSorter struct {
	less map[string]func(a, b travel.TravelRequest) bool
}

// NewTravelSorter creates a sorter over id, name, purpose, budget, and status.
func NewTravelSorter() *TravelSorter {
	return &TravelSorter{
		less: map[string]func(a, b travel.TravelRequest) bool{
			"id": func(a, b travel.TravelRequest) bool { return a.ID < b.ID },
			"name": func(a, b travel.TravelRequest) bool {
				return strings.ToLower(a.DisplayName()) < strings.ToLower(b.DisplayName())
			},
			"purpose": func(a, b travel.TravelRequest) bool {
				return strings.ToLower(a.TravelPurpose) < strings.ToLower(b.TravelPurpose)
			},
			"budget": func(a, b travel.TravelRequest) bool {
				return a.TravelBudget.Amount.LessThan(b.TravelBudget.Amount)
			},
			"status": func(a, b travel.TravelRequest) bool { return a.StatusKey() < b.StatusKey() },
		},
	}
}

// IsValidField reports whether field can be sorted on.
func (s *TravelSorter) IsValidField(field string) bool {
	_, ok := s.less[field]
	return ok
}

// ValidFields returns the sortable fields in alphabetical order.
func (s *TravelSorter) ValidFields() []string {
	fields := make([]string, 0, len(s.less))
	for field := range s.less {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Sort returns a stably sorted copy of items. An unknown field returns items unchanged.
func (s *TravelSorter) Sort(items []travel.TravelRequest, field, order string) []travel.TravelRequest {
	less, ok := s.less[field]
	if !ok {
		return items
	}

	sorted := make([]travel.TravelRequest, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		if order == SortOrderDesc {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted
}

// Apply parses expr and sorts items. An empty expression keeps the input order.
func (s *TravelSorter) Apply(items []travel.TravelRequest, expr string) ([]travel.TravelRequest, error) {
	if expr == "" {
		return items, nil
	}
	field, order, err := ParseSort(expr)
	if err != nil {
		return nil, err
	}
	if !s.IsValidField(field) {
		return nil, ErrInvalidSortField
	}
	return s.Sort(items, field, order), nil
}
