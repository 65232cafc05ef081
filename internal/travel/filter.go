package travel

import "strings"

// Query holds every input of the dashboard's derived view.
type Query struct {
	// Identity is the viewer's email address; empty means unknown.
	Identity string
	Tab      Tab
	Search   string
	PerPage  int
	Page     int
}

// Page is the visible slice of the filtered collection.
type Page struct {
	Rows []TravelRequest
	// FilteredCount is the number of records that survived filtering, before slicing.
	FilteredCount int
	TotalPages    int
	Meta          PageMeta
}

// Derive runs the ownership, status, and text filters over items and slices out
// the requested page. It does not modify items.
func Derive(items []TravelRequest, q Query) Page {
	filtered := Filter(items, q.Identity, q.Tab, q.Search)

	meta := NewPageMeta(q.Page, q.PerPage, len(filtered))
	start, end := meta.Window()

	rows := make([]TravelRequest, end-start)
	copy(rows, filtered[start:end])

	return Page{
		Rows:          rows,
		FilteredCount: len(filtered),
		TotalPages:    meta.TotalPages,
		Meta:          meta,
	}
}

// Filter applies the three filters in order: ownership, status, text.
func Filter(items []TravelRequest, identity string, tab Tab, search string) []TravelRequest {
	needle := strings.ToLower(search)

	var out []TravelRequest
	for _, item := range items {
		if !item.OwnedBy(identity) {
			continue
		}
		if !tab.Matches(item.StatusKey()) {
			continue
		}
		if !matchesName(item, needle) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// matchesName is a case-insensitive substring test against first or last name.
// needle must already be lower-cased.
func matchesName(item TravelRequest, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(item.FirstName), needle) ||
		strings.Contains(strings.ToLower(item.LastName), needle)
}
