package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/SumanHE17/tripdesk/internal/dashboard"
	"github.com/SumanHE17/tripdesk/internal/travel"
)

type outputFormat string

const (
	outputTable  outputFormat = "table"
	outputJSON   outputFormat = "json"
	outputNDJSON outputFormat = "ndjson"

	noDataMessage = "No data available"
	tabPadding    = 2
)

func parseOutputFormat(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case outputTable, outputJSON, outputNDJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q: use table, json or ndjson", s)
	}
}

// listDocument is the JSON shape of one rendered page.
type listDocument struct {
	Tab        string                 `json:"tab"`
	Label      string                 `json:"label"`
	Search     string                 `json:"search,omitempty"`
	Identity   string                 `json:"identity,omitempty"`
	Items      []travel.TravelRequest `json:"items"`
	Pagination travel.PageMeta        `json:"pagination"`
}

// detailDocument is the JSON shape of one request with its itinerary.
type detailDocument struct {
	Item        travel.TravelRequest `json:"item"`
	Itineraries []travel.Itinerary   `json:"itineraries"`
}

func renderPage(w io.Writer, format outputFormat, state *dashboard.State, page travel.Page) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(listDocument{
			Tab:        string(state.Tab),
			Label:      state.Tab.Label(),
			Search:     state.Search,
			Identity:   state.Identity,
			Items:      page.Rows,
			Pagination: page.Meta,
		})
	case outputNDJSON:
		enc := json.NewEncoder(w)
		for _, row := range page.Rows {
			if err := enc.Encode(row); err != nil {
				return err
			}
		}
		return nil
	default:
		return renderPageTable(w, state, page)
	}
}

func renderPageTable(w io.Writer, state *dashboard.State, page travel.Page) error {
	fmt.Fprintln(w, state.Tab.Label())

	if len(page.Rows) == 0 {
		fmt.Fprintln(w, noDataMessage)
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
		fmt.Fprintln(tw, "Travel Number\tName\tTravel Purpose\tApprover 1\tApprover 2\tBudget\tStatus")
		fmt.Fprintln(tw, "-------------\t----\t--------------\t----------\t----------\t------\t------")
		for _, r := range page.Rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				r.DisplayID(),
				r.DisplayName(),
				travel.OrNA(r.TravelPurpose),
				travel.OrNA(r.Manager),
				travel.OrNA(r.HOD),
				r.TravelBudget.String(),
				r.StatusName(),
			)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	meta := page.Meta
	_, err := fmt.Fprintf(w, "Page %d/%d  •  Items per page: %d  •  %d matching\n",
		meta.CurrentPage, max(meta.TotalPages, 1), meta.PageSize, page.FilteredCount)
	return err
}

func renderDetail(w io.Writer, format outputFormat, item travel.TravelRequest, related []travel.Itinerary) error {
	if related == nil {
		related = []travel.Itinerary{}
	}

	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(detailDocument{Item: item, Itineraries: related})
	case outputNDJSON:
		return json.NewEncoder(w).Encode(detailDocument{Item: item, Itineraries: related})
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintf(tw, "Travel Number:\t%s\n", item.DisplayID())
	fmt.Fprintf(tw, "Name:\t%s\n", item.DisplayName())
	fmt.Fprintf(tw, "Travel Purpose:\t%s\n", travel.OrNA(item.TravelPurpose))
	fmt.Fprintf(tw, "Approver 1:\t%s\n", travel.OrNA(item.Manager))
	fmt.Fprintf(tw, "Approver 2:\t%s\n", travel.OrNA(item.HOD))
	fmt.Fprintf(tw, "Budget:\t%s\n", item.TravelBudget.String())
	fmt.Fprintf(tw, "Status:\t%s\n", item.StatusName())
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nItinerary (%d)\n", len(related))
	if len(related) == 0 {
		_, err := fmt.Fprintln(w, "No itinerary records")
		return err
	}
	for i, it := range related {
		fmt.Fprintf(w, "#%d  id %d\n", i+1, it.ID)
		tw = tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
		for _, f := range it.DisplayFields() {
			fmt.Fprintf(tw, "    %s:\t%s\n", f.Name, f.Value)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}
