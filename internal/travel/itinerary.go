package travel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// systemFields are bookkeeping attributes every object entry carries; they are
// hidden from the detail listing.
//
//nolint:gochecknoglobals // Read-only lookup table.
var systemFields = map[string]bool{
	"actions":                true,
	"creator":                true,
	"dateCreated":            true,
	"dateModified":           true,
	"externalReferenceCode":  true,
	"keywords":               true,
	"scopeKey":               true,
	"status":                 true,
	"taxonomyCategoryBriefs": true,
}

// Itinerary is one record of a travel request's itineraryRelation. Its shape is
// owned by the remote object definition, so fields are kept as decoded JSON.
type Itinerary struct {
	ID     int64
	Fields map[string]any
}

// ItineraryField is one displayable key/value pair of an itinerary.
type ItineraryField struct {
	Name  string
	Value string
}

// UnmarshalJSON implements json.Unmarshaler.
func (it *Itinerary) UnmarshalJSON(data []byte) error {
	fields := map[string]any{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return err
	}

	it.Fields = fields
	it.ID = 0
	if raw, ok := fields["id"]; ok {
		if n, isNum := raw.(json.Number); isNum {
			if id, err := n.Int64(); err == nil {
				it.ID = id
			}
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (it Itinerary) MarshalJSON() ([]byte, error) {
	if it.Fields == nil {
		return json.Marshal(map[string]any{"id": it.ID})
	}
	return json.Marshal(it.Fields)
}

// DisplayFields returns the non-system fields sorted by name.
func (it Itinerary) DisplayFields() []ItineraryField {
	names := make([]string, 0, len(it.Fields))
	for name := range it.Fields {
		if name == "id" || systemFields[name] {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]ItineraryField, 0, len(names))
	for _, name := range names {
		out = append(out, ItineraryField{Name: name, Value: displayValue(it.Fields[name])})
	}
	return out
}

// Summary renders a single-line description used by list rows.
func (it Itinerary) Summary() string {
	fields := it.DisplayFields()
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.Name+"="+f.Value)
	}
	return strings.Join(parts, "  ")
}

func displayValue(v any) string {
	switch val := v.(type) {
	case nil:
		return notAvailable
	case string:
		return OrNA(val)
	case json.Number:
		return val.String()
	case bool:
		if val {
			return "yes"
		}
		return "no"
	case map[string]any:
		// Picklist values arrive as {key, name}.
		if name, ok := val["name"].(string); ok {
			return OrNA(name)
		}
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}
