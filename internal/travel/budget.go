package travel

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//nolint:gochecknoglobals // Printer is safe for concurrent use and shared by all formatters.
var printer = message.NewPrinter(language.English)

// Budget is the travelBudget field. The service has returned it both as a JSON
// number and as a string, so both are accepted. Non-numeric strings are kept raw.
type Budget struct {
	Amount decimal.Decimal
	Raw    string
	Valid  bool
}

// NewBudget builds a numeric budget.
func NewBudget(amount decimal.Decimal) Budget {
	return Budget{Amount: amount, Valid: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Budget) UnmarshalJSON(data []byte) error {
	*b = Budget{}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		if s == "" {
			return nil
		}
		if d, err := decimal.NewFromString(s); err == nil {
			*b = NewBudget(d)
			return nil
		}
		b.Raw = s
		b.Valid = true
		return nil
	}

	d, err := decimal.NewFromString(string(trimmed))
	if err != nil {
		return err
	}
	*b = NewBudget(d)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (b Budget) MarshalJSON() ([]byte, error) {
	if !b.Valid {
		return []byte("null"), nil
	}
	if b.Raw != "" {
		return json.Marshal(b.Raw)
	}
	return []byte(b.Amount.String()), nil
}

// IsZero reports whether the budget is missing or numerically zero.
func (b Budget) IsZero() bool {
	if !b.Valid {
		return true
	}
	if b.Raw != "" {
		return false
	}
	return b.Amount.IsZero()
}

// String renders the budget for tables; zero and missing budgets render as N/A.
func (b Budget) String() string {
	if b.IsZero() {
		return notAvailable
	}
	if b.Raw != "" {
		return b.Raw
	}
	if b.Amount.Equal(b.Amount.Truncate(0)) {
		return printer.Sprintf("%d", b.Amount.IntPart())
	}
	return printer.Sprintf("%.2f", b.Amount.InexactFloat64())
}

func formatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}
