package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// PeriodPart is a month or year label. Clients send either strings or numbers;
// both decode to the same decimal string so "3" and 3 select the same month.
type PeriodPart string

// UnmarshalJSON accepts a JSON string, a JSON number or null
func (p *PeriodPart) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*p = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = PeriodPart(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("month/year must be a string or number: %w", err)
	}
	*p = PeriodPart(n.String())
	return nil
}

// Period identifies one budgeting month of one year
type Period struct {
	Month PeriodPart `json:"month"`
	Year  PeriodPart `json:"year"`
}

// IsZero reports whether neither month nor year is set
func (p Period) IsZero() bool { return p.Month == "" && p.Year == "" }

// Complete reports whether both month and year are set
func (p Period) Complete() bool { return p.Month != "" && p.Year != "" }

func (p Period) String() string { return string(p.Year) + "-" + string(p.Month) }
