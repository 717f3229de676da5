package domain

import (
	"bytes"         // Strict decoding of stored payloads
	"encoding/json" // Payload (de)serialization
	"fmt"           // Error wrapping
)

// EntryType tags which payload an Entry carries
type EntryType string

// Entry types
const (
	EntryIncome  EntryType = "income"
	EntryExpense EntryType = "expense"
	EntrySavings EntryType = "savings"
	EntryGoal    EntryType = "goal"
)

// Valid reports whether t is one of the known entry types
func (t EntryType) Valid() bool {
	switch t {
	case EntryIncome, EntryExpense, EntrySavings, EntryGoal:
		return true
	}
	return false
}

// Payload is the type-specific data of an Entry. Exactly one variant exists per EntryType.
type Payload interface {
	Kind() EntryType          // Type tag of the variant
	EntryID() string          // Client or server chosen id, may be empty
	WithID(id string) Payload // Copy of the payload carrying id
}

// IncomeData is the payload of an income entry
type IncomeData struct {
	ID        string  `json:"id,omitempty"` // Entry id
	Source    string  `json:"source"`       // Where the money comes from
	Amount    float64 `json:"amount"`       // Amount received
	Frequency string  `json:"frequency"`    // e.g. monthly, weekly, one-off
	Date      string  `json:"date"`         // Client supplied date
}

func (d IncomeData) Kind() EntryType { return EntryIncome }

func (d IncomeData) EntryID() string { return d.ID }

func (d IncomeData) WithID(id string) Payload { d.ID = id; return d }

// ExpenseData is the payload of an expense entry
type ExpenseData struct {
	ID          string  `json:"id,omitempty"` // Entry id
	Description string  `json:"description"`  // What was paid for
	Amount      float64 `json:"amount"`       // Amount spent
	Category    string  `json:"category"`     // Expense category
	Date        string  `json:"date"`         // Client supplied date
}

func (d ExpenseData) Kind() EntryType { return EntryExpense }

func (d ExpenseData) EntryID() string { return d.ID }

func (d ExpenseData) WithID(id string) Payload { d.ID = id; return d }

// SavingsData is the payload of a savings entry
type SavingsData struct {
	ID          string  `json:"id,omitempty"` // Entry id
	Description string  `json:"description"`  // What the savings are for
	Amount      float64 `json:"amount"`       // Amount put aside
	Category    string  `json:"category"`     // Savings category
	Date        string  `json:"date"`         // Client supplied date
}

func (d SavingsData) Kind() EntryType { return EntrySavings }

func (d SavingsData) EntryID() string { return d.ID }

func (d SavingsData) WithID(id string) Payload { d.ID = id; return d }

// GoalData is the payload of a goal entry
type GoalData struct {
	ID            string  `json:"id,omitempty"`  // Entry id, used by update and delete
	Description   string  `json:"description"`   // Goal description
	Amount        float64 `json:"amount"`        // Target amount
	Date          string  `json:"date"`          // Target date
	Type          string  `json:"type"`          // Goal type (short-term, long-term, ...)
	Saved         float64 `json:"saved"`         // Amount saved so far
	MonthlyTarget float64 `json:"monthlyTarget"` // Planned monthly contribution
}

func (d GoalData) Kind() EntryType { return EntryGoal }

func (d GoalData) EntryID() string { return d.ID }

func (d GoalData) WithID(id string) Payload { d.ID = id; return d }

// GoalPatch holds the goal fields to overwrite; nil fields are left untouched
type GoalPatch struct {
	ID            *string  `json:"id"` // Accepted but ignored; goal ids never change
	Description   *string  `json:"description"`
	Amount        *float64 `json:"amount"`
	Date          *string  `json:"date"`
	Type          *string  `json:"type"`
	Saved         *float64 `json:"saved"`
	MonthlyTarget *float64 `json:"monthlyTarget"`
}

// Apply merges the patch into g and returns the result
func (p GoalPatch) Apply(g GoalData) GoalData {
	if p.Description != nil {
		g.Description = *p.Description
	}
	if p.Amount != nil {
		g.Amount = *p.Amount
	}
	if p.Date != nil {
		g.Date = *p.Date
	}
	if p.Type != nil {
		g.Type = *p.Type
	}
	if p.Saved != nil {
		g.Saved = *p.Saved
	}
	if p.MonthlyTarget != nil {
		g.MonthlyTarget = *p.MonthlyTarget
	}
	return g
}

// Entry is one ledger record owned by a user
type Entry struct {
	UserID string    // Owner, taken from the verified token
	Type   EntryType // Payload tag
	Data   Payload   // Type-specific payload
	Period Period    // Month and year; may be empty for goals
}

// NewEntry builds an Entry whose Type matches its payload
func NewEntry(userID string, data Payload, period Period) Entry {
	return Entry{UserID: userID, Type: data.Kind(), Data: data, Period: period}
}

// DecodePayload decodes raw JSON into the payload variant for t. Unknown fields are rejected.
func DecodePayload(t EntryType, raw []byte) (Payload, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var (
		p   Payload
		err error
	)
	switch t {
	case EntryIncome:
		var d IncomeData
		err = dec.Decode(&d)
		p = d
	case EntryExpense:
		var d ExpenseData
		err = dec.Decode(&d)
		p = d
	case EntrySavings:
		var d SavingsData
		err = dec.Decode(&d)
		p = d
	case EntryGoal:
		var d GoalData
		err = dec.Decode(&d)
		p = d
	default:
		return nil, fmt.Errorf("unknown entry type %q", t)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", t, err)
	}
	return p, nil
}
