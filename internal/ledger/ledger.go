// Package ledger implements the budget operations on top of a store.LedgerStore.
package ledger

import (
	"context"
	"fmt"

	"budget_tracker/internal/domain"
	"budget_tracker/internal/store"

	"github.com/google/uuid"
)

const (
	msgPeriodRequired = "Month and year are required"
	msgGoalIDRequired = "Goal id is required"
	msgGoalNotFound   = "Goal not found"
)

// Month is one user's entries for one month, partitioned by type. It is both the
// replace-month input and the get-month output.
type Month struct {
	Incomes  []domain.IncomeData  `json:"incomes"`
	Expenses []domain.ExpenseData `json:"expenses"`
	Savings  []domain.SavingsData `json:"savings"`
	Goals    []domain.GoalData    `json:"goals"`
}

func emptyMonth() *Month {
	return &Month{
		Incomes:  []domain.IncomeData{},
		Expenses: []domain.ExpenseData{},
		Savings:  []domain.SavingsData{},
		Goals:    []domain.GoalData{},
	}
}

// Ledger is the budget ledger
type Ledger struct {
	store store.LedgerStore
	newID func() string
}

// New returns a Ledger that generates UUIDs for entries sent without an id
func New(s store.LedgerStore) *Ledger {
	return &Ledger{store: s, newID: uuid.NewString}
}

// AddEntry appends one entry and returns its payload with the id it was stored under.
// Goals may omit the period; every other type needs month and year.
func (l *Ledger) AddEntry(ctx context.Context, userID string, data domain.Payload, period domain.Period) (domain.Payload, error) {
	if data.Kind() != domain.EntryGoal && !period.Complete() {
		return nil, domain.NewError(domain.ErrValidation, msgPeriodRequired)
	}
	data = l.withID(data)
	if err := l.store.Append(ctx, domain.NewEntry(userID, data, period)); err != nil {
		return nil, fmt.Errorf("add %s entry: %w", data.Kind(), err)
	}
	return data, nil
}

// ReplaceMonth swaps every entry of the user's month for the supplied sets.
// Payloads are stored exactly as given so repeating a call changes nothing.
func (l *Ledger) ReplaceMonth(ctx context.Context, userID string, period domain.Period, m Month) error {
	if !period.Complete() {
		return domain.NewError(domain.ErrValidation, msgPeriodRequired)
	}
	entries := make([]domain.Entry, 0, len(m.Incomes)+len(m.Expenses)+len(m.Savings)+len(m.Goals))
	add := func(p domain.Payload) {
		entries = append(entries, domain.NewEntry(userID, p, period))
	}
	for _, d := range m.Incomes {
		add(d)
	}
	for _, d := range m.Expenses {
		add(d)
	}
	for _, d := range m.Savings {
		add(d)
	}
	for _, d := range m.Goals {
		add(d)
	}
	if err := l.store.Replace(ctx, store.Filter{UserID: userID, Period: &period}, entries); err != nil {
		return fmt.Errorf("replace month %s: %w", period, err)
	}
	return nil
}

// GetMonth returns the user's entries for the month; partitions are never nil
func (l *Ledger) GetMonth(ctx context.Context, userID string, period domain.Period) (*Month, error) {
	if !period.Complete() {
		return nil, domain.NewError(domain.ErrValidation, msgPeriodRequired)
	}
	entries, err := l.store.Find(ctx, store.Filter{UserID: userID, Period: &period})
	if err != nil {
		return nil, fmt.Errorf("get month %s: %w", period, err)
	}
	m := emptyMonth()
	for _, e := range entries {
		switch d := e.Data.(type) {
		case domain.IncomeData:
			m.Incomes = append(m.Incomes, d)
		case domain.ExpenseData:
			m.Expenses = append(m.Expenses, d)
		case domain.SavingsData:
			m.Savings = append(m.Savings, d)
		case domain.GoalData:
			m.Goals = append(m.Goals, d)
		}
	}
	return m, nil
}

// ResetMonth removes every entry of the user's month and returns how many went
func (l *Ledger) ResetMonth(ctx context.Context, userID string, period domain.Period) (int, error) {
	if !period.Complete() {
		return 0, domain.NewError(domain.ErrValidation, msgPeriodRequired)
	}
	n, err := l.store.Remove(ctx, store.Filter{UserID: userID, Period: &period})
	if err != nil {
		return 0, fmt.Errorf("reset month %s: %w", period, err)
	}
	return n, nil
}

// UpdateGoal merges patch into the user's goal with goalID
func (l *Ledger) UpdateGoal(ctx context.Context, userID, goalID string, patch domain.GoalPatch) error {
	if goalID == "" {
		return domain.NewError(domain.ErrValidation, msgGoalIDRequired)
	}
	n, err := l.store.Update(ctx, goalFilter(userID, goalID), func(p domain.Payload) domain.Payload {
		g, ok := p.(domain.GoalData)
		if !ok {
			return p
		}
		return patch.Apply(g)
	})
	if err != nil {
		return fmt.Errorf("update goal %s: %w", goalID, err)
	}
	if n == 0 {
		return domain.NewError(domain.ErrNotFound, msgGoalNotFound)
	}
	return nil
}

// DeleteGoal removes the user's goal with goalID. Deleting a missing goal is not an error.
func (l *Ledger) DeleteGoal(ctx context.Context, userID, goalID string) (int, error) {
	if goalID == "" {
		return 0, nil
	}
	n, err := l.store.Remove(ctx, goalFilter(userID, goalID))
	if err != nil {
		return 0, fmt.Errorf("delete goal %s: %w", goalID, err)
	}
	return n, nil
}

// ListGoals returns every goal of the user across all months, oldest first
func (l *Ledger) ListGoals(ctx context.Context, userID string) ([]domain.GoalData, error) {
	entries, err := l.store.Find(ctx, store.Filter{UserID: userID, Type: domain.EntryGoal})
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	goals := make([]domain.GoalData, 0, len(entries))
	for _, e := range entries {
		if g, ok := e.Data.(domain.GoalData); ok {
			goals = append(goals, g)
		}
	}
	return goals, nil
}

func (l *Ledger) withID(p domain.Payload) domain.Payload {
	if p.EntryID() != "" {
		return p
	}
	return p.WithID(l.newID())
}

func goalFilter(userID, goalID string) store.Filter {
	return store.Filter{UserID: userID, Type: domain.EntryGoal, EntryID: goalID}
}
