// Package summary derives monthly totals, savings rate and chart splits from
// income and a fixed set of expense categories.
package summary

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Status labels
const (
	StatusSaving       = "saving"
	StatusOverspending = "overspending"
)

// Input is the income and the six expense categories of one month
type Input struct {
	Income        float64 `json:"income"`
	Rent          float64 `json:"rent"`
	EMI           float64 `json:"emi"`
	Utilities     float64 `json:"utilities"`
	Groceries     float64 `json:"groceries"`
	Transport     float64 `json:"transport"`
	Entertainment float64 `json:"entertainment"`
}

// Slice is one labelled share of a chart
type Slice struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// Result is everything the charts and the status banner need
type Result struct {
	TotalExpense float64 `json:"totalExpense"`
	Savings      float64 `json:"savings"`
	SavingsRate  string  `json:"savingsRate"` // Percent with one decimal, "0" without income
	Status       string  `json:"status"`
	Breakdown    []Slice `json:"breakdown"` // The six categories, fixed order
	Split        []Slice `json:"split"`     // Savings (floored at 0) vs total expense
}

// Validate rejects NaN and infinite amounts, which have no decimal form
func (in Input) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"income", in.Income},
		{"rent", in.Rent},
		{"emi", in.EMI},
		{"utilities", in.Utilities},
		{"groceries", in.Groceries},
		{"transport", in.Transport},
		{"entertainment", in.Entertainment},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%s must be a finite number, got %v", f.name, f.value)
		}
	}
	return nil
}

// Compute derives the summary. Call Validate first. Amounts are summed as decimals so that
// e.g. 0.1 + 0.2 reports 0.3.
func Compute(in Input) Result {
	breakdown := []Slice{
		{Label: "Rent", Amount: in.Rent},
		{Label: "EMI", Amount: in.EMI},
		{Label: "Utilities", Amount: in.Utilities},
		{Label: "Groceries", Amount: in.Groceries},
		{Label: "Transport", Amount: in.Transport},
		{Label: "Entertainment", Amount: in.Entertainment},
	}

	total := decimal.Zero
	for _, s := range breakdown {
		total = total.Add(decimal.NewFromFloat(s.Amount))
	}
	income := decimal.NewFromFloat(in.Income)
	savings := income.Sub(total)

	rate := "0"
	if !income.IsZero() {
		rate = savings.Div(income).Mul(decimal.NewFromInt(100)).StringFixed(1)
	}

	status := StatusSaving
	if savings.IsNegative() {
		status = StatusOverspending
	}

	return Result{
		TotalExpense: total.InexactFloat64(),
		Savings:      savings.InexactFloat64(),
		SavingsRate:  rate,
		Status:       status,
		Breakdown:    breakdown,
		Split: []Slice{
			{Label: "Savings", Amount: decimal.Max(savings, decimal.Zero).InexactFloat64()},
			{Label: "Expenses", Amount: total.InexactFloat64()},
		},
	}
}
