package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodAcceptsStringsAndNumbers(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Period
	}{
		{"strings", `{"month":"3","year":"2025"}`, Period{Month: "3", Year: "2025"}},
		{"numbers", `{"month":3,"year":2025}`, Period{Month: "3", Year: "2025"}},
		{"named month", `{"month":" March ","year":"2025"}`, Period{Month: "March", Year: "2025"}},
		{"nulls", `{"month":null,"year":null}`, Period{}},
		{"missing", `{}`, Period{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Period
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))
			assert.Equal(t, tt.want, p)
		})
	}

	var p Period
	assert.Error(t, json.Unmarshal([]byte(`{"month":true}`), &p))
}

func TestDecodePayloadPicksVariant(t *testing.T) {
	p, err := DecodePayload(EntryGoal, []byte(`{"id":"g1","description":"Car","amount":1000,"saved":100,"monthlyTarget":50}`))
	require.NoError(t, err)
	goal, ok := p.(GoalData)
	require.True(t, ok, "expected GoalData, got %T", p)
	assert.Equal(t, "g1", goal.EntryID())
	assert.Equal(t, 50.0, goal.MonthlyTarget)

	p, err = DecodePayload(EntryIncome, []byte(`{"source":"Salary","amount":50000,"frequency":"monthly"}`))
	require.NoError(t, err)
	assert.Equal(t, EntryIncome, p.Kind())
}

func TestDecodePayloadRejectsUnknownFields(t *testing.T) {
	_, err := DecodePayload(EntryExpense, []byte(`{"description":"Rent","source":"oops"}`))
	assert.Error(t, err)

	_, err = DecodePayload(EntryType("loan"), []byte(`{}`))
	assert.Error(t, err)
}

func TestWithIDCopies(t *testing.T) {
	orig := ExpenseData{Description: "Bus"}
	withID := orig.WithID("e1")
	assert.Equal(t, "e1", withID.EntryID())
	assert.Empty(t, orig.ID)
}

func TestGoalPatchApply(t *testing.T) {
	saved := 400.0
	desc := "New laptop"
	other := "other-id"
	g := GoalData{ID: "g1", Description: "Laptop", Amount: 1200, Saved: 100}

	got := GoalPatch{ID: &other, Description: &desc, Saved: &saved}.Apply(g)
	assert.Equal(t, "g1", got.ID)
	assert.Equal(t, "New laptop", got.Description)
	assert.Equal(t, 400.0, got.Saved)
	assert.Equal(t, 1200.0, got.Amount)
}

func TestErrorKinds(t *testing.T) {
	err := fmt.Errorf("signup: %w", NewError(ErrConflict, "Username or email already exists"))
	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrAuth))
	assert.Equal(t, "Username or email already exists", Message(err, "fallback"))
	assert.Equal(t, "fallback", Message(errors.New("boom"), "fallback"))
}
