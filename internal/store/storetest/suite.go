// Package storetest holds the contract suite every store backend must pass.
package storetest

import (
	"context"

	"budget_tracker/internal/domain"
	"budget_tracker/internal/store"

	"github.com/stretchr/testify/suite"
)

// Backend is the pair of stores under test, usually one value implementing both
type Backend interface {
	store.UserStore
	store.LedgerStore
}

// Suite runs the shared behaviour checks against a fresh Backend per test
type Suite struct {
	suite.Suite
	NewBackend func() Backend // Called before each test
	Cleanup    func()         // Optional, called after each test

	ctx context.Context
	b   Backend
}

// SetupTest runs before each test
func (s *Suite) SetupTest() {
	s.ctx = context.Background()
	s.b = s.NewBackend()
}

// TearDownTest runs after each test
func (s *Suite) TearDownTest() {
	if s.Cleanup != nil {
		s.Cleanup()
	}
}

var (
	march = domain.Period{Month: "3", Year: "2025"}
	april = domain.Period{Month: "4", Year: "2025"}
)

func (s *Suite) TestCreateAndFindUser() {
	u := &domain.User{ID: "u1", Username: "alice", Email: "alice@example.com", PasswordHash: "hash"}
	s.Require().NoError(s.b.CreateUser(s.ctx, u))

	got, err := s.b.UserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("u1", got.ID)
	s.Equal("hash", got.PasswordHash)

	_, err = s.b.UserByUsername(s.ctx, "bob")
	s.ErrorIs(err, store.ErrNotFound)
}

func (s *Suite) TestCreateUserRejectsDuplicates() {
	s.Require().NoError(s.b.CreateUser(s.ctx, &domain.User{ID: "u1", Username: "alice", Email: "alice@example.com", PasswordHash: "h"}))

	err := s.b.CreateUser(s.ctx, &domain.User{ID: "u2", Username: "alice", Email: "other@example.com", PasswordHash: "h"})
	s.ErrorIs(err, store.ErrDuplicate)

	err = s.b.CreateUser(s.ctx, &domain.User{ID: "u3", Username: "carol", Email: "alice@example.com", PasswordHash: "h"})
	s.ErrorIs(err, store.ErrDuplicate)

	_, err = s.b.UserByUsername(s.ctx, "carol")
	s.ErrorIs(err, store.ErrNotFound, "no user must be created on conflict")
}

func (s *Suite) TestUsernamesAreCaseSensitive() {
	s.Require().NoError(s.b.CreateUser(s.ctx, &domain.User{ID: "u1", Username: "alice", Email: "alice@example.com", PasswordHash: "h1"}))
	s.Require().NoError(s.b.CreateUser(s.ctx, &domain.User{ID: "u2", Username: "Alice", Email: "other@example.com", PasswordHash: "h2"}))

	got, err := s.b.UserByUsername(s.ctx, "Alice")
	s.Require().NoError(err)
	s.Equal("u2", got.ID)

	got, err = s.b.UserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("u1", got.ID)

	_, err = s.b.UserByUsername(s.ctx, "ALICE")
	s.ErrorIs(err, store.ErrNotFound)
}

func (s *Suite) TestAppendAndFindKeepsOrder() {
	s.Require().NoError(s.b.Append(s.ctx,
		domain.NewEntry("u1", domain.IncomeData{ID: "i1", Source: "Salary", Amount: 50000}, march),
		domain.NewEntry("u1", domain.ExpenseData{ID: "e1", Description: "Rent", Amount: 15000}, march),
		domain.NewEntry("u1", domain.ExpenseData{ID: "e2", Description: "Bus", Amount: 100}, april),
		domain.NewEntry("u2", domain.ExpenseData{ID: "e3", Description: "Other user", Amount: 1}, march),
	))

	all, err := s.b.Find(s.ctx, store.Filter{UserID: "u1", Period: &march})
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("i1", all[0].Data.EntryID())
	s.Equal("e1", all[1].Data.EntryID())

	expenses, err := s.b.Find(s.ctx, store.Filter{UserID: "u1", Type: domain.EntryExpense})
	s.Require().NoError(err)
	s.Len(expenses, 2)

	byID, err := s.b.Find(s.ctx, store.Filter{UserID: "u2", EntryID: "e3"})
	s.Require().NoError(err)
	s.Require().Len(byID, 1)
	s.Equal(domain.ExpenseData{ID: "e3", Description: "Other user", Amount: 1}, byID[0].Data)
}

func (s *Suite) TestRemoveScopedToUserAndPeriod() {
	s.Require().NoError(s.b.Append(s.ctx,
		domain.NewEntry("u1", domain.IncomeData{ID: "i1"}, march),
		domain.NewEntry("u1", domain.IncomeData{ID: "i2"}, april),
		domain.NewEntry("u2", domain.IncomeData{ID: "i3"}, march),
	))

	n, err := s.b.Remove(s.ctx, store.Filter{UserID: "u1", Period: &march})
	s.Require().NoError(err)
	s.Equal(1, n)

	left, err := s.b.Find(s.ctx, store.Filter{UserID: "u1"})
	s.Require().NoError(err)
	s.Require().Len(left, 1)
	s.Equal("i2", left[0].Data.EntryID())

	other, err := s.b.Find(s.ctx, store.Filter{UserID: "u2"})
	s.Require().NoError(err)
	s.Len(other, 1)
}

func (s *Suite) TestReplace() {
	s.Require().NoError(s.b.Append(s.ctx,
		domain.NewEntry("u1", domain.IncomeData{ID: "old"}, march),
		domain.NewEntry("u1", domain.IncomeData{ID: "keep"}, april),
	))
	replacement := []domain.Entry{
		domain.NewEntry("u1", domain.SavingsData{ID: "s1", Amount: 10}, march),
		domain.NewEntry("u1", domain.GoalData{ID: "g1", Amount: 100}, march),
	}

	f := store.Filter{UserID: "u1", Period: &march}
	s.Require().NoError(s.b.Replace(s.ctx, f, replacement))
	s.Require().NoError(s.b.Replace(s.ctx, f, replacement))

	got, err := s.b.Find(s.ctx, f)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal(domain.EntrySavings, got[0].Type)
	s.Equal(domain.EntryGoal, got[1].Type)

	kept, err := s.b.Find(s.ctx, store.Filter{UserID: "u1", Period: &april})
	s.Require().NoError(err)
	s.Len(kept, 1)
}

func (s *Suite) TestUpdate() {
	s.Require().NoError(s.b.Append(s.ctx,
		domain.NewEntry("u1", domain.GoalData{ID: "g1", Saved: 1}, domain.Period{}),
		domain.NewEntry("u2", domain.GoalData{ID: "g1", Saved: 1}, domain.Period{}),
	))
	bump := func(p domain.Payload) domain.Payload {
		g := p.(domain.GoalData)
		g.Saved += 10
		return g
	}

	n, err := s.b.Update(s.ctx, store.Filter{UserID: "u1", Type: domain.EntryGoal, EntryID: "g1"}, bump)
	s.Require().NoError(err)
	s.Equal(1, n)

	mine, err := s.b.Find(s.ctx, store.Filter{UserID: "u1"})
	s.Require().NoError(err)
	s.Equal(11.0, mine[0].Data.(domain.GoalData).Saved)

	theirs, err := s.b.Find(s.ctx, store.Filter{UserID: "u2"})
	s.Require().NoError(err)
	s.Equal(1.0, theirs[0].Data.(domain.GoalData).Saved)

	n, err = s.b.Update(s.ctx, store.Filter{UserID: "u1", EntryID: "missing"}, bump)
	s.Require().NoError(err)
	s.Zero(n)
}
