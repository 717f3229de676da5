// Package store defines the persistence contracts for users and ledger entries.
// Backends live in subpackages: memory (process lifetime) and gormstore (MySQL/SQLite).
package store

import (
	"context"
	"errors"

	"budget_tracker/internal/domain"
)

var (
	// ErrDuplicate is returned when a username or email is already registered
	ErrDuplicate = errors.New("store: duplicate user")
	// ErrNotFound is returned when a lookup matches nothing
	ErrNotFound = errors.New("store: not found")
)

// UserStore holds user identity records
type UserStore interface {
	CreateUser(ctx context.Context, u *domain.User) error
	UserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// LedgerStore is an append/filter store of budget entries. Implementations must
// keep insertion order for Find.
type LedgerStore interface {
	Append(ctx context.Context, entries ...domain.Entry) error
	Find(ctx context.Context, f Filter) ([]domain.Entry, error)
	Remove(ctx context.Context, f Filter) (int, error)
	// Replace removes everything matching f and appends entries as one step
	Replace(ctx context.Context, f Filter, entries []domain.Entry) error
	// Update rewrites the payload of every entry matching f and returns how many matched
	Update(ctx context.Context, f Filter, fn func(domain.Payload) domain.Payload) (int, error)
}

// Filter selects entries of a single user. Zero-valued optional fields match anything.
type Filter struct {
	UserID  string
	Type    domain.EntryType
	Period  *domain.Period
	EntryID string
}

// Match reports whether e is selected by f
func (f Filter) Match(e domain.Entry) bool {
	if e.UserID != f.UserID {
		return false
	}
	if f.Type != "" && e.Type != f.Type {
		return false
	}
	if f.Period != nil && e.Period != *f.Period {
		return false
	}
	if f.EntryID != "" && (e.Data == nil || e.Data.EntryID() != f.EntryID) {
		return false
	}
	return true
}
