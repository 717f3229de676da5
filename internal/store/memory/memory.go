// Package memory is a process-lifetime store. Restarting the process discards every user and entry.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"budget_tracker/internal/domain"
	"budget_tracker/internal/store"
)

// Store keeps users and entries in slices guarded by one lock, so every
// operation is a single atomic step from the caller's point of view.
type Store struct {
	mu      sync.RWMutex
	users   []domain.User
	entries []domain.Entry
}

// New returns an empty store
func New() *Store {
	return &Store{}
}

var (
	_ store.UserStore   = (*Store)(nil)
	_ store.LedgerStore = (*Store)(nil)
)

// CreateUser stores u unless its username or email is taken
func (s *Store) CreateUser(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username || strings.EqualFold(existing.Email, u.Email) {
			return store.ErrDuplicate
		}
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	s.users = append(s.users, *u)
	return nil
}

// UserByUsername returns a copy of the matching user
func (s *Store) UserByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, store.ErrNotFound
}

// Append adds entries in order; no dedup
func (s *Store) Append(_ context.Context, entries ...domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entries...)
	return nil
}

// Find returns matching entries in insertion order
func (s *Store) Find(_ context.Context, f store.Filter) ([]domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Entry
	for _, e := range s.entries {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Remove deletes matching entries and returns how many were removed
func (s *Store) Remove(_ context.Context, f store.Filter) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(f), nil
}

// Replace removes matching entries and appends the replacements under one lock
func (s *Store) Replace(_ context.Context, f store.Filter, entries []domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(f)
	s.entries = append(s.entries, entries...)
	return nil
}

// Update rewrites the payload of matching entries in place
func (s *Store) Update(_ context.Context, f store.Filter, fn func(domain.Payload) domain.Payload) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for i := range s.entries {
		if !f.Match(s.entries[i]) {
			continue
		}
		s.entries[i].Data = fn(s.entries[i].Data)
		n++
	}
	return n, nil
}

func (s *Store) removeLocked(f store.Filter) int {
	kept := s.entries[:0]
	removed := 0
	for _, e := range s.entries {
		if f.Match(e) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	// drop references held past the new length
	clear(s.entries[len(kept):])
	s.entries = kept
	return removed
}
