// Package gormstore persists users and ledger entries through GORM (MySQL or SQLite).
package gormstore

import (
	"context"       // Request scoped DB calls
	"encoding/json" // Payload column encoding
	"errors"        // Error matching
	"fmt"           // Error wrapping

	"budget_tracker/internal/domain" // Domain models
	"budget_tracker/internal/store"  // Store contracts

	"gorm.io/gorm" // GORM ORM library
)

// EntryRecord is the table row behind a domain.Entry. The payload is kept as JSON
// so every entry type shares one table.
type EntryRecord struct {
	ID      uint   `gorm:"primaryKey"`                                       // Insertion order
	UserID  string `gorm:"type:varchar(64);not null;index:idx_entry_period"` // Owner
	Year    string `gorm:"type:varchar(16);index:idx_entry_period"`          // Year label
	Month   string `gorm:"type:varchar(16);index:idx_entry_period"`          // Month label
	Type    string `gorm:"type:varchar(16);not null;index"`                  // income, expense, savings, goal
	EntryID string `gorm:"type:varchar(64);index"`                           // Payload id, used for goal lookups
	Data    string `gorm:"type:text;not null"`                               // JSON payload
}

// TableName pins the table name
func (EntryRecord) TableName() string { return "entries" }

// Store implements store.UserStore and store.LedgerStore on a *gorm.DB
type Store struct {
	db *gorm.DB
}

// New wraps an open connection. Run Migrate first.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

var (
	_ store.UserStore   = (*Store)(nil)
	_ store.LedgerStore = (*Store)(nil)
)

// Models lists every table this store needs, for AutoMigrate
func Models() []any {
	return []any{&domain.User{}, &EntryRecord{}}
}

// CreateUser inserts u, failing with store.ErrDuplicate when username or email is taken
func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		// Check both unique columns up front so the error is backend independent
		if err := tx.Model(&domain.User{}).
			Where("username = ? OR LOWER(email) = LOWER(?)", u.Username, u.Email).
			Count(&count).Error; err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		if count > 0 {
			return store.ErrDuplicate
		}
		if err := tx.Create(u).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return store.ErrDuplicate // Lost a race with a concurrent signup
			}
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
}

// UserByUsername fetches a user by exact username
func (s *Store) UserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var users []domain.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	// Case-insensitive collations may match more than the exact name
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, store.ErrNotFound
}

// Append inserts entries in order
func (s *Store) Append(ctx context.Context, entries ...domain.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	records, err := toRecords(entries)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(&records).Error; err != nil {
		return fmt.Errorf("append entries: %w", err)
	}
	return nil
}

// Find returns matching entries ordered by insertion
func (s *Store) Find(ctx context.Context, f store.Filter) ([]domain.Entry, error) {
	var records []EntryRecord
	if err := s.db.WithContext(ctx).Scopes(filterScope(f)).Order("id asc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("find entries: %w", err)
	}
	entries := make([]domain.Entry, 0, len(records))
	for _, r := range records {
		e, err := r.toEntry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Remove deletes matching entries
func (s *Store) Remove(ctx context.Context, f store.Filter) (int, error) {
	res := s.db.WithContext(ctx).Scopes(filterScope(f)).Delete(&EntryRecord{})
	if res.Error != nil {
		return 0, fmt.Errorf("remove entries: %w", res.Error)
	}
	return int(res.RowsAffected), nil
}

// Replace deletes matching entries and inserts the replacements in one transaction
func (s *Store) Replace(ctx context.Context, f store.Filter, entries []domain.Entry) error {
	records, err := toRecords(entries)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(filterScope(f)).Delete(&EntryRecord{}).Error; err != nil {
			return fmt.Errorf("clear entries: %w", err)
		}
		if len(records) == 0 {
			return nil
		}
		if err := tx.Create(&records).Error; err != nil {
			return fmt.Errorf("insert entries: %w", err)
		}
		return nil
	})
}

// Update rewrites the payload of every matching entry inside a transaction
func (s *Store) Update(ctx context.Context, f store.Filter, fn func(domain.Payload) domain.Payload) (int, error) {
	n := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var records []EntryRecord
		if err := tx.Scopes(filterScope(f)).Order("id asc").Find(&records).Error; err != nil {
			return fmt.Errorf("find entries: %w", err)
		}
		for _, r := range records {
			e, err := r.toEntry()
			if err != nil {
				return err
			}
			updated := fn(e.Data)
			data, err := json.Marshal(updated)
			if err != nil {
				return fmt.Errorf("encode payload: %w", err)
			}
			if err := tx.Model(&EntryRecord{}).Where("id = ?", r.ID).Updates(map[string]any{
				"data":     string(data),
				"entry_id": updated.EntryID(),
			}).Error; err != nil {
				return fmt.Errorf("update entry %d: %w", r.ID, err)
			}
			n++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// filterScope translates a store.Filter into WHERE clauses
func filterScope(f store.Filter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("user_id = ?", f.UserID)
		if f.Type != "" {
			db = db.Where("type = ?", string(f.Type))
		}
		if f.Period != nil {
			db = db.Where("month = ? AND year = ?", string(f.Period.Month), string(f.Period.Year))
		}
		if f.EntryID != "" {
			db = db.Where("entry_id = ?", f.EntryID)
		}
		return db
	}
}

func toRecords(entries []domain.Entry) ([]EntryRecord, error) {
	records := make([]EntryRecord, 0, len(entries))
	for _, e := range entries {
		data, err := json.Marshal(e.Data)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", e.Type, err)
		}
		records = append(records, EntryRecord{
			UserID:  e.UserID,
			Year:    string(e.Period.Year),
			Month:   string(e.Period.Month),
			Type:    string(e.Type),
			EntryID: e.Data.EntryID(),
			Data:    string(data),
		})
	}
	return records, nil
}

func (r EntryRecord) toEntry() (domain.Entry, error) {
	t := domain.EntryType(r.Type)
	payload, err := domain.DecodePayload(t, []byte(r.Data))
	if err != nil {
		return domain.Entry{}, fmt.Errorf("entry %d: %w", r.ID, err)
	}
	return domain.Entry{
		UserID: r.UserID,
		Type:   t,
		Data:   payload,
		Period: domain.Period{Month: domain.PeriodPart(r.Month), Year: domain.PeriodPart(r.Year)},
	}, nil
}
