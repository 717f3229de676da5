package memory

import (
	"context"
	"sync"
	"testing"

	"budget_tracker/internal/domain"
	"budget_tracker/internal/store"
	"budget_tracker/internal/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, &storetest.Suite{NewBackend: func() storetest.Backend { return New() }})
}

func TestEmailUniquenessIgnoresCase(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.CreateUser(ctx, &domain.User{ID: "u1", Username: "a", Email: "A@example.com"}))
	assert.ErrorIs(t, s.CreateUser(ctx, &domain.User{ID: "u2", Username: "b", Email: "a@example.com"}), store.ErrDuplicate)
}

func TestConcurrentAppends(t *testing.T) {
	s := New()
	ctx := context.Background()
	period := domain.Period{Month: "1", Year: "2025"}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Append(ctx, domain.NewEntry("u1", domain.ExpenseData{Amount: 1}, period))
		}()
	}
	wg.Wait()

	got, err := s.Find(ctx, store.Filter{UserID: "u1"})
	require.NoError(t, err)
	assert.Len(t, got, 50)
}
