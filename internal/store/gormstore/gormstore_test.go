package gormstore

import (
	"fmt"
	"sync/atomic"
	"testing"

	"budget_tracker/internal/domain"
	"budget_tracker/internal/store"
	"budget_tracker/internal/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// openTestDB returns a migrated in-memory SQLite database private to the caller
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:budget_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open sqlite")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // Shared-cache memory databases lock across connections
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(Models()...))
	return db
}

func TestGormStoreSuite(t *testing.T) {
	s := &storetest.Suite{}
	s.NewBackend = func() storetest.Backend { return New(openTestDB(s.T())) }
	suite.Run(t, s)
}

func TestPayloadRoundTripsThroughColumn(t *testing.T) {
	db := openTestDB(t)
	s := New(db)
	period := domain.Period{Month: "5", Year: "2024"}
	goal := domain.GoalData{ID: "g1", Description: "Trip", Amount: 900, Date: "2024-12-01", Type: "short-term", Saved: 50, MonthlyTarget: 75}

	require.NoError(t, s.Append(t.Context(), domain.NewEntry("u1", goal, period)))

	var rec EntryRecord
	require.NoError(t, db.First(&rec).Error)
	assert.Equal(t, "g1", rec.EntryID)
	assert.Equal(t, "goal", rec.Type)
	assert.JSONEq(t, `{"id":"g1","description":"Trip","amount":900,"date":"2024-12-01","type":"short-term","saved":50,"monthlyTarget":75}`, rec.Data)

	got, err := s.Find(t.Context(), storetestFilter("u1"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, goal, got[0].Data)
	assert.Equal(t, period, got[0].Period)
}

func TestCorruptPayloadSurfacesError(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Create(&EntryRecord{UserID: "u1", Type: "income", Data: `{"unexpected":true}`}).Error)

	_, err := New(db).Find(t.Context(), storetestFilter("u1"))
	assert.Error(t, err)
}

func storetestFilter(userID string) store.Filter {
	return store.Filter{UserID: userID}
}
