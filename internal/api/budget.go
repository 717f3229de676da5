package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"net/url"  // Cache key escaping
	"time"     // Cache TTL

	"budget_tracker/internal/domain"     // Domain models
	"budget_tracker/internal/ledger"     // Budget ledger
	"budget_tracker/internal/middleware" // Authenticated user lookup
	"budget_tracker/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// Cache is the optional Redis read cache for month views and goal lists.
// A nil Client disables caching.
type Cache struct {
	Client *redis.Client // Redis client, may be nil
	TTL    time.Duration // Lifetime of cached views
}

// monthKey escapes both labels so that ':' only ever separates key parts
func monthKey(userID string, p domain.Period) string {
	return "budget:user:" + userID + ":" + url.QueryEscape(string(p.Year)) + ":" + url.QueryEscape(string(p.Month))
}

func goalsKey(userID string) string {
	return "goals:user:" + userID
}

// invalidateMonth drops the cached view of one month and, when goals may have changed, the goal list
func (c Cache) invalidateMonth(ctx context.Context, userID string, p domain.Period, goals bool) {
	keys := []string{monthKey(userID, p)} // Month view key
	if goals {
		keys = append(keys, goalsKey(userID)) // Goal list key
	}
	if err := utils.DeleteCache(ctx, c.Client, keys...); err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).Warn("Cache invalidation failed")
	}
}

// invalidateGoals drops the goal list and every cached month of the user, since a goal may sit in any month
func (c Cache) invalidateGoals(ctx context.Context, userID string) {
	err := utils.DeleteCache(ctx, c.Client, goalsKey(userID))
	if err == nil {
		err = utils.DeleteCachePattern(ctx, c.Client, "budget:user:"+userID+":*")
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).Warn("Cache invalidation failed")
	}
}

// IncomeRequest represents an income entry request
type IncomeRequest struct {
	domain.IncomeData // id?, source, amount, frequency, date
	domain.Period     // month, year
}

// ExpenseRequest represents an expense entry request
type ExpenseRequest struct {
	domain.ExpenseData // id?, description, amount, category, date
	domain.Period      // month, year
}

// SavingsRequest represents a savings entry request
type SavingsRequest struct {
	domain.SavingsData // id?, description, amount, category, date
	domain.Period      // month, year
}

// GoalRequest represents a goal entry request; month and year are optional
type GoalRequest struct {
	domain.GoalData // id?, description, amount, date, type, saved, monthlyTarget
	domain.Period   // month?, year?
}

// BudgetRequest replaces a whole month
type BudgetRequest struct {
	Incomes       []domain.IncomeData  `json:"incomes"`  // Replacement incomes
	Expenses      []domain.ExpenseData `json:"expenses"` // Replacement expenses
	Savings       []domain.SavingsData `json:"savings"`  // Replacement savings
	Goals         []domain.GoalData    `json:"goals"`    // Replacement goals
	domain.Period                      // month, year
}

// MonthQuery selects the month for GET /api/budget
type MonthQuery struct {
	Month string `form:"month" binding:"required"` // Month label
	Year  string `form:"year" binding:"required"`  // Year label
}

// AddIncomeHandler appends an income entry for the authenticated user
func AddIncomeHandler(l *ledger.Ledger, cache Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req IncomeRequest // Decode request body
		if err := bindStrict(c, &req); err != nil {
			respondError(c, err, nil)
			return
		}
		addEntry(c, l, cache, req.IncomeData, req.Period, "Income added")
	}
}

// AddExpenseHandler appends an expense entry for the authenticated user
func AddExpenseHandler(l *ledger.Ledger, cache Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ExpenseRequest // Decode request body
		if err := bindStrict(c, &req); err != nil {
			respondError(c, err, nil)
			return
		}
		addEntry(c, l, cache, req.ExpenseData, req.Period, "Expense added")
	}
}

// AddSavingsHandler appends a savings entry for the authenticated user
func AddSavingsHandler(l *ledger.Ledger, cache Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SavingsRequest // Decode request body
		if err := bindStrict(c, &req); err != nil {
			respondError(c, err, nil)
			return
		}
		addEntry(c, l, cache, req.SavingsData, req.Period, "Savings added")
	}
}

// addEntry stores one entry and answers 201 with the stored id
func addEntry(c *gin.Context, l *ledger.Ledger, cache Cache, data domain.Payload, period domain.Period, message string) {
	userID, ok := middleware.CurrentUserID(c) // Get userID from context
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Access denied"})
		return
	}
	fields := logrus.Fields{
		"user_id": userID,       // User ID
		"type":    data.Kind(),  // Entry type
		"month":   period.Month, // Month label
		"year":    period.Year,  // Year label
	}
	stored, err := l.AddEntry(c.Request.Context(), userID, data, period)
	if err != nil {
		respondError(c, err, fields)
		return
	}
	isGoal := data.Kind() == domain.EntryGoal
	if period.Complete() {
		cache.invalidateMonth(c.Request.Context(), userID, period, isGoal) // Month view is stale
	} else if isGoal {
		cache.invalidateGoals(c.Request.Context(), userID) // Goal list is stale
	}
	fields["entry_id"] = stored.EntryID()
	logrus.WithFields(fields).Info("Entry added") // Log the new entry
	c.JSON(http.StatusCreated, gin.H{"message": message, "id": stored.EntryID()})
}

// SaveBudgetHandler replaces every entry of a month with the supplied sets
func SaveBudgetHandler(l *ledger.Ledger, cache Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c) // Get userID from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Access denied"})
			return
		}
		var req BudgetRequest // Decode request body
		if err := bindStrict(c, &req); err != nil {
			respondError(c, err, nil)
			return
		}
		fields := logrus.Fields{
			"user_id": userID,    // User ID
			"month":   req.Month, // Month label
			"year":    req.Year,  // Year label
		}
		month := ledger.Month{Incomes: req.Incomes, Expenses: req.Expenses, Savings: req.Savings, Goals: req.Goals}
		if err := l.ReplaceMonth(c.Request.Context(), userID, req.Period, month); err != nil {
			respondError(c, err, fields)
			return
		}
		cache.invalidateMonth(c.Request.Context(), userID, req.Period, true) // Goals may have changed too
		fields["incomes"] = len(req.Incomes)
		fields["expenses"] = len(req.Expenses)
		fields["savings"] = len(req.Savings)
		fields["goals"] = len(req.Goals)
		logrus.WithFields(fields).Info("Budget saved") // Log the replacement
		c.JSON(http.StatusCreated, gin.H{"message": "Budget saved"})
	}
}

// GetBudgetHandler returns the month's entries partitioned by type
func GetBudgetHandler(l *ledger.Ledger, cache Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c) // Get userID from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Access denied"})
			return
		}
		var q MonthQuery // Month and year from the query string
		if err := c.ShouldBindQuery(&q); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Month and year are required"})
			return
		}
		period := domain.Period{Month: domain.PeriodPart(q.Month), Year: domain.PeriodPart(q.Year)}
		ctx := c.Request.Context()
		key := monthKey(userID, period) // Cache key for the month view
		var cached ledger.Month
		// If found in cache, return it
		if found, err := utils.GetCache(ctx, cache.Client, key, &cached); err == nil && found {
			c.Header("X-Cache", "HIT")
			c.JSON(http.StatusOK, cached)
			return
		}
		month, err := l.GetMonth(ctx, userID, period)
		if err != nil {
			respondError(c, err, logrus.Fields{"user_id": userID, "month": q.Month, "year": q.Year})
			return
		}
		_ = utils.SetCache(ctx, cache.Client, key, month, cache.TTL) // Cache the view
		c.Header("X-Cache", "MISS")
		c.JSON(http.StatusOK, month)
	}
}

// ResetBudgetHandler removes every entry of a month
func ResetBudgetHandler(l *ledger.Ledger, cache Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c) // Get userID from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Access denied"})
			return
		}
		var period domain.Period // month, year
		if err := bindStrict(c, &period); err != nil {
			respondError(c, err, nil)
			return
		}
		fields := logrus.Fields{"user_id": userID, "month": period.Month, "year": period.Year}
		removed, err := l.ResetMonth(c.Request.Context(), userID, period)
		if err != nil {
			respondError(c, err, fields)
			return
		}
		cache.invalidateMonth(c.Request.Context(), userID, period, true)
		fields["removed"] = removed
		logrus.WithFields(fields).Info("Budget reset") // Log the reset
		c.JSON(http.StatusOK, gin.H{"message": "Budget reset"})
	}
}
