package api

import (
	"net/http" // HTTP status codes

	"budget_tracker/internal/domain"     // Domain models
	"budget_tracker/internal/ledger"     // Budget ledger
	"budget_tracker/internal/middleware" // Authenticated user lookup
	"budget_tracker/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// AddGoalHandler appends a goal; month and year may be omitted
func AddGoalHandler(l *ledger.Ledger, cache Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GoalRequest // Decode request body
		if err := bindStrict(c, &req); err != nil {
			respondError(c, err, nil)
			return
		}
		addEntry(c, l, cache, req.GoalData, req.Period, "Goal added")
	}
}

// UpdateGoalHandler merges the body into the goal named by :id
func UpdateGoalHandler(l *ledger.Ledger, cache Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c) // Get userID from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Access denied"})
			return
		}
		var patch domain.GoalPatch // Partial goal fields, an empty body patches nothing
		if err := bindOptional(c, &patch); err != nil {
			respondError(c, err, nil)
			return
		}
		goalID := c.Param("id") // Goal id from the path
		fields := logrus.Fields{"user_id": userID, "goal_id": goalID}
		if err := l.UpdateGoal(c.Request.Context(), userID, goalID, patch); err != nil {
			respondError(c, err, fields)
			return
		}
		cache.invalidateGoals(c.Request.Context(), userID) // Goal may be cached in any month
		logrus.WithFields(fields).Info("Goal updated")     // Log the update
		c.JSON(http.StatusOK, gin.H{"message": "Goal updated"})
	}
}

// DeleteGoalHandler removes the goal named by :id; unknown ids still succeed
func DeleteGoalHandler(l *ledger.Ledger, cache Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c) // Get userID from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Access denied"})
			return
		}
		goalID := c.Param("id") // Goal id from the path
		fields := logrus.Fields{"user_id": userID, "goal_id": goalID}
		removed, err := l.DeleteGoal(c.Request.Context(), userID, goalID)
		if err != nil {
			respondError(c, err, fields)
			return
		}
		if removed > 0 {
			cache.invalidateGoals(c.Request.Context(), userID)
		}
		fields["removed"] = removed
		logrus.WithFields(fields).Info("Goal deleted") // Log the deletion
		c.JSON(http.StatusOK, gin.H{"message": "Goal deleted"})
	}
}

// ListGoalsHandler returns every goal of the user across all months
func ListGoalsHandler(l *ledger.Ledger, cache Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c) // Get userID from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Access denied"})
			return
		}
		ctx := c.Request.Context()
		key := goalsKey(userID) // Cache key for the goal list
		var cached []domain.GoalData
		// If found in cache, return it
		if found, err := utils.GetCache(ctx, cache.Client, key, &cached); err == nil && found {
			c.Header("X-Cache", "HIT")
			c.JSON(http.StatusOK, cached)
			return
		}
		goals, err := l.ListGoals(ctx, userID)
		if err != nil {
			respondError(c, err, logrus.Fields{"user_id": userID})
			return
		}
		_ = utils.SetCache(ctx, cache.Client, key, goals, cache.TTL) // Cache the list
		c.Header("X-Cache", "MISS")
		c.JSON(http.StatusOK, goals)
	}
}
