package api

import (
	"net/http" // HTTP status codes

	"budget_tracker/internal/auth"       // Credential store
	"budget_tracker/internal/ledger"     // Budget ledger
	"budget_tracker/internal/middleware" // Auth stage

	"github.com/gin-gonic/gin" // Gin web framework
)

// Deps are the collaborators the routes are built from
type Deps struct {
	Auth   *auth.Service            // Signup and login
	Ledger *ledger.Ledger           // Budget entries
	Tokens middleware.TokenVerifier // Bearer token verification
	Cache  Cache                    // Optional read cache
}

// RegisterRoutes mounts every endpoint on r
func RegisterRoutes(r gin.IRouter, d Deps) {
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	apiGroup := r.Group("/api")
	// Public routes (no auth)
	apiGroup.POST("/signup", SignupHandler(d.Auth)) // Registration endpoint
	apiGroup.POST("/login", LoginHandler(d.Auth))   // Login endpoint

	// Protected routes: every handler below passes through the JWT stage first
	protected := apiGroup.Group("", middleware.JWTAuthMiddleware(d.Tokens))
	protected.POST("/income", AddIncomeHandler(d.Ledger, d.Cache))         // Add income
	protected.POST("/expense", AddExpenseHandler(d.Ledger, d.Cache))       // Add expense
	protected.POST("/savings", AddSavingsHandler(d.Ledger, d.Cache))       // Add savings
	protected.POST("/goals", AddGoalHandler(d.Ledger, d.Cache))            // Add goal
	protected.GET("/goals", ListGoalsHandler(d.Ledger, d.Cache))           // List goals
	protected.PUT("/goals/:id", UpdateGoalHandler(d.Ledger, d.Cache))      // Update goal
	protected.DELETE("/goals/:id", DeleteGoalHandler(d.Ledger, d.Cache))   // Delete goal
	protected.POST("/budget", SaveBudgetHandler(d.Ledger, d.Cache))        // Replace month
	protected.GET("/budget", GetBudgetHandler(d.Ledger, d.Cache))          // Get month
	protected.POST("/budget/reset", ResetBudgetHandler(d.Ledger, d.Cache)) // Reset month
	protected.POST("/summary", SummaryHandler())                           // Derived summary
}
