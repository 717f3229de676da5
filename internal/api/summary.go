package api

import (
	"net/http" // HTTP status codes

	"budget_tracker/internal/domain"  // Error kinds
	"budget_tracker/internal/summary" // Summary calculator

	"github.com/gin-gonic/gin" // Gin web framework
)

// SummaryHandler computes totals, savings rate and chart splits for the posted amounts
func SummaryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in summary.Input // income and the six categories
		if err := bindStrict(c, &in); err != nil {
			respondError(c, err, nil)
			return
		}
		if err := in.Validate(); err != nil {
			respondError(c, domain.NewError(domain.ErrValidation, err.Error()), nil)
			return
		}
		c.JSON(http.StatusOK, summary.Compute(in))
	}
}
