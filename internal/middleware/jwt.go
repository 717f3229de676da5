package middleware

import (
	"budget_tracker/internal/utils" // JWT claims
	"net/http"                      // HTTP status codes
	"strings"                       // String manipulation

	"github.com/gin-gonic/gin" // Gin web framework
)

// Context keys set for authenticated requests
const (
	ContextUserID   = "userID"   // Verified user id
	ContextUsername = "username" // Verified username
)

// TokenVerifier checks a bearer token and returns its claims
type TokenVerifier interface {
	Verify(token string) (*utils.Claims, error)
}

// JWTAuthMiddleware validates JWT tokens and extracts user information.
// Every protected route group passes through it before reaching a handler.
func JWTAuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access denied"})
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")) // Extract the token string
		claims, err := verifier.Verify(tokenStr)                                 // Parse the JWT token
		if err != nil {
			// If parsing fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}
		c.Set(ContextUserID, claims.UserID)     // Store userID in context
		c.Set(ContextUsername, claims.Username) // Store username in context
		c.Next()                                // Proceed to the next handler
	}
}

// CurrentUserID returns the verified user id of the request, if any
func CurrentUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(ContextUserID)
	return userID, userID != ""
}
