package utils

import (
	"errors" // Error values
	"time"   // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// JWT Claims
type Claims struct {
	UserID               string `json:"userId"`   // Custom claim for user ID
	Username             string `json:"username"` // Custom claim for username
	jwt.RegisteredClaims        // Standard JWT claims
}

// ErrMissingToken is returned when there is no token to verify
var ErrMissingToken = errors.New("token is missing")

// GenerateJWT creates a JWT token for a given user, valid for ttl
func GenerateJWT(userID, username, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	// Set token claims
	claims := Claims{
		UserID:   userID,   // Custom claim for user ID
		Username: username, // Custom claim for username
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)), // Token expires after ttl
			IssuedAt:  jwt.NewNumericDate(now),          // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseJWT parses and validates a JWT token string
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	if tokenStr == "" {
		return nil, ErrMissingToken
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), // Reject alg switching
		jwt.WithExpirationRequired(),                                  // Tokens without exp never validate
	)
	// Check for parsing errors
	if err != nil {
		return nil, err // Return error if parsing fails
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.UserID != "" {
		return claims, nil // Return claims if valid
	}
	// Return error if token is invalid
	return nil, jwt.ErrTokenInvalidClaims
}

// TokenService issues and verifies identity tokens without server-side state
type TokenService struct {
	Secret string        // HMAC secret
	TTL    time.Duration // Validity window from issuance
}

// NewTokenService returns a TokenService signing with secret
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{Secret: secret, TTL: ttl}
}

// Issue signs a token for the given identity
func (s *TokenService) Issue(userID, username string) (string, error) {
	return GenerateJWT(userID, username, s.Secret, s.TTL)
}

// Verify returns the claims of a valid token
func (s *TokenService) Verify(token string) (*Claims, error) {
	return ParseJWT(token, s.Secret)
}
