package api

import (
	"net/http" // HTTP status codes

	"budget_tracker/internal/auth" // Credential store

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Request struct for signup
type SignupRequest struct {
	Username string `json:"username"` // Desired username
	Email    string `json:"email"`    // Email address
	Password string `json:"password"` // Plaintext password, hashed before storage
}

// Request struct for login
type LoginRequest struct {
	Username string `json:"username"` // Username
	Password string `json:"password"` // Password
}

// SignupHandler registers a user and returns a token for it
func SignupHandler(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		// Missing fields and duplicates come back as typed errors
		session, err := svc.Signup(c.Request.Context(), req.Username, req.Email, req.Password)
		if err != nil {
			respondError(c, err, logrus.Fields{"username": req.Username})
			return
		}
		// Log the new account
		logrus.WithFields(logrus.Fields{
			"user_id":  session.UserID,   // New user ID
			"username": session.Username, // Username
		}).Info("User registered")
		c.JSON(http.StatusCreated, session) // Return token, userId and username
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		session, err := svc.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			// Unknown user and wrong password share one answer
			respondError(c, err, logrus.Fields{"username": req.Username})
			return
		}
		c.JSON(http.StatusOK, session) // Return the token in the response
	}
}
