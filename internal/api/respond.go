package api

import (
	"encoding/json" // Strict request decoding
	"errors"        // Error kind matching
	"io"            // Body end detection
	"net/http"      // HTTP status codes

	"budget_tracker/internal/domain" // Error kinds

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// bindStrict decodes the JSON body into dst, rejecting unknown fields
func bindStrict(c *gin.Context, dst any) error {
	return bindBody(c, dst, false)
}

// bindOptional is bindStrict for routes where an empty body means "no fields"
func bindOptional(c *gin.Context, dst any) error {
	return bindBody(c, dst, true)
}

func bindBody(c *gin.Context, dst any, optional bool) error {
	if c.Request.Body == nil {
		if optional {
			return nil
		}
		return domain.NewError(domain.ErrValidation, "Request body is required")
	}
	dec := json.NewDecoder(c.Request.Body) // Decode straight from the body
	dec.DisallowUnknownFields()            // Malformed payloads fail at the boundary
	if err := dec.Decode(dst); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return nil // Empty body
		}
		return domain.NewError(domain.ErrValidation, "Invalid request: "+err.Error())
	}
	// Exactly one JSON value per body
	if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		return domain.NewError(domain.ErrValidation, "Invalid request: unexpected data after JSON body")
	}
	return nil
}

// statusFor maps an error kind onto its HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// respondError writes {message} for err; unexpected errors are logged and hidden
func respondError(c *gin.Context, err error, fields logrus.Fields) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logrus.WithFields(fields).WithError(err).Error("Request failed") // Log the cause, keep it from the client
		c.JSON(status, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"message": domain.Message(err, err.Error())})
}
