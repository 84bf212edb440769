package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"authgate/api/internal/service"
)

func respondOK(c *gin.Context, status int, message string, data any) {
	body := gin.H{
		"success": true,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// respondServiceError maps the auth error taxonomy onto HTTP outcomes.
// Credential and token failures stay 401 without revealing which check
// failed, expiry excepted; role rejection is 403; collaborator failure is the
// one retryable 5xx.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, service.ErrDuplicateUser):
		respondError(c, http.StatusConflict, "User with this email already exists")
	case errors.Is(err, service.ErrTokenExpired):
		respondError(c, http.StatusUnauthorized, "Token expired")
	case errors.Is(err, service.ErrTokenRevoked):
		respondError(c, http.StatusUnauthorized, "Token has been invalidated")
	case errors.Is(err, service.ErrInvalidToken):
		respondError(c, http.StatusUnauthorized, "Invalid token")
	case errors.Is(err, service.ErrUserNotFound):
		respondError(c, http.StatusUnauthorized, "User not found")
	case errors.Is(err, service.ErrUnauthenticated):
		respondError(c, http.StatusUnauthorized, "Authentication required")
	case errors.Is(err, service.ErrForbidden):
		respondError(c, http.StatusForbidden, "Insufficient permissions")
	case errors.Is(err, service.ErrStoreUnavailable):
		respondError(c, http.StatusServiceUnavailable, "Service temporarily unavailable")
	default:
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
