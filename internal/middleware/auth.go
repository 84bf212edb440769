package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"authgate/api/internal/models"
	"authgate/api/internal/service"
)

const (
	ctxKeyUser  = "current_user"
	ctxKeyToken = "access_token"
)

// Authenticator resolves a bearer token to a live identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.User, error)
}

// Auth verifies the Authorization header on every protected request and
// stashes the resolved identity in the gin context. Expired tokens get their
// own message so clients can prompt a re-login; every other token failure is
// a uniform 401.
func Auth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			abortError(c, http.StatusUnauthorized, "Access token required")
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")

		user, err := auth.Authenticate(c.Request.Context(), tokenStr)
		if err != nil {
			status, message := statusForAuthError(err)
			abortError(c, status, message)
			return
		}

		c.Set(ctxKeyToken, tokenStr)
		c.Set(ctxKeyUser, user)

		c.Next()
	}
}

func statusForAuthError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrTokenExpired):
		return http.StatusUnauthorized, "Token expired"
	case errors.Is(err, service.ErrTokenRevoked):
		return http.StatusUnauthorized, "Token has been invalidated"
	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusUnauthorized, "User not found"
	case errors.Is(err, service.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "Service temporarily unavailable"
	default:
		return http.StatusUnauthorized, "Invalid token"
	}
}

// CurrentUser returns the identity resolved by Auth, or a zero user when the
// request never passed authentication.
func CurrentUser(c *gin.Context) models.User {
	val, exists := c.Get(ctxKeyUser)
	if !exists {
		return models.User{}
	}
	user, ok := val.(models.User)
	if !ok {
		return models.User{}
	}
	return user
}

// CurrentToken returns the verified bearer token for the request.
func CurrentToken(c *gin.Context) string {
	return c.GetString(ctxKeyToken)
}

func abortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"message": message,
	})
}
