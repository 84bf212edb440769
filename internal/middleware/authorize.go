package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"authgate/api/internal/models"
	"authgate/api/internal/service"
)

// RequireRoles gates a route on role membership. Authentication failures and
// authorization failures stay distinguishable: no identity is 401, an
// identity outside the allowed set is 403.
func RequireRoles(allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := service.Authorize(CurrentUser(c), allowed...)
		switch {
		case err == nil:
			c.Next()
		case errors.Is(err, service.ErrUnauthenticated):
			abortError(c, http.StatusUnauthorized, "Authentication required")
		default:
			abortError(c, http.StatusForbidden, "Insufficient permissions")
		}
	}
}
