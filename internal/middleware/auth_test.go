package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authgate/api/internal/models"
	"authgate/api/internal/service"
)

type stubAuthenticator struct {
	user models.User
	err  error
}

func (s stubAuthenticator) Authenticate(_ context.Context, _ string) (models.User, error) {
	return s.user, s.err
}

func newTestRouter(auth Authenticator, allowed ...models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	group := engine.Group("/protected")
	group.Use(Auth(auth))
	if len(allowed) > 0 {
		group.Use(RequireRoles(allowed...))
	}
	group.GET("/resource", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId": CurrentUser(c).ID,
			"token":  CurrentToken(c),
		})
	})

	return engine
}

func doRequest(t *testing.T, engine *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected/resource", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthMissingHeader(t *testing.T) {
	engine := newTestRouter(stubAuthenticator{})

	for _, header := range []string{"", "Basic abc", "token-without-scheme"} {
		rec := doRequest(t, engine, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.Equal(t, "Access token required", decodeBody(t, rec)["message"])
	}
}

func TestAuthResolvesIdentity(t *testing.T) {
	engine := newTestRouter(stubAuthenticator{
		user: models.User{ID: "user-1", Role: models.RoleUser},
	})

	rec := doRequest(t, engine, "Bearer some-token")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "user-1", body["userId"])
	assert.Equal(t, "some-token", body["token"])
}

func TestAuthErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"invalid", service.ErrInvalidToken, http.StatusUnauthorized, "Invalid token"},
		{"expired", service.ErrTokenExpired, http.StatusUnauthorized, "Token expired"},
		{"revoked", service.ErrTokenRevoked, http.StatusUnauthorized, "Token has been invalidated"},
		{"gone", service.ErrUserNotFound, http.StatusUnauthorized, "User not found"},
		{"store", service.ErrStoreUnavailable, http.StatusServiceUnavailable, "Service temporarily unavailable"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := newTestRouter(stubAuthenticator{err: tc.err})
			rec := doRequest(t, engine, "Bearer some-token")
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.message, decodeBody(t, rec)["message"])
		})
	}
}

func TestRequireRolesForbidsWrongRole(t *testing.T) {
	engine := newTestRouter(stubAuthenticator{
		user: models.User{ID: "user-1", Role: models.RoleUser},
	}, service.AdminOnly...)

	rec := doRequest(t, engine, "Bearer some-token")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Insufficient permissions", decodeBody(t, rec)["message"])
}

func TestRequireRolesAllowsAdmin(t *testing.T) {
	engine := newTestRouter(stubAuthenticator{
		user: models.User{ID: "admin-1", Role: models.RoleAdmin},
	}, service.AdminOnly...)

	rec := doRequest(t, engine, "Bearer some-token")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRolesWithoutAuthIsUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/resource", RequireRoles(service.AnyAuthenticated...), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Authentication required", decodeBody(t, rec)["message"])
}
