package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"authgate/api/internal/middleware"
	"authgate/api/internal/repository"
)

// The protected surface demonstrates the two standing policies: any
// authenticated identity, and admin only. None of these handlers re-check the
// token; the gate already ran.

func (h HandlerSet) Dashboard(c *gin.Context) {
	respondOK(c, http.StatusOK, "Welcome to your dashboard!", gin.H{
		"user":      toUserResponse(middleware.CurrentUser(c)),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h HandlerSet) UserData(c *gin.Context) {
	user := middleware.CurrentUser(c)
	respondOK(c, http.StatusOK, "This is user-specific data", gin.H{
		"userId":      user.ID,
		"username":    user.Username,
		"role":        string(user.Role),
		"accessLevel": "user",
	})
}

func (h HandlerSet) AdminPanel(c *gin.Context) {
	respondOK(c, http.StatusOK, "Welcome to the admin panel!", gin.H{
		"adminUser":   toUserResponse(middleware.CurrentUser(c)),
		"accessLevel": "admin",
		"permissions": []string{"read", "write", "delete", "manage_users"},
	})
}

func (h HandlerSet) AdminListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list users failed")
		respondError(c, http.StatusServiceUnavailable, "Service temporarily unavailable")
		return
	}

	resp := make([]userResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, toUserResponse(user))
	}

	respondOK(c, http.StatusOK, "Users retrieved successfully", gin.H{
		"users": resp,
		"total": len(resp),
	})
}

func (h HandlerSet) AdminDeactivateUser(c *gin.Context) {
	id := c.Param("id")

	if id == middleware.CurrentUser(c).ID {
		respondError(c, http.StatusBadRequest, "Cannot deactivate your own account")
		return
	}

	if err := h.users.Deactivate(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		h.log.Error().Err(err).Str("user_id", id).Msg("deactivate user failed")
		respondError(c, http.StatusServiceUnavailable, "Service temporarily unavailable")
		return
	}

	respondOK(c, http.StatusOK, "User deactivated", nil)
}
