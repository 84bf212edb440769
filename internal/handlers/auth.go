package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"authgate/api/internal/middleware"
	"authgate/api/internal/models"
	"authgate/api/internal/service"
)

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30,alphanum"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin"`
}

type userResponse struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

type authResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

func (h HandlerSet) RegisterUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "User registered successfully", authResponse{
		User:  toUserResponse(result.User),
		Token: result.Token,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Login successful", authResponse{
		User:  toUserResponse(result.User),
		Token: result.Token,
	})
}

// Logout revokes the token the request authenticated with. Running behind the
// Auth middleware guarantees the token already verified.
func (h HandlerSet) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), middleware.CurrentToken(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Logged out successfully", nil)
}

func (h HandlerSet) Profile(c *gin.Context) {
	respondOK(c, http.StatusOK, "", gin.H{
		"user": toUserResponse(middleware.CurrentUser(c)),
	})
}

func (h HandlerSet) Verify(c *gin.Context) {
	respondOK(c, http.StatusOK, "Token is valid", gin.H{
		"user": toUserResponse(middleware.CurrentUser(c)),
	})
}

func toUserResponse(user models.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
		LastLogin: user.LastLogin,
	}
}
