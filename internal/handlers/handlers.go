package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"authgate/api/internal/config"
	"authgate/api/internal/middleware"
	"authgate/api/internal/repository"
	"authgate/api/internal/security"
	"authgate/api/internal/service"
)

type HandlerSet struct {
	log   zerolog.Logger
	cfg   *config.AppConfig
	auth  *service.AuthService
	users service.UserStore
	db    *pgxpool.Pool
	cache *redis.Client
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	revocationRepo := repository.NewRevocationRepository(db, cache, log)

	auth := service.NewAuthService(
		userRepo,
		revocationRepo,
		security.NewPasswordHasher(cfg.Security.BcryptCost),
		security.NewTokenIssuer(cfg.Security.JWTSecret, cfg.Security.TokenTTL),
		log,
	)

	return HandlerSet{
		log:   log,
		cfg:   cfg,
		auth:  auth,
		users: userRepo,
		db:    db,
		cache: cache,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	auth := router.Group("/auth")
	auth.POST("/register", h.RegisterUser)
	auth.POST("/login", h.Login)

	authed := router.Group("/auth")
	authed.Use(middleware.Auth(h.auth))
	authed.POST("/logout", h.Logout)
	authed.GET("/profile", h.Profile)
	authed.GET("/verify", h.Verify)

	protected := router.Group("/protected")
	protected.Use(middleware.Auth(h.auth))
	protected.GET("/dashboard", h.Dashboard)
	protected.GET("/user-data", middleware.RequireRoles(service.AnyAuthenticated...), h.UserData)

	admin := protected.Group("")
	admin.Use(middleware.RequireRoles(service.AdminOnly...))
	admin.GET("/admin-panel", h.AdminPanel)
	admin.GET("/admin/users", h.AdminListUsers)
	admin.DELETE("/admin/users/:id", h.AdminDeactivateUser)
}
