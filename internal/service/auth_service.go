package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"authgate/api/internal/ids"
	"authgate/api/internal/models"
	"authgate/api/internal/repository"
	"authgate/api/internal/security"
)

type AuthService struct {
	users     UserStore
	revoked   RevocationStore
	passwords security.PasswordHasher
	tokens    *security.TokenIssuer
	log       zerolog.Logger
}

func NewAuthService(
	users UserStore,
	revoked RevocationStore,
	passwords security.PasswordHasher,
	tokens *security.TokenIssuer,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		revoked:   revoked,
		passwords: passwords,
		tokens:    tokens,
		log:       log,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

type AuthResult struct {
	Token string
	User  models.User
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (AuthResult, error) {
	email := normalizeEmail(input.Email)

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return AuthResult{}, ErrDuplicateUser
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return AuthResult{}, storeFailure("find user by email", err)
	}

	// Self-registration never grants admin: a requested admin role is
	// silently downgraded.
	role := models.ParseRole(input.Role)
	if role == models.RoleAdmin {
		role = models.RoleUser
	}

	passwordHash, err := s.passwords.Hash(input.Password)
	if err != nil {
		return AuthResult{}, err
	}

	user := models.User{
		ID:           ids.New(),
		Username:     strings.TrimSpace(input.Username),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return AuthResult{}, ErrDuplicateUser
		}
		return AuthResult{}, storeFailure("create user", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return AuthResult{}, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")

	return AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Login(ctx context.Context, email string, password string) (AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, storeFailure("find user by email", err)
	}

	if err := s.passwords.Verify(password, user.PasswordHash); err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}

	// The returned record keeps the previous last-login instant; the update
	// becomes visible on the next lookup. Failing it does not block login.
	if err := s.users.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("update last login failed")
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{Token: token, User: user}, nil
}

// Authenticate resolves a bearer token to a live identity. The checks run in
// a fixed order, each a distinct rejection point: signature, expiry,
// revocation, then identity resolution. The token only proves who the caller
// is; role and active status come fresh from the store, so changes made there
// take effect on the very next request.
func (s *AuthService) Authenticate(ctx context.Context, tokenStr string) (models.User, error) {
	claims, err := s.tokens.Parse(tokenStr)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.User{}, ErrTokenExpired
		}
		return models.User{}, ErrInvalidToken
	}

	revoked, err := s.revoked.IsRevoked(ctx, tokenStr)
	if err != nil {
		return models.User{}, storeFailure("check revocation", err)
	}
	if revoked {
		return models.User{}, ErrTokenRevoked
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, storeFailure("find user by id", err)
	}

	return user, nil
}

// Logout revokes the exact presented token. Other tokens issued for the same
// user stay valid; each session is an independently revocable unit. Revoking
// an already-revoked token is a no-op success.
func (s *AuthService) Logout(ctx context.Context, tokenStr string) error {
	expiresAt, err := s.tokens.ExpiresAt(tokenStr)
	if err != nil {
		// Verified upstream, so a decode failure here is unexpected;
		// fall back to the configured lifetime rather than refuse.
		expiresAt = time.Now().Add(s.tokens.TTL())
	}

	if err := s.revoked.Revoke(ctx, tokenStr, expiresAt); err != nil {
		return storeFailure("revoke token", err)
	}
	return nil
}

// Authorize is the access-control gate: a pure function of identity and
// policy, never of the request. A zero identity is unauthenticated; a known
// identity outside the allowed set is forbidden.
func Authorize(user models.User, allowed ...models.Role) error {
	if user.ID == "" {
		return ErrUnauthenticated
	}
	for _, role := range allowed {
		if user.Role == role {
			return nil
		}
	}
	return ErrForbidden
}

// Standing policies for the protected surface.
var (
	AnyAuthenticated = []models.Role{models.RoleUser, models.RoleAdmin}
	AdminOnly        = []models.Role{models.RoleAdmin}
)

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
