package service

import (
	"context"
	"time"

	"authgate/api/internal/models"
)

// UserStore is the collaborator interface over the external user records.
// Lookups must filter inactive accounts; Create reports a unique-constraint
// collision as repository.ErrDuplicateUser.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
	Create(ctx context.Context, user models.User) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	List(ctx context.Context) ([]models.User, error)
	Deactivate(ctx context.Context, id string) error
}

// RevocationStore records tokens that must no longer be accepted. Revoke is
// idempotent and keyed on the exact token string; a revoke must be visible to
// a subsequent IsRevoked for the same string.
type RevocationStore interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
