package service

import (
	"errors"
	"fmt"
)

// Every failure the auth core can produce maps to exactly one of these
// sentinels. Handlers translate them to HTTP outcomes; nothing here ever
// terminates the process.
var (
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// deliberately undifferentiated so login failures cannot be used to
	// enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDuplicateUser is returned when registration collides with an
	// existing active account.
	ErrDuplicateUser = errors.New("duplicate user")

	// ErrInvalidToken covers malformed tokens, bad signatures, and tokens
	// declaring an unexpected signing algorithm.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is kept distinct from ErrInvalidToken so clients can
	// prompt a re-login instead of treating it as a hard failure.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenRevoked is returned for tokens invalidated by logout.
	ErrTokenRevoked = errors.New("token revoked")

	// ErrUserNotFound is returned when a token verifies but its subject no
	// longer resolves to an active account.
	ErrUserNotFound = errors.New("user not found")

	// ErrUnauthenticated means no identity was presented at all.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden means an identity was presented but its role is not in
	// the allowed set.
	ErrForbidden = errors.New("forbidden")

	// ErrStoreUnavailable wraps collaborator I/O failures. It is the only
	// category the calling layer may reasonably retry.
	ErrStoreUnavailable = errors.New("store unavailable")
)

func storeFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}
