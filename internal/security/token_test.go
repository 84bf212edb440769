package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authgate/api/internal/models"
)

const testSecret = "test-signing-secret"

func TestTokenIssueParseRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)

	token, err := issuer.Issue("user-1", models.RoleAdmin)
	require.NoError(t, err)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "user-1", claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenParseExpired(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, -time.Minute)

	token, err := issuer.Issue("user-1", models.RoleUser)
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenParseWrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("right-secret", time.Hour).Issue("user-1", models.RoleUser)
	require.NoError(t, err)

	_, err = NewTokenIssuer("wrong-secret", time.Hour).Parse(token)
	require.Error(t, err)
	assert.NotErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenParseGarbage(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)

	for _, garbage := range []string{"", "garbage", "a.b.c", "not.a.jwt"} {
		_, err := issuer.Parse(garbage)
		assert.Error(t, err, "input %q", garbage)
	}
}

func TestTokenParseRejectsUnsignedAlgorithm(t *testing.T) {
	claims := AccessClaims{
		UserID: "user-1",
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenIssuer(testSecret, time.Hour).Parse(token)
	assert.Error(t, err)
}

func TestTokenExpiresAtOnExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, -time.Minute)

	token, err := issuer.Issue("user-1", models.RoleUser)
	require.NoError(t, err)

	expiresAt, err := issuer.ExpiresAt(token)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(-time.Minute), expiresAt, time.Minute)
}

func TestTokenExpiresAtRejectsBadSignature(t *testing.T) {
	token, err := NewTokenIssuer("other-secret", time.Hour).Issue("user-1", models.RoleUser)
	require.NoError(t, err)

	_, err = NewTokenIssuer(testSecret, time.Hour).ExpiresAt(token)
	assert.Error(t, err)
}
