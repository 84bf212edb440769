package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RevocationRepository is the revoked-token registry: a durable Postgres
// table fronted by a Redis read-through cache. Rows are keyed by the SHA-256
// of the token string so raw bearer tokens are never stored at rest.
//
// Only positive answers are cached. A "not revoked" result is always taken
// from Postgres, so a concurrent revoke is visible to the next IsRevoked call
// for the same token string.
type RevocationRepository struct {
	pool  *pgxpool.Pool
	cache *redis.Client
	log   zerolog.Logger
}

func NewRevocationRepository(pool *pgxpool.Pool, cache *redis.Client, log zerolog.Logger) *RevocationRepository {
	return &RevocationRepository{pool: pool, cache: cache, log: log}
}

func (r *RevocationRepository) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	key := hashToken(token)

	// ON CONFLICT DO NOTHING makes a second revoke of the same token a
	// no-op success.
	const query = `
		INSERT INTO revoked_tokens (token_hash, revoked_at, expires_at)
		VALUES ($1, NOW(), $2)
		ON CONFLICT (token_hash) DO NOTHING
	`
	if _, err := r.pool.Exec(ctx, query, key, expiresAt); err != nil {
		return err
	}

	r.cacheRevoked(ctx, key, expiresAt)
	return nil
}

func (r *RevocationRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	key := hashToken(token)

	if r.cache != nil {
		n, err := r.cache.Exists(ctx, cacheKey(key)).Result()
		if err == nil && n > 0 {
			return true, nil
		}
		if err != nil {
			r.log.Warn().Err(err).Msg("revocation cache read failed")
		}
	}

	const query = `
		SELECT expires_at FROM revoked_tokens WHERE token_hash = $1
	`
	var expiresAt time.Time
	err := r.pool.QueryRow(ctx, query, key).Scan(&expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	r.cacheRevoked(ctx, key, expiresAt)
	return true, nil
}

// PruneExpired drops registry rows whose embedded token expiry has passed.
// Purely a storage-bound optimization: an expired token fails verification
// before the registry is ever consulted.
func (r *RevocationRepository) PruneExpired(ctx context.Context) (int64, error) {
	const query = `
		DELETE FROM revoked_tokens WHERE expires_at < NOW()
	`
	cmd, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

// cacheRevoked is best-effort: Postgres remains the source of truth and a
// cache write failure only costs a lookup later.
func (r *RevocationRepository) cacheRevoked(ctx context.Context, key string, expiresAt time.Time) {
	if r.cache == nil {
		return
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}
	if err := r.cache.Set(ctx, cacheKey(key), "1", ttl).Err(); err != nil {
		r.log.Warn().Err(err).Msg("revocation cache write failed")
	}
}

func cacheKey(hash string) string {
	return "revoked:" + hash
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
