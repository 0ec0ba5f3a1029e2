// Package service holds logic that sits between handlers and the storage or
// messaging layers: the token blocklist with its Redis cache, and the parcel
// event publisher.
package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/matwana/logistics/internal/repository"
)

// revokedKeyPrefix namespaces blocklist entries in Redis.
const revokedKeyPrefix = "revoked:"

// Blocklist answers "is this jti revoked?" for every authenticated request,
// and records revocations at logout.  MySQL's token_blocklist table is the
// source of truth; Redis is a cache-aside layer so the per-request check
// does not always cost a database round trip.  Only positive (revoked)
// results are cached: a cache miss must always fall through to the ledger
// before the token is trusted.
type Blocklist struct {
	Tokens *repository.TokenRepo
	RDB    *redis.Client // nil disables caching
	TTL    time.Duration // cache entry lifetime; should cover the access-token TTL
}

func NewBlocklist(tokens *repository.TokenRepo, rdb *redis.Client, ttl time.Duration) *Blocklist {
	return &Blocklist{Tokens: tokens, RDB: rdb, TTL: ttl}
}

// Revoke appends the jti to the ledger and primes the cache.  The ledger
// write is the operation that matters; a cache failure is only logged since
// IsRevoked falls back to the database anyway.
func (b *Blocklist) Revoke(ctx context.Context, jti string) error {
	if err := b.Tokens.Revoke(ctx, jti); err != nil {
		return err
	}
	if b.RDB != nil {
		if err := b.RDB.Set(ctx, revokedKeyPrefix+jti, "1", b.TTL).Err(); err != nil {
			zap.L().Warn("blocklist cache prime failed", zap.Error(err))
		}
	}
	return nil
}

// IsRevoked checks the cache first and falls through to the ledger.  Errors
// from Redis are treated as cache misses; errors from the ledger are
// returned so the caller can fail closed.
func (b *Blocklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if b.RDB != nil {
		if n, err := b.RDB.Exists(ctx, revokedKeyPrefix+jti).Result(); err == nil && n > 0 {
			return true, nil
		}
	}
	revoked, err := b.Tokens.IsRevoked(ctx, jti)
	if err != nil {
		return false, err
	}
	if revoked && b.RDB != nil {
		if err := b.RDB.Set(ctx, revokedKeyPrefix+jti, "1", b.TTL).Err(); err != nil {
			zap.L().Warn("blocklist cache prime failed", zap.Error(err))
		}
	}
	return revoked, nil
}
