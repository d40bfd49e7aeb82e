package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/CamiloArboledaG/reviewHub/pkg/cache"
)

const revokedKeyPrefix = "session:revoked:"

// RevocationList is a Redis-backed jti denylist. Entries live only as
// long as the token they revoke would have, so the set stays small.
type RevocationList struct {
	cache *cache.RedisClient
}

func NewRevocationList(cache *cache.RedisClient) *RevocationList {
	return &RevocationList{cache: cache}
}

func (l *RevocationList) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := l.cache.Set(ctx, revokedKeyPrefix+jti, "1", ttl); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (l *RevocationList) IsRevoked(ctx context.Context, jti string) (bool, error) {
	_, err := l.cache.Get(ctx, revokedKeyPrefix+jti)
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check session revocation: %w", err)
	}
	return true, nil
}
