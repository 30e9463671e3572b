package repositories

import (
	"context"
	"time"

	"casavista-listings/pkg/cache"
)

// tokenDenylist stores revoked jti values in Redis with a TTL matching the
// token's remaining lifetime.
type tokenDenylist struct{}

func NewTokenDenylist() TokenDenylist {
	return &tokenDenylist{}
}

func (d *tokenDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already expired; nothing to deny.
		return nil
	}
	return cache.Set(ctx, cache.TokenDenylistKey(jti), "revoked", ttl)
}

func (d *tokenDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return cache.Exists(ctx, cache.TokenDenylistKey(jti))
}
