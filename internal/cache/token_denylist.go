package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/atulsm/user-service/internal/user/domain"
)

const denylistKeyPrefix = "revoked_token:"

// RedisTokenDenylist implements domain.TokenDenylist backed by Redis. Entries
// carry a TTL equal to the token's remaining lifetime, so the denylist never
// outgrows the set of still-valid tokens.
type RedisTokenDenylist struct {
	client redis.UniversalClient
}

var _ domain.TokenDenylist = (*RedisTokenDenylist)(nil)

// NewRedisTokenDenylist constructs a Redis-backed token denylist.
func NewRedisTokenDenylist(client redis.UniversalClient) *RedisTokenDenylist {
	return &RedisTokenDenylist{client: client}
}

func (d *RedisTokenDenylist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if err := d.client.Set(ctx, denylistKeyPrefix+token, "1", ttl).Err(); err != nil {
		return fmt.Errorf("persist revocation: %w", err)
	}
	return nil
}

func (d *RedisTokenDenylist) IsRevoked(ctx context.Context, token string) (bool, error) {
	err := d.client.Get(ctx, denylistKeyPrefix+token).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load revocation: %w", err)
	}
	return true, nil
}
