package auth

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// RevocationStore keeps a denylist of logged-out token ids until their
// natural expiry. Redis failures degrade open: a token is only treated
// as revoked on a positive hit.
type RevocationStore struct {
	client *redis.Client
}

func NewRevocationStore(client *redis.Client) *RevocationStore {
	return &RevocationStore{client: client}
}

func revocationKey(jti string) string {
	return "revoked:" + jti
}

func (s *RevocationStore) Revoke(ctx context.Context, jti string, expiry time.Time) error {
	if s == nil || s.client == nil || jti == "" {
		return nil
	}

	ttl := time.Until(expiry)
	if ttl <= 0 {
		return nil
	}

	return s.client.Set(ctx, revocationKey(jti), "1", ttl).Err()
}

func (s *RevocationStore) IsRevoked(ctx context.Context, jti string) bool {
	if s == nil || s.client == nil || jti == "" {
		return false
	}

	n, err := s.client.Exists(ctx, revocationKey(jti)).Result()
	if err != nil {
		return false
	}
	return n > 0
}
