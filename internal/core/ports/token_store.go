package ports

import (
	"context"
	"time"
)

// TokenDenylist records revoked token IDs until the token would have expired.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
