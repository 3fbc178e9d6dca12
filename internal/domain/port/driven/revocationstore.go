package driven

import (
	"context"
	"time"
)

// RevocationStore defines the driven port for signed-out session tokens.
// Revoking an already revoked token is not an error.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
