package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// TokenRepository persists refresh-token hashes. Raw tokens are never stored.
type TokenRepository interface {
	StoreRefresh(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	// ValidateRefresh returns the owning user id when a non-expired,
	// non-revoked token with the given hash exists.
	ValidateRefresh(ctx context.Context, tokenHash string) (uuid.UUID, error)
	// RevokeRefresh invalidates the token with the given hash without
	// deleting it, so the row keeps its audit trail.
	RevokeRefresh(ctx context.Context, tokenHash string) error
}
