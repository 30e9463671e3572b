package repositories

import (
	"context"
	"time"

	"casavista-listings/internal/identity/models"
)

type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	// FindByID returns (nil, nil) when no account exists.
	FindByID(ctx context.Context, id string) (*models.Account, error)
	// FindByIdentifier matches username or email, both stored lowercase.
	FindByIdentifier(ctx context.Context, identifier string) (*models.Account, error)
	FindByUsername(ctx context.Context, username string) (*models.Account, error)
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	List(ctx context.Context, offset, limit int) ([]models.Account, int64, error)
	Update(ctx context.Context, account *models.Account) error
	Deactivate(ctx context.Context, id string) error
}

// TokenDenylist records revoked token ids until their natural expiry. Entries
// outliving the token would be dead weight; entries expiring early would
// resurrect a logged-out session.
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
