package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/casiec/internal/server/models"
)

// Repository stores refresh tokens by their hash.
type Repository interface {
	Create(ctx context.Context, userID string, tokenHash string, validity time.Duration) error
	Find(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Delete(ctx context.Context, tokenHash string) error
	DeleteByUser(ctx context.Context, userID string) error
}
