// Package challenges stores the pending second-factor codes of staff
// sign-ins, keyed by email.
package challenges

import (
	"context"

	"github.com/dmitrijs2005/casiec/internal/server/models"
)

type Repository interface {
	// Upsert replaces any challenge already pending for c.Email.
	Upsert(ctx context.Context, c *models.Challenge) error
	Find(ctx context.Context, email string) (*models.Challenge, error)
	// IncrementAttempts records a verification attempt and returns the new
	// attempt count.
	IncrementAttempts(ctx context.Context, email string) (int, error)
	Delete(ctx context.Context, email string) error
}
