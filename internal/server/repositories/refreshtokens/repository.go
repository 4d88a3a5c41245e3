// Package refreshtokens declares the repository contract for the refresh
// tokens that keep API sessions alive between access-token expiries.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/budgettracker/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and revoking refresh tokens.
type Repository interface {
	// Create stores a new refresh token for userID valid until expiresAt.
	Create(ctx context.Context, userID string, token string, expiresAt time.Time) error

	// Find returns common.ErrorNotFound when the token is absent.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes a token. Deleting a non-existent token is not an error.
	Delete(ctx context.Context, token string) error

	// Consume deletes a token and reports whether it was present. Of two
	// concurrent calls for the same token at most one sees true.
	Consume(ctx context.Context, token string) (bool, error)

	// DeleteExpired removes every token that expired before now and reports
	// how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
