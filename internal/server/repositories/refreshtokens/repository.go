// Package refreshtokens declares the refresh-token store contract: at most
// one live token per user, overwritten in place on every issuance.
package refreshtokens

import (
	"context"
	"time"

	"github.com/mbenali/campushub/internal/server/models"
)

// Repository defines operations for issuing and resolving refresh tokens.
type Repository interface {
	// Upsert stores token for userID with an expiry of now+validity,
	// replacing any previous token the user held. The replaced value
	// becomes permanently unusable.
	Upsert(ctx context.Context, userID string, token string, validity time.Duration) error

	// FindByToken looks up a token by its opaque value and returns its
	// metadata. Implementations return common.ErrorNotFound when absent;
	// expiry is the caller's check.
	FindByToken(ctx context.Context, token string) (*models.RefreshToken, error)
}
