// Package clubs declares the read-only club lookup the authorization engine
// uses to resolve presidency. Club management itself lives outside the
// identity core.
package clubs

import (
	"context"

	"github.com/mbenali/campushub/internal/server/models"
)

// Repository resolves clubs for ownership checks. Misses are reported as
// common.ErrorNotFound.
type Repository interface {
	Find(ctx context.Context, clubID string) (*models.Club, error)
}
