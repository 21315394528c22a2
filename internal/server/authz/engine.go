// Package authz implements the access-control decision engine. One
// evaluation per request: role requirements come from the route, the
// principal from the verified access token, and the club id (when the route
// is club-scoped) from the request path.
package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/mbenali/campushub/internal/common"
	"github.com/mbenali/campushub/internal/server/models"
)

// Principal is the verified identity behind the current request. It exists
// only for the duration of request handling.
type Principal struct {
	UserID string
	Role   models.Role
}

// ResourceContext carries the optional resource scope of an operation.
// ClubID is empty for routes that are not club-scoped.
type ResourceContext struct {
	ClubID string
}

// OwnershipLookup resolves a club to the slice of club data the engine
// needs. Implementations return common.ErrorNotFound for unknown clubs.
type OwnershipLookup interface {
	Find(ctx context.Context, clubID string) (*models.Club, error)
}

// Engine decides whether a principal may perform an operation. It holds no
// state; the only side effect is the ownership lookup for club-scoped
// president checks.
type Engine struct {
	clubs OwnershipLookup
}

func NewEngine(clubs OwnershipLookup) *Engine {
	return &Engine{clubs: clubs}
}

// Authorize evaluates the decision procedure in order, first match wins:
//
//  1. no required roles: public operation, allow
//  2. no principal: deny unauthenticated
//  3. admin: allow unconditionally
//  4. president with a club in scope: allow only the club's president
//  5. president without a club in scope: allow on role alone
//  6. otherwise: allow iff the role is in the required set
//
// Branch 5 is deliberately coarse: president-only routes that carry no club
// id are gated on the role alone.
//
// A nil result is an allow; sentinel errors from internal/common describe
// the deny reason. Lookup failures other than a miss propagate unclassified.
func (e *Engine) Authorize(ctx context.Context, required []models.Role, p *Principal, res ResourceContext) error {
	if len(required) == 0 {
		return nil
	}

	if p == nil {
		return common.ErrUnauthenticated
	}

	if p.Role == models.RoleAdmin {
		return nil
	}

	if p.Role == models.RolePresident {
		if res.ClubID == "" {
			return nil
		}

		club, err := e.clubs.Find(ctx, res.ClubID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrClubNotFound
			}
			return fmt.Errorf("club lookup: %w", err)
		}

		if club.President.Key() != p.UserID {
			return common.ErrNotClubPresident
		}
		return nil
	}

	for _, r := range required {
		if p.Role == r {
			return nil
		}
	}

	return common.ErrInsufficientRole
}
