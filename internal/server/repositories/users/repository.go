// Package users declares the credential-store contract of the identity core.
package users

import (
	"context"

	"github.com/mbenali/campushub/internal/server/models"
)

// Repository defines the user lookups and mutations the authentication
// service depends on. Lookup misses are reported as common.ErrorNotFound;
// unique violations on Create as common.ErrorDuplicate.
type Repository interface {
	// Create stores a new user and returns it with the assigned id.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// FindByID returns the user with the given internal id.
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByAlias matches the supplied value against the dedicated login
	// identifier, the email, and the secondary student id, returning the
	// first user any of them resolves to.
	FindByAlias(ctx context.Context, alias string) (*models.User, error)

	// FindByEmail returns the user owning the given email.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByIdentifier returns the user owning the given login identifier.
	FindByIdentifier(ctx context.Context, identifier string) (*models.User, error)

	// UpdatePassword replaces the stored password hash for the user.
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
}
