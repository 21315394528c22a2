// Package services contains the server-side business logic of the identity
// core. This file implements AuthService: signup, login, refresh-token
// rotation, password change, and profile lookup.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mbenali/campushub/internal/common"
	"github.com/mbenali/campushub/internal/dbx"
	"github.com/mbenali/campushub/internal/server/auth"
	"github.com/mbenali/campushub/internal/server/config"
	"github.com/mbenali/campushub/internal/server/models"
	"github.com/mbenali/campushub/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// SignUpParams carries the signup form. Identifier, ClassGroup, and Role are
// optional; an omitted or unknown role defaults to the plain user role.
type SignUpParams struct {
	Identifier string
	Name       string
	Email      string
	Password   string
	ClassGroup string
	Role       string
}

// AuthService provides the authentication operations:
//   - SignUp: create accounts (no tokens issued; login is a separate step)
//   - Login: verify credentials and mint a token pair
//   - RefreshTokens: rotate the refresh token and mint a new pair
//   - ChangePassword: verify the old password and store a new hash
//   - Me: resolve the profile behind a verified principal
type AuthService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	bcryptCost                   int
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AuthService {
	return &AuthService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		bcryptCost:                   cfg.BcryptCost,
	}
}

// SignUp creates a new user with a hashed password. The email is checked for
// uniqueness first, then the identifier when one was supplied; either
// conflict surfaces as common.ErrorDuplicate.
func (s *AuthService) SignUp(ctx context.Context, p SignUpParams) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	if _, err := repo.FindByEmail(ctx, p.Email); err == nil {
		return nil, common.ErrorDuplicate
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error checking email: %w", err)
	}

	if p.Identifier != "" {
		if _, err := repo.FindByIdentifier(ctx, p.Identifier); err == nil {
			return nil, common.ErrorDuplicate
		} else if !errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("error checking identifier: %w", err)
		}
	}

	hash, err := auth.HashPassword(p.Password, s.bcryptCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	role, ok := models.ParseRole(p.Role)
	if !ok {
		role = models.RoleUser
	}

	user := &models.User{
		Identifier:   p.Identifier,
		FirstName:    p.Name,
		Email:        p.Email,
		ClassGroup:   p.ClassGroup,
		PasswordHash: hash,
		Role:         role,
	}

	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorDuplicate) {
			return nil, common.ErrorDuplicate
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return user, nil
}

// Login resolves the identifier against the login identifier, the email, and
// the student id, then verifies the password. Unknown user and wrong
// password both collapse into common.ErrInvalidCredentials so responses do
// not reveal which factor failed.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*TokenPair, *models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.FindByAlias(ctx, identifier)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("error resolving identifier: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, nil, common.ErrInvalidCredentials
	}

	pair, err := s.generateTokenPair(ctx, user, s.db)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// RefreshTokens validates a refresh token, rotates it, and returns a fresh
// TokenPair. The lookup requires both a value match and an unexpired row;
// rotation overwrites the user's single token row, so the presented value
// becomes permanently unusable.
func (s *AuthService) RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.FindByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrRefreshTokenExpired
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.ExpiresAt.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	user, err := s.repomanager.Users(s.db).FindByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error resolving token owner: %w", err)
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, user, tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// ChangePassword verifies oldPassword against the stored hash and replaces
// it with a hash of newPassword. A mismatch leaves the stored hash
// untouched.
func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	repo := s.repomanager.Users(s.db)

	user, err := repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrUserNotFound
		}
		return fmt.Errorf("error resolving user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, oldPassword) {
		return common.ErrOldPasswordMismatch
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return common.ErrorInternal
	}

	if err := repo.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	return nil
}

// Me returns the profile for a verified principal's user id.
func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error resolving user: %w", err)
	}
	return user, nil
}

// --- helpers below ---

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	return auth.GenerateToken(user.ID, user.Role, s.jwtSecret, s.accessTokenValidityDuration)
}

// generateRefreshToken mints the opaque token value. It carries no claims;
// validity lives entirely in the store record.
func (s *AuthService) generateRefreshToken() string {
	return uuid.NewString()
}

func (s *AuthService) generateTokenPair(ctx context.Context, user *models.User, tx dbx.DBTX) (*TokenPair, error) {
	access, err := s.generateAccessToken(user)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh := s.generateRefreshToken()

	refreshRepo := s.repomanager.RefreshTokens(tx)
	if err := refreshRepo.Upsert(ctx, user.ID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
