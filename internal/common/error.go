// Package common defines shared constants and sentinel errors used across
// the CampusHub identity core. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound  = errors.New("not found")
	ErrorDuplicate = errors.New("already exists")

	// Service-level errors.
	ErrorInternal          = errors.New("internal error")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserNotFound        = errors.New("user not found")
	ErrOldPasswordMismatch = errors.New("old password mismatch")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token invalid or expired")

	// Authorization errors.
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrInsufficientRole = errors.New("insufficient role")
	ErrNotClubPresident = errors.New("not the club's president")
	ErrClubNotFound     = errors.New("club not found")
)
