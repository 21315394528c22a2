package models

import "time"

// RefreshToken is the single session-continuation record a user may hold.
// UserID is the unique key: issuing a new token overwrites the previous row,
// which is what invalidates superseded tokens.
type RefreshToken struct {
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}
