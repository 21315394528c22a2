package models

import (
	"strings"
	"time"
)

// User is the identity record stored in the credential store.
//
// Identifier is the dedicated login id (e.g. "ST12345", "PROF.AHMED"); it is
// optional and unique when present. StudentID is a secondary id that login
// also accepts as an alias. Email is always present and unique.
type User struct {
	ID           string
	Identifier   string
	StudentID    string
	FirstName    string
	LastName     string
	Email        string
	Age          int
	Avatar       string
	ClassGroup   string
	PasswordHash string
	Role         Role
	Clubs        []string
	PresidentOf  string
	CreatedAt    time.Time
}

// DisplayName returns "First Last" with surrounding whitespace trimmed,
// falling back to the email address when both name parts are empty.
func (u *User) DisplayName() string {
	full := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if full == "" {
		return u.Email
	}
	return full
}
