package models

// UserRef points at a user either by bare id or as an expanded record,
// depending on whether the producing query joined the users table. Key
// reduces both shapes to the canonical id string, so ownership comparisons
// never depend on which shape arrived.
type UserRef struct {
	ID   string
	User *User
}

// Key returns the canonical user id for either representation. Empty when
// the reference is unset.
func (r UserRef) Key() string {
	if r.User != nil {
		return r.User.ID
	}
	return r.ID
}

// Club is the slice of club data the identity core reads: who presides over
// it. Everything else about clubs belongs to the club-management service.
type Club struct {
	ID        string
	Name      string
	President UserRef
}
