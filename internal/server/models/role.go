package models

// Role is the platform-wide role attached to a user account.
//
// Only Admin, President, and User influence authorization decisions; Teacher
// and Parent exist for the rest of the platform (document requests, parent
// accounts) and behave like plain required-role entries.
type Role string

const (
	RoleAdmin     Role = "admin"
	RolePresident Role = "president"
	RoleUser      Role = "user"
	RoleTeacher   Role = "teacher"
	RoleParent    Role = "parent"
)

// ParseRole maps a stored or transmitted role string to a Role.
// The second result is false for values outside the enum.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RolePresident, RoleUser, RoleTeacher, RoleParent:
		return Role(s), true
	}
	return "", false
}
