package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{name: "first and last", user: User{FirstName: "Amine", LastName: "Ben Ali", Email: "a@x.com"}, want: "Amine Ben Ali"},
		{name: "first only", user: User{FirstName: "Amine", Email: "a@x.com"}, want: "Amine"},
		{name: "last only", user: User{LastName: "Ben Ali", Email: "a@x.com"}, want: "Ben Ali"},
		{name: "whitespace only falls back to email", user: User{FirstName: "  ", LastName: " ", Email: "a@x.com"}, want: "a@x.com"},
		{name: "empty falls back to email", user: User{Email: "a@x.com"}, want: "a@x.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.DisplayName())
		})
	}
}

func TestUserRef_Key(t *testing.T) {
	assert.Equal(t, "u1", UserRef{ID: "u1"}.Key())
	assert.Equal(t, "u2", UserRef{ID: "ignored", User: &User{ID: "u2"}}.Key())
	assert.Equal(t, "", UserRef{}.Key())
}

func TestParseRole(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RolePresident, RoleUser, RoleTeacher, RoleParent} {
		got, ok := ParseRole(string(r))
		assert.True(t, ok)
		assert.Equal(t, r, got)
	}

	_, ok := ParseRole("superuser")
	assert.False(t, ok)
}
