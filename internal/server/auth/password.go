package auth

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost matches the work factor the platform has always used.
const DefaultBcryptCost = 10

// HashPassword derives a salted bcrypt hash of the plaintext password.
// A cost outside bcrypt's supported range falls back to DefaultBcryptCost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext password matches the stored
// bcrypt hash. A corrupted or foreign hash format counts as a mismatch.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
