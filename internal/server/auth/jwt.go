// Package auth implements the stateless credential primitives of the
// identity core: signing and verifying HS256 access tokens, and hashing and
// checking passwords.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mbenali/campushub/internal/common"
	"github.com/mbenali/campushub/internal/server/models"
)

// Claims carries the registered claims plus the role the subject held at
// issuance. The subject id lives in RegisteredClaims.Subject.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// GenerateToken signs an access token for userID with the given role,
// valid for validityDuration from now.
func GenerateToken(userID string, role models.Role, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Role: string(role),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// VerifyToken checks signature and expiry and returns the subject id and
// role. Expired tokens map to common.ErrTokenExpired; every other failure,
// including an out-of-enum role claim, maps to common.ErrInvalidToken.
func VerifyToken(tokenString string, secretKey []byte) (string, models.Role, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", common.ErrTokenExpired
		}
		return "", "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return "", "", common.ErrInvalidToken
	}

	role, ok := models.ParseRole(claims.Role)
	if !ok {
		return "", "", common.ErrInvalidToken
	}

	return claims.Subject, role, nil
}
