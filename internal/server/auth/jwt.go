// Package auth issues and verifies HS256 access tokens and hashes
// passwords with bcrypt.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/gophusers/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the registered claims plus the id of the token owner.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// now is a seam for tests.
var now = time.Now

func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	issued := now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(validityDuration)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken verifies tokenString and returns its UserID claim.
// Expired tokens yield common.ErrTokenExpired; every other failure yields
// common.ErrInvalidToken.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}
