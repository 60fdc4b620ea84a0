package auth

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophusers/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher derives and checks one-way password hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// BcryptHasher salts every Hash call, so equal inputs give different hashes.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Compare returns common.ErrorUnauthorized when password does not match hash.
func (h *BcryptHasher) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return common.ErrorUnauthorized
	}
	if err != nil {
		return fmt.Errorf("compare password: %w", err)
	}
	return nil
}
