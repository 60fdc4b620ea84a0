package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophusers/internal/common"
	"github.com/dmitrijs2005/gophusers/internal/logging"
	"github.com/dmitrijs2005/gophusers/internal/server/auth"
	"github.com/dmitrijs2005/gophusers/internal/server/models"
)

// UserFinder is the lookup AuthService needs from the user store.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService exchanges credentials for access tokens.
type AuthService struct {
	users     UserFinder
	hasher    auth.PasswordHasher
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    logging.Logger
}

func NewAuthService(users UserFinder, hasher auth.PasswordHasher, secret []byte, ttl time.Duration, logger logging.Logger) *AuthService {
	return &AuthService{
		users:     users,
		hasher:    hasher,
		jwtSecret: secret,
		tokenTTL:  ttl,
		logger:    logger.With("module", "auth_service"),
	}
}

// Login returns a signed access token for the user owning email.
// An unknown email and a wrong password both yield common.ErrorUnauthorized.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Debug(ctx, "login for unknown email")
			return "", common.ErrorUnauthorized
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := s.hasher.Compare(user.Password, password); err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			s.logger.Debug(ctx, "login with wrong password", "id", user.ID)
			return "", common.ErrorUnauthorized
		}
		return "", err
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}
