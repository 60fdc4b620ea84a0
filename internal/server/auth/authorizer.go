package auth

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/gophusers/internal/common"
)

// Authorizer turns a bearer token into the id of the authenticated user.
type Authorizer interface {
	Authorize(ctx context.Context, token string) (string, error)
}

type JWTAuthorizer struct {
	secret []byte
}

func NewJWTAuthorizer(secret []byte) *JWTAuthorizer {
	return &JWTAuthorizer{secret: secret}
}

func (a *JWTAuthorizer) Authorize(ctx context.Context, token string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", common.ErrInvalidToken
	}
	return GetUserIDFromToken(token, a.secret)
}
