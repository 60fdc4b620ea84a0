// Package users implements persistence of models.User over database/sql.
// PostgresRepository and SQLiteRepository satisfy the same Repository
// contract, including the mapping of store failures onto common errors.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophusers/internal/server/models"
	"github.com/google/uuid"
)

// Repository is the persistence gateway for users.
//
// Reads and writes touching an absent id return common.ErrorNotFound.
// Create returns common.ErrorAlreadyExists when the email unique constraint
// is violated.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

// newID is a seam for tests that need deterministic identifiers.
var newID = uuid.NewString

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Password); err != nil {
		return nil, err
	}
	return user, nil
}

// nullable turns an absent patch field into SQL NULL so COALESCE keeps the
// stored value.
func nullable(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
