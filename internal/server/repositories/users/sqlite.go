package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophusers/internal/common"
	"github.com/dmitrijs2005/gophusers/internal/dbx"
	"github.com/dmitrijs2005/gophusers/internal/server/models"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteRepository is the embedded-store gateway used for local runs and
// tests. The caller is expected to serialise writes (one open connection).
type SQLiteRepository struct {
	db dbx.DBTX
}

var _ Repository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (id, name, email, password)
		 VALUES (?, ?, ?, ?)
		 RETURNING id, name, email, password`

	created, err := scanUser(r.db.QueryRowContext(ctx, query,
		newID(), user.Name, user.Email, user.Password))
	if err != nil {
		if isSQLiteUniqueViolation(err) {
			return nil, errors.Join(common.ErrorAlreadyExists, err)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return created, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, password FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, `SELECT id, name, email, password FROM users WHERE id = ?`, id)
}

func (r *SQLiteRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, `SELECT id, name, email, password FROM users WHERE email = ?`, email)
}

func (r *SQLiteRepository) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	query :=
		`UPDATE users SET name = COALESCE(?, name), password = COALESCE(?, password)
		 WHERE id = ?
		 RETURNING id, name, email, password`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, nullable(patch.Name), nullable(patch.Password), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *SQLiteRepository) getOne(ctx context.Context, query string, arg string) (*models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func isSQLiteUniqueViolation(err error) bool {
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return false
}
