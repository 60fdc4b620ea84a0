// Package services contains server-side business logic between the HTTP
// handlers and the repositories.
package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophusers/internal/logging"
	"github.com/dmitrijs2005/gophusers/internal/server/models"
	"github.com/dmitrijs2005/gophusers/internal/server/repositories/repomanager"
)

// UserService forwards each call to the users repository of the configured
// store. It adds no caching and opens no transactions.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "user_service"),
	}
}

func (s *UserService) Create(ctx context.Context, user *models.User) (*models.User, error) {
	s.logger.Debug(ctx, "create user", "email", user.Email)
	return s.repomanager.Users(s.db).Create(ctx, user)
}

func (s *UserService) FindAll(ctx context.Context) ([]models.User, error) {
	s.logger.Debug(ctx, "list users")
	return s.repomanager.Users(s.db).List(ctx)
}

func (s *UserService) FindOne(ctx context.Context, id string) (*models.User, error) {
	s.logger.Debug(ctx, "find user", "id", id)
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.logger.Debug(ctx, "find user by email", "email", email)
	return s.repomanager.Users(s.db).GetByEmail(ctx, email)
}

func (s *UserService) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	s.logger.Debug(ctx, "update user", "id", id, "name", patch.Name != nil, "password", patch.Password != nil)
	repo := s.repomanager.Users(s.db)
	if patch.IsEmpty() {
		return repo.GetByID(ctx, id)
	}
	return repo.Update(ctx, id, patch)
}

func (s *UserService) Remove(ctx context.Context, id string) error {
	s.logger.Debug(ctx, "remove user", "id", id)
	return s.repomanager.Users(s.db).Delete(ctx, id)
}

// Ping checks that the store is reachable.
func (s *UserService) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
