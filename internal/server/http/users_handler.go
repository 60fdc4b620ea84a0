package http

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/gophusers/internal/common"
	"github.com/dmitrijs2005/gophusers/internal/logging"
	"github.com/dmitrijs2005/gophusers/internal/server/auth"
	"github.com/dmitrijs2005/gophusers/internal/server/models"
	"github.com/go-chi/chi/v5"
)

// bcrypt ignores input past 72 bytes.
const maxPasswordLen = 72

// UserService is the identity service the users handler drives.
type UserService interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	FindOne(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
	Remove(ctx context.Context, id string) error
}

// UsersHandler serves the /users resource.
type UsersHandler struct {
	users  UserService
	hasher auth.PasswordHasher
	logger logging.Logger
}

func NewUsersHandler(users UserService, hasher auth.PasswordHasher, logger logging.Logger) *UsersHandler {
	return &UsersHandler{users: users, hasher: hasher, logger: logger.With("module", "users_handler")}
}

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req createUserRequest) validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return invalid("name should not be empty")
	}
	if req.Email == "" {
		return invalid("email should not be empty")
	}
	if addr, err := mail.ParseAddress(req.Email); err != nil || addr.Address != req.Email {
		return invalid("email must be an email")
	}
	return validatePassword(req.Password)
}

// updateUserRequest accepts only the mutable fields; email and id in the body
// are dropped by the decoder.
type updateUserRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

func (req updateUserRequest) validate() error {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return invalid("name should not be empty")
	}
	if req.Password != nil {
		return validatePassword(*req.Password)
	}
	return nil
}

func validatePassword(p string) error {
	if p == "" {
		return invalid("password should not be empty")
	}
	if len(p) > maxPasswordLen {
		return invalid("password is too long")
	}
	return nil
}

// Create registers a user after checking that the email is free.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		h.handleError(w, r, err)
		return
	}

	existing, err := h.users.FindByEmail(ctx, req.Email)
	switch {
	case err == nil && existing != nil:
		writeError(w, http.StatusBadRequest, msgEmailTaken)
		return
	case err != nil && !errors.Is(err, common.ErrorNotFound):
		h.handleError(w, r, err)
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	user, err := h.users.Create(ctx, &models.User{Name: req.Name, Email: req.Email, Password: hash})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (h *UsersHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.FindAll(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UsersHandler) FindOne(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.FindOne(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Update re-fetches the user, then applies name and password changes.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if _, err := h.users.FindOne(ctx, id); err != nil {
		h.handleError(w, r, err)
		return
	}

	var req updateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		h.handleError(w, r, err)
		return
	}

	patch := models.UserPatch{Name: req.Name}
	if req.Password != nil {
		hash, err := h.hasher.Hash(*req.Password)
		if err != nil {
			h.handleError(w, r, err)
			return
		}
		patch.Password = &hash
	}

	user, err := h.users.Update(ctx, id, patch)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UsersHandler) Remove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if _, err := h.users.FindOne(ctx, id); err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.users.Remove(ctx, id); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *UsersHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	writeError(w, status, msg)
}
