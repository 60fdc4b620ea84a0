package http

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/gophusers/internal/logging"
)

// AuthService exchanges credentials for an access token.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
}

type AuthHandler struct {
	auth   AuthService
	logger logging.Logger
}

func NewAuthHandler(auth AuthService, logger logging.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger.With("module", "auth_handler")}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{AccessToken: token})
}

func (h *AuthHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(r.Context(), "login failed", "error", err)
	}
	writeError(w, status, msg)
}
