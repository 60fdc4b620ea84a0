package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/gophusers/internal/common"
)

const (
	msgEmailTaken     = "Email already taken"
	msgUserNotFound   = "User not found"
	msgUnauthorized   = "Unauthorized"
	msgInternal       = "Internal server error"
	msgInvalidBody    = "invalid request body"
	msgUnavailable    = "Service unavailable"
	maxRequestBodyLen = 1 << 20
)

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// validationError rejects a request body; its message is shown to the client.
type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Unwrap() error { return common.ErrorValidation }

func invalid(msg string) error {
	return &validationError{msg: msg}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{StatusCode: status, Message: message})
}

// statusFor maps an error from the service layer onto a status and message.
// Store-level races surface through the same shapes as the handler pre-checks.
func statusFor(err error) (int, string) {
	var verr *validationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.msg
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusBadRequest, msgEmailTaken
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, msgUserNotFound
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, msgUnauthorized
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyLen)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return invalid(msgInvalidBody)
	}
	// The body must hold exactly one JSON value.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return invalid(msgInvalidBody)
	}
	return nil
}
