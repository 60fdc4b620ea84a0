package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("email already taken")
	ErrBadRequest   = errors.New("bad request")
	ErrServer       = errors.New("server error")
)

// emailTakenMessage is the server's message for a duplicate email.
const emailTakenMessage = "Email already taken"

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
	kind       error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

func (e *APIError) Unwrap() error { return e.kind }

func newAPIError(status int, message string) *APIError {
	var kind error
	switch {
	case status == http.StatusUnauthorized:
		kind = ErrUnauthorized
	case status == http.StatusNotFound:
		kind = ErrNotFound
	case status == http.StatusBadRequest && message == emailTakenMessage:
		kind = ErrConflict
	case status == http.StatusBadGateway, status == http.StatusServiceUnavailable, status == http.StatusGatewayTimeout:
		kind = ErrUnavailable
	case status >= http.StatusInternalServerError:
		kind = ErrServer
	default:
		kind = ErrBadRequest
	}
	return &APIError{StatusCode: status, Message: message, kind: kind}
}
