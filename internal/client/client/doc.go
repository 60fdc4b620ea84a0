// Package client talks to the users HTTP API on behalf of the CLI.
//
// Client is the transport-agnostic contract; HTTPClient implements it over
// net/http, keeps the access token returned by Login and sends it as a bearer
// credential on guarded calls.
//
// Failures are reported as *APIError values that unwrap to one of the
// sentinels (ErrUnauthorized, ErrNotFound, ErrConflict, ErrBadRequest,
// ErrServer, ErrUnavailable) so callers can match them with errors.Is.
package client
