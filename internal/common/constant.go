// Package common contains shared constants and sentinel errors used across
// gophusers components.
package common

// AuthorizationHeaderName is the HTTP header carrying the access token.
const AuthorizationHeaderName = "Authorization"

// BearerScheme prefixes the access token inside the Authorization header.
const BearerScheme = "Bearer"

// RequestIDHeaderName carries the per-request trace id.
const RequestIDHeaderName = "X-Request-ID"
