package http

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/dmitrijs2005/gophusers/internal/common"
	"github.com/dmitrijs2005/gophusers/internal/logging"
	"github.com/dmitrijs2005/gophusers/internal/server/auth"
	"github.com/google/uuid"
)

// RequestIDMiddleware reuses the X-Request-ID header when present and
// generates a UUID otherwise. The id is echoed back and stored in the context.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(common.RequestIDHeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(common.RequestIDHeaderName, id)
		next.ServeHTTP(w, r.WithContext(withRequestID(r.Context(), id)))
	})
}

// statusRecorder captures the response status and size.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

func (w *statusRecorder) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	if err != nil {
		return n, fmt.Errorf("write: %w", err)
	}
	return n, nil
}

// LoggingMiddleware logs every response: 5xx at error, 4xx at warn, the
// rest at info.
func LoggingMiddleware(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			ctx := r.Context()
			args := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"bytes_sent", rec.bytes,
				"request_id", RequestIDFromContext(ctx),
			}
			switch {
			case rec.status >= http.StatusInternalServerError:
				log.Error(ctx, "response", args...)
			case rec.status >= http.StatusBadRequest:
				log.Warn(ctx, "response", args...)
			default:
				log.Info(ctx, "response", args...)
			}
		})
	}
}

// RescueMiddleware turns a handler panic into a logged 500.
func RescueMiddleware(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					if p == http.ErrAbortHandler {
						panic(p)
					}
					log.Error(r.Context(), "request panic",
						"method", r.Method,
						"path", r.URL.Path,
						"panic", p,
						"stack", string(debug.Stack()),
					)
					writeError(w, http.StatusInternalServerError, msgInternal)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth admits only requests carrying "Authorization: Bearer <token>"
// accepted by authorizer, and stores the caller id in the request context.
// Rejection happens before the wrapped handler runs.
func RequireAuth(authorizer auth.Authorizer, log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get(common.AuthorizationHeaderName))
			if !ok {
				log.Debug(r.Context(), "missing bearer token", "path", r.URL.Path)
				writeError(w, http.StatusUnauthorized, msgUnauthorized)
				return
			}

			userID, err := authorizer.Authorize(r.Context(), token)
			if err != nil {
				log.Debug(r.Context(), "token rejected", "path", r.URL.Path, "error", err)
				writeError(w, http.StatusUnauthorized, msgUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), userID)))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
