package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophusers/internal/logging"
	"github.com/dmitrijs2005/gophusers/internal/server/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// HealthChecker reports whether the store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// RouterConfig lists everything the API routes depend on.
type RouterConfig struct {
	Users              UserService
	Auth               AuthService
	Health             HealthChecker
	Authorizer         auth.Authorizer
	Hasher             auth.PasswordHasher
	Logger             logging.Logger
	CORSAllowedOrigins []string
}

const healthTimeout = 2 * time.Second

// NewRouter builds the chi router with middlewares and all API routes.
func NewRouter(cfg RouterConfig) http.Handler {
	log := cfg.Logger.With("module", "http")

	users := NewUsersHandler(cfg.Users, cfg.Hasher, log)
	login := NewAuthHandler(cfg.Auth, log)

	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(log))
	r.Use(RescueMiddleware(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Cannot %s %s", r.Method, r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, fmt.Sprintf("Cannot %s %s", r.Method, r.URL.Path))
	})

	r.Get("/health", healthHandler(cfg.Health, log))
	r.Post("/auth/login", login.Login)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", users.Create)

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(cfg.Authorizer, log))
			r.Get("/", users.FindAll)
			r.Get("/{id}", users.FindOne)
			r.Patch("/{id}", users.Update)
			r.Delete("/{id}", users.Remove)
		})
	})

	return r
}

func healthHandler(checker HealthChecker, log logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := checker.Ping(ctx); err != nil {
			log.Warn(ctx, "store ping failed", "error", err)
			writeError(w, http.StatusServiceUnavailable, msgUnavailable)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
