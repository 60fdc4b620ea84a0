package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophusers/internal/logging"
)

// HTTPServer runs the API until its context is canceled, then drains
// in-flight requests for at most shutdownTimeout.
type HTTPServer struct {
	server          *http.Server
	logger          logging.Logger
	shutdownTimeout time.Duration
}

func NewHTTPServer(addr string, handler http.Handler, logger logging.Logger, shutdownTimeout time.Duration) *HTTPServer {
	return &HTTPServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger:          logger.With("module", "http_server"),
		shutdownTimeout: shutdownTimeout,
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *HTTPServer) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, lis)
}

// Serve is Run over an existing listener.
func (s *HTTPServer) Serve(ctx context.Context, lis net.Listener) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "HTTP server listening", "addr", lis.Addr().String())
		if err := s.server.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("serve: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info(ctx, "stopping HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		s.logger.Info(ctx, "HTTP server stopped")
		return nil
	case err := <-errCh:
		return err
	}
}
