// Package transport exposes the identity core over HTTP/JSON: the auth
// endpoints, the bearer-token middleware, and the role guard in front of
// club-scoped routes.
package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/mbenali/campushub/internal/logging"
	"github.com/mbenali/campushub/internal/server/authz"
	"github.com/mbenali/campushub/internal/server/models"
	"github.com/mbenali/campushub/internal/server/repositories/clubs"
	"github.com/mbenali/campushub/internal/server/services"
)

type HTTPServer struct {
	address   string
	logger    logging.Logger
	auth      *services.AuthService
	engine    *authz.Engine
	clubs     clubs.Repository
	jwtSecret []byte
}

func NewHTTPServer(a string, l logging.Logger, as *services.AuthService, e *authz.Engine, cr clubs.Repository, secretKey string) *HTTPServer {
	return &HTTPServer{
		address:   a,
		logger:    l.With("module", "http_server"),
		auth:      as,
		engine:    e,
		clubs:     cr,
		jwtSecret: []byte(secretKey),
	}
}

// Routes builds the request mux. Exposed separately from Run so tests can
// drive it through httptest without a listener.
func (s *HTTPServer) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/signup", s.handleSignUp)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("POST /auth/refresh-tokens", s.handleRefreshTokens)

	mux.Handle("POST /auth/change-password", s.authenticate(http.HandlerFunc(s.handleChangePassword)))
	mux.Handle("GET /auth/me", s.authenticate(http.HandlerFunc(s.handleMe)))

	mux.Handle("GET /clubs/{clubId}/summary",
		s.authenticate(s.requireRoles(models.RoleAdmin, models.RolePresident)(http.HandlerFunc(s.handleClubSummary))))

	return mux
}

func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
