// Package server initializes and runs the identity service: it loads and
// validates configuration, opens the database, applies migrations, and
// starts the HTTP server with graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mbenali/campushub/internal/logging"
	"github.com/mbenali/campushub/internal/server/authz"
	"github.com/mbenali/campushub/internal/server/config"
	"github.com/mbenali/campushub/internal/server/repositories/repomanager"
	"github.com/mbenali/campushub/internal/server/services"
	"github.com/mbenali/campushub/internal/server/transport"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	manager     repomanager.RepositoryManager
	authService *services.AuthService
	engine      *authz.Engine
}

func NewApp(c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()

	as := services.NewAuthService(db, m, c)
	engine := authz.NewEngine(m.Clubs(db))

	return &App{config: c, logger: logger, db: db, manager: m, authService: as, engine: engine}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := transport.NewHTTPServer(
		app.config.EndpointAddrHTTP,
		app.logger,
		app.authService,
		app.engine,
		app.manager.Clubs(app.db),
		app.config.SecretKey,
	)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	if err := app.manager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "error closing database", "error", err.Error())
	}

	return nil
}
