// Package workhoursservice wires configuration, storage, auth and the HTTP
// surface into a runnable service.
package workhoursservice

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/rappy1999/workhours/internal/api"
	"github.com/rappy1999/workhours/internal/auth"
	"github.com/rappy1999/workhours/internal/config"
	"github.com/rappy1999/workhours/internal/health"
	"github.com/rappy1999/workhours/internal/logger"
	"github.com/rappy1999/workhours/internal/store"
	"github.com/rappy1999/workhours/internal/store/postgres"
	"github.com/rappy1999/workhours/internal/store/sqlite"
	"github.com/rappy1999/workhours/internal/timeclock"
)

const (
	healthInterval     = 30 * time.Second
	healthProbeTimeout = 2 * time.Second
)

// Run starts the workhours HTTP server and blocks until shutdown or error.
func Run(cfg *config.Config) error {
	log := logger.New("workhours-service")

	if cfg == nil {
		var err error
		cfg, err = config.New()
		if err != nil {
			log.Error().Err(err).Msg("failed to load configuration")
			return err
		}
	}

	log.Info().
		Str("build_target", cfg.BuildTarget).
		Str("db_driver", cfg.DBDriver).
		Int("http_port", cfg.HTTPPort).
		Msg("workhours service starting")

	ctx, stop := newServerContext()
	defer stop()

	st, db, err := openStore(ctx, cfg)
	if err != nil {
		log.Error().Stack().Err(err).Msg("store unavailable")
		return err
	}
	defer func() { _ = db.Close() }()

	authorizer, err := newAuthorizer(cfg)
	if err != nil {
		log.Error().Err(err).Msg("authorizer unavailable")
		return err
	}

	svcHealth := startHealthCheckers(ctx, log, st)
	resolver := timeclock.NewResolver(cfg.Anchor())
	router := api.NewRouter(st, authorizer, resolver, svcHealth.IsHealthy)

	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("server forced to shutdown")
			return err
		}
		log.Info().Msg("server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// openStore builds the store selected by DBDriver and ensures its schema.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, *sql.DB, error) {
	switch cfg.DBDriver {
	case "sqlite":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := sqlite.EnsureSchema(db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return sqlite.New(db), db, nil
	case "postgres":
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return postgres.NewWithDB(db), db, nil
	default:
		return nil, nil, fmt.Errorf("unsupported DB_DRIVER: %s", cfg.DBDriver)
	}
}

func newAuthorizer(cfg *config.Config) (auth.Authorizer, error) {
	if cfg.DevMode {
		return auth.NewMockAuthorizer(), nil
	}
	return nil, fmt.Errorf("no production authorizer configured; set WORKHOURS_DEV_MODE=true for local use")
}

func startHealthCheckers(ctx context.Context, log zerolog.Logger, st store.Store) *health.ServiceHealthChecker {
	storeChecker := store.NewStoreHealthChecker(st, log, healthProbeTimeout)
	go storeChecker.Start(ctx, healthInterval)

	svcHealth := health.NewServiceHealthChecker(log, storeChecker)
	go svcHealth.Start(ctx, healthInterval)
	return svcHealth
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}

// newServerContext returns a context cancelled on SIGINT or SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
