// Package app wires configuration, storage, services and the HTTP router
// into a runnable server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devfolio/portfolio-api/internal/api"
	"github.com/devfolio/portfolio-api/internal/api/handler"
	"github.com/devfolio/portfolio-api/internal/core/ports"
	"github.com/devfolio/portfolio-api/internal/core/service"
	"github.com/devfolio/portfolio-api/internal/infrastructure/db/memory"
	mongostore "github.com/devfolio/portfolio-api/internal/infrastructure/db/mongo"
	pgstore "github.com/devfolio/portfolio-api/internal/infrastructure/db/postgres"
	redisstore "github.com/devfolio/portfolio-api/internal/infrastructure/db/redis"
	"github.com/devfolio/portfolio-api/internal/infrastructure/token"
	"github.com/devfolio/portfolio-api/internal/pkg/config"
)

const shutdownTimeout = 10 * time.Second

// Stores bundles the persistence adapters selected by STORE_DRIVER.
type Stores struct {
	Users    ports.CredentialStore
	Projects ports.ProjectRepository
	Health   map[string]handler.Pinger
	closers  []func(context.Context) error
}

func (s *Stores) onClose(fn func(context.Context) error) {
	s.closers = append(s.closers, fn)
}

// Close releases every connection opened by OpenStores, last opened first.
func (s *Stores) Close(ctx context.Context) error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

// OpenStores connects the credential and project stores and bootstraps their
// schema (mongo indexes or postgres migrations).
func OpenStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Stores, error) {
	s := &Stores{Health: map[string]handler.Pinger{}}

	switch cfg.Store.Driver {
	case config.StoreMemory:
		s.Users = memory.NewUserRepository()
		s.Projects = memory.NewProjectRepository()

	case config.StoreMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		s.onClose(client.Disconnect)
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = s.Close(ctx)
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		s.Users = mongostore.NewUserRepository(db)
		s.Projects = mongostore.NewProjectRepository(db)
		s.Health["mongodb"] = mongostore.Pinger{Client: client}
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

	case config.StorePostgres:
		pool, err := pgstore.Connect(ctx, pgstore.Config{URL: cfg.Postgres.URL})
		if err != nil {
			return nil, err
		}
		s.onClose(func(context.Context) error { pool.Close(); return nil })
		if err := pgstore.NewMigrator(pool, log).Up(ctx); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
		s.Users = pgstore.NewUserRepository(pool)
		s.Projects = pgstore.NewProjectRepository(pool)
		s.Health["postgres"] = pgstore.Pinger{Pool: pool}
		log.Info().Msg("connected to PostgreSQL")

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	return s, nil
}

// OpenDenylist builds the token denylist selected by REVOCATION_STORE.
func OpenDenylist(ctx context.Context, cfg *config.Config, s *Stores, log zerolog.Logger) (ports.TokenDenylist, error) {
	switch cfg.Store.Revocation {
	case config.RevocationRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, err
		}
		s.onClose(func(context.Context) error { return client.Close() })
		s.Health["redis"] = redisstore.Pinger{Client: client}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		return redisstore.NewDenylist(client), nil

	case config.RevocationMemory:
		d, err := memory.NewDenylist(cfg.Auth.TokenTTL)
		if err != nil {
			return nil, err
		}
		s.onClose(func(context.Context) error { return d.Close() })
		return d, nil
	}
	return nil, fmt.Errorf("unknown revocation store %q", cfg.Store.Revocation)
}

// Server is the assembled HTTP application.
type Server struct {
	Echo   *echo.Echo
	cfg    *config.Config
	log    zerolog.Logger
	stores *Stores
}

// New connects every backend and builds the router.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Server, error) {
	stores, err := OpenStores(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	denylist, err := OpenDenylist(ctx, cfg, stores, log)
	if err != nil {
		_ = stores.Close(ctx)
		return nil, err
	}

	issuer, err := token.NewIssuer(token.Config{
		Secret: []byte(cfg.Auth.JWTSecret),
		TTL:    cfg.Auth.TokenTTL,
		Issuer: cfg.Auth.JWTIssuer,
	})
	if err != nil {
		_ = stores.Close(ctx)
		return nil, err
	}

	e := Router(cfg, log, stores, issuer, denylist)
	return &Server{Echo: e, cfg: cfg, log: log, stores: stores}, nil
}

// Router assembles services and handlers over already opened stores.
func Router(cfg *config.Config, log zerolog.Logger, stores *Stores, issuer *token.Issuer, denylist ports.TokenDenylist) *echo.Echo {
	authService := service.NewAuthService(
		stores.Users,
		service.NewBcryptHasher(cfg.Auth.BcryptCost),
		issuer,
		denylist,
		service.AuthOptions{
			RegistrationSecret: cfg.Auth.RegistrationSecret,
			MinPasswordLength:  cfg.Auth.PasswordMinLength,
		},
		log,
	)
	projectService := service.NewProjectService(stores.Projects, log)

	return api.NewRouter(api.Deps{
		Auth:           authService,
		Projects:       projectService,
		Verifier:       issuer,
		Denylist:       denylist,
		Health:         stores.Health,
		AllowedOrigins: cfg.AllowedOrigins(),
		Logger:         log,
	})
}

// Run serves until ctx is cancelled, then shuts down gracefully and closes
// the stores.
func (s *Server) Run(ctx context.Context) error {
	addr := ":" + s.cfg.Port
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Str("env", s.cfg.Env).Msg("server listening")
		if err := s.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		s.log.Info().Msg("shutting down")
	case err := <-errCh:
		if err != nil {
			runErr = fmt.Errorf("server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.Echo.Shutdown(shutdownCtx); err != nil {
		s.log.Error().Err(err).Msg("server shutdown failed")
	}
	if err := s.stores.Close(shutdownCtx); err != nil {
		s.log.Error().Err(err).Msg("closing stores failed")
	}
	return runErr
}
