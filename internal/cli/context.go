// Package cli implements the weighttrack command line.
package cli

import (
	"context"
	"fmt"
	"io"

	"weighttrack/internal/adapter/memory"
	"weighttrack/internal/adapter/notify"
	"weighttrack/internal/adapter/postgres"
	"weighttrack/internal/adapter/sqlite"
	"weighttrack/internal/app"
	"weighttrack/internal/domain"
)

// Store is a repository backend the commands run against.
type Store interface {
	domain.AccountRepository
	domain.WeightRepository
	Close() error
}

// StoreConfig selects and locates the backend.
type StoreConfig struct {
	Kind        string
	SQLitePath  string
	DatabaseURL string
}

// OpenStore opens the configured backend and its session repository.
func OpenStore(cfg StoreConfig) (Store, domain.SessionRepository, error) {
	switch cfg.Kind {
	case "", "sqlite":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		return db, sqlite.NewSessionRepo(db), nil
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, nil, fmt.Errorf("%w: DATABASE_URL is required for the postgres store", domain.ErrInvalidInput)
		}
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		return db, postgres.NewSessionRepo(db), nil
	case "memory":
		db := memory.New()
		return db, db.NewSessionRepo(), nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown store %q", domain.ErrInvalidInput, cfg.Kind)
	}
}

// Context carries the services every command runs against.
type Context struct {
	Ctx      context.Context
	Out      io.Writer
	Auth     *app.AuthService
	Accounts *app.AccountService
	Weights  *app.WeightService
	Summary  *app.SummaryService
}

// NewContext wires the application services over store.
func NewContext(ctx context.Context, store Store, sessions domain.SessionRepository, out io.Writer) *Context {
	return &Context{
		Ctx:      ctx,
		Out:      out,
		Auth:     app.NewAuthService(store, sessions),
		Accounts: app.NewAccountService(store),
		Weights:  app.NewWeightService(store, store, notify.NewLogNotifier()),
		Summary:  app.NewSummaryService(store, store),
	}
}
