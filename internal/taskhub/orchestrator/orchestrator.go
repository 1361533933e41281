// Package orchestrator is the composition root: it selects the storage
// backend once at construction and wires it into one instance of each
// service. Both front-ends (HTTP API and CLI) talk to an Orchestrator and
// never learn which storage mode is active.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/oakmount/taskhub/internal/taskhub/service"
	"github.com/oakmount/taskhub/internal/taskhub/store"
	"github.com/oakmount/taskhub/internal/taskhub/store/drivers/jsonfile"
	"github.com/oakmount/taskhub/internal/taskhub/store/drivers/sqlite"
)

// Storage backend names accepted in Config.Backend.
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
)

// Config names the backend and its location. It is supplied fully
// resolved by the caller; the orchestrator never reads the environment.
type Config struct {
	Backend string // "sqlite" or "json"

	// sqlite
	DatabaseFile string

	// json
	UsersFile string
	TasksFile string
}

type Orchestrator struct {
	store store.Store

	Users *service.UserService
	Tasks *service.TaskService
}

// New constructs the configured backend, applies its migrations and
// wires the services. After this returns the orchestrator is ready and
// holds no further state.
func New(cfg Config) (*Orchestrator, error) {
	st, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := st.ApplyMigrations(); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("orchestrator: apply migrations: %w", err)
	}

	return &Orchestrator{
		store: st,
		Users: &service.UserService{Store: st},
		Tasks: &service.TaskService{Store: st},
	}, nil
}

func openStore(cfg Config) (store.Store, error) {
	switch cfg.Backend {
	case BackendSQLite:
		dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", cfg.DatabaseFile)
		st, err := sqlite.NewStore(dsn)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: open sqlite store: %w", err)
		}
		return st, nil
	case BackendJSON:
		st, err := jsonfile.NewStore(cfg.UsersFile, cfg.TasksFile)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: open jsonfile store: %w", err)
		}
		return st, nil
	}
	return nil, fmt.Errorf("orchestrator: unknown storage backend %q", cfg.Backend)
}

// Store exposes the active backend, mainly for health checks.
func (o *Orchestrator) Store() store.Store {
	return o.store
}

// Ping verifies the active backend is reachable.
func (o *Orchestrator) Ping(ctx context.Context) error {
	return o.store.Ping(ctx)
}

// Close releases the backend.
func (o *Orchestrator) Close() error {
	return o.store.Close()
}
