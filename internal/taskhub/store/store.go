package store

import (
	"context"
	"errors"

	"github.com/oakmount/taskhub/internal/taskhub/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// jsonfile) implement this. Both drivers must produce the same externally
// observable results for the same call sequence: the sqlite driver leans
// on schema constraints, the jsonfile driver emulates them in code.
type Store interface {
	Users() Users
	Tasks() Tasks

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to run multi-step writes (e.g. uniqueness check
	// followed by an insert).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the backend is reachable and writable.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It exposes the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user and returns it with the id the
	// backend assigned. Fails with ErrAlreadyExists when the username is
	// taken.
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByUsername is used during registration and login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// UpdateUser replaces the mutable fields (email, full name, disabled,
	// categories, tags) and bumps updated_at. The id must exist.
	UpdateUser(ctx context.Context, u domain.User) error

	// ListUsers returns all users ordered by id.
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// TaskFilter narrows ListTasks. Nil fields are ignored.
type TaskFilter struct {
	Category  *string
	Completed *bool
	Tag       *string
	Priority  *int
}

type Tasks interface {
	// CreateTask inserts a new task and returns it with the assigned id.
	// The owner must exist; drivers report a missing owner as ErrNotFound.
	CreateTask(ctx context.Context, t domain.Task) (domain.Task, error)

	// GetTask returns a task by id regardless of owner. Ownership checks
	// belong to the service layer.
	GetTask(ctx context.Context, id int64) (domain.Task, error)

	// UpdateTask replaces the mutable fields and bumps updated_at.
	UpdateTask(ctx context.Context, t domain.Task) error

	// DeleteTask removes a task by id.
	DeleteTask(ctx context.Context, id int64) error

	// ListTasks returns the owner's tasks ordered by id, narrowed by the
	// filter.
	ListTasks(ctx context.Context, ownerID int64, f TaskFilter) ([]domain.Task, error)
}
