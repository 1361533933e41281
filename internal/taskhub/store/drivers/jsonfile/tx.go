package jsonfile

import (
	"context"
	"errors"

	"github.com/oakmount/taskhub/internal/taskhub/domain"
	"github.com/oakmount/taskhub/internal/taskhub/store"
)

var errTxDone = errors.New("jsonfile: transaction already finished")

// txStore holds the store's mutex for its whole lifetime and operates on
// a private snapshot. Commit persists the snapshot, Rollback discards it;
// either way the lock is released exactly once.
type txStore struct {
	s    *Store
	st   *state
	done bool
}

func (t *txStore) Commit() error {
	if t.done {
		return errTxDone
	}
	t.done = true
	defer t.s.mu.Unlock()
	return t.s.persist(t.st)
}

func (t *txStore) Rollback() error {
	if t.done {
		return errTxDone
	}
	t.done = true
	t.s.mu.Unlock()
	return nil
}

func (t *txStore) Close() error { return nil } // nothing to close; caller will commit/rollback

func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported, same as the sqlite driver
	return nil, errTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return errTxDone
}

func (t *txStore) ApplyMigrations() error { return nil } // no-op; documents exist before a tx starts

func (t *txStore) Users() store.Users { return &txUsersRepo{t: t} }
func (t *txStore) Tasks() store.Tasks { return &txTasksRepo{t: t} }

type txUsersRepo struct {
	t *txStore
}

func (r *txUsersRepo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	return stateCreateUser(r.t.st, u)
}

func (r *txUsersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	return stateGetUserByID(r.t.st, id)
}

func (r *txUsersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return stateGetUserByUsername(r.t.st, username)
}

func (r *txUsersRepo) UpdateUser(ctx context.Context, u domain.User) error {
	return stateUpdateUser(r.t.st, u)
}

func (r *txUsersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	return stateListUsers(r.t.st), nil
}

type txTasksRepo struct {
	t *txStore
}

func (r *txTasksRepo) CreateTask(ctx context.Context, task domain.Task) (domain.Task, error) {
	return stateCreateTask(r.t.st, task)
}

func (r *txTasksRepo) GetTask(ctx context.Context, id int64) (domain.Task, error) {
	return stateGetTask(r.t.st, id)
}

func (r *txTasksRepo) UpdateTask(ctx context.Context, task domain.Task) error {
	return stateUpdateTask(r.t.st, task)
}

func (r *txTasksRepo) DeleteTask(ctx context.Context, id int64) error {
	return stateDeleteTask(r.t.st, id)
}

func (r *txTasksRepo) ListTasks(ctx context.Context, ownerID int64, f store.TaskFilter) ([]domain.Task, error) {
	return stateListTasks(r.t.st, ownerID, f), nil
}
