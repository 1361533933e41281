package jsonfile

import (
	"context"
	"sort"
	"time"

	"github.com/oakmount/taskhub/internal/taskhub/domain"
	"github.com/oakmount/taskhub/internal/taskhub/store"
)

// The relational schema enforces username uniqueness; here the same
// checks run in code against the snapshot before anything is written.

type usersRepo struct {
	s *Store
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	var created domain.User
	err := r.s.update(func(st *state) error {
		var err error
		created, err = stateCreateUser(st, u)
		return err
	})
	return created, err
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	var u domain.User
	err := r.s.view(func(st *state) error {
		var err error
		u, err = stateGetUserByID(st, id)
		return err
	})
	return u, err
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	var u domain.User
	err := r.s.view(func(st *state) error {
		var err error
		u, err = stateGetUserByUsername(st, username)
		return err
	})
	return u, err
}

func (r *usersRepo) UpdateUser(ctx context.Context, u domain.User) error {
	return r.s.update(func(st *state) error {
		return stateUpdateUser(st, u)
	})
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.s.view(func(st *state) error {
		users = stateListUsers(st)
		return nil
	})
	return users, err
}

func stateCreateUser(st *state, u domain.User) (domain.User, error) {
	for _, existing := range st.users {
		if existing.Username == u.Username {
			return domain.User{}, store.ErrAlreadyExists
		}
	}

	now := time.Now().UTC()
	u.ID = nextID(st.users)
	u.CreatedAt = now
	u.UpdatedAt = now
	st.users[u.ID] = toUserRecord(u)
	return u, nil
}

func stateGetUserByID(st *state, id int64) (domain.User, error) {
	rec, ok := st.users[id]
	if !ok {
		return domain.User{}, store.ErrNotFound
	}
	return fromUserRecord(rec), nil
}

func stateGetUserByUsername(st *state, username string) (domain.User, error) {
	for _, rec := range st.users {
		if rec.Username == username {
			return fromUserRecord(rec), nil
		}
	}
	return domain.User{}, store.ErrNotFound
}

func stateUpdateUser(st *state, u domain.User) error {
	rec, ok := st.users[u.ID]
	if !ok {
		return store.ErrNotFound
	}

	// Username and password hash are immutable through this operation,
	// same as the sqlite UPDATE column list.
	u.Username = rec.Username
	u.PasswordHash = rec.PasswordHash
	u.CreatedAt = rec.CreatedAt
	u.UpdatedAt = time.Now().UTC()
	st.users[u.ID] = toUserRecord(u)
	return nil
}

func stateListUsers(st *state) []domain.User {
	users := make([]domain.User, 0, len(st.users))
	for _, rec := range st.users {
		users = append(users, fromUserRecord(rec))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	if len(users) == 0 {
		return nil
	}
	return users
}
