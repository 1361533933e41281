package jsonfile

import (
	"context"
	"sort"
	"time"

	"github.com/oakmount/taskhub/internal/taskhub/domain"
	"github.com/oakmount/taskhub/internal/taskhub/store"
)

type tasksRepo struct {
	s *Store
}

func (r *tasksRepo) CreateTask(ctx context.Context, t domain.Task) (domain.Task, error) {
	var created domain.Task
	err := r.s.update(func(st *state) error {
		var err error
		created, err = stateCreateTask(st, t)
		return err
	})
	return created, err
}

func (r *tasksRepo) GetTask(ctx context.Context, id int64) (domain.Task, error) {
	var t domain.Task
	err := r.s.view(func(st *state) error {
		var err error
		t, err = stateGetTask(st, id)
		return err
	})
	return t, err
}

func (r *tasksRepo) UpdateTask(ctx context.Context, t domain.Task) error {
	return r.s.update(func(st *state) error {
		return stateUpdateTask(st, t)
	})
}

func (r *tasksRepo) DeleteTask(ctx context.Context, id int64) error {
	return r.s.update(func(st *state) error {
		return stateDeleteTask(st, id)
	})
}

func (r *tasksRepo) ListTasks(ctx context.Context, ownerID int64, f store.TaskFilter) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.s.view(func(st *state) error {
		tasks = stateListTasks(st, ownerID, f)
		return nil
	})
	return tasks, err
}

func stateCreateTask(st *state, t domain.Task) (domain.Task, error) {
	// Emulates the owner_id foreign key.
	if _, ok := st.users[t.OwnerID]; !ok {
		return domain.Task{}, store.ErrNotFound
	}

	now := time.Now().UTC()
	t.ID = nextID(st.tasks)
	t.CreatedAt = now
	t.UpdatedAt = now
	st.tasks[t.ID] = toTaskRecord(t)
	return t, nil
}

func stateGetTask(st *state, id int64) (domain.Task, error) {
	rec, ok := st.tasks[id]
	if !ok {
		return domain.Task{}, store.ErrNotFound
	}
	return fromTaskRecord(rec), nil
}

func stateUpdateTask(st *state, t domain.Task) error {
	rec, ok := st.tasks[t.ID]
	if !ok {
		return store.ErrNotFound
	}

	// owner_id is not part of the sqlite UPDATE column list either.
	t.OwnerID = rec.OwnerID
	t.CreatedAt = rec.CreatedAt
	t.UpdatedAt = time.Now().UTC()
	st.tasks[t.ID] = toTaskRecord(t)
	return nil
}

func stateDeleteTask(st *state, id int64) error {
	if _, ok := st.tasks[id]; !ok {
		return store.ErrNotFound
	}
	delete(st.tasks, id)
	return nil
}

func stateListTasks(st *state, ownerID int64, f store.TaskFilter) []domain.Task {
	var tasks []domain.Task
	for _, rec := range st.tasks {
		if rec.OwnerID != ownerID {
			continue
		}
		t := fromTaskRecord(rec)
		if f.Category != nil && t.Category != *f.Category {
			continue
		}
		if f.Completed != nil && t.Completed != *f.Completed {
			continue
		}
		if f.Priority != nil && t.Priority != *f.Priority {
			continue
		}
		if f.Tag != nil && !containsTag(t.Tags, *f.Tag) {
			continue
		}
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks
}

func containsTag(tags []string, want string) bool {
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}
