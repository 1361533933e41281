package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/oakmount/taskhub/internal/taskhub/domain"
	"github.com/oakmount/taskhub/internal/taskhub/store"
	"github.com/oakmount/taskhub/pkg/slogx"
)

// TaskService holds the task business rules. Every mutating operation
// takes the caller's user id and verifies ownership with an explicit
// comparison before touching the task; a task owned by someone else is
// indistinguishable from a missing one.
type TaskService struct {
	Store store.Store
}

// TaskPatch is a partial update. Nil fields are left unchanged.
type TaskPatch struct {
	Name        *string
	Description *string
	Category    *string
	DueDate     *time.Time
	Parameters  map[string]any
	Completed   *bool
	Tags        []string
	Priority    *int
}

// Create validates and stores a new task for the given owner.
func (s *TaskService) Create(ctx context.Context, t domain.Task) (domain.Task, error) {
	log := slogx.FromContext(ctx)

	// 1. Normalize and validate the fields.
	t.Normalize()
	t.ID = 0
	t.Completed = false
	if err := t.Validate(); err != nil {
		return domain.Task{}, invalidf("%v", err)
	}

	// 2. The owner must resolve to an existing user.
	if _, err := s.Store.Users().GetUserByID(ctx, t.OwnerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Task{}, notFoundf("owner %d", t.OwnerID)
		}
		return domain.Task{}, err
	}

	// 3. Store it. The sqlite FK can still fire between the check and the
	// insert; it maps to the same NotFound.
	created, err := s.Store.Tasks().CreateTask(ctx, t)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Task{}, notFoundf("owner %d", t.OwnerID)
		}
		log.Error("failed to create task", slog.Any("error", err))
		return domain.Task{}, err
	}

	log.Info("task created",
		slog.Int64("task_id", created.ID),
		slog.Int64("owner_id", created.OwnerID),
	)
	return created, nil
}

// Get returns the task only when it exists AND belongs to ownerID.
func (s *TaskService) Get(ctx context.Context, ownerID, taskID int64) (domain.Task, error) {
	return s.getOwned(ctx, s.Store, ownerID, taskID)
}

// List returns the owner's tasks narrowed by the filter.
func (s *TaskService) List(ctx context.Context, ownerID int64, f store.TaskFilter) ([]domain.Task, error) {
	tasks, err := s.Store.Tasks().ListTasks(ctx, ownerID, f)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

// Update applies a partial update to an owned task.
func (s *TaskService) Update(ctx context.Context, ownerID, taskID int64, patch TaskPatch) (domain.Task, error) {
	var task domain.Task
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		task, err = s.getOwned(ctx, tx, ownerID, taskID)
		if err != nil {
			return err
		}

		if patch.Name != nil {
			task.Name = *patch.Name
		}
		if patch.Description != nil {
			task.Description = *patch.Description
		}
		if patch.Category != nil {
			task.Category = *patch.Category
		}
		if patch.DueDate != nil {
			due := *patch.DueDate
			task.DueDate = &due
		}
		if patch.Parameters != nil {
			task.Parameters = patch.Parameters
		}
		if patch.Completed != nil {
			task.Completed = *patch.Completed
		}
		if patch.Tags != nil {
			task.Tags = patch.Tags
		}
		if patch.Priority != nil {
			task.Priority = *patch.Priority
		}

		task.Normalize()
		if err := task.Validate(); err != nil {
			return invalidf("%v", err)
		}
		return tx.Tasks().UpdateTask(ctx, task)
	})
	if err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// Complete marks an owned task done. Completing an already-completed
// task is a no-op, not an error.
func (s *TaskService) Complete(ctx context.Context, ownerID, taskID int64) (domain.Task, error) {
	var task domain.Task
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		task, err = s.getOwned(ctx, tx, ownerID, taskID)
		if err != nil {
			return err
		}
		if task.Completed {
			return nil
		}
		task.Completed = true
		return tx.Tasks().UpdateTask(ctx, task)
	})
	if err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// Delete removes an owned task.
func (s *TaskService) Delete(ctx context.Context, ownerID, taskID int64) error {
	log := slogx.FromContext(ctx)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := s.getOwned(ctx, tx, ownerID, taskID); err != nil {
			return err
		}
		return tx.Tasks().DeleteTask(ctx, taskID)
	})
	if err != nil {
		return err
	}

	log.Info("task deleted",
		slog.Int64("task_id", taskID),
		slog.Int64("owner_id", ownerID),
	)
	return nil
}

// UsedCategories returns the distinct category names currently in use
// across the owner's tasks, sorted. This is a derived view, not the
// user's stored category set.
func (s *TaskService) UsedCategories(ctx context.Context, ownerID int64) ([]string, error) {
	tasks, err := s.Store.Tasks().ListTasks(ctx, ownerID, store.TaskFilter{})
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	names := []string{}
	for _, t := range tasks {
		if _, ok := seen[t.Category]; ok {
			continue
		}
		seen[t.Category] = struct{}{}
		names = append(names, t.Category)
	}
	sort.Strings(names)
	return names, nil
}

// getOwned is the access-control invariant: a task that exists but
// belongs to another user reports NotFound, exactly like a task that
// does not exist.
func (s *TaskService) getOwned(ctx context.Context, st store.Store, ownerID, taskID int64) (domain.Task, error) {
	task, err := st.Tasks().GetTask(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Task{}, notFoundf("task %d", taskID)
		}
		return domain.Task{}, err
	}
	if task.OwnerID != ownerID {
		return domain.Task{}, notFoundf("task %d", taskID)
	}
	return task, nil
}

// ParsePriority converts a CLI/API priority argument into the numeric
// range, accepting both numbers and the level names.
func ParsePriority(s string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "none":
		return domain.PriorityNone, nil
	case "1", "low":
		return domain.PriorityLow, nil
	case "2", "medium", "med":
		return domain.PriorityMed, nil
	case "3", "high":
		return domain.PriorityHigh, nil
	}
	return 0, invalidf("priority %q", s)
}
