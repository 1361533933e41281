package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oakmount/taskhub/internal/taskhub/domain"
	"github.com/oakmount/taskhub/internal/taskhub/store"
)

func setupOwner(t *testing.T, st store.Store, username string) domain.User {
	t.Helper()
	u, err := (&UserService{Store: st}).Register(context.Background(), username, "", "pw", "")
	require.NoError(t, err)
	return u
}

func ptr[T any](v T) *T { return &v }

func TestTaskCreateRoundTrip(t *testing.T) {
	withEachBackend(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		tasks := &TaskService{Store: st}
		alice := setupOwner(t, st, "alice")

		due := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
		created, err := tasks.Create(ctx, domain.Task{
			OwnerID:     alice.ID,
			Name:        "buy milk",
			Description: "two litres",
			Category:    "Errands",
			DueDate:     &due,
			Parameters:  map[string]any{"store": "corner shop"},
			Tags:        []string{"shopping"},
			Priority:    domain.PriorityLow,
		})
		require.NoError(t, err)
		require.Positive(t, created.ID)
		require.False(t, created.Completed)

		got, err := tasks.Get(ctx, alice.ID, created.ID)
		require.NoError(t, err)
		require.Equal(t, "buy milk", got.Name)
		require.Equal(t, "two litres", got.Description)
		require.Equal(t, "Errands", got.Category)
		require.Equal(t, map[string]any{"store": "corner shop"}, got.Parameters)
		require.Equal(t, []string{"shopping"}, got.Tags)
		require.Equal(t, domain.PriorityLow, got.Priority)
		require.NotNil(t, got.DueDate)
		require.WithinDuration(t, due, *got.DueDate, time.Second)
	})
}

func TestTaskCreateDefaults(t *testing.T) {
	withEachBackend(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		tasks := &TaskService{Store: st}
		alice := setupOwner(t, st, "alice")

		created, err := tasks.Create(ctx, domain.Task{OwnerID: alice.ID, Name: "untitled chore"})
		require.NoError(t, err)
		require.Equal(t, domain.DefaultCategory.Name, created.Category)
		require.NotNil(t, created.Parameters)
		require.NotNil(t, created.Tags)
		require.Nil(t, created.DueDate)
		require.Equal(t, domain.PriorityNone, created.Priority)
	})
}

func TestTaskCreateValidation(t *testing.T) {
	withEachBackend(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		tasks := &TaskService{Store: st}
		alice := setupOwner(t, st, "alice")

		_, err := tasks.Create(ctx, domain.Task{OwnerID: alice.ID, Name: "  "})
		require.ErrorIs(t, err, ErrInvalid)

		_, err = tasks.Create(ctx, domain.Task{OwnerID: alice.ID, Name: "x", Priority: 5})
		require.ErrorIs(t, err, ErrInvalid)

		_, err = tasks.Create(ctx, domain.Task{OwnerID: alice.ID, Name: "x", Priority: -1})
		require.ErrorIs(t, err, ErrInvalid)
	})
}

func TestTaskCreateUnknownOwner(t *testing.T) {
	withEachBackend(t, func(t *testing.T, st store.Store) {
		_, err := (&TaskService{Store: st}).Create(context.Background(), domain.Task{
			OwnerID: 9999,
			Name:    "orphan",
		})
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestTaskOwnershipIsolation(t *testing.T) {
	withEachBackend(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		tasks := &TaskService{Store: st}
		alice := setupOwner(t, st, "alice")
		bob := setupOwner(t, st, "bob")

		created, err := tasks.Create(ctx, domain.Task{OwnerID: alice.ID, Name: "secret plan"})
		require.NoError(t, err)

		// Another user's task is indistinguishable from a missing one.
		_, err = tasks.Get(ctx, bob.ID, created.ID)
		require.ErrorIs(t, err, ErrNotFound)

		_, err = tasks.Update(ctx, bob.ID, created.ID, TaskPatch{Name: ptr("hijacked")})
		require.ErrorIs(t, err, ErrNotFound)

		_, err = tasks.Complete(ctx, bob.ID, created.ID)
		require.ErrorIs(t, err, ErrNotFound)

		err = tasks.Delete(ctx, bob.ID, created.ID)
		require.ErrorIs(t, err, ErrNotFound)

		// Bob's list never shows Alice's tasks.
		bobTasks, err := tasks.List(ctx, bob.ID, store.TaskFilter{})
		require.NoError(t, err)
		require.Empty(t, bobTasks)

		// And none of the denied operations touched the task.
		got, err := tasks.Get(ctx, alice.ID, created.ID)
		require.NoError(t, err)
		require.Equal(t, "secret plan", got.Name)
		require.False(t, got.Completed)
	})
}

func TestTaskUpdatePatch(t *testing.T) {
	withEachBackend(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		tasks := &TaskService{Store: st}
		alice := setupOwner(t, st, "alice")

		created, err := tasks.Create(ctx, domain.Task{
			OwnerID:     alice.ID,
			Name:        "draft report",
			Description: "quarterly numbers",
			Category:    "Work",
			Priority:    domain.PriorityMed,
		})
		require.NoError(t, err)

		updated, err := tasks.Update(ctx, alice.ID, created.ID, TaskPatch{
			Name:     ptr("final report"),
			Priority: ptr(domain.PriorityHigh),
		})
		require.NoError(t, err)
		require.Equal(t, "final report", updated.Name)
		require.Equal(t, domain.PriorityHigh, updated.Priority)

		// Untouched fields survive.
		require.Equal(t, "quarterly numbers", updated.Description)
		require.Equal(t, "Work", updated.Category)

		t.Run("invalid patch rejected", func(t *testing.T) {
			_, err := tasks.Update(ctx, alice.ID, created.ID, TaskPatch{Priority: ptr(7)})
			require.ErrorIs(t, err, ErrInvalid)

			_, err = tasks.Update(ctx, alice.ID, created.ID, TaskPatch{Name: ptr("")})
			require.ErrorIs(t, err, ErrInvalid)
		})

		t.Run("unknown task", func(t *testing.T) {
			_, err := tasks.Update(ctx, alice.ID, 9999, TaskPatch{Name: ptr("x")})
			require.ErrorIs(t, err, ErrNotFound)
		})
	})
}

func TestTaskComplete(t *testing.T) {
	withEachBackend(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		tasks := &TaskService{Store: st}
		alice := setupOwner(t, st, "alice")

		created, err := tasks.Create(ctx, domain.Task{OwnerID: alice.ID, Name: "water plants"})
		require.NoError(t, err)

		done, err := tasks.Complete(ctx, alice.ID, created.ID)
		require.NoError(t, err)
		require.True(t, done.Completed)

		// Completing again is a no-op, not an error.
		again, err := tasks.Complete(ctx, alice.ID, created.ID)
		require.NoError(t, err)
		require.True(t, again.Completed)
	})
}

func TestTaskDelete(t *testing.T) {
	withEachBackend(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		tasks := &TaskService{Store: st}
		alice := setupOwner(t, st, "alice")

		created, err := tasks.Create(ctx, domain.Task{OwnerID: alice.ID, Name: "old chore"})
		require.NoError(t, err)

		require.NoError(t, tasks.Delete(ctx, alice.ID, created.ID))

		_, err = tasks.Get(ctx, alice.ID, created.ID)
		require.ErrorIs(t, err, ErrNotFound)

		require.ErrorIs(t, tasks.Delete(ctx, alice.ID, created.ID), ErrNotFound)
	})
}

func TestTaskListFilters(t *testing.T) {
	withEachBackend(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		tasks := &TaskService{Store: st}
		alice := setupOwner(t, st, "alice")

		mk := func(name, category string, priority int, tags ...string) domain.Task {
			created, err := tasks.Create(ctx, domain.Task{
				OwnerID:  alice.ID,
				Name:     name,
				Category: category,
				Priority: priority,
				Tags:     tags,
			})
			require.NoError(t, err)
			return created
		}

		a := mk("buy milk", "Errands", domain.PriorityLow, "shopping")
		mk("write report", "Work", domain.PriorityHigh, "office")
		mk("book flights", "Errands", domain.PriorityHigh, "travel", "shopping")

		_, err := tasks.Complete(ctx, alice.ID, a.ID)
		require.NoError(t, err)

		names := func(ts []domain.Task) []string {
			out := make([]string, 0, len(ts))
			for _, task := range ts {
				out = append(out, task.Name)
			}
			return out
		}

		t.Run("no filter", func(t *testing.T) {
			got, err := tasks.List(ctx, alice.ID, store.TaskFilter{})
			require.NoError(t, err)
			require.Equal(t, []string{"buy milk", "write report", "book flights"}, names(got))
		})

		t.Run("by category", func(t *testing.T) {
			got, err := tasks.List(ctx, alice.ID, store.TaskFilter{Category: ptr("Errands")})
			require.NoError(t, err)
			require.Equal(t, []string{"buy milk", "book flights"}, names(got))
		})

		t.Run("by completed", func(t *testing.T) {
			got, err := tasks.List(ctx, alice.ID, store.TaskFilter{Completed: ptr(false)})
			require.NoError(t, err)
			require.Equal(t, []string{"write report", "book flights"}, names(got))
		})

		t.Run("by tag", func(t *testing.T) {
			got, err := tasks.List(ctx, alice.ID, store.TaskFilter{Tag: ptr("shopping")})
			require.NoError(t, err)
			require.Equal(t, []string{"buy milk", "book flights"}, names(got))
		})

		t.Run("by priority", func(t *testing.T) {
			got, err := tasks.List(ctx, alice.ID, store.TaskFilter{Priority: ptr(domain.PriorityHigh)})
			require.NoError(t, err)
			require.Equal(t, []string{"write report", "book flights"}, names(got))
		})

		t.Run("filters combine with AND", func(t *testing.T) {
			got, err := tasks.List(ctx, alice.ID, store.TaskFilter{
				Category: ptr("Errands"),
				Tag:      ptr("shopping"),
				Priority: ptr(domain.PriorityHigh),
			})
			require.NoError(t, err)
			require.Equal(t, []string{"book flights"}, names(got))
		})

		t.Run("no matches", func(t *testing.T) {
			got, err := tasks.List(ctx, alice.ID, store.TaskFilter{Category: ptr("Nothing")})
			require.NoError(t, err)
			require.NotNil(t, got)
			require.Empty(t, got)
		})
	})
}

func TestUsedCategories(t *testing.T) {
	withEachBackend(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		tasks := &TaskService{Store: st}
		alice := setupOwner(t, st, "alice")
		bob := setupOwner(t, st, "bob")

		for _, c := range []string{"Work", "Errands", "Work", ""} {
			_, err := tasks.Create(ctx, domain.Task{OwnerID: alice.ID, Name: "t", Category: c})
			require.NoError(t, err)
		}
		_, err := tasks.Create(ctx, domain.Task{OwnerID: bob.ID, Name: "t", Category: "Secret"})
		require.NoError(t, err)

		got, err := tasks.UsedCategories(ctx, alice.ID)
		require.NoError(t, err)
		require.Equal(t, []string{"Errands", "General", "Work"}, got)
	})
}

func TestParsePriority(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", domain.PriorityNone},
		{"0", domain.PriorityNone},
		{"none", domain.PriorityNone},
		{"1", domain.PriorityLow},
		{"low", domain.PriorityLow},
		{"2", domain.PriorityMed},
		{"med", domain.PriorityMed},
		{"MEDIUM", domain.PriorityMed},
		{"3", domain.PriorityHigh},
		{"High", domain.PriorityHigh},
	}
	for _, c := range cases {
		got, err := ParsePriority(c.in)
		require.NoError(t, err, "input %q", c.in)
		require.Equal(t, c.want, got, "input %q", c.in)
	}

	for _, bad := range []string{"4", "-1", "urgent", "  5 "} {
		_, err := ParsePriority(bad)
		require.ErrorIs(t, err, ErrInvalid, "input %q", bad)
	}
}
