package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oakmount/taskhub/internal/taskhub/domain"
	"github.com/oakmount/taskhub/internal/taskhub/store"
	"github.com/oakmount/taskhub/internal/taskhub/store/drivers/jsonfile"
	"github.com/oakmount/taskhub/internal/taskhub/store/drivers/sqlite"
)

// withEachBackend runs fn once per storage driver. The business rules
// must behave identically regardless of which backend is wired in.
func withEachBackend(t *testing.T, fn func(t *testing.T, st store.Store)) {
	t.Helper()

	t.Run("sqlite", func(t *testing.T) {
		st, err := sqlite.NewStore(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { _ = st.Close() })
		require.NoError(t, st.ApplyMigrations())
		fn(t, st)
	})

	t.Run("jsonfile", func(t *testing.T) {
		dir := t.TempDir()
		st, err := jsonfile.NewStore(
			filepath.Join(dir, "users.json"),
			filepath.Join(dir, "tasks.json"),
		)
		require.NoError(t, err)
		t.Cleanup(func() { _ = st.Close() })
		require.NoError(t, st.ApplyMigrations())
		fn(t, st)
	})
}

func TestRegister(t *testing.T) {
	withEachBackend(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		users := &UserService{Store: st}

		u, err := users.Register(ctx, "alice", "alice@example.com", "s3cret", "Alice Smith")
		require.NoError(t, err)
		require.Positive(t, u.ID)
		require.Equal(t, "alice", u.Username)
		require.Equal(t, "alice@example.com", u.Email)
		require.Equal(t, "Alice Smith", u.FullName)
		require.False(t, u.Disabled)
		require.Empty(t, u.PasswordHash, "hash must never leave the service layer")

		// Every new account starts with the default category.
		require.Equal(t, []domain.Category{domain.DefaultCategory}, u.Categories)
		require.Empty(t, u.Tags)
	})
}

func TestRegisterValidation(t *testing.T) {
	withEachBackend(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		users := &UserService{Store: st}

		_, err := users.Register(ctx, "", "", "pw", "")
		require.ErrorIs(t, err, ErrInvalid)

		_, err = users.Register(ctx, "   ", "", "pw", "")
		require.ErrorIs(t, err, ErrInvalid)

		_, err = users.Register(ctx, "bob", "", "", "")
		require.ErrorIs(t, err, ErrInvalid)
	})
}

func TestRegisterDuplicateUsername(t *testing.T) {
	withEachBackend(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		users := &UserService{Store: st}

		_, err := users.Register(ctx, "alice", "", "pw1", "")
		require.NoError(t, err)

		_, err = users.Register(ctx, "alice", "other@example.com", "pw2", "")
		require.ErrorIs(t, err, ErrConflict)
	})
}

func TestAuthenticate(t *testing.T) {
	withEachBackend(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		users := &UserService{Store: st}

		registered, err := users.Register(ctx, "alice", "", "s3cret", "")
		require.NoError(t, err)

		t.Run("valid credentials", func(t *testing.T) {
			u, err := users.Authenticate(ctx, "alice", "s3cret")
			require.NoError(t, err)
			require.Equal(t, registered.ID, u.ID)
			require.Empty(t, u.PasswordHash)
		})

		t.Run("wrong password", func(t *testing.T) {
			_, err := users.Authenticate(ctx, "alice", "wrong")
			require.ErrorIs(t, err, ErrUnauthorized)
		})

		t.Run("unknown username", func(t *testing.T) {
			_, err := users.Authenticate(ctx, "mallory", "s3cret")
			require.ErrorIs(t, err, ErrUnauthorized)
		})
	})
}

func TestDeactivate(t *testing.T) {
	withEachBackend(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		users := &UserService{Store: st}

		u, err := users.Register(ctx, "alice", "", "s3cret", "")
		require.NoError(t, err)

		require.NoError(t, users.Deactivate(ctx, u.ID))

		// Disabled accounts cannot authenticate, even with the right password.
		_, err = users.Authenticate(ctx, "alice", "s3cret")
		require.ErrorIs(t, err, ErrUnauthorized)

		// Deactivating twice is a no-op.
		require.NoError(t, users.Deactivate(ctx, u.ID))

		// The account itself still exists.
		got, err := users.GetByID(ctx, u.ID)
		require.NoError(t, err)
		require.True(t, got.Disabled)
	})
}

func TestDeactivateUnknownUser(t *testing.T) {
	withEachBackend(t, func(t *testing.T, st store.Store) {
		err := (&UserService{Store: st}).Deactivate(context.Background(), 9999)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUpdateProfile(t *testing.T) {
	withEachBackend(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		users := &UserService{Store: st}

		u, err := users.Register(ctx, "alice", "old@example.com", "pw", "Alice")
		require.NoError(t, err)

		updated, err := users.UpdateProfile(ctx, u.ID, "new@example.com", "Alice S.")
		require.NoError(t, err)
		require.Equal(t, "new@example.com", updated.Email)
		require.Equal(t, "Alice S.", updated.FullName)
		require.Equal(t, "alice", updated.Username, "username is immutable")

		// Credentials survive a profile update.
		_, err = users.Authenticate(ctx, "alice", "pw")
		require.NoError(t, err)
	})
}

func TestCategories(t *testing.T) {
	withEachBackend(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		users := &UserService{Store: st}

		alice, err := users.Register(ctx, "alice", "", "pw", "")
		require.NoError(t, err)
		bob, err := users.Register(ctx, "bob", "", "pw", "")
		require.NoError(t, err)

		t.Run("add", func(t *testing.T) {
			cat, err := users.AddCategory(ctx, alice.ID, "Work", "#ff0000")
			require.NoError(t, err)
			require.Equal(t, domain.Category{Name: "Work", Color: "#ff0000"}, cat)

			cats, err := users.Categories(ctx, alice.ID)
			require.NoError(t, err)
			require.Equal(t, []domain.Category{
				domain.DefaultCategory,
				{Name: "Work", Color: "#ff0000"},
			}, cats)
		})

		t.Run("duplicate name conflicts", func(t *testing.T) {
			_, err := users.AddCategory(ctx, alice.ID, "Work", "#00ff00")
			require.ErrorIs(t, err, ErrConflict)
		})

		t.Run("scoped per user", func(t *testing.T) {
			// Bob can use the same name Alice already has.
			_, err := users.AddCategory(ctx, bob.ID, "Work", "#0000ff")
			require.NoError(t, err)
		})

		t.Run("invalid colour", func(t *testing.T) {
			_, err := users.AddCategory(ctx, alice.ID, "Play", "red")
			require.ErrorIs(t, err, ErrInvalid)
		})

		t.Run("empty name", func(t *testing.T) {
			_, err := users.AddCategory(ctx, alice.ID, "  ", "#ff0000")
			require.ErrorIs(t, err, ErrInvalid)
		})

		t.Run("remove", func(t *testing.T) {
			require.NoError(t, users.RemoveCategory(ctx, alice.ID, "Work"))

			cats, err := users.Categories(ctx, alice.ID)
			require.NoError(t, err)
			require.Equal(t, []domain.Category{domain.DefaultCategory}, cats)

			// Bob's identically named category is untouched.
			bobCats, err := users.Categories(ctx, bob.ID)
			require.NoError(t, err)
			require.Contains(t, bobCats, domain.Category{Name: "Work", Color: "#0000ff"})
		})

		t.Run("remove missing", func(t *testing.T) {
			err := users.RemoveCategory(ctx, alice.ID, "Nonexistent")
			require.ErrorIs(t, err, ErrNotFound)
		})
	})
}

func TestTags(t *testing.T) {
	withEachBackend(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		users := &UserService{Store: st}

		alice, err := users.Register(ctx, "alice", "", "pw", "")
		require.NoError(t, err)

		tag, err := users.AddTag(ctx, alice.ID, "urgent", "#ff0000")
		require.NoError(t, err)
		require.Equal(t, domain.Tag{Name: "urgent", Color: "#ff0000"}, tag)

		_, err = users.AddTag(ctx, alice.ID, "urgent", "#00ff00")
		require.ErrorIs(t, err, ErrConflict)

		_, err = users.AddTag(ctx, alice.ID, "bad", "nope")
		require.ErrorIs(t, err, ErrInvalid)

		tags, err := users.Tags(ctx, alice.ID)
		require.NoError(t, err)
		require.Equal(t, []domain.Tag{{Name: "urgent", Color: "#ff0000"}}, tags)

		require.NoError(t, users.RemoveTag(ctx, alice.ID, "urgent"))
		require.ErrorIs(t, users.RemoveTag(ctx, alice.ID, "urgent"), ErrNotFound)
	})
}

func TestHashNeverReturned(t *testing.T) {
	withEachBackend(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		users := &UserService{Store: st}

		u, err := users.Register(ctx, "alice", "", "pw", "")
		require.NoError(t, err)

		byID, err := users.GetByID(ctx, u.ID)
		require.NoError(t, err)
		require.Empty(t, byID.PasswordHash)

		byName, err := users.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Empty(t, byName.PasswordHash)

		all, err := users.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		require.Empty(t, all[0].PasswordHash)

		authed, err := users.Authenticate(ctx, "alice", "pw")
		require.NoError(t, err)
		require.Empty(t, authed.PasswordHash)
	})
}
