package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/oakmount/taskhub/internal/taskhub/domain"
	"github.com/oakmount/taskhub/internal/taskhub/store"
	"github.com/oakmount/taskhub/pkg/cryptox"
	"github.com/oakmount/taskhub/pkg/slogx"
)

// UserService holds the user-facing business rules: registration,
// credential checks, and the per-user category/tag sets. It depends only
// on the storage contract, never on a concrete driver.
type UserService struct {
	Store store.Store
}

// Register creates a new account. The password is hashed before anything
// touches storage; the returned user never carries the hash.
func (s *UserService) Register(
	ctx context.Context,
	username, email, password, fullName string,
) (domain.User, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input.
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.User{}, invalidf("username cannot be empty")
	}
	if password == "" {
		return domain.User{}, invalidf("password cannot be empty")
	}

	// 2. Hash the password. Plaintext stops here.
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	user := domain.User{
		Username:     username,
		Email:        strings.TrimSpace(email),
		PasswordHash: hash,
		FullName:     strings.TrimSpace(fullName),
		Categories:   []domain.Category{domain.DefaultCategory},
		Tags:         []domain.Tag{},
	}

	// 3. Check availability and create atomically.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Users().GetUserByUsername(ctx, username)
		if err == nil {
			return conflictf("username %q already taken", username)
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		user, err = tx.Users().CreateUser(ctx, user)
		if errors.Is(err, store.ErrAlreadyExists) {
			return conflictf("username %q already taken", username)
		}
		return err
	})
	if err != nil {
		if errors.Is(err, ErrConflict) {
			log.Warn("registration attempted with taken username",
				slog.String("username", username),
			)
		} else {
			log.Error("failed to create user", slog.Any("error", err))
		}
		return domain.User{}, err
	}

	log.Info("user registered",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)
	return sanitize(user), nil
}

// Authenticate verifies a username/password pair. On success it returns
// the user as an identity assertion for the API layer to mint a token
// from; every failure mode collapses into ErrUnauthorized.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("login attempted with unknown username", slog.String("username", username))
			return domain.User{}, ErrUnauthorized
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		log.Warn("login attempted with wrong password",
			slog.Int64("user_id", user.ID),
			slog.String("username", username),
		)
		return domain.User{}, ErrUnauthorized
	}

	if user.Disabled {
		log.Warn("login attempted on disabled account", slog.Int64("user_id", user.ID))
		return domain.User{}, ErrUnauthorized
	}

	return sanitize(user), nil
}

// GetByID fetches a user by id.
func (s *UserService) GetByID(ctx context.Context, userID int64) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.User{}, mapStoreErr(err)
	}
	return sanitize(user), nil
}

// GetByUsername fetches a user by username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		return domain.User{}, mapStoreErr(err)
	}
	return sanitize(user), nil
}

// List returns all users ordered by id.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.Store.Users().ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i] = sanitize(users[i])
	}
	return users, nil
}

// UpdateProfile replaces the user's email and display name.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, email, fullName string) (domain.User, error) {
	var user domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		user, err = tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			return mapStoreErr(err)
		}

		user.Email = strings.TrimSpace(email)
		user.FullName = strings.TrimSpace(fullName)
		return tx.Users().UpdateUser(ctx, user)
	})
	if err != nil {
		return domain.User{}, err
	}
	return sanitize(user), nil
}

// Deactivate sets the disabled flag. Accounts are never hard-deleted.
func (s *UserService) Deactivate(ctx context.Context, userID int64) error {
	log := slogx.FromContext(ctx)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		user, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			return mapStoreErr(err)
		}
		if user.Disabled {
			return nil
		}
		user.Disabled = true
		return tx.Users().UpdateUser(ctx, user)
	})
	if err != nil {
		return err
	}

	log.Info("user deactivated", slog.Int64("user_id", userID))
	return nil
}

// AddCategory appends a category to the user's set. Duplicate names
// within the same user's set conflict; the same name on another user's
// set does not.
func (s *UserService) AddCategory(ctx context.Context, userID int64, name, color string) (domain.Category, error) {
	cat := domain.Category{Name: strings.TrimSpace(name), Color: color}
	if err := cat.Validate(); err != nil {
		return domain.Category{}, invalidf("category: %v", err)
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		user, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			return mapStoreErr(err)
		}
		if user.HasCategory(cat.Name) {
			return conflictf("category %q already exists", cat.Name)
		}
		user.Categories = append(user.Categories, cat)
		return tx.Users().UpdateUser(ctx, user)
	})
	if err != nil {
		return domain.Category{}, err
	}
	return cat, nil
}

// RemoveCategory drops the named category from the user's set.
func (s *UserService) RemoveCategory(ctx context.Context, userID int64, name string) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		user, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			return mapStoreErr(err)
		}

		kept := user.Categories[:0]
		for _, c := range user.Categories {
			if c.Name != name {
				kept = append(kept, c)
			}
		}
		if len(kept) == len(user.Categories) {
			return notFoundf("category %q", name)
		}
		user.Categories = kept
		return tx.Users().UpdateUser(ctx, user)
	})
}

// AddTag appends a tag to the user's set, scoped the same way as
// AddCategory.
func (s *UserService) AddTag(ctx context.Context, userID int64, name, color string) (domain.Tag, error) {
	tag := domain.Tag{Name: strings.TrimSpace(name), Color: color}
	if err := tag.Validate(); err != nil {
		return domain.Tag{}, invalidf("tag: %v", err)
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		user, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			return mapStoreErr(err)
		}
		if user.HasTag(tag.Name) {
			return conflictf("tag %q already exists", tag.Name)
		}
		user.Tags = append(user.Tags, tag)
		return tx.Users().UpdateUser(ctx, user)
	})
	if err != nil {
		return domain.Tag{}, err
	}
	return tag, nil
}

// RemoveTag drops the named tag from the user's set.
func (s *UserService) RemoveTag(ctx context.Context, userID int64, name string) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		user, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			return mapStoreErr(err)
		}

		kept := user.Tags[:0]
		for _, t := range user.Tags {
			if t.Name != name {
				kept = append(kept, t)
			}
		}
		if len(kept) == len(user.Tags) {
			return notFoundf("tag %q", name)
		}
		user.Tags = kept
		return tx.Users().UpdateUser(ctx, user)
	})
}

// Categories returns the user's stored category set.
func (s *UserService) Categories(ctx context.Context, userID int64) ([]domain.Category, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return user.Categories, nil
}

// Tags returns the user's stored tag set.
func (s *UserService) Tags(ctx context.Context, userID int64) ([]domain.Tag, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return user.Tags, nil
}

// sanitize strips the password hash before a user leaves the service
// layer.
func sanitize(u domain.User) domain.User {
	u.PasswordHash = ""
	return u
}

func mapStoreErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, store.ErrAlreadyExists) {
		return ErrConflict
	}
	return err
}
