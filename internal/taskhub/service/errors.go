package service

import (
	"errors"
	"fmt"
)

// The four error kinds every consumer of the services observes. Storage
// failures are translated into these at this boundary; front-ends map
// them onto HTTP statuses or CLI messages and never see driver errors.
var (
	// ErrInvalid reports input that fails a validation rule (empty name,
	// out-of-range priority, malformed color).
	ErrInvalid = errors.New("invalid input")

	// ErrNotFound reports an id that does not exist, or exists but is not
	// owned by the caller.
	ErrNotFound = errors.New("not found")

	// ErrConflict reports a uniqueness violation (duplicate username,
	// category or tag name).
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized reports a failed credential check.
	ErrUnauthorized = errors.New("unauthorized")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}
