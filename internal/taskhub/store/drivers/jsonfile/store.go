// Package jsonfile implements the storage contract on two flat JSON
// documents: one holding all users and one holding all tasks, each keyed
// by id with entries shaped like the relational rows.
//
// This backend is a development-only storage mode with a single-writer
// constraint: a mutex serializes access within one process, but nothing
// guards against a second process writing the same files.
package jsonfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/oakmount/taskhub/internal/taskhub/store"
)

type Store struct {
	mu        sync.Mutex
	usersPath string
	tasksPath string
}

// NewStore creates a jsonfile store backed by the two given documents.
// The files are created on ApplyMigrations, not here, mirroring the
// sqlite driver's open-then-migrate split.
func NewStore(usersPath, tasksPath string) (*Store, error) {
	if usersPath == "" || tasksPath == "" {
		return nil, fmt.Errorf("jsonfile: both document paths are required")
	}
	return &Store{usersPath: usersPath, tasksPath: tasksPath}, nil
}

func (s *Store) Close() error { return nil }

// Ping verifies both documents are readable.
func (s *Store) Ping(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.load()
	return err
}

// ApplyMigrations initializes empty documents for any file that does not
// exist yet. Existing documents are left untouched.
func (s *Store) ApplyMigrations() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, path := range []string{s.usersPath, s.tasksPath} {
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return err
		}
		if err := writeDocument(path, []byte("{}\n")); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Users() store.Users { return &usersRepo{s: s} }
func (s *Store) Tasks() store.Tasks { return &tasksRepo{s: s} }

// Tx locks the store and returns a snapshot-scoped Tx. Commit persists
// the snapshot and releases the lock; Rollback discards it. The caller
// MUST call one of the two.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	s.mu.Lock()
	st, err := s.load()
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	return &txStore{s: s, st: st}, nil
}

// WithTx executes fn against a snapshot of both documents, persisting
// only when fn succeeds.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	// Safe to call even after commit
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err // rollback happens in defer
	}

	return tx.Commit()
}

// view runs fn against a freshly loaded snapshot without persisting.
func (s *Store) view(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load()
	if err != nil {
		return err
	}
	return fn(st)
}

// update runs fn against a snapshot and persists both documents when fn
// succeeds.
func (s *Store) update(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(st); err != nil {
		return err
	}
	return s.persist(st)
}

// writeDocument writes atomically via a temp file in the same directory
// followed by a rename, so readers never observe a torn document.
func writeDocument(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
