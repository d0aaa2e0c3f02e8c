// Package tokenstore persists the session token between restarts.
package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"mixin_wallet/internal/app/port"

	"github.com/timshannon/badgerhold/v4"
)

// storedToken is the single record kept per key.
type storedToken struct {
	Key       string `badgerhold:"key"`
	Value     string
	UpdatedAt time.Time
}

// BadgerStore implements port.TokenStore on an embedded BadgerDB.
type BadgerStore struct {
	db     *badgerhold.Store
	logger port.Logger
}

// NewBadgerStore opens (creating if needed) the store at dir.
func NewBadgerStore(dir string, l port.Logger) (*BadgerStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create token store dir %s: %w", dir, err)
	}
	opts := badgerhold.DefaultOptions
	opts.Dir = dir
	opts.ValueDir = dir
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open token store at %s: %w", dir, err)
	}
	l.Info("Token store opened", "path", dir)
	return &BadgerStore{db: db, logger: l}, nil
}

// Get returns the value stored under key. ok is false when nothing is stored.
func (s *BadgerStore) Get(_ context.Context, key string) (string, bool, error) {
	var rec storedToken
	if err := s.db.Get(key, &rec); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read token %q: %w", key, err)
	}
	return rec.Value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *BadgerStore) Set(_ context.Context, key, value string) error {
	rec := storedToken{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	if err := s.db.Upsert(key, &rec); err != nil {
		return fmt.Errorf("failed to write token %q: %w", key, err)
	}
	s.logger.Debug("Token stored", "key", key)
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *BadgerStore) Delete(_ context.Context, key string) error {
	if err := s.db.Delete(key, storedToken{}); err != nil && !errors.Is(err, badgerhold.ErrNotFound) {
		return fmt.Errorf("failed to delete token %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
