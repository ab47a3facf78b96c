// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

// Package store provides durable whole-snapshot key/value persistence on
// BadgerDB. Every persisted value is a complete snapshot written in one
// transaction; there is no incremental or per-entry persistence, and the
// only migration rule is "missing key means default state".
package store

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/cinemood/internal/logging"
)

// Persisted snapshot keys.
const (
	KeyLedger    = "preferences:ledger"
	KeyMood      = "preferences:mood"
	KeyProfile   = "preferences:profile"
	KeyFavorites = "library:favorites"
	KeyHistory   = "library:history"
)

// ErrNotFound indicates the key has no persisted snapshot. Callers treat
// this as "use the default state", not as a failure.
var ErrNotFound = errors.New("snapshot not found")

// Config holds store configuration.
type Config struct {
	// Dir is the BadgerDB directory. Ignored when InMemory is set.
	Dir string

	// InMemory runs the store without disk persistence. Used in tests
	// and ephemeral deployments.
	InMemory bool
}

// Store is a BadgerDB-backed snapshot store. Safe for concurrent use.
type Store struct {
	db *badger.DB
}

// Open opens (creating if needed) the snapshot store.
func Open(cfg Config) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Dir)
	}
	opts = opts.WithLogger(badgerLogger{})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", cfg.Dir, err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Read returns the snapshot stored under key, or ErrNotFound.
func (s *Store) Read(key string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get %q: %w", key, err)
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Write stores a whole snapshot under key.
func (s *Store) Write(key string, data []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}

// Remove deletes the snapshot under key. Removing a missing key is not an
// error.
func (s *Store) Remove(key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

// Snapshotter is implemented by state objects that persist as one blob.
type Snapshotter interface {
	MarshalSnapshot() ([]byte, error)
	RestoreSnapshot([]byte) error
}

// Load restores a snapshot into target. A missing key leaves the target in
// its default state. A corrupt snapshot is logged and discarded rather
// than propagated: losing one snapshot beats refusing to start.
func (s *Store) Load(key string, target Snapshotter) error {
	data, err := s.Read(key)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := target.RestoreSnapshot(data); err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("discarding corrupt snapshot")
		return nil
	}
	return nil
}

// Save persists target's snapshot under key.
func (s *Store) Save(key string, target Snapshotter) error {
	data, err := target.MarshalSnapshot()
	if err != nil {
		return fmt.Errorf("marshal snapshot %q: %w", key, err)
	}
	return s.Write(key, data)
}

// badgerLogger routes BadgerDB's internal logging through zerolog.
// Badger's info/debug output is noisy; it is demoted below warn.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...any) {
	logging.Error().Msgf("badger: "+format, args...)
}

func (badgerLogger) Warningf(format string, args ...any) {
	logging.Warn().Msgf("badger: "+format, args...)
}

func (badgerLogger) Infof(format string, args ...any) {
	logging.Debug().Msgf("badger: "+format, args...)
}

func (badgerLogger) Debugf(format string, args ...any) {
	logging.Trace().Msgf("badger: "+format, args...)
}
