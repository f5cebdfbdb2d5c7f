// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// BadgerConfig holds configuration for the embedded Badger backend.
type BadgerConfig struct {
	// Path is the directory for the database files. Required unless
	// InMemory is true.
	Path string

	// InMemory enables in-memory mode (no disk persistence). Useful for
	// testing the backend itself.
	InMemory bool

	// SyncWrites enables synchronous writes for durability. Cache entries
	// are re-derivable, so the default is false.
	SyncWrites bool

	// Logger receives Badger's internal logging. If nil, it is disabled.
	Logger *slog.Logger
}

// badgerLogger adapts slog.Logger to Badger's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Badger is the embedded persistent cache backend. Entry expiry uses
// Badger's native per-entry TTL; prefix deletes use a keyed iterator.
//
// Thread Safety: Safe for concurrent use.
type Badger struct {
	db *badger.DB
}

// OpenBadger opens (or creates) a Badger-backed cache.
//
// Description:
//
//	Creates the directory if it does not exist, then opens the database.
//	Callers that want the automatic in-memory fallback should go through
//	New instead of calling this directly.
//
// Outputs:
//
//	*Badger - The opened backend. Caller must Close it.
//	error - Non-nil if the path is unusable or the database is locked.
func OpenBadger(cfg BadgerConfig) (*Badger, error) {
	if !cfg.InMemory {
		if cfg.Path == "" {
			return nil, errors.New("badger cache: path is required")
		}
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return nil, fmt.Errorf("badger cache: creating %s: %w", cfg.Path, err)
		}
	}

	opts := badger.DefaultOptions(cfg.Path).
		WithInMemory(cfg.InMemory).
		WithSyncWrites(cfg.SyncWrites)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger cache: opening %s: %w", cfg.Path, err)
	}
	return &Badger{db: db}, nil
}

// Get implements Cache.
func (b *Badger) Get(_ context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("badger cache get: %w", err)
	}
	return value, true, nil
}

// Set implements Cache.
func (b *Badger) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), value)
		if ttl > 0 {
			entry = entry.WithTTL(ttl)
		}
		return txn.SetEntry(entry)
	})
	if err != nil {
		return fmt.Errorf("badger cache set: %w", err)
	}
	return nil
}

// Del implements Cache.
func (b *Badger) Del(_ context.Context, key string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("badger cache del: %w", err)
	}
	return nil
}

// DelByPrefix implements Cache.
func (b *Badger) DelByPrefix(ctx context.Context, prefix string) (int, error) {
	// Collect first, delete second: deleting inside an iterator
	// invalidates it.
	var keys [][]byte
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			key := it.Item().KeyCopy(nil)
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("badger cache scan: %w", err)
	}

	count := 0
	for _, key := range keys {
		select {
		case <-ctx.Done():
			return count, ctx.Err()
		default:
		}
		err := b.db.Update(func(txn *badger.Txn) error {
			return txn.Delete(key)
		})
		if err != nil {
			return count, fmt.Errorf("badger cache del: %w", err)
		}
		count++
	}
	return count, nil
}

// Close implements Cache.
func (b *Badger) Close() error {
	return b.db.Close()
}
