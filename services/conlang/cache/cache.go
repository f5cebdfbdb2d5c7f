// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package cache memoizes validated generation results.
//
// The cache is a pure memoization layer, not a linearizability guarantee:
// entries are idempotent re-derivations of the same fingerprint, so
// last-writer-wins races between concurrent callers are acceptable. Two
// backends exist — an in-process expiring map (default and tests) and an
// embedded BadgerDB store (production) — selected by configuration, with
// automatic fallback to the in-process map when Badger cannot be opened.
package cache

import (
	"context"
	"time"
)

// Cache is the storage abstraction the orchestrator writes validated
// results through.
//
// Implementations must be safe for concurrent use. A Get error is treated
// by callers as a miss; a Set error is logged and otherwise ignored — the
// pipeline never fails because the cache does.
type Cache interface {
	// Get returns the value for key, and whether it was present and
	// unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key for ttl. A non-positive ttl stores the
	// entry without expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Del removes one key. Deleting an absent key is not an error.
	Del(ctx context.Context, key string) error

	// DelByPrefix removes every key with the given prefix and returns the
	// number removed.
	DelByPrefix(ctx context.Context, prefix string) (int, error)

	// Close releases backend resources.
	Close() error
}

// Key derives the storage key for one memoized result:
// namespace:documentID:operation:fingerprint. Keeping the document id as
// its own segment is what makes version-bump invalidation a prefix delete.
func Key(namespace, documentID, operation, fingerprint string) string {
	return namespace + ":" + documentID + ":" + operation + ":" + fingerprint
}

// DocumentPrefix is the prefix shared by every key for one document; pass
// it to DelByPrefix when the document's version counter increments.
func DocumentPrefix(namespace, documentID string) string {
	return namespace + ":" + documentID + ":"
}
