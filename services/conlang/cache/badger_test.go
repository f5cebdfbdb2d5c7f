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
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestBadger(t *testing.T) *Badger {
	t.Helper()
	b, err := OpenBadger(BadgerConfig{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestBadger_RoundTrip(t *testing.T) {
	ctx := context.Background()
	b := openTestBadger(t)

	_, hit, err := b.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, b.Set(ctx, "k1", []byte("v1"), 0))
	value, hit, err := b.Get(ctx, "k1")
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, []byte("v1"), value)

	require.NoError(t, b.Del(ctx, "k1"))
	_, hit, err = b.Get(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, hit)

	assert.NoError(t, b.Del(ctx, "never-existed"))
}

func TestBadger_TTL(t *testing.T) {
	ctx := context.Background()
	b := openTestBadger(t)

	require.NoError(t, b.Set(ctx, "short", []byte("v"), 50*time.Millisecond))
	_, hit, err := b.Get(ctx, "short")
	require.NoError(t, err)
	require.True(t, hit)

	time.Sleep(120 * time.Millisecond)
	_, hit, err = b.Get(ctx, "short")
	require.NoError(t, err)
	assert.False(t, hit, "entry must expire after its ttl")
}

func TestBadger_DelByPrefix(t *testing.T) {
	ctx := context.Background()
	b := openTestBadger(t)

	require.NoError(t, b.Set(ctx, Key("ns", "doc1", "op.a", "f1"), []byte("v"), 0))
	require.NoError(t, b.Set(ctx, Key("ns", "doc1", "op.b", "f2"), []byte("v"), 0))
	require.NoError(t, b.Set(ctx, Key("ns", "doc2", "op.a", "f3"), []byte("v"), 0))

	count, err := b.DelByPrefix(ctx, DocumentPrefix("ns", "doc1"))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, hit, err := b.Get(ctx, Key("ns", "doc2", "op.a", "f3"))
	require.NoError(t, err)
	assert.True(t, hit, "other documents must survive")
}

func TestBadger_RequiresPath(t *testing.T) {
	_, err := OpenBadger(BadgerConfig{})
	assert.Error(t, err)
}

func TestNew_FallsBackToMemory(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// A path under a file (not a directory) cannot be created, so the
	// factory must hand back the in-process backend instead of failing.
	c := New(Config{Path: "/dev/null/cache"}, logger)
	defer c.Close()
	_, ok := c.(*Memory)
	assert.True(t, ok, "expected the in-process fallback, got %T", c)

	c2 := New(Config{}, logger)
	defer c2.Close()
	_, ok = c2.(*Memory)
	assert.True(t, ok)
}
