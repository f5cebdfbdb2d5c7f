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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_RoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, hit, err := m.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, m.Set(ctx, "k1", []byte("v1"), 0))
	value, hit, err := m.Get(ctx, "k1")
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, []byte("v1"), value)

	require.NoError(t, m.Del(ctx, "k1"))
	_, hit, err = m.Get(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, hit)

	// Deleting an absent key is not an error.
	assert.NoError(t, m.Del(ctx, "k1"))
}

func TestMemory_ValueIsolation(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	original := []byte("payload")
	require.NoError(t, m.Set(ctx, "k", original, 0))
	original[0] = 'X'

	value, hit, err := m.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, []byte("payload"), value, "Set must copy its input")

	value[0] = 'Y'
	again, _, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), again, "Get must copy its output")
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "short", []byte("v"), time.Minute))
	require.NoError(t, m.Set(ctx, "forever", []byte("v"), 0))

	_, hit, err := m.Get(ctx, "short")
	require.NoError(t, err)
	assert.True(t, hit)

	now = now.Add(2 * time.Minute)
	_, hit, err = m.Get(ctx, "short")
	require.NoError(t, err)
	assert.False(t, hit, "entry must expire after its ttl")

	_, hit, err = m.Get(ctx, "forever")
	require.NoError(t, err)
	assert.True(t, hit, "zero ttl never expires")

	assert.Equal(t, 1, m.Len())
}

func TestMemory_DelByPrefix(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, Key("ns", "doc1", "op.a", "f1"), []byte("v"), 0))
	require.NoError(t, m.Set(ctx, Key("ns", "doc1", "op.b", "f2"), []byte("v"), 0))
	require.NoError(t, m.Set(ctx, Key("ns", "doc1", "op.c", "f3"), []byte("v"), time.Minute))
	require.NoError(t, m.Set(ctx, Key("ns", "doc2", "op.a", "f4"), []byte("v"), 0))

	// One doc1 entry expires before the prefix delete; it is removed but
	// not counted.
	now = now.Add(2 * time.Minute)
	count, err := m.DelByPrefix(ctx, DocumentPrefix("ns", "doc1"))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, hit, err := m.Get(ctx, Key("ns", "doc2", "op.a", "f4"))
	require.NoError(t, err)
	assert.True(t, hit, "other documents must survive")
	assert.Equal(t, 1, m.Len())
}

func TestMemory_Close(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Set(ctx, "k", []byte("v"), 0))
	require.NoError(t, m.Close())
	assert.Equal(t, 0, m.Len())
}

func TestKeyLayout(t *testing.T) {
	key := Key("glossa", "doc-1", "lexicon.generate", "v1-abc")
	assert.Equal(t, "glossa:doc-1:lexicon.generate:v1-abc", key)
	assert.True(t, len(DocumentPrefix("glossa", "doc-1")) < len(key))
	assert.Equal(t, "glossa:doc-1:", DocumentPrefix("glossa", "doc-1"))
}
