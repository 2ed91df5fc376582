package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryHitBeforeExpiry(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	m := NewMemory()
	m.now = func() time.Time { return now }

	ctx := context.Background()
	payload := []byte(`{"status":200,"data":"hello"}`)
	require.NoError(t, m.Set(ctx, "https://example.test/a", payload, time.Hour))

	now = now.Add(59 * time.Minute)
	got, ok := m.Get(ctx, "https://example.test/a")
	require.True(t, ok)
	assert.Equal(t, payload, got, "cached value must be returned unchanged")
}

func TestMemoryMissAfterExpiry(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	m := NewMemory()
	m.now = func() time.Time { return now }

	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "k", []byte("v"), time.Hour))

	now = now.Add(time.Hour + time.Second)
	_, ok := m.Get(ctx, "k")
	assert.False(t, ok)

	// Expired entry is evicted, not just hidden.
	m.mu.Lock()
	_, present := m.entries["k"]
	m.mu.Unlock()
	assert.False(t, present)
}

func TestMemoryExpiryBoundary(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	m := NewMemory()
	m.now = func() time.Time { return now }

	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "k", []byte("v"), time.Hour))

	// Exactly at expiry counts as expired.
	now = now.Add(time.Hour)
	_, ok := m.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryDelete(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "k", []byte("v"), time.Hour))
	require.NoError(t, m.Delete(ctx, "k"))

	_, ok := m.Get(ctx, "k")
	assert.False(t, ok)
}
