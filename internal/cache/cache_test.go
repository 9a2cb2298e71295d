package cache

import (
	"context"
	"testing"
	"time"

	"github.com/jon4hz/tasktracker/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Name  string `json:"name"`
	Admin bool   `json:"admin"`
}

func TestPrefixedCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c := New[entry](&config.CacheConfig{Type: config.CacheTypeMemory, TTL: time.Minute}, "identity-")

	require.NoError(t, c.Set(ctx, 1, entry{Name: "alice", Admin: true}))

	got, err := c.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, entry{Name: "alice", Admin: true}, got)
	assert.Equal(t, config.CacheTypeMemory, c.GetType())
}

func TestPrefixedCache_Miss(t *testing.T) {
	c := New[entry](nil, "identity-")

	_, err := c.Get(context.Background(), 42)
	assert.Error(t, err)
}

func TestPrefixedCache_Delete(t *testing.T) {
	ctx := context.Background()
	c := New[entry](&config.CacheConfig{Type: config.CacheTypeMemory}, "identity-")

	require.NoError(t, c.Set(ctx, "k", entry{Name: "bob"}))
	require.NoError(t, c.Delete(ctx, "k"))

	_, err := c.Get(ctx, "k")
	assert.Error(t, err)
}

func TestPrefixedCache_Expiration(t *testing.T) {
	ctx := context.Background()
	c := New[entry](&config.CacheConfig{Type: config.CacheTypeMemory, TTL: 20 * time.Millisecond}, "identity-")

	require.NoError(t, c.Set(ctx, 1, entry{Name: "alice"}))
	time.Sleep(50 * time.Millisecond)

	_, err := c.Get(ctx, 1)
	assert.Error(t, err)
}

func TestPrefixedCache_PrefixesAreIsolated(t *testing.T) {
	ctx := context.Background()
	shared := newMemoryCache()
	a := NewPrefixedCache[entry](shared, config.CacheTypeMemory, "a-", 0)
	b := NewPrefixedCache[entry](shared, config.CacheTypeMemory, "b-", 0)

	require.NoError(t, a.Set(ctx, 1, entry{Name: "from-a"}))

	_, err := b.Get(ctx, 1)
	assert.Error(t, err)

	got, err := a.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "from-a", got.Name)
}
