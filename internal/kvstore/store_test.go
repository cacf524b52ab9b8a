package kvstore

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put(ctx, KeyTotalPoints, "10"))
	require.NoError(t, store.Put(ctx, KeyTotalPoints, "25"))

	value, ok, err := store.Get(ctx, KeyTotalPoints)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "25", value)

	require.NoError(t, store.Delete(ctx, KeyTotalPoints))
	_, ok, err = store.Get(ctx, KeyTotalPoints)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Delete(ctx, "never-written"))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	store, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer store.Close(context.Background())

	exerciseStore(t, store)
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	path := t.TempDir() + "/codecup.db"
	ctx := context.Background()

	store, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, KeyRecentSearches, "mocha,latte"))
	require.NoError(t, store.Close(ctx))

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close(ctx)

	value, ok, err := reopened.Get(ctx, KeyRecentSearches)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "mocha,latte", value)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	store := NewRedisStore(addr, os.Getenv("REDIS_PASSWORD"), 0)
	defer store.Close(context.Background())
	require.NoError(t, store.Ping(context.Background()))

	exerciseStore(t, store)
}
