package kvstore

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniredisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisStore(client)
}

func testStores(t *testing.T) map[string]SortedSetStore {
	t.Helper()
	return map[string]SortedSetStore{
		"memory": NewMemoryStore(),
		"redis":  newMiniredisStore(t),
	}
}

func TestPruneAndCountEmptyKey(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			count, err := store.PruneAndCount(context.Background(), "k", 0)
			require.NoError(t, err)
			assert.Equal(t, int64(0), count)
		})
	}
}

func TestAddThenPruneAndCount(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Add(ctx, "k", 10, "req-10", 120))
			require.NoError(t, store.Add(ctx, "k", 20, "req-20", 120))

			count, err := store.PruneAndCount(ctx, "k", 5)
			require.NoError(t, err)
			assert.Equal(t, int64(2), count)
		})
	}
}

func TestPruneRemovesEntriesOlderThanWindowStart(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Add(ctx, "k", 1, "old", 120))
			require.NoError(t, store.Add(ctx, "k", 100, "new", 120))

			count, err := store.PruneAndCount(ctx, "k", 50)
			require.NoError(t, err)
			assert.Equal(t, int64(1), count)
		})
	}
}

func TestOldestScore(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			_, ok, err := store.OldestScore(ctx, "empty")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.Add(ctx, "k", 30, "a", 120))
			require.NoError(t, store.Add(ctx, "k", 10, "b", 120))

			score, ok, err := store.OldestScore(ctx, "k")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, float64(10), score)
		})
	}
}

func TestDeleteRemovesKeys(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Add(ctx, "k", 1, fmt.Sprintf("m-%d", 1), 120))
			require.NoError(t, store.Delete(ctx, "k"))

			count, err := store.PruneAndCount(ctx, "k", 0)
			require.NoError(t, err)
			assert.Equal(t, int64(0), count)
		})
	}
}
