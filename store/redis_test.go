package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/rueidis"
	"github.com/sicko7947/storybook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniredisBackend(t *testing.T) (storybook.Backend, *miniredis.Miniredis) {
	t.Helper()

	r := miniredis.RunT(t)

	rc, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:           []string{r.Addr()},
		DisableCache:          true,
		DisableAutoPipelining: true,
	})
	require.NoError(t, err)
	t.Cleanup(rc.Close)

	return NewRedisBackend(rc), r
}

func TestRedisBackend_GetAbsent(t *testing.T) {
	backend, _ := newMiniredisBackend(t)

	value, ok, err := backend.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestRedisBackend_SetAndGet(t *testing.T) {
	backend, r := newMiniredisBackend(t)
	ctx := context.Background()

	require.NoError(t, backend.Set(ctx, storybook.StorageKey, "[]"))

	value, ok, err := backend.Get(ctx, storybook.StorageKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", value)

	stored, err := r.Get(storybook.StorageKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", stored)
}

func TestRedisBackend_WrongTypeIsError(t *testing.T) {
	backend, r := newMiniredisBackend(t)

	_, err := r.Lpush("list", "x")
	require.NoError(t, err)

	_, _, err = backend.Get(context.Background(), "list")
	assert.Error(t, err)
}

func TestRedisBackend_StoreFallsBackOnCorruptValue(t *testing.T) {
	backend, r := newMiniredisBackend(t)
	require.NoError(t, r.Set(storybook.StorageKey, "{not json"))

	stories := storybook.NewStore(backend)
	got := stories.GetStoriesWithDefault(context.Background())

	assert.Equal(t, storybook.DefaultStories(), got)
}
