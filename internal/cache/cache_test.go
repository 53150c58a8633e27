package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute), mr
}

func TestVersionInitializes(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	ver, err := c.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), ver)

	stored, err := mr.Get("content:version")
	require.NoError(t, err)
	assert.Equal(t, "1", stored)

	// Subsequent reads return the stored value.
	ver, err = c.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), ver)
}

func TestBuildKeyCarriesVersion(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	key, err := c.BuildKey(ctx, KeyNewsList(10, 0)...)
	require.NoError(t, err)
	assert.Equal(t, "content:news:10:0:1", key)

	require.NoError(t, c.Bump(ctx))

	key, err = c.BuildKey(ctx, KeyNewsList(10, 0)...)
	require.NoError(t, err)
	assert.Equal(t, "content:news:10:0:2", key)
}

func TestFetchJSONCachesLoaderResult(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	type page struct {
		Names []string `json:"names"`
	}

	calls := 0
	loader := func(context.Context) (interface{}, error) {
		calls++
		return page{Names: []string{"a", "b"}}, nil
	}

	var first page
	require.NoError(t, c.FetchJSON(ctx, "content:test:1", &first, loader))
	assert.Equal(t, []string{"a", "b"}, first.Names)
	assert.Equal(t, 1, calls)

	var second page
	require.NoError(t, c.FetchJSON(ctx, "content:test:1", &second, loader))
	assert.Equal(t, []string{"a", "b"}, second.Names)
	assert.Equal(t, 1, calls, "second read should come from the cache")
}

func TestFetchJSONLoaderError(t *testing.T) {
	c, _ := newTestCache(t)

	var dest map[string]any
	err := c.FetchJSON(context.Background(), "content:test:1", &dest, func(context.Context) (interface{}, error) {
		return nil, assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBumpInvalidatesOldKeys(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	calls := 0
	loader := func(context.Context) (interface{}, error) {
		calls++
		return map[string]int{"n": calls}, nil
	}

	fetch := func() map[string]int {
		key, err := c.BuildKey(ctx, "content", "test")
		require.NoError(t, err)
		var dest map[string]int
		require.NoError(t, c.FetchJSON(ctx, key, &dest, loader))
		return dest
	}

	assert.Equal(t, 1, fetch()["n"])
	assert.Equal(t, 1, fetch()["n"])

	require.NoError(t, c.Bump(ctx))

	// The shifted key misses, so the loader runs again.
	assert.Equal(t, 2, fetch()["n"])
	assert.Equal(t, 2, calls)
}

func TestEntriesExpireWithTTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	calls := 0
	loader := func(context.Context) (interface{}, error) {
		calls++
		return "payload", nil
	}

	var dest string
	require.NoError(t, c.FetchJSON(ctx, "content:test:1", &dest, loader))
	mr.FastForward(2 * time.Minute)
	require.NoError(t, c.FetchJSON(ctx, "content:test:1", &dest, loader))
	assert.Equal(t, 2, calls)
}

func TestNilClientDegradesToLoader(t *testing.T) {
	c := NewCache(nil, time.Minute)
	ctx := context.Background()

	ver, err := c.Version(ctx)
	require.NoError(t, err)
	assert.Zero(t, ver)

	key, err := c.BuildKey(ctx, "content", "news", "10", "0")
	require.NoError(t, err)
	assert.Equal(t, "content:news:10:0", key)

	calls := 0
	var dest string
	for i := 0; i < 2; i++ {
		require.NoError(t, c.FetchJSON(ctx, key, &dest, func(context.Context) (interface{}, error) {
			calls++
			return "fresh", nil
		}))
	}
	assert.Equal(t, "fresh", dest)
	assert.Equal(t, 2, calls, "without redis every read hits the loader")

	assert.NoError(t, c.Bump(ctx))
}

func TestKeyHelpers(t *testing.T) {
	assert.Equal(t, []string{"content", "news", "10", "20"}, KeyNewsList(10, 20))
	assert.Equal(t, []string{"content", "events", "upcoming", "5", "0"}, KeyEventsUpcoming(5, 0))

	year := "2025/2026"
	assert.Equal(t, []string{"content", "leadership", "structure", "all"}, KeyLeadershipStructure(nil))
	assert.Equal(t, []string{"content", "leadership", "structure", "2025/2026"}, KeyLeadershipStructure(&year))
	assert.Equal(t, []string{"content", "gallery", "by-category", "all"}, KeyGalleryByCategory(nil))
}
