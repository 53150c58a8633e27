package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorePutAndGet(t *testing.T) {
	store := NewMemoryStore("http://media.test/cms/")
	ctx := context.Background()

	url, err := store.Put(ctx, "news/images/a.png", "image/png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "http://media.test/cms/news/images/a.png", url)

	data, contentType, ok := store.Get("news/images/a.png")
	require.True(t, ok)
	assert.Equal(t, []byte("png-bytes"), data)
	assert.Equal(t, "image/png", contentType)
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStoreCopiesData(t *testing.T) {
	store := NewMemoryStore("http://media.test/cms")
	buf := []byte("original")

	_, err := store.Put(context.Background(), "k", "image/png", buf)
	require.NoError(t, err)
	buf[0] = 'X'

	data, _, ok := store.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("original"), data)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore("http://media.test/cms")
	ctx := context.Background()

	url, err := store.Put(ctx, "news/images/a.png", "image/png", []byte("png-bytes"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, url))
	_, _, ok := store.Get("news/images/a.png")
	assert.False(t, ok)
	assert.Zero(t, store.Len())

	// Deleting an unknown URL is not an error.
	require.NoError(t, store.Delete(ctx, url))
}

func TestNewKey(t *testing.T) {
	key := NewKey("news/images", "Annual Report.PDF")
	assert.True(t, strings.HasPrefix(key, "news/images/"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))

	// Two keys for the same filename never collide.
	assert.NotEqual(t, NewKey("p", "a.png"), NewKey("p", "a.png"))

	noExt := NewKey("p", "README")
	assert.False(t, strings.Contains(strings.TrimPrefix(noExt, "p/"), "."))
}
