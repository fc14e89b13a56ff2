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

type cachedPost struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	SetClient(rdb)
	t.Cleanup(func() {
		SetClient(nil)
		_ = rdb.Close()
	})
	return mr
}

func TestAside_MissThenHit(t *testing.T) {
	setupTestRedis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedPost) func() error {
		return func() error {
			fetches++
			dest.ID = 1
			dest.Title = "Hello"
			return nil
		}
	}

	var first cachedPost
	require.NoError(t, Aside(ctx, PostKey(1), &first, PostTTL, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "Hello", first.Title)

	var second cachedPost
	require.NoError(t, Aside(ctx, PostKey(1), &second, PostTTL, fetch(&second)))
	assert.Equal(t, 1, fetches, "second read must come from the cache")
	assert.Equal(t, "Hello", second.Title)
}

func TestAside_ExpiryRefetches(t *testing.T) {
	mr := setupTestRedis(t)
	ctx := context.Background()

	fetches := 0
	var post cachedPost
	fetch := func() error {
		fetches++
		post.ID = 2
		post.Title = "Fresh"
		return nil
	}

	require.NoError(t, Aside(ctx, PostKey(2), &post, time.Minute, fetch))
	mr.FastForward(2 * time.Minute)
	require.NoError(t, Aside(ctx, PostKey(2), &post, time.Minute, fetch))
	assert.Equal(t, 2, fetches)
}

func TestAside_NilClientFallsThrough(t *testing.T) {
	SetClient(nil)

	fetches := 0
	var post cachedPost
	fetch := func() error {
		fetches++
		return nil
	}

	require.NoError(t, Aside(context.Background(), PostKey(3), &post, PostTTL, fetch))
	require.NoError(t, Aside(context.Background(), PostKey(3), &post, PostTTL, fetch))
	assert.Equal(t, 2, fetches, "without redis every read goes to the source")
}

func TestInvalidatePost_DropsDetailAndList(t *testing.T) {
	mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PostKey(7), cachedPost{ID: 7}, PostTTL))
	require.NoError(t, SetJSON(ctx, PublishedListKey, []cachedPost{{ID: 7}}, ListTTL))

	InvalidatePost(ctx, 7)

	assert.False(t, mr.Exists(PostKey(7)))
	assert.False(t, mr.Exists(PublishedListKey))
}
