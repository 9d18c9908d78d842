package cache

import (
	"context"
	"testing"
	"time"

	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisCacheWithClient(client), mr
}

func TestTrendingFeedRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	now := time.Now().Truncate(time.Second)
	items := []models.FeedItem{
		{Type: "news_article", ID: 1, Title: "First", Slug: "first", PublishedAt: &now, ViewCount: 10},
		{Type: "news_article", ID: 2, Title: "Second", Slug: "second", ViewCount: 5},
	}

	require.NoError(t, c.SetTrendingFeed(ctx, items, time.Minute))

	got, err := c.GetTrendingFeed(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "First", got[0].Title)
	assert.Equal(t, int64(10), got[0].ViewCount)
}

func TestTrendingFeedMiss(t *testing.T) {
	c, _ := newTestCache(t)

	_, err := c.GetTrendingFeed(context.Background())
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestTrendingFeedExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetTrendingFeed(ctx, []models.FeedItem{{ID: 1}}, time.Second))

	mr.FastForward(2 * time.Second)

	_, err := c.GetTrendingFeed(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestInvalidateTrendingFeed(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetTrendingFeed(ctx, []models.FeedItem{{ID: 1}}, time.Minute))
	require.NoError(t, c.InvalidateTrendingFeed(ctx))

	_, err := c.GetTrendingFeed(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)
}
