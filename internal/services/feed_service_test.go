package services

import (
	"context"
	"testing"
	"time"

	"github.com/GhNoticeBoard/noticeboard-backend/internal/cache"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFeedAnonymousTrending(t *testing.T) {
	db := setupTestDB(t)

	hot := createTestArticle(t, db, "Hot story")
	cold := createTestArticle(t, db, "Cold story")
	require.NoError(t, db.Model(hot).UpdateColumn("view_count", 100).Error)
	require.NoError(t, db.Model(cold).UpdateColumn("view_count", 3).Error)

	svc := NewFeedService(nil)

	feed, err := svc.GetFeed(context.Background(), nil, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, "trending", feed.Algorithm)
	require.Len(t, feed.Feed, 2)
	assert.Equal(t, "Hot story", feed.Feed[0].Title)
	assert.Equal(t, "Cold story", feed.Feed[1].Title)
}

func TestGetFeedTrendingWindowExcludesOld(t *testing.T) {
	db := setupTestDB(t)

	fresh := createTestArticle(t, db, "Fresh story")
	stale := createTestArticle(t, db, "Stale story")
	// 发布时间超出7天窗口
	old := time.Now().AddDate(0, 0, -30)
	require.NoError(t, db.Model(stale).UpdateColumn("published_at", old).Error)
	require.NoError(t, db.Model(stale).UpdateColumn("view_count", 9999).Error)

	svc := NewFeedService(nil)

	feed, err := svc.GetFeed(context.Background(), nil, 1, 10)
	require.NoError(t, err)
	require.Len(t, feed.Feed, 1)
	assert.Equal(t, fresh.ID, feed.Feed[0].ID)
}

func TestGetFeedWithoutInterestsFallsBackToTrending(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")
	createTestArticle(t, db, "Only story")

	svc := NewFeedService(nil)

	feed, err := svc.GetFeed(context.Background(), &user.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, "trending", feed.Algorithm)
}

func TestGetFeedPersonalized(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "bob")
	category := createTestCategory(t, db, "News")

	// 有兴趣画像的用户走个性化流
	require.NoError(t, db.Create(&models.UserInterest{
		UserID:     user.ID,
		CategoryID: &category.ID,
		ViewCount:  3,
		Score:      3,
	}).Error)

	recent := createTestArticle(t, db, "Recent story")
	popular := createTestArticle(t, db, "Popular story")
	weekOld := time.Now().AddDate(0, 0, -6)
	require.NoError(t, db.Model(popular).UpdateColumn("published_at", weekOld).Error)
	require.NoError(t, db.Model(popular).UpdateColumn("view_count", 50).Error)

	svc := NewFeedService(nil)

	feed, err := svc.GetFeed(context.Background(), &user.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, "personalized", feed.Algorithm)
	require.Len(t, feed.Feed, 2)

	// recent: recency≈100, engagement 0 → ~100
	// popular: recency≈100-6*10=40, engagement 50*0.1=5 → ~45
	assert.Equal(t, recent.ID, feed.Feed[0].ID)
	assert.Greater(t, feed.Feed[0].Score, feed.Feed[1].Score)
}

func TestTrendingFeedUsesCache(t *testing.T) {
	db := setupTestDB(t)
	createTestArticle(t, db, "Cached story")

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	redisCache := cache.NewRedisCacheWithClient(client)

	svc := NewFeedService(redisCache)
	ctx := context.Background()

	// 首次请求回源并写缓存
	feed, err := svc.GetFeed(ctx, nil, 1, 10)
	require.NoError(t, err)
	require.Len(t, feed.Feed, 1)

	cached, err := redisCache.GetTrendingFeed(ctx)
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, "Cached story", cached[0].Title)

	// 新文章在快照失效前不可见
	createTestArticle(t, db, "Later story")
	feed, err = svc.GetFeed(ctx, nil, 1, 10)
	require.NoError(t, err)
	assert.Len(t, feed.Feed, 1)

	// 定时刷新后可见
	require.NoError(t, svc.RefreshTrendingSnapshot(ctx))
	feed, err = svc.GetFeed(ctx, nil, 1, 10)
	require.NoError(t, err)
	assert.Len(t, feed.Feed, 2)
}

func TestPaginateFeed(t *testing.T) {
	items := make([]models.FeedItem, 5)
	for i := range items {
		items[i].ID = uint(i + 1)
	}

	page := paginateFeed(items, 2, 2, "trending")
	assert.Equal(t, 5, page.Total)
	require.Len(t, page.Feed, 2)
	assert.Equal(t, uint(3), page.Feed[0].ID)

	// 超出范围的页返回空切片而不是报错
	page = paginateFeed(items, 9, 2, "trending")
	assert.Empty(t, page.Feed)
}
