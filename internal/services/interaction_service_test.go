package services

import (
	"fmt"
	"testing"

	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleLikeRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")
	article := createTestArticle(t, db, "Accra market news")
	objectID := fmt.Sprint(article.ID)

	svc := NewInteractionService()

	// 第一次点赞
	applied, err := svc.ToggleLike(user.ID, "news_article", objectID)
	require.NoError(t, err)
	assert.True(t, applied)

	var got models.Article
	require.NoError(t, db.First(&got, article.ID).Error)
	assert.Equal(t, int64(1), got.LikeCount)

	// 再次点赞应取消
	applied, err = svc.ToggleLike(user.ID, "news_article", objectID)
	require.NoError(t, err)
	assert.False(t, applied)

	require.NoError(t, db.First(&got, article.ID).Error)
	assert.Equal(t, int64(0), got.LikeCount)

	var likeCount int64
	db.Model(&models.Like{}).Count(&likeCount)
	assert.Equal(t, int64(0), likeCount)
}

func TestLikeDislikeMutualExclusion(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "bob")
	article := createTestArticle(t, db, "Kumasi event roundup")
	objectID := fmt.Sprint(article.ID)

	svc := NewInteractionService()

	applied, err := svc.ToggleLike(user.ID, "news_article", objectID)
	require.NoError(t, err)
	assert.True(t, applied)

	// 点踩应移除点赞
	applied, err = svc.ToggleDislike(user.ID, "news_article", objectID)
	require.NoError(t, err)
	assert.True(t, applied)

	var likeCount, dislikeCount int64
	db.Model(&models.Like{}).Count(&likeCount)
	db.Model(&models.Dislike{}).Count(&dislikeCount)
	assert.Equal(t, int64(0), likeCount)
	assert.Equal(t, int64(1), dislikeCount)

	var got models.Article
	require.NoError(t, db.First(&got, article.ID).Error)
	assert.Equal(t, int64(0), got.LikeCount)
	assert.Equal(t, int64(1), got.DislikeCount)
}

func TestToggleUnknownContentType(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "carol")

	svc := NewInteractionService()

	_, err := svc.ToggleLike(user.ID, "podcast", "1")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestToggleMissingTarget(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "dave")

	svc := NewInteractionService()

	_, err := svc.ToggleLike(user.ID, "news_article", "9999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleBookmark(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "erin")
	article := createTestArticle(t, db, "Scholarship openings")
	objectID := fmt.Sprint(article.ID)

	svc := NewInteractionService()

	applied, err := svc.ToggleBookmark(user.ID, "news_article", objectID)
	require.NoError(t, err)
	assert.True(t, applied)

	bookmarks, total, err := svc.GetUserBookmarks(user.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, bookmarks, 1)
	assert.Equal(t, objectID, bookmarks[0].ObjectID)

	applied, err = svc.ToggleBookmark(user.ID, "news_article", objectID)
	require.NoError(t, err)
	assert.False(t, applied)

	var got models.Article
	require.NoError(t, db.First(&got, article.ID).Error)
	assert.Equal(t, int64(0), got.BookmarkCount)
}

func TestCreateShareBumpsCounter(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "frank")
	article := createTestArticle(t, db, "Business forum")
	objectID := fmt.Sprint(article.ID)

	svc := NewInteractionService()

	// 分享不去重，两次都应成功
	for i := 0; i < 2; i++ {
		_, err := svc.CreateShare(user.ID, &models.ShareCreateRequest{
			ContentType: "news_article",
			ObjectID:    objectID,
			Comment:     "worth reading",
		})
		require.NoError(t, err)
	}

	var got models.Article
	require.NoError(t, db.First(&got, article.ID).Error)
	assert.Equal(t, int64(2), got.ShareCount)

	var shareCount int64
	db.Model(&models.Share{}).Count(&shareCount)
	assert.Equal(t, int64(2), shareCount)
}

func TestShareTracksCategoryInterest(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "grace")
	category := createTestCategory(t, db, "Business")
	article := createTestArticle(t, db, "Market prices")
	require.NoError(t, db.Model(article).UpdateColumn("category_id", category.ID).Error)

	svc := NewInteractionService()

	_, err := svc.CreateShare(user.ID, &models.ShareCreateRequest{
		ContentType: "news_article",
		ObjectID:    fmt.Sprint(article.ID),
	})
	require.NoError(t, err)

	var interest models.UserInterest
	require.NoError(t, db.Where("user_id = ? AND category_id = ?", user.ID, category.ID).First(&interest).Error)
	assert.Equal(t, int64(1), interest.ShareCount)
	assert.Equal(t, float64(10), interest.Score)
}

func TestRecordViewAnonymous(t *testing.T) {
	db := setupTestDB(t)
	article := createTestArticle(t, db, "Community notice")
	objectID := fmt.Sprint(article.ID)

	svc := NewInteractionService()

	err := svc.RecordView(nil, &models.ViewCreateRequest{
		ContentType: "news_article",
		ObjectID:    objectID,
		Duration:    30,
	}, "127.0.0.1", "test-agent")
	require.NoError(t, err)

	var got models.Article
	require.NoError(t, db.First(&got, article.ID).Error)
	assert.Equal(t, int64(1), got.ViewCount)

	var view models.View
	require.NoError(t, db.First(&view).Error)
	assert.Nil(t, view.UserID)
	assert.Equal(t, int64(30), view.Duration)
}

func TestGetStats(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	article := createTestArticle(t, db, "Stats target")
	objectID := fmt.Sprint(article.ID)

	svc := NewInteractionService()
	reviewSvc := NewReviewService()

	_, err := svc.ToggleLike(alice.ID, "news_article", objectID)
	require.NoError(t, err)
	_, err = svc.ToggleDislike(bob.ID, "news_article", objectID)
	require.NoError(t, err)

	_, err = reviewSvc.CreateReview(alice.ID, &models.ReviewCreateRequest{
		ContentType: "news_article",
		ObjectID:    objectID,
		Rating:      4,
		Comment:     "good coverage",
	})
	require.NoError(t, err)

	// 认证视角
	stats, err := svc.GetStats("news_article", objectID, &alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.LikesCount)
	assert.Equal(t, int64(1), stats.DislikesCount)
	assert.Equal(t, int64(1), stats.ReviewsCount)
	assert.Equal(t, 4.0, stats.AverageRating)
	assert.True(t, stats.UserLiked)
	assert.False(t, stats.UserDisliked)
	require.NotNil(t, stats.UserReview)
	assert.Equal(t, 4, stats.UserReview.Rating)

	// 匿名视角
	stats, err = svc.GetStats("news_article", objectID, nil)
	require.NoError(t, err)
	assert.False(t, stats.UserLiked)
	assert.Nil(t, stats.UserReview)
}
