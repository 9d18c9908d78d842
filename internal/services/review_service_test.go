package services

import (
	"fmt"
	"testing"

	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReviewDuplicateRejected(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")
	article := createTestArticle(t, db, "Review target")
	objectID := fmt.Sprint(article.ID)

	svc := NewReviewService()

	_, err := svc.CreateReview(user.ID, &models.ReviewCreateRequest{
		ContentType: "news_article",
		ObjectID:    objectID,
		Rating:      5,
	})
	require.NoError(t, err)

	_, err = svc.CreateReview(user.ID, &models.ReviewCreateRequest{
		ContentType: "news_article",
		ObjectID:    objectID,
		Rating:      3,
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestGetReviewStats(t *testing.T) {
	db := setupTestDB(t)
	article := createTestArticle(t, db, "Stats target")
	objectID := fmt.Sprint(article.ID)

	svc := NewReviewService()

	ratings := []int{5, 4, 4}
	for i, rating := range ratings {
		user := createTestUser(t, db, fmt.Sprintf("rater%d", i))
		_, err := svc.CreateReview(user.ID, &models.ReviewCreateRequest{
			ContentType: "news_article",
			ObjectID:    objectID,
			Rating:      rating,
		})
		require.NoError(t, err)
	}

	stats, err := svc.GetReviewStats("news_article", objectID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Count)
	// (5+4+4)/3 = 4.333... 保留两位
	assert.Equal(t, 4.33, stats.Average)
}

func TestGetReviewStatsEmpty(t *testing.T) {
	db := setupTestDB(t)
	article := createTestArticle(t, db, "Empty target")
	_ = db

	svc := NewReviewService()

	stats, err := svc.GetReviewStats("news_article", fmt.Sprint(article.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Count)
	assert.Equal(t, 0.0, stats.Average)
}

func TestReviewStatsApprovedOnly(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	article := createTestArticle(t, db, "Moderated target")
	objectID := fmt.Sprint(article.ID)

	svc := NewReviewService()

	good, err := svc.CreateReview(alice.ID, &models.ReviewCreateRequest{
		ContentType: "news_article",
		ObjectID:    objectID,
		Rating:      5,
	})
	require.NoError(t, err)

	_, err = svc.CreateReview(bob.ID, &models.ReviewCreateRequest{
		ContentType: "news_article",
		ObjectID:    objectID,
		Rating:      1,
	})
	require.NoError(t, err)

	// 下架5分那条后汇总只剩1分
	require.NoError(t, svc.ApproveReview(good.ID, false))

	stats, err := svc.GetReviewStats("news_article", objectID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Count)
	assert.Equal(t, 1.0, stats.Average)

	reviews, total, err := svc.GetReviews("news_article", objectID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, reviews, 1)
	assert.Equal(t, 1, reviews[0].Rating)
}

func TestUpdateReviewPermission(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "carol")
	other := createTestUser(t, db, "dave")
	article := createTestArticle(t, db, "Owned target")

	svc := NewReviewService()

	review, err := svc.CreateReview(author.ID, &models.ReviewCreateRequest{
		ContentType: "news_article",
		ObjectID:    fmt.Sprint(article.ID),
		Rating:      3,
		Comment:     "okay",
	})
	require.NoError(t, err)

	_, err = svc.UpdateReview(other.ID, review.ID, &models.ReviewUpdateRequest{Rating: 1})
	assert.ErrorIs(t, err, ErrPermission)

	updated, err := svc.UpdateReview(author.ID, review.ID, &models.ReviewUpdateRequest{Rating: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Rating)
	assert.Equal(t, "okay", updated.Comment)
}

func TestDeleteReview(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "erin")
	other := createTestUser(t, db, "frank")
	article := createTestArticle(t, db, "Removable target")

	svc := NewReviewService()

	review, err := svc.CreateReview(author.ID, &models.ReviewCreateRequest{
		ContentType: "news_article",
		ObjectID:    fmt.Sprint(article.ID),
		Rating:      2,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteReview(other.ID, review.ID, false), ErrPermission)
	require.NoError(t, svc.DeleteReview(author.ID, review.ID, false))

	assert.ErrorIs(t, svc.DeleteReview(author.ID, review.ID, false), ErrNotFound)
}
