package services

import (
	"fmt"
	"testing"

	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveContentType(t *testing.T) {
	for _, raw := range []string{"news_article", "event", "opportunity", "comment"} {
		ct, err := ResolveContentType(raw)
		require.NoError(t, err)
		assert.Equal(t, models.ContentType(raw), ct)
	}

	_, err := ResolveContentType("podcast")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestContentExistsAcrossTypes(t *testing.T) {
	db := setupTestDB(t)

	event := &models.Event{Title: "Street food fair"}
	require.NoError(t, db.Create(event).Error)
	opportunity := &models.Opportunity{Title: "Internship opening"}
	require.NoError(t, db.Create(opportunity).Error)

	exists, err := ContentExists(db, models.ContentTypeEvent, fmt.Sprint(event.ID))
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = ContentExists(db, models.ContentTypeOpportunity, fmt.Sprint(opportunity.ID))
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = ContentExists(db, models.ContentTypeEvent, "9999")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestInteractionsWorkOnEvents(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")
	event := &models.Event{Title: "Chale Wote preview"}
	require.NoError(t, db.Create(event).Error)

	svc := NewInteractionService()

	applied, err := svc.ToggleLike(user.ID, "event", fmt.Sprint(event.ID))
	require.NoError(t, err)
	assert.True(t, applied)

	var got models.Event
	require.NoError(t, db.First(&got, event.ID).Error)
	assert.Equal(t, int64(1), got.LikeCount)
}

func TestAddToCounterFloorsAtZero(t *testing.T) {
	db := setupTestDB(t)
	article := createTestArticle(t, db, "Counter target")
	objectID := fmt.Sprint(article.ID)

	// 余量为0时递减是空操作而不是负数
	require.NoError(t, AddToCounter(db, models.ContentTypeArticle, objectID, models.CounterLike, -1))

	var got models.Article
	require.NoError(t, db.First(&got, article.ID).Error)
	assert.Equal(t, int64(0), got.LikeCount)

	require.NoError(t, AddToCounter(db, models.ContentTypeArticle, objectID, models.CounterLike, 2))
	require.NoError(t, AddToCounter(db, models.ContentTypeArticle, objectID, models.CounterLike, -1))

	require.NoError(t, db.First(&got, article.ID).Error)
	assert.Equal(t, int64(1), got.LikeCount)

	// 递减量超过余量时截到0，而不是跳过更新
	require.NoError(t, AddToCounter(db, models.ContentTypeArticle, objectID, models.CounterLike, -3))

	require.NoError(t, db.First(&got, article.ID).Error)
	assert.Equal(t, int64(0), got.LikeCount)
}

func TestAddToCounterUnsupportedField(t *testing.T) {
	db := setupTestDB(t)

	// 评论只支持点赞计数
	err := AddToCounter(db, models.ContentTypeComment, "some-id", models.CounterShare, 1)
	assert.ErrorIs(t, err, ErrValidation)
}
