package services

import (
	"testing"

	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateArticleDraft(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "editor")

	svc := NewArticleService(nil)

	article, err := svc.CreateArticle(user.ID, &models.ArticleCreateRequest{
		Title:   "Accra traffic advisory",
		Content: "road closures this weekend",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ArticleStatusDraft, article.Status)
	assert.Equal(t, "accra-traffic-advisory", article.Slug)
	assert.Nil(t, article.PublishedAt)

	// 草稿在公开接口不可见
	_, err = svc.GetArticleBySlug(article.Slug)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateArticleSlugCollision(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "editor")

	svc := NewArticleService(nil)

	first, err := svc.CreateArticle(user.ID, &models.ArticleCreateRequest{
		Title:   "Weekly digest",
		Content: "issue one",
	})
	require.NoError(t, err)

	second, err := svc.CreateArticle(user.ID, &models.ArticleCreateRequest{
		Title:   "Weekly digest",
		Content: "issue two",
	})
	require.NoError(t, err)

	assert.Equal(t, "weekly-digest", first.Slug)
	assert.Equal(t, "weekly-digest-2", second.Slug)
}

func TestPublishArticle(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "editor")

	svc := NewArticleService(nil)

	article, err := svc.CreateArticle(user.ID, &models.ArticleCreateRequest{
		Title:   "Festival schedule",
		Content: "full programme inside",
	})
	require.NoError(t, err)

	require.NoError(t, svc.PublishArticle(article.ID))

	got, err := svc.GetArticleBySlug(article.Slug)
	require.NoError(t, err)
	assert.Equal(t, models.ArticleStatusPublished, got.Status)
	assert.NotNil(t, got.PublishedAt)

	// 重复发布被拒
	assert.ErrorIs(t, svc.PublishArticle(article.ID), ErrValidation)
}

func TestPublishArticleNotifiesSubscribers(t *testing.T) {
	db := setupTestDB(t)
	editor := createTestUser(t, db, "editor")
	reader := createTestUser(t, db, "reader")
	category := createTestCategory(t, db, "Events")

	client := &stubPushClient{}
	svc := NewArticleService(nil)
	svc.push = NewPushServiceWithClient(client)

	subSvc := NewSubscriptionService()
	_, err := subSvc.SubscribeCategory(reader.ID, category.ID, nil)
	require.NoError(t, err)

	pushSvc := NewPushServiceWithClient(client)
	_, err = pushSvc.Subscribe(reader.ID, &models.PushSubscribeRequest{
		Endpoint: "https://push.example.com/reader",
		P256dh:   "k",
		Auth:     "a",
	}, "")
	require.NoError(t, err)

	article, err := svc.CreateArticle(editor.ID, &models.ArticleCreateRequest{
		Title:      "Homowo festival dates",
		Content:    "celebrations begin in August",
		CategoryID: &category.ID,
		Publish:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ArticleStatusPublished, article.Status)

	require.Len(t, client.sent, 1)
	assert.Equal(t, "https://push.example.com/reader", client.sent[0])
}

func TestGetArticlesListOmitsContent(t *testing.T) {
	db := setupTestDB(t)
	createTestArticle(t, db, "Listed story")

	svc := NewArticleService(nil)

	articles, total, err := svc.GetArticles(nil, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, articles, 1)
	assert.Empty(t, articles[0].Content)
	assert.Equal(t, "Listed story", articles[0].Title)
}

func TestGetArticlesFilterByCategory(t *testing.T) {
	db := setupTestDB(t)
	category := createTestCategory(t, db, "Business")
	inCat := createTestArticle(t, db, "In category")
	createTestArticle(t, db, "Outside category")
	require.NoError(t, db.Model(inCat).UpdateColumn("category_id", category.ID).Error)

	svc := NewArticleService(nil)

	articles, total, err := svc.GetArticles(&category.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, articles, 1)
	assert.Equal(t, inCat.ID, articles[0].ID)
}

func TestArchiveAndDeleteArticle(t *testing.T) {
	db := setupTestDB(t)
	article := createTestArticle(t, db, "Short lived story")

	svc := NewArticleService(nil)

	require.NoError(t, svc.ArchiveArticle(article.ID))
	_, err := svc.GetArticleBySlug(article.Slug)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.DeleteArticle(article.ID))
	assert.ErrorIs(t, svc.DeleteArticle(article.ID), ErrNotFound)
	assert.ErrorIs(t, svc.ArchiveArticle(article.ID), ErrNotFound)
}
