package services

import (
	"testing"

	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSourceDuplicateURL(t *testing.T) {
	setupTestDB(t)
	svc := NewRSSService()

	_, err := svc.CreateSource(&models.RSSSourceCreateRequest{
		Name: "GhanaWeb",
		URL:  "https://example.com/feed.xml",
	})
	require.NoError(t, err)

	_, err = svc.CreateSource(&models.RSSSourceCreateRequest{
		Name: "GhanaWeb copy",
		URL:  "https://example.com/feed.xml",
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreateSourceMissingCategory(t *testing.T) {
	setupTestDB(t)
	svc := NewRSSService()

	missing := uint(9999)
	_, err := svc.CreateSource(&models.RSSSourceCreateRequest{
		Name:       "Typed source",
		URL:        "https://example.com/typed.xml",
		CategoryID: &missing,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIngestItem(t *testing.T) {
	db := setupTestDB(t)
	category := createTestCategory(t, db, "News")

	svc := NewRSSService()

	source, err := svc.CreateSource(&models.RSSSourceCreateRequest{
		Name:       "Citi News",
		URL:        "https://example.com/citi.xml",
		CategoryID: &category.ID,
	})
	require.NoError(t, err)

	item := &gofeed.Item{
		Title:       "Cedi gains against the dollar",
		Description: "summary text",
		Link:        "https://example.com/cedi-gains",
		GUID:        "guid-1",
	}

	created, err := svc.ingestItem(source, item)
	require.NoError(t, err)
	assert.True(t, created)

	var article models.Article
	require.NoError(t, db.Where("guid = ?", "guid-1").First(&article).Error)
	assert.Equal(t, models.ArticleStatusPublished, article.Status)
	assert.Equal(t, models.ArticleSourceRSS, article.SourceType)
	assert.Equal(t, "Citi News", article.Source)
	assert.Equal(t, category.ID, *article.CategoryID)
	assert.Equal(t, "cedi-gains-against-the-dollar", article.Slug)
	assert.NotNil(t, article.PublishedAt)

	// 同一GUID再次入库应跳过
	created, err = svc.ingestItem(source, item)
	require.NoError(t, err)
	assert.False(t, created)

	var total int64
	db.Model(&models.Article{}).Count(&total)
	assert.Equal(t, int64(1), total)
}

func TestIngestItemGUIDFallbackToLink(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRSSService()

	source, err := svc.CreateSource(&models.RSSSourceCreateRequest{
		Name: "Joy FM",
		URL:  "https://example.com/joy.xml",
	})
	require.NoError(t, err)

	item := &gofeed.Item{
		Title: "Power outage schedule released",
		Link:  "https://example.com/outage",
	}

	created, err := svc.ingestItem(source, item)
	require.NoError(t, err)
	assert.True(t, created)

	var article models.Article
	require.NoError(t, db.Where("link = ?", "https://example.com/outage").First(&article).Error)
	assert.Equal(t, "https://example.com/outage", article.GUID)

	// 既无GUID也无链接的条目被拒
	_, err = svc.ingestItem(source, &gofeed.Item{Title: "orphan item"})
	assert.Error(t, err)
}

func TestIngestItemSlugCollision(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRSSService()

	source, err := svc.CreateSource(&models.RSSSourceCreateRequest{
		Name: "Daily Graphic",
		URL:  "https://example.com/graphic.xml",
	})
	require.NoError(t, err)

	for i, guid := range []string{"a-1", "a-2"} {
		created, err := svc.ingestItem(source, &gofeed.Item{
			Title: "Budget highlights",
			GUID:  guid,
			Link:  "https://example.com/budget-" + guid,
		})
		require.NoError(t, err)
		assert.True(t, created, "item %d", i)
	}

	var slugs []string
	require.NoError(t, db.Model(&models.Article{}).Order("id").Pluck("slug", &slugs).Error)
	assert.Equal(t, []string{"budget-highlights", "budget-highlights-2"}, slugs)
}

func TestDeleteSource(t *testing.T) {
	setupTestDB(t)
	svc := NewRSSService()

	source, err := svc.CreateSource(&models.RSSSourceCreateRequest{
		Name: "Temporary",
		URL:  "https://example.com/tmp.xml",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSource(source.ID))
	assert.ErrorIs(t, svc.DeleteSource(source.ID), ErrNotFound)
}
