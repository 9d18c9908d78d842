package services

import (
	"testing"

	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategory(t *testing.T) {
	setupTestDB(t)
	svc := NewTaxonomyService()

	category, err := svc.CreateCategory(&models.CategoryCreateRequest{
		Name:  "Local News",
		Color: "#ff6600",
	})
	require.NoError(t, err)
	assert.Equal(t, "local-news", category.Slug)
	assert.Equal(t, "#ff6600", category.Color)
	assert.True(t, category.IsActive)

	_, err = svc.CreateCategory(&models.CategoryCreateRequest{Name: "Local News"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestGetCategoriesOrdering(t *testing.T) {
	setupTestDB(t)
	svc := NewTaxonomyService()

	_, err := svc.CreateCategory(&models.CategoryCreateRequest{Name: "Second", Order: 2})
	require.NoError(t, err)
	_, err = svc.CreateCategory(&models.CategoryCreateRequest{Name: "First", Order: 1})
	require.NoError(t, err)

	categories, err := svc.GetCategories()
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "First", categories[0].Name)
	assert.Equal(t, "Second", categories[1].Name)
}

func TestGetCategoryBySlug(t *testing.T) {
	setupTestDB(t)
	svc := NewTaxonomyService()

	created, err := svc.CreateCategory(&models.CategoryCreateRequest{Name: "Sports & Leisure"})
	require.NoError(t, err)

	got, err := svc.GetCategoryBySlug("sports-leisure")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.GetCategoryBySlug("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateTag(t *testing.T) {
	db := setupTestDB(t)
	category := createTestCategory(t, db, "News")

	svc := NewTaxonomyService()

	tag, err := svc.CreateTag(&models.TagCreateRequest{
		Name:       "Elections 2028",
		CategoryID: &category.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "elections-2028", tag.Slug)

	_, err = svc.CreateTag(&models.TagCreateRequest{Name: "Elections 2028"})
	assert.ErrorIs(t, err, ErrConflict)

	missing := uint(9999)
	_, err = svc.CreateTag(&models.TagCreateRequest{Name: "orphan", CategoryID: &missing})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetTagsFilterByCategory(t *testing.T) {
	db := setupTestDB(t)
	category := createTestCategory(t, db, "Business")

	svc := NewTaxonomyService()

	_, err := svc.CreateTag(&models.TagCreateRequest{Name: "banking", CategoryID: &category.ID})
	require.NoError(t, err)
	_, err = svc.CreateTag(&models.TagCreateRequest{Name: "general"})
	require.NoError(t, err)

	tags, err := svc.GetTags(&category.ID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "banking", tags[0].Name)

	all, err := svc.GetTags(nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
