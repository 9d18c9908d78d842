package services

import (
	"testing"
	"time"

	"github.com/GhNoticeBoard/noticeboard-backend/internal/config"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/database"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 每个测试一个独立的内存sqlite库
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.SubTag{},
		&models.Article{},
		&models.Event{},
		&models.Opportunity{},
		&models.RSSSource{},
		&models.Like{},
		&models.Dislike{},
		&models.Bookmark{},
		&models.Share{},
		&models.View{},
		&models.Comment{},
		&models.Review{},
		&models.Report{},
		&models.UserInterest{},
		&models.UserSubscription{},
		&models.PushSubscription{},
	)
	require.NoError(t, err)

	database.DB = db
	config.AppConfig = &config.Config{
		JWT:       config.JWTConfig{SecretKey: "test-secret", ExpireHours: 1},
		Recommend: config.DefaultRecommendConfig(),
	}
	t.Cleanup(func() {
		database.DB = nil
		config.AppConfig = nil
	})

	return db
}

// createTestUser 创建测试用户
func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "password1",
		Role:     "user",
		Status:   "active",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// createTestArticle 创建已发布的测试文章
func createTestArticle(t *testing.T, db *gorm.DB, title string) *models.Article {
	t.Helper()

	now := time.Now()
	article := &models.Article{
		Title:       title,
		Slug:        models.Slugify(title),
		Content:     "test content",
		Status:      models.ArticleStatusPublished,
		PublishedAt: &now,
	}
	require.NoError(t, db.Create(article).Error)
	return article
}

// createTestCategory 创建测试分类
func createTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name, IsActive: true}
	require.NoError(t, db.Create(category).Error)
	return category
}
