package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/GhNoticeBoard/noticeboard-backend/internal/cache"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/database"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	"gorm.io/gorm"
)

// ArticleService 文章服务
type ArticleService struct {
	db    *gorm.DB
	cache *cache.RedisCache
	push  *PushService
	subs  *SubscriptionService
}

// NewArticleService 创建文章服务实例，cache 可为 nil
func NewArticleService(redisCache *cache.RedisCache) *ArticleService {
	return &ArticleService{
		db:    database.GetDB(),
		cache: redisCache,
		push:  NewPushService(),
		subs:  NewSubscriptionService(),
	}
}

// uniqueSlug 由标题生成slug，冲突时追加序号
func (s *ArticleService) uniqueSlug(title string) (string, error) {
	base := models.Slugify(title)
	if base == "" {
		base = "article"
	}

	slug := base
	for i := 2; ; i++ {
		var count int64
		if err := s.db.Model(&models.Article{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// CreateArticle 创建文章，publish 为 true 时直接发布并触发订阅者推送
func (s *ArticleService) CreateArticle(userID uint, req *models.ArticleCreateRequest) (*models.Article, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	if req.CategoryID != nil {
		var count int64
		if err := s.db.Model(&models.Category{}).Where("id = ?", *req.CategoryID).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check category: %w", err)
		}
		if count == 0 {
			return nil, fmt.Errorf("%w: category %d", ErrNotFound, *req.CategoryID)
		}
	}

	slug, err := s.uniqueSlug(req.Title)
	if err != nil {
		return nil, err
	}

	article := &models.Article{
		Title:      req.Title,
		Slug:       slug,
		Excerpt:    req.Excerpt,
		Content:    req.Content,
		ImageURL:   req.ImageURL,
		CategoryID: req.CategoryID,
		CreatedBy:  &userID,
		Status:     models.ArticleStatusDraft,
		SourceType: models.ArticleSourceManual,
	}

	if err := s.db.Create(article).Error; err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}

	if req.Publish {
		if err := s.PublishArticle(article.ID); err != nil {
			return nil, err
		}
		now := time.Now()
		article.Status = models.ArticleStatusPublished
		article.PublishedAt = &now
	}

	return article, nil
}

// GetArticleByID 获取单篇文章
func (s *ArticleService) GetArticleByID(id uint) (*models.Article, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	var article models.Article
	if err := s.db.Preload("Category").First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: article %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	return &article, nil
}

// GetArticleBySlug 按slug获取已发布的文章
func (s *ArticleService) GetArticleBySlug(slug string) (*models.Article, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	var article models.Article
	if err := s.db.Preload("Category").
		Where("slug = ? AND status = ?", slug, models.ArticleStatusPublished).
		First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: article %s", ErrNotFound, slug)
		}
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	return &article, nil
}

// GetArticles 已发布文章列表，支持按分类过滤，按发布时间倒序分页
func (s *ArticleService) GetArticles(categoryID *uint, page, pageSize int) ([]models.ArticleResponse, int64, error) {
	if s.db == nil {
		return nil, 0, errors.New("database connection not initialized")
	}

	query := s.db.Model(&models.Article{}).Where("status = ?", models.ArticleStatusPublished)
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count articles: %w", err)
	}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	var articles []models.Article
	if err := query.Preload("Category").
		Order("published_at desc").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&articles).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get articles: %w", err)
	}

	responses := make([]models.ArticleResponse, 0, len(articles))
	for i := range articles {
		resp := articles[i].ToResponse()
		resp.Content = "" // 列表不带正文
		responses = append(responses, resp)
	}

	return responses, total, nil
}

// UpdateArticle 更新文章内容
func (s *ArticleService) UpdateArticle(id uint, req *models.ArticleUpdateRequest) (*models.Article, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	article, err := s.GetArticleByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != "" {
		updates["title"] = req.Title
		article.Title = req.Title
	}
	if req.Excerpt != "" {
		updates["excerpt"] = req.Excerpt
		article.Excerpt = req.Excerpt
	}
	if req.Content != "" {
		updates["content"] = req.Content
		article.Content = req.Content
	}
	if req.ImageURL != "" {
		updates["image_url"] = req.ImageURL
		article.ImageURL = req.ImageURL
	}
	if req.CategoryID != nil {
		var count int64
		if err := s.db.Model(&models.Category{}).Where("id = ?", *req.CategoryID).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check category: %w", err)
		}
		if count == 0 {
			return nil, fmt.Errorf("%w: category %d", ErrNotFound, *req.CategoryID)
		}
		updates["category_id"] = *req.CategoryID
		article.CategoryID = req.CategoryID
	}
	if len(updates) == 0 {
		return article, nil
	}

	if err := s.db.Model(article).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update article: %w", err)
	}
	return article, nil
}

// PublishArticle 发布文章：置为已发布、记录发布时间、
// 使热门流快照失效，并向订阅该分类的用户扇出推送
func (s *ArticleService) PublishArticle(id uint) error {
	if s.db == nil {
		return errors.New("database connection not initialized")
	}

	article, err := s.GetArticleByID(id)
	if err != nil {
		return err
	}
	if article.Status == models.ArticleStatusPublished {
		return fmt.Errorf("%w: article %d is already published", ErrValidation, id)
	}

	now := time.Now()
	if err := s.db.Model(article).Updates(map[string]interface{}{
		"status":       models.ArticleStatusPublished,
		"published_at": now,
	}).Error; err != nil {
		return fmt.Errorf("failed to publish article: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateTrendingFeed(context.Background()); err != nil {
			log.Printf("failed to invalidate trending feed cache: %v", err)
		}
	}

	s.notifySubscribers(article)
	return nil
}

// notifySubscribers 向分类订阅者推送新文章，失败只记日志不影响发布
func (s *ArticleService) notifySubscribers(article *models.Article) {
	if article.CategoryID == nil {
		return
	}

	audience, err := s.subs.AudienceForCategory(*article.CategoryID)
	if err != nil {
		log.Printf("failed to resolve audience for article %d: %v", article.ID, err)
		return
	}
	if len(audience) == 0 {
		return
	}

	payload := &PushPayload{
		Title: "New article published",
		Body:  article.Title,
		URL:   "/articles/" + article.Slug,
		Tag:   fmt.Sprintf("article-%d", article.ID),
	}
	result, err := s.push.NotifyUsers(audience, payload)
	if err != nil {
		log.Printf("failed to notify subscribers for article %d: %v", article.ID, err)
		return
	}
	log.Printf("article %d push fan-out: sent=%d failed=%d", article.ID, result.Sent, result.Failed)
}

// ArchiveArticle 归档文章，下架但保留数据
func (s *ArticleService) ArchiveArticle(id uint) error {
	if s.db == nil {
		return errors.New("database connection not initialized")
	}

	result := s.db.Model(&models.Article{}).Where("id = ?", id).
		UpdateColumn("status", models.ArticleStatusArchived)
	if result.Error != nil {
		return fmt.Errorf("failed to archive article: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: article %d", ErrNotFound, id)
	}
	return nil
}

// DeleteArticle 软删除文章
func (s *ArticleService) DeleteArticle(id uint) error {
	if s.db == nil {
		return errors.New("database connection not initialized")
	}

	result := s.db.Delete(&models.Article{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete article: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: article %d", ErrNotFound, id)
	}
	return nil
}
