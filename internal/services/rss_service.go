package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/GhNoticeBoard/noticeboard-backend/internal/database"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	"github.com/mmcdole/gofeed"
	"gorm.io/gorm"
)

// RSSService RSS抓取服务，把订阅源里的条目转成已发布文章
type RSSService struct {
	db     *gorm.DB
	parser *gofeed.Parser
}

// NewRSSService 创建RSS服务实例
func NewRSSService() *RSSService {
	return &RSSService{
		db:     database.GetDB(),
		parser: gofeed.NewParser(),
	}
}

// CreateSource 创建RSS源，URL重复返回 ErrConflict
func (s *RSSService) CreateSource(req *models.RSSSourceCreateRequest) (*models.RSSSource, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	var count int64
	if err := s.db.Model(&models.RSSSource{}).Where("url = ?", req.URL).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check rss source: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: rss source %s", ErrConflict, req.URL)
	}

	if req.CategoryID != nil {
		count = 0
		if err := s.db.Model(&models.Category{}).Where("id = ?", *req.CategoryID).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check category: %w", err)
		}
		if count == 0 {
			return nil, fmt.Errorf("%w: category %d", ErrNotFound, *req.CategoryID)
		}
	}

	source := &models.RSSSource{
		Name:        req.Name,
		URL:         req.URL,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		IsActive:    true,
	}

	if err := s.db.Create(source).Error; err != nil {
		return nil, fmt.Errorf("failed to create rss source: %w", err)
	}
	return source, nil
}

// GetSources 获取RSS源列表
func (s *RSSService) GetSources() ([]models.RSSSource, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	var sources []models.RSSSource
	if err := s.db.Preload("Category").Order("created_at desc").Find(&sources).Error; err != nil {
		return nil, fmt.Errorf("failed to get rss sources: %w", err)
	}
	return sources, nil
}

// DeleteSource 删除RSS源
func (s *RSSService) DeleteSource(id uint) error {
	if s.db == nil {
		return errors.New("database connection not initialized")
	}

	result := s.db.Delete(&models.RSSSource{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete rss source: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: rss source %d", ErrNotFound, id)
	}
	return nil
}

// FetchAll 抓取所有启用的RSS源，单个源失败不影响其余
func (s *RSSService) FetchAll() ([]models.RSSFetchResult, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	var sources []models.RSSSource
	if err := s.db.Where("is_active = ?", true).Find(&sources).Error; err != nil {
		return nil, fmt.Errorf("failed to load rss sources: %w", err)
	}

	results := make([]models.RSSFetchResult, 0, len(sources))
	for i := range sources {
		result := s.FetchSource(&sources[i])
		results = append(results, *result)
	}
	return results, nil
}

// FetchSource 抓取单个源，条目按GUID/链接去重后入库为已发布文章
func (s *RSSService) FetchSource(source *models.RSSSource) *models.RSSFetchResult {
	result := &models.RSSFetchResult{
		SourceID: source.ID,
		Source:   source.Name,
	}

	feed, err := s.parser.ParseURL(source.URL)
	if err != nil {
		result.Error = err.Error()
		s.recordFetch(source, false)
		log.Printf("failed to fetch rss source %s: %v", source.Name, err)
		return result
	}

	result.Total = len(feed.Items)
	for _, item := range feed.Items {
		created, err := s.ingestItem(source, item)
		if err != nil {
			log.Printf("failed to ingest rss item %q from %s: %v", item.Title, source.Name, err)
			continue
		}
		if created {
			result.Created++
		} else {
			result.Skipped++
		}
	}

	s.recordFetch(source, true)
	return result
}

// ingestItem 单条RSS条目入库，已存在时跳过
func (s *RSSService) ingestItem(source *models.RSSSource, item *gofeed.Item) (bool, error) {
	guid := item.GUID
	if guid == "" {
		guid = item.Link
	}
	if guid == "" {
		return false, errors.New("rss item has neither guid nor link")
	}

	var count int64
	if err := s.db.Model(&models.Article{}).
		Where("guid = ? OR (link <> '' AND link = ?)", guid, item.Link).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check existing article: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	title := strings.TrimSpace(item.Title)
	if title == "" {
		return false, errors.New("rss item has no title")
	}

	publishedAt := time.Now()
	if item.PublishedParsed != nil {
		publishedAt = *item.PublishedParsed
	}

	author := ""
	if len(item.Authors) > 0 {
		author = item.Authors[0].Name
	}

	article := &models.Article{
		Title:       title,
		Slug:        s.itemSlug(title),
		Excerpt:     strings.TrimSpace(item.Description),
		Content:     item.Content,
		CategoryID:  source.CategoryID,
		Status:      models.ArticleStatusPublished,
		PublishedAt: &publishedAt,
		SourceType:  models.ArticleSourceRSS,
		Source:      source.Name,
		Link:        item.Link,
		GUID:        guid,
		Author:      author,
	}
	if article.Content == "" {
		article.Content = item.Description
	}
	if len(item.Enclosures) > 0 && strings.HasPrefix(item.Enclosures[0].Type, "image/") {
		article.ImageURL = item.Enclosures[0].URL
	}

	if err := s.db.Create(article).Error; err != nil {
		return false, fmt.Errorf("failed to create article: %w", err)
	}
	return true, nil
}

// itemSlug 由条目标题生成不冲突的slug
func (s *RSSService) itemSlug(title string) string {
	base := models.Slugify(title)
	if base == "" {
		base = "article"
	}

	slug := base
	for i := 2; ; i++ {
		var count int64
		if err := s.db.Model(&models.Article{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			// 查询失败时退回时间戳后缀，避免阻塞抓取
			return fmt.Sprintf("%s-%d", base, time.Now().UnixNano())
		}
		if count == 0 {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// recordFetch 更新源的抓取状态
func (s *RSSService) recordFetch(source *models.RSSSource, ok bool) {
	now := time.Now()
	updates := map[string]interface{}{
		"last_fetched": now,
		"fetch_count":  gorm.Expr("fetch_count + 1"),
	}
	if !ok {
		updates["error_count"] = gorm.Expr("error_count + 1")
	}
	if err := s.db.Model(source).Updates(updates).Error; err != nil {
		log.Printf("failed to record fetch for rss source %d: %v", source.ID, err)
	}
}
