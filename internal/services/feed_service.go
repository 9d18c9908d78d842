package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/GhNoticeBoard/noticeboard-backend/internal/cache"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/config"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/database"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	"gorm.io/gorm"
)

// FeedService 推荐流服务
// 匿名用户走热门流（近7天按浏览量排序，redis缓存快照），
// 登录用户走个性化流（新鲜度+热度线性打分，内存排序后分页）
type FeedService struct {
	db    *gorm.DB
	cache *cache.RedisCache
	cfg   config.RecommendConfig
}

// NewFeedService 创建推荐流服务实例，cache 可为 nil（降级为每次查库）
func NewFeedService(redisCache *cache.RedisCache) *FeedService {
	cfg := config.DefaultRecommendConfig()
	if config.AppConfig != nil {
		cfg = config.AppConfig.Recommend
	}
	return &FeedService{
		db:    database.GetDB(),
		cache: redisCache,
		cfg:   cfg,
	}
}

const trendingSnapshotLimit = 500

// hasInterests 用户是否有任何兴趣画像，没有则回退到热门流
func (s *FeedService) hasInterests(userID uint) bool {
	var count int64
	if err := s.db.Model(&models.UserInterest{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		log.Printf("failed to check user interests: %v", err)
		return false
	}
	return count > 0
}

// GetFeed 获取推荐流，userID 为 nil 时返回热门流
func (s *FeedService) GetFeed(ctx context.Context, userID *uint, page, pageSize int) (*models.FeedResponse, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	if userID == nil || !s.hasInterests(*userID) {
		return s.trendingFeed(ctx, page, pageSize)
	}
	return s.personalizedFeed(page, pageSize)
}

// trendingFeed 热门流：近 trending_days 天发布的文章按浏览量倒序
// 完整快照进redis，分页在快照上切片
func (s *FeedService) trendingFeed(ctx context.Context, page, pageSize int) (*models.FeedResponse, error) {
	var items []models.FeedItem

	if s.cache != nil {
		cached, err := s.cache.GetTrendingFeed(ctx)
		if err == nil {
			items = cached
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			// 缓存故障不阻塞请求，直接回源
			log.Printf("trending feed cache read failed: %v", err)
		}
	}

	if items == nil {
		var err error
		items, err = s.BuildTrendingSnapshot()
		if err != nil {
			return nil, err
		}

		if s.cache != nil {
			ttl := time.Duration(s.cfg.TrendingCacheTTL) * time.Second
			if err := s.cache.SetTrendingFeed(ctx, items, ttl); err != nil {
				log.Printf("trending feed cache write failed: %v", err)
			}
		}
	}

	return paginateFeed(items, page, pageSize, "trending"), nil
}

// BuildTrendingSnapshot 从数据库构建热门流快照，调度器定时刷新时也走这里
func (s *FeedService) BuildTrendingSnapshot() ([]models.FeedItem, error) {
	since := time.Now().AddDate(0, 0, -s.cfg.TrendingDays)

	var articles []models.Article
	if err := s.db.Preload("Category").
		Where("status = ? AND published_at >= ?", models.ArticleStatusPublished, since).
		Order("view_count desc, published_at desc").
		Limit(trendingSnapshotLimit).
		Find(&articles).Error; err != nil {
		return nil, fmt.Errorf("failed to build trending feed: %w", err)
	}

	items := make([]models.FeedItem, 0, len(articles))
	for i := range articles {
		items = append(items, articleToFeedItem(&articles[i], 0))
	}
	return items, nil
}

// RefreshTrendingSnapshot 重建快照并写回缓存，由cron定时调用
func (s *FeedService) RefreshTrendingSnapshot(ctx context.Context) error {
	items, err := s.BuildTrendingSnapshot()
	if err != nil {
		return err
	}
	if s.cache == nil {
		return nil
	}
	ttl := time.Duration(s.cfg.TrendingCacheTTL) * time.Second
	return s.cache.SetTrendingFeed(ctx, items, ttl)
}

// personalizedFeed 个性化流
// score = recency + engagement：
//
//	recency = max(0, recency_base - ageHours/24*recency_decay)
//	engagement = view_count * engagement_factor
func (s *FeedService) personalizedFeed(page, pageSize int) (*models.FeedResponse, error) {
	// 候选集取最新发布的 page_size*3 篇，排序打分都在内存完成
	var articles []models.Article
	if err := s.db.Preload("Category").
		Where("status = ?", models.ArticleStatusPublished).
		Order("published_at desc").
		Limit(pageSize * 3).
		Find(&articles).Error; err != nil {
		return nil, fmt.Errorf("failed to load feed candidates: %w", err)
	}

	now := time.Now()
	items := make([]models.FeedItem, 0, len(articles))
	for i := range articles {
		score := s.scoreArticle(&articles[i], now)
		items = append(items, articleToFeedItem(&articles[i], score))
	}

	// 分值降序，相同分值按发布时间降序保持确定性
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		pi, pj := items[i].PublishedAt, items[j].PublishedAt
		if pi == nil || pj == nil {
			return pj == nil && pi != nil
		}
		return pi.After(*pj)
	})

	return paginateFeed(items, page, pageSize, "personalized"), nil
}

// scoreArticle 单篇文章的个性化分值
func (s *FeedService) scoreArticle(article *models.Article, now time.Time) float64 {
	recency := 0.0
	if article.PublishedAt != nil {
		ageHours := now.Sub(*article.PublishedAt).Hours()
		recency = s.cfg.RecencyBase - ageHours/24.0*s.cfg.RecencyDecay
		if recency < 0 {
			recency = 0
		}
	}
	engagement := float64(article.ViewCount) * s.cfg.EngagementFactor
	return recency + engagement
}

// articleToFeedItem 文章转流条目
func articleToFeedItem(article *models.Article, score float64) models.FeedItem {
	item := models.FeedItem{
		Type:        string(models.ContentTypeArticle),
		ID:          article.ID,
		Title:       article.Title,
		Slug:        article.Slug,
		Excerpt:     article.Excerpt,
		ImageURL:    article.ImageURL,
		PublishedAt: article.PublishedAt,
		ViewCount:   article.ViewCount,
		Score:       score,
	}
	if article.Category != nil {
		item.Category = article.Category.Name
	}
	return item
}

// paginateFeed 在内存中的完整排序结果上分页
func paginateFeed(items []models.FeedItem, page, pageSize int, algorithm string) *models.FeedResponse {
	total := len(items)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return &models.FeedResponse{
		Feed:      items[start:end],
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		Algorithm: algorithm,
	}
}
