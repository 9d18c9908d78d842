package scheduler

import (
	"context"
	"log"

	"github.com/GhNoticeBoard/noticeboard-backend/internal/cache"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/config"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/services"
	"github.com/robfig/cron/v3"
)

// Scheduler 定时任务：RSS抓取与热门流快照刷新
type Scheduler struct {
	cron        *cron.Cron
	rssService  *services.RSSService
	feedService *services.FeedService
}

func NewScheduler(redisCache *cache.RedisCache) *Scheduler {
	// 创建带有秒级精度的cron调度器
	c := cron.New(cron.WithSeconds())

	return &Scheduler{
		cron:        c,
		rssService:  services.NewRSSService(),
		feedService: services.NewFeedService(redisCache),
	}
}

// Start 启动调度器
func (s *Scheduler) Start() error {
	// RSS抓取，cron表达式可配置，默认每30分钟
	fetchCron := "0 */30 * * * *"
	if config.AppConfig != nil && config.AppConfig.RSS.FetchCron != "" {
		fetchCron = config.AppConfig.RSS.FetchCron
	}
	if _, err := s.cron.AddFunc(fetchCron, s.fetchAllFeeds); err != nil {
		return err
	}

	// 每5分钟刷新一次热门流快照
	if _, err := s.cron.AddFunc("0 */5 * * * *", s.refreshTrendingSnapshot); err != nil {
		return err
	}

	s.cron.Start()
	log.Println("scheduler started")
	return nil
}

// Stop 停止调度器
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("scheduler stopped")
}

// fetchAllFeeds 抓取所有启用的RSS源
func (s *Scheduler) fetchAllFeeds() {
	log.Println("starting scheduled rss fetch")

	results, err := s.rssService.FetchAll()
	if err != nil {
		log.Printf("scheduled rss fetch failed: %v", err)
		return
	}

	created, skipped := 0, 0
	for _, r := range results {
		created += r.Created
		skipped += r.Skipped
		if r.Error != "" {
			log.Printf("rss source %s failed: %s", r.Source, r.Error)
		}
	}
	log.Printf("rss fetch finished: sources=%d created=%d skipped=%d", len(results), created, skipped)
}

// refreshTrendingSnapshot 重建热门流快照并写回缓存
func (s *Scheduler) refreshTrendingSnapshot() {
	if err := s.feedService.RefreshTrendingSnapshot(context.Background()); err != nil {
		log.Printf("trending snapshot refresh failed: %v", err)
	}
}
