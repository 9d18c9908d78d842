package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GhNoticeBoard/noticeboard-backend/internal/api"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/cache"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/config"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/database"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/scheduler"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/services"
)

func main() {
	// load config
	cfg, err := config.LoadConfig("internal/config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// initialize database
	if err := database.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDatabase()

	// execute database migration
	if err := database.Migrate(
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
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// initialize seed data
	seedService := services.NewSeedService()
	if err := seedService.SeedAllData(); err != nil {
		log.Printf("Warning: Failed to seed initial data: %v", err)
	}

	// initialize redis cache; feed falls back to database when unavailable
	var redisCache *cache.RedisCache
	redisCache, err = cache.NewRedisCache(cfg.Redis)
	if err != nil {
		log.Printf("Warning: redis unavailable, trending feed will be served from database: %v", err)
		redisCache = nil
	} else {
		defer redisCache.Close()
	}

	// initialize scheduler (rss fetch + trending snapshot refresh)
	sched := scheduler.NewScheduler(redisCache)
	if err := sched.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// set up routes
	router := api.SetupRoutes(redisCache)

	// create http server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")

		sched.Stop()

		if err := server.Close(); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Server is starting on %s", addr)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}
