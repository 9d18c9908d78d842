package api

import (
	"github.com/GhNoticeBoard/noticeboard-backend/internal/cache"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

func SetupRoutes(redisCache *cache.RedisCache) *gin.Engine {
	r := gin.Default()

	// add cors middleware
	r.Use(middleware.CORSMiddleware())

	// health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "NoticeBoard backend is running",
		})
	})

	// initialize handler
	userHandler := NewUserHandler()
	interactionHandler := NewInteractionHandler()
	commentHandler := NewCommentHandler()
	reviewHandler := NewReviewHandler()
	feedHandler := NewFeedHandler(redisCache)
	pushHandler := NewPushHandler()
	subscriptionHandler := NewSubscriptionHandler()
	taxonomyHandler := NewTaxonomyHandler()
	articleHandler := NewArticleHandler(redisCache)
	rssHandler := NewRSSHandler()
	adminHandler := NewAdminHandler()

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// public routes
		auth := v1.Group("/auth")
		{
			auth.POST("/register", userHandler.Register)
			auth.POST("/login", userHandler.Login)
		}

		// user routes
		user := v1.Group("/user")
		user.Use(middleware.AuthMiddleware())
		{
			user.GET("/profile", userHandler.GetProfile)
			user.PUT("/profile", userHandler.UpdateProfile)
			user.POST("/change-password", userHandler.ChangePassword)
			user.DELETE("/account", userHandler.DeleteAccount)
			user.GET("/bookmarks", interactionHandler.GetBookmarks)
			user.GET("/interests", interactionHandler.GetInterests)
			user.GET("/subscriptions", subscriptionHandler.GetMySubscriptions)
			user.GET("/subscriptions/stats", subscriptionHandler.GetSubscriptionStats)
		}

		// interaction routes
		interactions := v1.Group("/interactions")
		{
			// 公开路由，认证用户附带个人状态
			interactions.GET("/stats", middleware.OptionalAuthMiddleware(), interactionHandler.GetStats)
			interactions.POST("/view", middleware.OptionalAuthMiddleware(), interactionHandler.RecordView)

			// 需要身份验证的路由
			authed := interactions.Group("")
			authed.Use(middleware.AuthMiddleware())
			{
				authed.POST("/like", interactionHandler.ToggleLike)
				authed.POST("/dislike", interactionHandler.ToggleDislike)
				authed.POST("/bookmark", interactionHandler.ToggleBookmark)
				authed.POST("/share", interactionHandler.CreateShare)
				authed.POST("/report", interactionHandler.CreateReport)
			}
		}

		// comment routes
		comments := v1.Group("/comments")
		{
			comments.GET("", commentHandler.GetComments)
			comments.GET("/:id", commentHandler.GetCommentByID)

			authed := comments.Group("")
			authed.Use(middleware.AuthMiddleware())
			{
				authed.POST("", commentHandler.CreateComment)
				authed.PUT("/:id", commentHandler.UpdateComment)
				authed.DELETE("/:id", commentHandler.DeleteComment)
			}
		}

		// review routes
		reviews := v1.Group("/reviews")
		{
			reviews.GET("", reviewHandler.GetReviews)
			reviews.GET("/stats", reviewHandler.GetReviewStats)

			authed := reviews.Group("")
			authed.Use(middleware.AuthMiddleware())
			{
				authed.POST("", reviewHandler.CreateReview)
				authed.PUT("/:id", reviewHandler.UpdateReview)
				authed.DELETE("/:id", reviewHandler.DeleteReview)
			}
		}

		// feed routes
		feed := v1.Group("/feed")
		feed.Use(middleware.OptionalAuthMiddleware())
		{
			feed.GET("/recommended", feedHandler.GetRecommendedFeed)
		}

		// interest tracking
		track := v1.Group("/track")
		track.Use(middleware.AuthMiddleware())
		{
			track.POST("/interaction", interactionHandler.TrackInteraction)
		}

		// push routes
		push := v1.Group("/push")
		push.Use(middleware.AuthMiddleware())
		{
			push.POST("/subscribe", pushHandler.Subscribe)
			push.DELETE("/subscribe", pushHandler.Unsubscribe)
			push.GET("/subscriptions", pushHandler.GetSubscriptions)
		}

		// taxonomy routes
		categories := v1.Group("/categories")
		{
			categories.GET("", taxonomyHandler.GetCategories)

			authed := categories.Group("")
			authed.Use(middleware.AuthMiddleware())
			{
				authed.POST("/:slug/subscribe", subscriptionHandler.SubscribeCategory)
				authed.POST("/:slug/unsubscribe", subscriptionHandler.UnsubscribeCategory)
			}
		}
		tags := v1.Group("/tags")
		{
			tags.GET("", taxonomyHandler.GetTags)

			authed := tags.Group("")
			authed.Use(middleware.AuthMiddleware())
			{
				authed.POST("/:slug/subscribe", subscriptionHandler.SubscribeTag)
				authed.POST("/:slug/unsubscribe", subscriptionHandler.UnsubscribeTag)
			}
		}

		// article routes
		articles := v1.Group("/articles")
		{
			articles.GET("", articleHandler.GetArticles)
			articles.GET("/:slug", articleHandler.GetArticleBySlug)
		}

		// admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware())
		admin.Use(middleware.AdminAuthMiddleware())
		{
			admin.GET("/users", userHandler.GetUsers)
			admin.PUT("/users/:id/status", userHandler.UpdateUserStatus)

			admin.POST("/articles", articleHandler.CreateArticle)
			admin.PUT("/articles/:id", articleHandler.UpdateArticle)
			admin.POST("/articles/:id/publish", articleHandler.PublishArticle)
			admin.POST("/articles/:id/archive", articleHandler.ArchiveArticle)
			admin.DELETE("/articles/:id", articleHandler.DeleteArticle)

			admin.POST("/categories", taxonomyHandler.CreateCategory)
			admin.POST("/tags", taxonomyHandler.CreateTag)

			admin.GET("/reports", adminHandler.GetReports)
			admin.GET("/reports/:id", adminHandler.GetReport)
			admin.PUT("/reports/:id", adminHandler.ReviewReport)
			admin.PUT("/comments/:id/flag", adminHandler.FlagComment)
			admin.PUT("/reviews/:id/approve", adminHandler.ApproveReview)

			admin.GET("/rss/sources", rssHandler.GetSources)
			admin.POST("/rss/sources", rssHandler.CreateSource)
			admin.DELETE("/rss/sources/:id", rssHandler.DeleteSource)
			admin.POST("/rss/fetch", rssHandler.FetchAll)
		}
	}

	return r
}
