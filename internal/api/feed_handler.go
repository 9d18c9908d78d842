package api

import (
	"github.com/GhNoticeBoard/noticeboard-backend/internal/cache"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/services"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// FeedHandler 推荐流接口
type FeedHandler struct {
	feedService *services.FeedService
}

// NewFeedHandler 创建并返回一个新的 FeedHandler 实例
func NewFeedHandler(redisCache *cache.RedisCache) *FeedHandler {
	return &FeedHandler{
		feedService: services.NewFeedService(redisCache),
	}
}

// GetRecommendedFeed 推荐流，匿名走热门，登录且有兴趣画像走个性化
func (h *FeedHandler) GetRecommendedFeed(c *gin.Context) {
	page, pageSize := pagination(c)

	feed, err := h.feedService.GetFeed(c.Request.Context(), optionalUserID(c), page, pageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, feed)
}
