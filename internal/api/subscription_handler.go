package api

import (
	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/services"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// SubscriptionHandler 分类/标签订阅接口
type SubscriptionHandler struct {
	subscriptionService *services.SubscriptionService
	taxonomyService     *services.TaxonomyService
}

// NewSubscriptionHandler 创建并返回一个新的 SubscriptionHandler 实例
func NewSubscriptionHandler() *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: services.NewSubscriptionService(),
		taxonomyService:     services.NewTaxonomyService(),
	}
}

// bindPreferences 订阅请求体可为空，空body时用默认偏好
func bindPreferences(c *gin.Context) *models.SubscribeRequest {
	var req models.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil
	}
	return &req
}

// SubscribeCategory 订阅分类
func (h *SubscriptionHandler) SubscribeCategory(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	category, err := h.taxonomyService.GetCategoryBySlug(c.Param("slug"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	sub, err := h.subscriptionService.SubscribeCategory(userID, category.ID, bindPreferences(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, sub)
}

// UnsubscribeCategory 取消分类订阅
func (h *SubscriptionHandler) UnsubscribeCategory(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	category, err := h.taxonomyService.GetCategoryBySlug(c.Param("slug"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if err := h.subscriptionService.UnsubscribeCategory(userID, category.ID); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, gin.H{"unsubscribed": true})
}

// SubscribeTag 订阅标签
func (h *SubscriptionHandler) SubscribeTag(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	tag, err := h.taxonomyService.GetTagBySlug(c.Param("slug"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	sub, err := h.subscriptionService.SubscribeTag(userID, tag.ID, bindPreferences(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, sub)
}

// UnsubscribeTag 取消标签订阅
func (h *SubscriptionHandler) UnsubscribeTag(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	tag, err := h.taxonomyService.GetTagBySlug(c.Param("slug"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if err := h.subscriptionService.UnsubscribeTag(userID, tag.ID); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, gin.H{"unsubscribed": true})
}

// GetMySubscriptions 当前用户的订阅列表
func (h *SubscriptionHandler) GetMySubscriptions(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	subs, err := h.subscriptionService.GetUserSubscriptions(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, subs)
}

// GetSubscriptionStats 当前用户的订阅统计
func (h *SubscriptionHandler) GetSubscriptionStats(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	stats, err := h.subscriptionService.GetSubscriptionStats(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, stats)
}
