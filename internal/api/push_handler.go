package api

import (
	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/services"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// PushHandler Web Push 订阅接口
type PushHandler struct {
	pushService *services.PushService
}

// NewPushHandler 创建并返回一个新的 PushHandler 实例
func NewPushHandler() *PushHandler {
	return &PushHandler{
		pushService: services.NewPushService(),
	}
}

// Subscribe 注册推送端点
func (h *PushHandler) Subscribe(c *gin.Context) {
	var req models.PushSubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	userID, ok := getUserID(c)
	if !ok {
		return
	}

	sub, err := h.pushService.Subscribe(userID, &req, c.Request.UserAgent())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, sub)
}

// Unsubscribe 注销推送端点
func (h *PushHandler) Unsubscribe(c *gin.Context) {
	var req models.PushUnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	userID, ok := getUserID(c)
	if !ok {
		return
	}

	if err := h.pushService.Unsubscribe(userID, req.Endpoint); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, gin.H{"unsubscribed": true})
}

// GetSubscriptions 当前用户的活跃推送端点
func (h *PushHandler) GetSubscriptions(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	subs, err := h.pushService.GetUserSubscriptions(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, subs)
}
