package api

import (
	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/services"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// InteractionHandler 封装点赞/点踩/收藏/分享/浏览/举报等互动接口
type InteractionHandler struct {
	interactionService *services.InteractionService
	reportService      *services.ReportService
	interestService    *services.InterestService
}

// NewInteractionHandler 创建并返回一个新的 InteractionHandler 实例
func NewInteractionHandler() *InteractionHandler {
	return &InteractionHandler{
		interactionService: services.NewInteractionService(),
		reportService:      services.NewReportService(),
		interestService:    services.NewInterestService(),
	}
}

// toggle 三种开关互动共用的请求处理
func (h *InteractionHandler) toggle(c *gin.Context, fn func(userID uint, contentType, objectID string) (bool, error), onMsg, offMsg string) {
	var req models.TargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	userID, ok := getUserID(c)
	if !ok {
		return
	}

	applied, err := fn(userID, req.ContentType, req.ObjectID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	message := offMsg
	if applied {
		message = onMsg
	}
	utils.Success(c, models.ToggleResponse{Applied: applied, Message: message})
}

// ToggleLike 切换点赞
func (h *InteractionHandler) ToggleLike(c *gin.Context) {
	h.toggle(c, h.interactionService.ToggleLike, "liked", "like removed")
}

// ToggleDislike 切换点踩
func (h *InteractionHandler) ToggleDislike(c *gin.Context) {
	h.toggle(c, h.interactionService.ToggleDislike, "disliked", "dislike removed")
}

// ToggleBookmark 切换收藏
func (h *InteractionHandler) ToggleBookmark(c *gin.Context) {
	h.toggle(c, h.interactionService.ToggleBookmark, "bookmarked", "bookmark removed")
}

// GetBookmarks 当前用户的收藏列表
func (h *InteractionHandler) GetBookmarks(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	page, pageSize := pagination(c)
	bookmarks, total, err := h.interactionService.GetUserBookmarks(userID, page, pageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessWithPagination(c, bookmarks, total, page, pageSize)
}

// CreateShare 记录分享
func (h *InteractionHandler) CreateShare(c *gin.Context) {
	var req models.ShareCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	userID, ok := getUserID(c)
	if !ok {
		return
	}

	share, err := h.interactionService.CreateShare(userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, share)
}

// RecordView 记录浏览，允许匿名
func (h *InteractionHandler) RecordView(c *gin.Context) {
	var req models.ViewCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	userID := optionalUserID(c)
	if err := h.interactionService.RecordView(userID, &req, c.ClientIP(), c.Request.UserAgent()); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, gin.H{"recorded": true})
}

// GetStats 某内容的互动统计，认证用户附带个人状态
func (h *InteractionHandler) GetStats(c *gin.Context) {
	contentType := c.Query("content_type")
	objectID := c.Query("object_id")
	if contentType == "" || objectID == "" {
		utils.BadRequest(c, "content_type and object_id are required")
		return
	}

	stats, err := h.interactionService.GetStats(contentType, objectID, optionalUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, stats)
}

// CreateReport 举报内容
func (h *InteractionHandler) CreateReport(c *gin.Context) {
	var req models.ReportCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	userID, ok := getUserID(c)
	if !ok {
		return
	}

	report, err := h.reportService.CreateReport(userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, report)
}

// TrackInteraction 上报互动用于兴趣画像
func (h *InteractionHandler) TrackInteraction(c *gin.Context) {
	var req models.TrackInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	userID, ok := getUserID(c)
	if !ok {
		return
	}

	if err := h.interestService.TrackInteraction(userID, &req); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, gin.H{"tracked": true})
}

// GetInterests 当前用户的兴趣画像
func (h *InteractionHandler) GetInterests(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	interests, err := h.interestService.GetUserInterests(userID, 20)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, interests)
}
