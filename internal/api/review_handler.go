package api

import (
	"strconv"

	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/services"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// ReviewHandler 评分接口
type ReviewHandler struct {
	reviewService *services.ReviewService
}

// NewReviewHandler 创建并返回一个新的 ReviewHandler 实例
func NewReviewHandler() *ReviewHandler {
	return &ReviewHandler{
		reviewService: services.NewReviewService(),
	}
}

// CreateReview 提交评分
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req models.ReviewCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	userID, ok := getUserID(c)
	if !ok {
		return
	}

	review, err := h.reviewService.CreateReview(userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, review.ToResponse())
}

// GetReviews 某内容的评分列表
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	contentType := c.Query("content_type")
	objectID := c.Query("object_id")
	if contentType == "" || objectID == "" {
		utils.BadRequest(c, "content_type and object_id are required")
		return
	}

	page, pageSize := pagination(c)
	reviews, total, err := h.reviewService.GetReviews(contentType, objectID, page, pageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessWithPagination(c, reviews, total, page, pageSize)
}

// GetReviewStats 某内容的评分汇总
func (h *ReviewHandler) GetReviewStats(c *gin.Context) {
	contentType := c.Query("content_type")
	objectID := c.Query("object_id")
	if contentType == "" || objectID == "" {
		utils.BadRequest(c, "content_type and object_id are required")
		return
	}

	stats, err := h.reviewService.GetReviewStats(contentType, objectID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, stats)
}

// UpdateReview 修改自己的评分
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid review ID")
		return
	}

	var req models.ReviewUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	userID, ok := getUserID(c)
	if !ok {
		return
	}

	review, err := h.reviewService.UpdateReview(userID, uint(id), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, review.ToResponse())
}

// DeleteReview 删除评分
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid review ID")
		return
	}

	userID, ok := getUserID(c)
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReview(userID, uint(id), isAdmin(c)); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, gin.H{"deleted": true})
}
