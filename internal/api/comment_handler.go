package api

import (
	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/services"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// CommentHandler 结构体，用于封装与评论相关的 HTTP 请求处理逻辑
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler 创建并返回一个新的 CommentHandler 实例
func NewCommentHandler() *CommentHandler {
	return &CommentHandler{
		commentService: services.NewCommentService(),
	}
}

// CreateComment 创建评论或回复
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req models.CommentCreateRequest
	// 将请求的 JSON 主体绑定到 CommentCreateRequest 结构体
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	userID, ok := getUserID(c)
	if !ok {
		return
	}

	comment, err := h.commentService.CreateComment(userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, comment.ToResponse())
}

// GetComments 某内容下的评论列表
func (h *CommentHandler) GetComments(c *gin.Context) {
	contentType := c.Query("content_type")
	objectID := c.Query("object_id")
	if contentType == "" || objectID == "" {
		utils.BadRequest(c, "content_type and object_id are required")
		return
	}

	page, pageSize := pagination(c)
	comments, total, err := h.commentService.GetComments(contentType, objectID, page, pageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessWithPagination(c, comments, total, page, pageSize)
}

// GetCommentByID 根据ID获取单条评论
func (h *CommentHandler) GetCommentByID(c *gin.Context) {
	comment, err := h.commentService.GetCommentByID(c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, comment.ToResponse())
}

// UpdateComment 编辑自己的评论
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	var req models.CommentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	userID, ok := getUserID(c)
	if !ok {
		return
	}

	comment, err := h.commentService.UpdateComment(userID, c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, comment.ToResponse())
}

// DeleteComment 删除评论，作者本人或管理员可删
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(userID, c.Param("id"), isAdmin(c)); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, gin.H{"deleted": true})
}
