package api

import (
	"strconv"

	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/services"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// AdminHandler 管理端的举报处理接口
type AdminHandler struct {
	reportService  *services.ReportService
	commentService *services.CommentService
	reviewService  *services.ReviewService
}

// NewAdminHandler 创建并返回一个新的 AdminHandler 实例
func NewAdminHandler() *AdminHandler {
	return &AdminHandler{
		reportService:  services.NewReportService(),
		commentService: services.NewCommentService(),
		reviewService:  services.NewReviewService(),
	}
}

// GetReports 举报列表，可按状态筛选
func (h *AdminHandler) GetReports(c *gin.Context) {
	page, pageSize := pagination(c)

	reports, total, err := h.reportService.GetReports(c.Query("status"), page, pageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessWithPagination(c, reports, total, page, pageSize)
}

// GetReport 单条举报详情
func (h *AdminHandler) GetReport(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid report ID")
		return
	}

	report, err := h.reportService.GetReportByID(uint(id))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, report)
}

// ReviewReport 处理举报（状态流转）
func (h *AdminHandler) ReviewReport(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid report ID")
		return
	}

	var req models.ReportReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	moderatorID, ok := getUserID(c)
	if !ok {
		return
	}

	report, err := h.reportService.ReviewReport(moderatorID, uint(id), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, report)
}

// FlagComment 标记/取消标记评论
func (h *AdminHandler) FlagComment(c *gin.Context) {
	var req struct {
		Flagged bool `json:"flagged"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	if err := h.commentService.FlagComment(c.Param("id"), req.Flagged); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, gin.H{"flagged": req.Flagged})
}

// ApproveReview 审核评分
func (h *AdminHandler) ApproveReview(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid review ID")
		return
	}

	var req struct {
		Approved bool `json:"approved"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	if err := h.reviewService.ApproveReview(uint(id), req.Approved); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, gin.H{"approved": req.Approved})
}
