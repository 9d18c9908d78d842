package api

import (
	"strconv"

	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/services"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// RSSHandler RSS源管理接口（管理员）
type RSSHandler struct {
	rssService *services.RSSService
}

// NewRSSHandler 创建并返回一个新的 RSSHandler 实例
func NewRSSHandler() *RSSHandler {
	return &RSSHandler{
		rssService: services.NewRSSService(),
	}
}

// CreateSource 创建RSS源
func (h *RSSHandler) CreateSource(c *gin.Context) {
	var req models.RSSSourceCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	source, err := h.rssService.CreateSource(&req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, source)
}

// GetSources RSS源列表
func (h *RSSHandler) GetSources(c *gin.Context) {
	sources, err := h.rssService.GetSources()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, sources)
}

// DeleteSource 删除RSS源
func (h *RSSHandler) DeleteSource(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid source ID")
		return
	}

	if err := h.rssService.DeleteSource(uint(id)); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, gin.H{"deleted": true})
}

// FetchAll 立即抓取所有启用的源
func (h *RSSHandler) FetchAll(c *gin.Context) {
	results, err := h.rssService.FetchAll()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, results)
}
