package api

import (
	"strconv"

	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/services"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// TaxonomyHandler 分类与标签接口
type TaxonomyHandler struct {
	taxonomyService *services.TaxonomyService
}

// NewTaxonomyHandler 创建并返回一个新的 TaxonomyHandler 实例
func NewTaxonomyHandler() *TaxonomyHandler {
	return &TaxonomyHandler{
		taxonomyService: services.NewTaxonomyService(),
	}
}

// GetCategories 分类列表
func (h *TaxonomyHandler) GetCategories(c *gin.Context) {
	categories, err := h.taxonomyService.GetCategories()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.Success(c, categories)
}

// CreateCategory 创建分类（管理员）
func (h *TaxonomyHandler) CreateCategory(c *gin.Context) {
	var req models.CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	category, err := h.taxonomyService.CreateCategory(&req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.Success(c, category)
}

// GetTags 标签列表，可按分类过滤
func (h *TaxonomyHandler) GetTags(c *gin.Context) {
	var categoryID *uint
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			utils.BadRequest(c, "Invalid category ID")
			return
		}
		uid := uint(id)
		categoryID = &uid
	}

	tags, err := h.taxonomyService.GetTags(categoryID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.Success(c, tags)
}

// CreateTag 创建标签（管理员）
func (h *TaxonomyHandler) CreateTag(c *gin.Context) {
	var req models.TagCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	tag, err := h.taxonomyService.CreateTag(&req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.Success(c, tag)
}
