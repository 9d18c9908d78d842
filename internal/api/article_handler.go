package api

import (
	"strconv"

	"github.com/GhNoticeBoard/noticeboard-backend/internal/cache"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/services"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// ArticleHandler 文章接口
type ArticleHandler struct {
	articleService *services.ArticleService
}

// NewArticleHandler 创建并返回一个新的 ArticleHandler 实例
func NewArticleHandler(redisCache *cache.RedisCache) *ArticleHandler {
	return &ArticleHandler{
		articleService: services.NewArticleService(redisCache),
	}
}

// GetArticles 已发布文章列表
func (h *ArticleHandler) GetArticles(c *gin.Context) {
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

	page, pageSize := pagination(c)
	articles, total, err := h.articleService.GetArticles(categoryID, page, pageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessWithPagination(c, articles, total, page, pageSize)
}

// GetArticleBySlug 按slug获取文章详情
func (h *ArticleHandler) GetArticleBySlug(c *gin.Context) {
	article, err := h.articleService.GetArticleBySlug(c.Param("slug"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, article.ToResponse())
}

// CreateArticle 创建文章（管理员）
func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	var req models.ArticleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	userID, ok := getUserID(c)
	if !ok {
		return
	}

	article, err := h.articleService.CreateArticle(userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, article.ToResponse())
}

// UpdateArticle 更新文章（管理员）
func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid article ID")
		return
	}

	var req models.ArticleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	article, err := h.articleService.UpdateArticle(uint(id), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, article.ToResponse())
}

// PublishArticle 发布文章并通知订阅者（管理员）
func (h *ArticleHandler) PublishArticle(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid article ID")
		return
	}

	if err := h.articleService.PublishArticle(uint(id)); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, gin.H{"published": true})
}

// ArchiveArticle 归档文章（管理员）
func (h *ArticleHandler) ArchiveArticle(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid article ID")
		return
	}

	if err := h.articleService.ArchiveArticle(uint(id)); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, gin.H{"archived": true})
}

// DeleteArticle 删除文章（管理员）
func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid article ID")
		return
	}

	if err := h.articleService.DeleteArticle(uint(id)); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, gin.H{"deleted": true})
}
