package api

import (
	"errors"
	"strconv"

	"github.com/GhNoticeBoard/noticeboard-backend/internal/services"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// handleServiceError 把服务层哨兵错误映射为HTTP状态码
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, services.ErrValidation):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrConflict):
		utils.Conflict(c, err.Error())
	case errors.Is(err, services.ErrPermission):
		utils.Forbidden(c, err.Error())
	default:
		utils.InternalServerError(c, err.Error())
	}
}

// getUserID 从认证中间件注入的上下文中取当前用户ID
func getUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return 0, false
	}
	id, ok := userID.(uint)
	if !ok {
		utils.InternalServerError(c, "Failed to get user ID from context")
		return 0, false
	}
	return id, true
}

// optionalUserID 可选认证路由里取用户ID，匿名时返回nil
func optionalUserID(c *gin.Context) *uint {
	userID, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	if id, ok := userID.(uint); ok {
		return &id
	}
	return nil
}

// isAdmin 当前请求是否来自管理员
func isAdmin(c *gin.Context) bool {
	role, exists := c.Get("role")
	if !exists {
		return false
	}
	r, ok := role.(string)
	return ok && (r == "admin" || r == "system")
}

// pagination 解析分页参数
func pagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
