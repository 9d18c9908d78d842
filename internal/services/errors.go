package services

import "errors"

// 业务错误哨兵值，handler 层通过 errors.Is 映射为HTTP状态码
var (
	// ErrNotFound 目标记录不存在
	ErrNotFound = errors.New("record not found")
	// ErrValidation 请求数据不合法（未知内容类型、跨目标的父评论等）
	ErrValidation = errors.New("validation failed")
	// ErrConflict 违反唯一性约束（重复评分、重复举报）
	ErrConflict = errors.New("already exists")
	// ErrPermission 无权操作他人的资源
	ErrPermission = errors.New("permission denied")
)
