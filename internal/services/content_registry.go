package services

import (
	"fmt"

	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	"gorm.io/gorm"
)

// contentEntry 注册表中一种内容类型的元信息
type contentEntry struct {
	model    interface{}                         // 对应的gorm模型，用于定位表
	counters map[models.CounterField]struct{}    // 该类型支持的计数字段
}

// contentRegistry 多态目标的解析注册表
// 所有 (content_type, object_id) 的存在性检查与计数维护都经过这里，
// 业务代码不直接对判别符字符串做分支
var contentRegistry = map[models.ContentType]contentEntry{
	models.ContentTypeArticle: {
		model: &models.Article{},
		counters: map[models.CounterField]struct{}{
			models.CounterView: {}, models.CounterLike: {}, models.CounterDislike: {},
			models.CounterComment: {}, models.CounterBookmark: {}, models.CounterShare: {},
		},
	},
	models.ContentTypeEvent: {
		model: &models.Event{},
		counters: map[models.CounterField]struct{}{
			models.CounterView: {}, models.CounterLike: {}, models.CounterDislike: {},
			models.CounterComment: {}, models.CounterBookmark: {}, models.CounterShare: {},
		},
	},
	models.ContentTypeOpportunity: {
		model: &models.Opportunity{},
		counters: map[models.CounterField]struct{}{
			models.CounterView: {}, models.CounterLike: {}, models.CounterDislike: {},
			models.CounterComment: {}, models.CounterBookmark: {}, models.CounterShare: {},
		},
	},
	models.ContentTypeComment: {
		model: &models.Comment{},
		counters: map[models.CounterField]struct{}{
			models.CounterLike: {},
		},
	},
}

// ResolveContentType 将请求中的判别符解析为已注册的内容类型
func ResolveContentType(raw string) (models.ContentType, error) {
	ct := models.ContentType(raw)
	if _, ok := contentRegistry[ct]; !ok {
		return "", fmt.Errorf("%w: unknown content type %q", ErrValidation, raw)
	}
	return ct, nil
}

// ContentExists 检查目标内容是否存在
func ContentExists(db *gorm.DB, contentType models.ContentType, objectID string) (bool, error) {
	entry, ok := contentRegistry[contentType]
	if !ok {
		return false, fmt.Errorf("%w: unknown content type %q", ErrValidation, contentType)
	}

	var count int64
	if err := db.Model(entry.model).Where("id = ?", objectID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check content existence: %w", err)
	}
	return count > 0, nil
}

// AddToCounter 原子地调整目标内容上的冗余计数
// 递减在数据库端截断到0，计数漂移时也不会出现负数；
// 必须用 gorm.Expr 做数据库端的加减，避免并发下读改写丢失更新
func AddToCounter(db *gorm.DB, contentType models.ContentType, objectID string, field models.CounterField, delta int64) error {
	entry, ok := contentRegistry[contentType]
	if !ok {
		return fmt.Errorf("%w: unknown content type %q", ErrValidation, contentType)
	}
	if _, ok := entry.counters[field]; !ok {
		return fmt.Errorf("%w: content type %q has no counter %q", ErrValidation, contentType, field)
	}

	column := string(field)
	value := gorm.Expr(column+" + ?", delta)
	if delta < 0 {
		value = gorm.Expr("CASE WHEN "+column+" + ? >= 0 THEN "+column+" + ? ELSE 0 END", delta, delta)
	}

	if err := db.Model(entry.model).Where("id = ?", objectID).UpdateColumn(column, value).Error; err != nil {
		return fmt.Errorf("failed to update %s counter: %w", column, err)
	}
	return nil
}
