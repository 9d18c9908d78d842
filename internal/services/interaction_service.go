package services

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/GhNoticeBoard/noticeboard-backend/internal/database"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	"gorm.io/gorm"
)

// InteractionService 封装点赞/点踩/收藏/分享/浏览等通用互动逻辑
type InteractionService struct {
	db       *gorm.DB
	interest *InterestService
}

// NewInteractionService 创建并返回一个新的 InteractionService 实例
func NewInteractionService() *InteractionService {
	return &InteractionService{
		db:       database.GetDB(),
		interest: NewInterestService(),
	}
}

// resolveTarget 解析并校验互动目标，目标不存在时返回 ErrNotFound
func (s *InteractionService) resolveTarget(rawType, objectID string) (models.ContentType, error) {
	contentType, err := ResolveContentType(rawType)
	if err != nil {
		return "", err
	}

	exists, err := ContentExists(s.db, contentType, objectID)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", fmt.Errorf("%w: %s %s", ErrNotFound, contentType, objectID)
	}

	return contentType, nil
}

// ToggleLike 切换点赞状态
// 新增点赞时若存在点踩则一并删除（互斥），关系写入与计数调整在同一事务内完成
func (s *InteractionService) ToggleLike(userID uint, rawType, objectID string) (bool, error) {
	if s.db == nil {
		return false, errors.New("database connection not initialized")
	}

	contentType, err := s.resolveTarget(rawType, objectID)
	if err != nil {
		return false, err
	}

	applied := false
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Like
		err := tx.Where("user_id = ? AND content_type = ? AND object_id = ?",
			userID, contentType, objectID).First(&existing).Error

		if err == nil {
			// 已点赞，取消
			if err := tx.Delete(&existing).Error; err != nil {
				return fmt.Errorf("failed to remove like: %w", err)
			}
			return AddToCounter(tx, contentType, objectID, models.CounterLike, -1)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check existing like: %w", err)
		}

		// 互斥：先移除已有的点踩
		result := tx.Where("user_id = ? AND content_type = ? AND object_id = ?",
			userID, contentType, objectID).Delete(&models.Dislike{})
		if result.Error != nil {
			return fmt.Errorf("failed to remove opposing dislike: %w", result.Error)
		}
		if result.RowsAffected > 0 {
			if err := AddToCounter(tx, contentType, objectID, models.CounterDislike, -1); err != nil {
				return err
			}
		}

		like := models.Like{UserID: userID, ContentType: contentType, ObjectID: objectID}
		if err := tx.Create(&like).Error; err != nil {
			return fmt.Errorf("failed to create like: %w", err)
		}
		if err := AddToCounter(tx, contentType, objectID, models.CounterLike, 1); err != nil {
			return err
		}

		applied = true
		return nil
	})

	return applied, err
}

// ToggleDislike 切换点踩状态，逻辑与 ToggleLike 对称
func (s *InteractionService) ToggleDislike(userID uint, rawType, objectID string) (bool, error) {
	if s.db == nil {
		return false, errors.New("database connection not initialized")
	}

	contentType, err := s.resolveTarget(rawType, objectID)
	if err != nil {
		return false, err
	}

	applied := false
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Dislike
		err := tx.Where("user_id = ? AND content_type = ? AND object_id = ?",
			userID, contentType, objectID).First(&existing).Error

		if err == nil {
			if err := tx.Delete(&existing).Error; err != nil {
				return fmt.Errorf("failed to remove dislike: %w", err)
			}
			return AddToCounter(tx, contentType, objectID, models.CounterDislike, -1)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check existing dislike: %w", err)
		}

		result := tx.Where("user_id = ? AND content_type = ? AND object_id = ?",
			userID, contentType, objectID).Delete(&models.Like{})
		if result.Error != nil {
			return fmt.Errorf("failed to remove opposing like: %w", result.Error)
		}
		if result.RowsAffected > 0 {
			if err := AddToCounter(tx, contentType, objectID, models.CounterLike, -1); err != nil {
				return err
			}
		}

		dislike := models.Dislike{UserID: userID, ContentType: contentType, ObjectID: objectID}
		if err := tx.Create(&dislike).Error; err != nil {
			return fmt.Errorf("failed to create dislike: %w", err)
		}
		if err := AddToCounter(tx, contentType, objectID, models.CounterDislike, 1); err != nil {
			return err
		}

		applied = true
		return nil
	})

	return applied, err
}

// ToggleBookmark 切换收藏状态，无互斥约束
func (s *InteractionService) ToggleBookmark(userID uint, rawType, objectID string) (bool, error) {
	if s.db == nil {
		return false, errors.New("database connection not initialized")
	}

	contentType, err := s.resolveTarget(rawType, objectID)
	if err != nil {
		return false, err
	}

	applied := false
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Bookmark
		err := tx.Where("user_id = ? AND content_type = ? AND object_id = ?",
			userID, contentType, objectID).First(&existing).Error

		if err == nil {
			if err := tx.Delete(&existing).Error; err != nil {
				return fmt.Errorf("failed to remove bookmark: %w", err)
			}
			return AddToCounter(tx, contentType, objectID, models.CounterBookmark, -1)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check existing bookmark: %w", err)
		}

		bookmark := models.Bookmark{UserID: userID, ContentType: contentType, ObjectID: objectID}
		if err := tx.Create(&bookmark).Error; err != nil {
			return fmt.Errorf("failed to create bookmark: %w", err)
		}
		if err := AddToCounter(tx, contentType, objectID, models.CounterBookmark, 1); err != nil {
			return err
		}

		applied = true
		return nil
	})

	return applied, err
}

// GetUserBookmarks 获取用户的收藏列表，按收藏时间倒序，支持分页
func (s *InteractionService) GetUserBookmarks(userID uint, page, pageSize int) ([]models.Bookmark, int64, error) {
	if s.db == nil {
		return nil, 0, errors.New("database connection not initialized")
	}

	var bookmarks []models.Bookmark
	var total int64

	if err := s.db.Model(&models.Bookmark{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookmarks: %w", err)
	}

	offset := (page - 1) * pageSize
	if offset < 0 {
		offset = 0
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	if err := s.db.Where("user_id = ?", userID).
		Order("created_at desc").
		Offset(offset).Limit(pageSize).
		Find(&bookmarks).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get bookmarks: %w", err)
	}

	return bookmarks, total, nil
}

// CreateShare 记录一次分享并累加分享计数
// 分享不去重，同一用户可多次分享同一内容
func (s *InteractionService) CreateShare(userID uint, req *models.ShareCreateRequest) (*models.Share, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	contentType, err := s.resolveTarget(req.ContentType, req.ObjectID)
	if err != nil {
		return nil, err
	}

	share := &models.Share{
		UserID:      userID,
		ContentType: contentType,
		ObjectID:    req.ObjectID,
		Comment:     req.Comment,
		IsQuote:     req.IsQuote,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(share).Error; err != nil {
			return fmt.Errorf("failed to create share: %w", err)
		}
		return AddToCounter(tx, contentType, req.ObjectID, models.CounterShare, 1)
	})
	if err != nil {
		return nil, err
	}

	// 目标带分类时顺带累加兴趣画像，失败只记日志
	if categoryID := s.targetCategory(contentType, req.ObjectID); categoryID != nil {
		trackReq := &models.TrackInteractionRequest{Type: "share", CategoryID: categoryID}
		if err := s.interest.TrackInteraction(userID, trackReq); err != nil {
			log.Printf("failed to track share interest for user %d: %v", userID, err)
		}
	}

	return share, nil
}

// targetCategory 解析目标内容所属的分类，目前只有文章携带分类
func (s *InteractionService) targetCategory(contentType models.ContentType, objectID string) *uint {
	if contentType != models.ContentTypeArticle {
		return nil
	}
	var article models.Article
	if err := s.db.Select("category_id").Where("id = ?", objectID).First(&article).Error; err != nil {
		return nil
	}
	return article.CategoryID
}

// RecordView 记录一次浏览并累加浏览计数，允许匿名
func (s *InteractionService) RecordView(userID *uint, req *models.ViewCreateRequest, ipAddress, userAgent string) error {
	if s.db == nil {
		return errors.New("database connection not initialized")
	}

	contentType, err := s.resolveTarget(req.ContentType, req.ObjectID)
	if err != nil {
		return err
	}

	view := &models.View{
		UserID:      userID,
		ContentType: contentType,
		ObjectID:    req.ObjectID,
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
		Referrer:    req.Referrer,
		Duration:    req.Duration,
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(view).Error; err != nil {
			return fmt.Errorf("failed to record view: %w", err)
		}
		return AddToCounter(tx, contentType, req.ObjectID, models.CounterView, 1)
	})
}

// GetStats 获取某内容的互动统计汇总
// 计数从关系表实时统计（真实来源），userID 为 nil 时跳过用户相关字段
func (s *InteractionService) GetStats(rawType, objectID string, userID *uint) (*models.InteractionStatsResponse, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	contentType, err := ResolveContentType(rawType)
	if err != nil {
		return nil, err
	}

	stats := &models.InteractionStatsResponse{}

	if err := s.db.Model(&models.Like{}).
		Where("content_type = ? AND object_id = ?", contentType, objectID).
		Count(&stats.LikesCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}

	if err := s.db.Model(&models.Dislike{}).
		Where("content_type = ? AND object_id = ?", contentType, objectID).
		Count(&stats.DislikesCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count dislikes: %w", err)
	}

	// 只统计审核通过的评分
	var avg *float64
	row := s.db.Model(&models.Review{}).
		Where("content_type = ? AND object_id = ? AND is_approved = ?", contentType, objectID, true).
		Select("COUNT(*), AVG(rating)").Row()
	if err := row.Scan(&stats.ReviewsCount, &avg); err != nil {
		return nil, fmt.Errorf("failed to aggregate reviews: %w", err)
	}
	if avg != nil {
		stats.AverageRating = math.Round(*avg*100) / 100
	}

	if userID != nil {
		var count int64
		s.db.Model(&models.Like{}).
			Where("user_id = ? AND content_type = ? AND object_id = ?", *userID, contentType, objectID).
			Count(&count)
		stats.UserLiked = count > 0

		count = 0
		s.db.Model(&models.Dislike{}).
			Where("user_id = ? AND content_type = ? AND object_id = ?", *userID, contentType, objectID).
			Count(&count)
		stats.UserDisliked = count > 0

		count = 0
		s.db.Model(&models.Bookmark{}).
			Where("user_id = ? AND content_type = ? AND object_id = ?", *userID, contentType, objectID).
			Count(&count)
		stats.UserBookmarked = count > 0

		var review models.Review
		err := s.db.Where("user_id = ? AND content_type = ? AND object_id = ?",
			*userID, contentType, objectID).First(&review).Error
		if err == nil {
			resp := review.ToResponse()
			stats.UserReview = &resp
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to get user review: %w", err)
		}
	}

	return stats, nil
}
