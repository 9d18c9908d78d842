package services

import (
	"errors"
	"fmt"

	"github.com/GhNoticeBoard/noticeboard-backend/internal/config"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/database"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	"gorm.io/gorm"
)

// InterestService 用户兴趣画像服务
type InterestService struct {
	db  *gorm.DB
	cfg config.RecommendConfig
}

// NewInterestService 创建兴趣画像服务实例
func NewInterestService() *InterestService {
	cfg := config.DefaultRecommendConfig()
	if config.AppConfig != nil {
		cfg = config.AppConfig.Recommend
	}
	return &InterestService{
		db:  database.GetDB(),
		cfg: cfg,
	}
}

// ComputeScore 按权重计算兴趣分
// score = view*view_weight + like*like_weight + share*share_weight + (time_spent/60)*time_weight
func (s *InterestService) ComputeScore(interest *models.UserInterest) float64 {
	return float64(interest.ViewCount)*s.cfg.ViewWeight +
		float64(interest.LikeCount)*s.cfg.LikeWeight +
		float64(interest.ShareCount)*s.cfg.ShareWeight +
		float64(interest.TimeSpent)/60.0*s.cfg.TimeWeight
}

// TrackInteraction 上报一次互动，累加对应分类/标签的兴趣画像
// 分类和标签同时给出时各自独立累加一行；score 每次都整体重算而不是增量累加
func (s *InterestService) TrackInteraction(userID uint, req *models.TrackInteractionRequest) error {
	if s.db == nil {
		return errors.New("database connection not initialized")
	}

	if req.CategoryID == nil && req.TagID == nil {
		return fmt.Errorf("%w: either category_id or tag_id is required", ErrValidation)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if req.CategoryID != nil {
			if err := s.trackOne(tx, userID, req.CategoryID, nil, req); err != nil {
				return err
			}
		}
		if req.TagID != nil {
			if err := s.trackOne(tx, userID, nil, req.TagID, req); err != nil {
				return err
			}
		}
		return nil
	})
}

// trackOne 累加单行兴趣画像，行不存在时创建
func (s *InterestService) trackOne(tx *gorm.DB, userID uint, categoryID, tagID *uint, req *models.TrackInteractionRequest) error {
	query := tx.Where("user_id = ?", userID)
	if categoryID != nil {
		var count int64
		if err := tx.Model(&models.Category{}).Where("id = ?", *categoryID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check category: %w", err)
		}
		if count == 0 {
			return fmt.Errorf("%w: category %d", ErrNotFound, *categoryID)
		}
		query = query.Where("category_id = ?", *categoryID)
	} else {
		var count int64
		if err := tx.Model(&models.Tag{}).Where("id = ?", *tagID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check tag: %w", err)
		}
		if count == 0 {
			return fmt.Errorf("%w: tag %d", ErrNotFound, *tagID)
		}
		query = query.Where("tag_id = ?", *tagID)
	}

	var interest models.UserInterest
	err := query.First(&interest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		interest = models.UserInterest{
			UserID:     userID,
			CategoryID: categoryID,
			TagID:      tagID,
		}
	} else if err != nil {
		return fmt.Errorf("failed to get user interest: %w", err)
	}

	switch req.Type {
	case "view":
		interest.ViewCount++
	case "like":
		interest.LikeCount++
	case "share":
		interest.ShareCount++
	default:
		return fmt.Errorf("%w: unknown interaction type %q", ErrValidation, req.Type)
	}
	interest.TimeSpent += req.TimeSpent

	interest.Score = s.ComputeScore(&interest)

	if err := tx.Save(&interest).Error; err != nil {
		return fmt.Errorf("failed to save user interest: %w", err)
	}
	return nil
}

// GetUserInterests 获取用户兴趣画像，按分值倒序
func (s *InterestService) GetUserInterests(userID uint, limit int) ([]models.UserInterest, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	if limit <= 0 {
		limit = 20
	}

	var interests []models.UserInterest
	if err := s.db.Where("user_id = ?", userID).
		Preload("Category").Preload("Tag").
		Order("score desc").
		Limit(limit).
		Find(&interests).Error; err != nil {
		return nil, fmt.Errorf("failed to get user interests: %w", err)
	}

	return interests, nil
}

// TopCategoryIDs 返回用户兴趣分最高的分类ID列表，供个性化推荐使用
func (s *InterestService) TopCategoryIDs(userID uint, limit int) ([]uint, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	if limit <= 0 {
		limit = 5
	}

	var ids []uint
	if err := s.db.Model(&models.UserInterest{}).
		Where("user_id = ? AND category_id IS NOT NULL", userID).
		Order("score desc").
		Limit(limit).
		Pluck("category_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to get top categories: %w", err)
	}

	return ids, nil
}
