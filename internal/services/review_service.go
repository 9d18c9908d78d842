package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/GhNoticeBoard/noticeboard-backend/internal/database"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	"gorm.io/gorm"
)

// ReviewService 评分服务
type ReviewService struct {
	db *gorm.DB
}

// NewReviewService 创建评分服务实例
func NewReviewService() *ReviewService {
	return &ReviewService{
		db: database.GetDB(),
	}
}

// CreateReview 提交评分，每个用户对同一内容只能评一次
// 重复提交返回 ErrConflict，客户端应改走更新接口
func (s *ReviewService) CreateReview(userID uint, req *models.ReviewCreateRequest) (*models.Review, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	contentType, err := ResolveContentType(req.ContentType)
	if err != nil {
		return nil, err
	}

	exists, err := ContentExists(s.db, contentType, req.ObjectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s %s", ErrNotFound, contentType, req.ObjectID)
	}

	var count int64
	if err := s.db.Model(&models.Review{}).
		Where("user_id = ? AND content_type = ? AND object_id = ?", userID, contentType, req.ObjectID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: user %d already reviewed %s %s", ErrConflict, userID, contentType, req.ObjectID)
	}

	review := &models.Review{
		UserID:      userID,
		ContentType: contentType,
		ObjectID:    req.ObjectID,
		Rating:      req.Rating,
		Title:       req.Title,
		Comment:     req.Comment,
		IsApproved:  true,
	}

	if err := s.db.Create(review).Error; err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	return review, nil
}

// GetReviews 获取某内容下审核通过的评分列表，按时间倒序分页
func (s *ReviewService) GetReviews(rawType, objectID string, page, pageSize int) ([]models.ReviewResponse, int64, error) {
	if s.db == nil {
		return nil, 0, errors.New("database connection not initialized")
	}

	contentType, err := ResolveContentType(rawType)
	if err != nil {
		return nil, 0, err
	}

	query := s.db.Model(&models.Review{}).
		Where("content_type = ? AND object_id = ? AND is_approved = ?", contentType, objectID, true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	var reviews []models.Review
	if err := query.Preload("User").
		Order("created_at desc").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&reviews).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get reviews: %w", err)
	}

	responses := make([]models.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, reviews[i].ToResponse())
	}

	return responses, total, nil
}

// GetReviewStats 计算某内容的评分汇总
// 只统计审核通过的评分，平均分保留两位小数，无评分时为0
func (s *ReviewService) GetReviewStats(rawType, objectID string) (*models.ReviewStatsResponse, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	contentType, err := ResolveContentType(rawType)
	if err != nil {
		return nil, err
	}

	stats := &models.ReviewStatsResponse{}

	var avg *float64
	row := s.db.Model(&models.Review{}).
		Where("content_type = ? AND object_id = ? AND is_approved = ?", contentType, objectID, true).
		Select("COUNT(*), AVG(rating)").Row()
	if err := row.Scan(&stats.Count, &avg); err != nil {
		return nil, fmt.Errorf("failed to aggregate reviews: %w", err)
	}
	if avg != nil {
		stats.Average = math.Round(*avg*100) / 100
	}

	return stats, nil
}

// UpdateReview 修改自己的评分
func (s *ReviewService) UpdateReview(userID uint, reviewID uint, req *models.ReviewUpdateRequest) (*models.Review, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	var review models.Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: review %d", ErrNotFound, reviewID)
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	if review.UserID != userID {
		return nil, fmt.Errorf("%w: cannot edit another user's review", ErrPermission)
	}

	updates := map[string]interface{}{}
	if req.Rating != 0 {
		updates["rating"] = req.Rating
		review.Rating = req.Rating
	}
	if req.Title != "" {
		updates["title"] = req.Title
		review.Title = req.Title
	}
	if req.Comment != "" {
		updates["comment"] = req.Comment
		review.Comment = req.Comment
	}
	if len(updates) == 0 {
		return &review, nil
	}

	if err := s.db.Model(&review).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	return &review, nil
}

// DeleteReview 删除自己的评分（管理员可删任意评分）
func (s *ReviewService) DeleteReview(userID uint, reviewID uint, isAdmin bool) error {
	if s.db == nil {
		return errors.New("database connection not initialized")
	}

	var review models.Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: review %d", ErrNotFound, reviewID)
		}
		return fmt.Errorf("failed to get review: %w", err)
	}

	if review.UserID != userID && !isAdmin {
		return fmt.Errorf("%w: cannot delete another user's review", ErrPermission)
	}

	if err := s.db.Delete(&review).Error; err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}

// ApproveReview 管理端审核评分
func (s *ReviewService) ApproveReview(reviewID uint, approved bool) error {
	if s.db == nil {
		return errors.New("database connection not initialized")
	}

	result := s.db.Model(&models.Review{}).Where("id = ?", reviewID).
		UpdateColumn("is_approved", approved)
	if result.Error != nil {
		return fmt.Errorf("failed to update review approval: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: review %d", ErrNotFound, reviewID)
	}
	return nil
}
