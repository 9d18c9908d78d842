package services

import (
	"errors"
	"fmt"

	"github.com/GhNoticeBoard/noticeboard-backend/internal/database"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	"gorm.io/gorm"
)

// SubscriptionService 分类/标签订阅服务
type SubscriptionService struct {
	db *gorm.DB
}

// NewSubscriptionService 创建订阅服务实例
func NewSubscriptionService() *SubscriptionService {
	return &SubscriptionService{
		db: database.GetDB(),
	}
}

// applyPreferences 把请求中的通知偏好写入订阅记录，未提供的字段保持默认
func applyPreferences(sub *models.UserSubscription, req *models.SubscribeRequest) {
	if req == nil {
		return
	}
	if req.PushNotifications != nil {
		sub.PushNotifications = *req.PushNotifications
	}
	if req.EmailNotifications != nil {
		sub.EmailNotifications = *req.EmailNotifications
	}
	if req.NotificationFrequency != "" {
		sub.NotificationFrequency = models.NotificationFrequency(req.NotificationFrequency)
	}
}

// SubscribeCategory 订阅分类，重复订阅幂等返回已有记录
func (s *SubscriptionService) SubscribeCategory(userID, categoryID uint, req *models.SubscribeRequest) (*models.UserSubscription, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	var count int64
	if err := s.db.Model(&models.Category{}).Where("id = ?", categoryID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check category: %w", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: category %d", ErrNotFound, categoryID)
	}

	// 重复订阅按幂等处理，直接返回已有记录
	var existing models.UserSubscription
	err := s.db.Where("user_id = ? AND category_id = ?", userID, categoryID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check subscription: %w", err)
	}

	sub := &models.UserSubscription{
		UserID:                userID,
		CategoryID:            &categoryID,
		PushNotifications:     true,
		EmailNotifications:    true,
		NotificationFrequency: models.FrequencyInstant,
	}
	applyPreferences(sub, req)

	if err := s.db.Create(sub).Error; err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}
	return sub, nil
}

// UnsubscribeCategory 取消分类订阅
func (s *SubscriptionService) UnsubscribeCategory(userID, categoryID uint) error {
	if s.db == nil {
		return errors.New("database connection not initialized")
	}

	result := s.db.Where("user_id = ? AND category_id = ?", userID, categoryID).
		Delete(&models.UserSubscription{})
	if result.Error != nil {
		return fmt.Errorf("failed to unsubscribe: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: subscription to category %d", ErrNotFound, categoryID)
	}
	return nil
}

// SubscribeTag 订阅标签，重复订阅幂等返回已有记录
func (s *SubscriptionService) SubscribeTag(userID, tagID uint, req *models.SubscribeRequest) (*models.UserSubscription, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	var count int64
	if err := s.db.Model(&models.Tag{}).Where("id = ?", tagID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check tag: %w", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: tag %d", ErrNotFound, tagID)
	}

	var existing models.UserSubscription
	err := s.db.Where("user_id = ? AND tag_id = ?", userID, tagID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check subscription: %w", err)
	}

	sub := &models.UserSubscription{
		UserID:                userID,
		TagID:                 &tagID,
		PushNotifications:     true,
		EmailNotifications:    true,
		NotificationFrequency: models.FrequencyInstant,
	}
	applyPreferences(sub, req)

	if err := s.db.Create(sub).Error; err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}
	return sub, nil
}

// UnsubscribeTag 取消标签订阅
func (s *SubscriptionService) UnsubscribeTag(userID, tagID uint) error {
	if s.db == nil {
		return errors.New("database connection not initialized")
	}

	result := s.db.Where("user_id = ? AND tag_id = ?", userID, tagID).
		Delete(&models.UserSubscription{})
	if result.Error != nil {
		return fmt.Errorf("failed to unsubscribe: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: subscription to tag %d", ErrNotFound, tagID)
	}
	return nil
}

// SubscribeSubTag 订阅子标签，重复订阅幂等返回已有记录
func (s *SubscriptionService) SubscribeSubTag(userID, subTagID uint, req *models.SubscribeRequest) (*models.UserSubscription, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	var count int64
	if err := s.db.Model(&models.SubTag{}).Where("id = ?", subTagID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check subtag: %w", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: subtag %d", ErrNotFound, subTagID)
	}

	var existing models.UserSubscription
	err := s.db.Where("user_id = ? AND sub_tag_id = ?", userID, subTagID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check subscription: %w", err)
	}

	sub := &models.UserSubscription{
		UserID:                userID,
		SubTagID:              &subTagID,
		PushNotifications:     true,
		EmailNotifications:    true,
		NotificationFrequency: models.FrequencyInstant,
	}
	applyPreferences(sub, req)

	if err := s.db.Create(sub).Error; err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}
	return sub, nil
}

// UnsubscribeSubTag 取消子标签订阅
func (s *SubscriptionService) UnsubscribeSubTag(userID, subTagID uint) error {
	if s.db == nil {
		return errors.New("database connection not initialized")
	}

	result := s.db.Where("user_id = ? AND sub_tag_id = ?", userID, subTagID).
		Delete(&models.UserSubscription{})
	if result.Error != nil {
		return fmt.Errorf("failed to unsubscribe: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: subscription to subtag %d", ErrNotFound, subTagID)
	}
	return nil
}

// GetUserSubscriptions 获取用户的全部订阅
func (s *SubscriptionService) GetUserSubscriptions(userID uint) ([]models.UserSubscription, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	var subs []models.UserSubscription
	if err := s.db.Where("user_id = ?", userID).
		Preload("Category").Preload("Tag").Preload("SubTag").
		Order("created_at desc").
		Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to get subscriptions: %w", err)
	}
	return subs, nil
}

// GetSubscriptionStats 统计当前用户的订阅构成
func (s *SubscriptionService) GetSubscriptionStats(userID uint) (*models.SubscriptionStatsResponse, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	stats := &models.SubscriptionStatsResponse{}
	base := func() *gorm.DB {
		return s.db.Model(&models.UserSubscription{}).Where("user_id = ?", userID)
	}

	if err := base().Count(&stats.TotalSubscriptions).Error; err != nil {
		return nil, fmt.Errorf("failed to count subscriptions: %w", err)
	}
	if err := base().Where("category_id IS NOT NULL").Count(&stats.CategorySubscriptions).Error; err != nil {
		return nil, fmt.Errorf("failed to count category subscriptions: %w", err)
	}
	if err := base().Where("tag_id IS NOT NULL").Count(&stats.TagSubscriptions).Error; err != nil {
		return nil, fmt.Errorf("failed to count tag subscriptions: %w", err)
	}
	if err := base().Where("sub_tag_id IS NOT NULL").Count(&stats.SubTagSubscriptions).Error; err != nil {
		return nil, fmt.Errorf("failed to count subtag subscriptions: %w", err)
	}
	if err := base().Where("push_notifications = ?", true).Count(&stats.PushEnabledCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count push-enabled subscriptions: %w", err)
	}
	if err := base().Where("email_notifications = ?", true).Count(&stats.EmailEnabledCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count email-enabled subscriptions: %w", err)
	}

	return stats, nil
}

// AudienceForCategory 解析订阅了某分类且开启推送的用户ID列表（去重）
// 内容发布后的推送扇出用这个受众
func (s *SubscriptionService) AudienceForCategory(categoryID uint) ([]uint, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	var ids []uint
	if err := s.db.Model(&models.UserSubscription{}).
		Where("category_id = ? AND push_notifications = ?", categoryID, true).
		Distinct("user_id").
		Pluck("user_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve category audience: %w", err)
	}
	return ids, nil
}

// AudienceForTag 解析订阅了某标签且开启推送的用户ID列表（去重）
func (s *SubscriptionService) AudienceForTag(tagID uint) ([]uint, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	var ids []uint
	if err := s.db.Model(&models.UserSubscription{}).
		Where("tag_id = ? AND push_notifications = ?", tagID, true).
		Distinct("user_id").
		Pluck("user_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve tag audience: %w", err)
	}
	return ids, nil
}
