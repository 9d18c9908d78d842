package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/GhNoticeBoard/noticeboard-backend/internal/config"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/database"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	webpush "github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"
)

// PushPayload 推送消息体，序列化为JSON后加密投递
type PushPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url,omitempty"`
	Icon  string `json:"icon,omitempty"`
	Tag   string `json:"tag,omitempty"`
}

// PushResult 一批投递的汇总结果，投递失败不作为错误抛出
type PushResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// WebPushClient 对推送传输层的抽象，测试时用桩实现替代真实的VAPID加密发送
type WebPushClient interface {
	// Send 向单个端点投递消息，返回推送服务的HTTP状态码
	Send(sub *models.PushSubscription, payload []byte) (int, error)
}

// vapidClient 基于 webpush-go 的生产实现
type vapidClient struct {
	cfg config.PushConfig
}

func (c *vapidClient) Send(sub *models.PushSubscription, payload []byte) (int, error) {
	timeout := time.Duration(c.cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	resp, err := webpush.SendNotification(payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		Subscriber:      c.cfg.SubscriberEmail,
		VAPIDPublicKey:  c.cfg.VAPIDPublicKey,
		VAPIDPrivateKey: c.cfg.VAPIDPrivateKey,
		TTL:             c.cfg.TTL,
		HTTPClient:      &http.Client{Timeout: timeout},
	})
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

// PushService Web Push 推送服务
type PushService struct {
	db     *gorm.DB
	client WebPushClient
}

// NewPushService 创建推送服务实例，使用配置中的VAPID密钥
func NewPushService() *PushService {
	cfg := config.PushConfig{}
	if config.AppConfig != nil {
		cfg = config.AppConfig.Push
	}
	return &PushService{
		db:     database.GetDB(),
		client: &vapidClient{cfg: cfg},
	}
}

// NewPushServiceWithClient 注入自定义传输层，测试用
func NewPushServiceWithClient(client WebPushClient) *PushService {
	return &PushService{
		db:     database.GetDB(),
		client: client,
	}
}

// Subscribe 注册或刷新推送端点
// endpoint 是自然主键：已存在时更新密钥并重新激活，换用户时转移归属
func (s *PushService) Subscribe(userID uint, req *models.PushSubscribeRequest, userAgent string) (*models.PushSubscription, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	var sub models.PushSubscription
	err := s.db.Where("endpoint = ?", req.Endpoint).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		sub = models.PushSubscription{
			UserID:     userID,
			Endpoint:   req.Endpoint,
			P256dh:     req.P256dh,
			Auth:       req.Auth,
			DeviceName: req.DeviceName,
			UserAgent:  userAgent,
			IsActive:   true,
			LastUsed:   time.Now(),
		}
		if err := s.db.Create(&sub).Error; err != nil {
			return nil, fmt.Errorf("failed to create push subscription: %w", err)
		}
		return &sub, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to check push subscription: %w", err)
	}

	updates := map[string]interface{}{
		"user_id":     userID,
		"p256dh":      req.P256dh,
		"auth":        req.Auth,
		"device_name": req.DeviceName,
		"user_agent":  userAgent,
		"is_active":   true,
		"last_used":   time.Now(),
	}
	if err := s.db.Model(&sub).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to refresh push subscription: %w", err)
	}

	sub.UserID = userID
	sub.P256dh = req.P256dh
	sub.Auth = req.Auth
	sub.IsActive = true
	return &sub, nil
}

// Unsubscribe 注销推送端点，软停用而不删除
func (s *PushService) Unsubscribe(userID uint, endpoint string) error {
	if s.db == nil {
		return errors.New("database connection not initialized")
	}

	result := s.db.Model(&models.PushSubscription{}).
		Where("user_id = ? AND endpoint = ?", userID, endpoint).
		UpdateColumn("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to unsubscribe: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: push subscription", ErrNotFound)
	}
	return nil
}

// GetUserSubscriptions 列出用户的活跃推送端点
func (s *PushService) GetUserSubscriptions(userID uint) ([]models.PushSubscription, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	var subs []models.PushSubscription
	if err := s.db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("last_used desc").
		Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to get push subscriptions: %w", err)
	}
	return subs, nil
}

// NotifyUser 向用户的所有活跃端点投递消息
// 每个端点独立投递，单个失败不影响其余端点；
// 404/410 表示端点已被推送服务回收，软停用该端点
func (s *PushService) NotifyUser(userID uint, payload *PushPayload) (*PushResult, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	var subs []models.PushSubscription
	if err := s.db.Where("user_id = ? AND is_active = ?", userID, true).Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to load push subscriptions: %w", err)
	}

	return s.deliver(subs, payload), nil
}

// NotifyUsers 向一批用户投递消息，受众去重后逐端点投递
func (s *PushService) NotifyUsers(userIDs []uint, payload *PushPayload) (*PushResult, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}
	if len(userIDs) == 0 {
		return &PushResult{}, nil
	}

	var subs []models.PushSubscription
	if err := s.db.Where("user_id IN ? AND is_active = ?", userIDs, true).Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to load push subscriptions: %w", err)
	}

	return s.deliver(subs, payload), nil
}

// deliver 逐端点投递并汇总结果，传输层错误只记日志不上抛
func (s *PushService) deliver(subs []models.PushSubscription, payload *PushPayload) *PushResult {
	result := &PushResult{}
	if len(subs) == 0 {
		return result
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("failed to marshal push payload: %v", err)
		result.Failed = len(subs)
		return result
	}

	now := time.Now()
	for i := range subs {
		sub := &subs[i]
		status, err := s.client.Send(sub, data)
		if err != nil {
			log.Printf("push delivery to endpoint %d failed: %v", sub.ID, err)
			result.Failed++
			continue
		}

		switch {
		case status == http.StatusNotFound || status == http.StatusGone:
			// 端点已失效，停用后不再向它投递
			if err := s.db.Model(sub).UpdateColumn("is_active", false).Error; err != nil {
				log.Printf("failed to deactivate push subscription %d: %v", sub.ID, err)
			}
			result.Failed++
		case status >= 200 && status < 300:
			if err := s.db.Model(sub).UpdateColumn("last_used", now).Error; err != nil {
				log.Printf("failed to update last_used for subscription %d: %v", sub.ID, err)
			}
			result.Sent++
		default:
			// 临时故障（429/5xx等），保留端点下次再试
			log.Printf("push delivery to endpoint %d returned status %d", sub.ID, status)
			result.Failed++
		}
	}

	return result
}
