package models

import "time"

// UserInterest 用户对分类/标签的兴趣画像
// score 是派生值，只能由评分函数写入，客户端不可直接设置
type UserInterest struct {
	ID         uint  `json:"id" gorm:"primaryKey"`
	UserID     uint  `json:"user_id" gorm:"not null;index:idx_interest_user_category,unique;index:idx_interest_user_tag,unique;index"`
	CategoryID *uint `json:"category_id" gorm:"index:idx_interest_user_category,unique"`
	TagID      *uint `json:"tag_id" gorm:"index:idx_interest_user_tag,unique"`

	Score float64 `json:"score" gorm:"default:0;index"`

	// 累积的互动计数
	ViewCount  int64 `json:"view_count" gorm:"default:0"`
	LikeCount  int64 `json:"like_count" gorm:"default:0"`
	ShareCount int64 `json:"share_count" gorm:"default:0"`
	TimeSpent  int64 `json:"time_spent" gorm:"default:0"` // 累计停留秒数

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID"`
	Tag      *Tag      `json:"tag,omitempty" gorm:"foreignKey:TagID;references:ID"`
}

func (UserInterest) TableName() string {
	return "user_interests"
}

// NotificationFrequency 订阅通知频率
type NotificationFrequency string

const (
	FrequencyInstant NotificationFrequency = "instant"
	FrequencyDaily   NotificationFrequency = "daily"
	FrequencyWeekly  NotificationFrequency = "weekly"
)

// UserSubscription 用户对分类/标签/子标签的订阅
// category/tag/subtag 三者只能有一个非空
type UserSubscription struct {
	ID         uint  `json:"id" gorm:"primaryKey"`
	UserID     uint  `json:"user_id" gorm:"not null;index:idx_sub_user_category,unique;index:idx_sub_user_tag,unique;index:idx_sub_user_subtag,unique;index"`
	CategoryID *uint `json:"category_id" gorm:"index:idx_sub_user_category,unique"`
	TagID      *uint `json:"tag_id" gorm:"index:idx_sub_user_tag,unique"`
	SubTagID   *uint `json:"subtag_id" gorm:"index:idx_sub_user_subtag,unique"`

	// 通知偏好。开关不带数据库default，否则gorm插入时会丢掉显式的false，
	// 默认值由订阅服务在创建记录前填好
	PushNotifications     bool                  `json:"push_notifications"`
	EmailNotifications    bool                  `json:"email_notifications"`
	NotificationFrequency NotificationFrequency `json:"notification_frequency" gorm:"type:varchar(20);default:'instant'"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID"`
	Tag      *Tag      `json:"tag,omitempty" gorm:"foreignKey:TagID;references:ID"`
	SubTag   *SubTag   `json:"subtag,omitempty" gorm:"foreignKey:SubTagID;references:ID"`
	User     *User     `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
}

func (UserSubscription) TableName() string {
	return "user_subscriptions"
}

// PushSubscription Web Push 订阅端点，endpoint 是自然主键
// 推送服务报告端点失效(404/410)时标记 is_active=false，不做物理删除
type PushSubscription struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	UserID     uint   `json:"user_id" gorm:"not null;index:idx_push_user_active"`
	Endpoint   string `json:"endpoint" gorm:"uniqueIndex;not null;type:varchar(500)"`
	P256dh     string `json:"p256dh" gorm:"not null;type:varchar(255)"` // 客户端公钥
	Auth       string `json:"auth" gorm:"not null;type:varchar(255)"`   // 认证密钥
	DeviceName string `json:"device_name" gorm:"type:varchar(100)"`
	UserAgent  string `json:"user_agent" gorm:"type:text"`
	IsActive   bool   `json:"is_active" gorm:"default:true;index:idx_push_user_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	LastUsed  time.Time `json:"last_used"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
}

func (PushSubscription) TableName() string {
	return "push_subscriptions"
}

// SubscribeRequest 订阅分类/标签时的通知偏好
type SubscribeRequest struct {
	PushNotifications     *bool  `json:"push_notifications"`
	EmailNotifications    *bool  `json:"email_notifications"`
	NotificationFrequency string `json:"notification_frequency" binding:"omitempty,oneof=instant daily weekly"`
}

// PushSubscribeRequest 注册推送端点的请求体
type PushSubscribeRequest struct {
	Endpoint   string `json:"endpoint" binding:"required,url,max=500"`
	P256dh     string `json:"p256dh" binding:"required"`
	Auth       string `json:"auth" binding:"required"`
	DeviceName string `json:"device_name" binding:"omitempty,max=100"`
}

// PushUnsubscribeRequest 注销推送端点的请求体
type PushUnsubscribeRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}

// TrackInteractionRequest 上报一次互动用于兴趣画像
type TrackInteractionRequest struct {
	Type       string `json:"type" binding:"required,oneof=view like share"`
	CategoryID *uint  `json:"category_id"`
	TagID      *uint  `json:"tag_id"`
	TimeSpent  int64  `json:"time_spent" binding:"omitempty,min=0"`
}

// SubscriptionStatsResponse 当前用户的订阅统计
type SubscriptionStatsResponse struct {
	TotalSubscriptions    int64 `json:"total_subscriptions"`
	CategorySubscriptions int64 `json:"category_subscriptions"`
	TagSubscriptions      int64 `json:"tag_subscriptions"`
	SubTagSubscriptions   int64 `json:"subtag_subscriptions"`
	PushEnabledCount      int64 `json:"push_enabled_count"`
	EmailEnabledCount     int64 `json:"email_enabled_count"`
}
