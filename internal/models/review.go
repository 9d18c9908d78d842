package models

import (
	"time"

	"gorm.io/gorm"
)

// Review 通用评分记录，每个用户对同一内容只能有一条
type Review struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	UserID      uint        `json:"user_id" gorm:"not null;index:idx_review_user_target,unique"`
	ContentType ContentType `json:"content_type" gorm:"not null;type:varchar(50);index:idx_review_user_target,unique;index:idx_review_target"`
	ObjectID    string      `json:"object_id" gorm:"not null;type:varchar(255);index:idx_review_user_target,unique;index:idx_review_target"`

	Rating  int    `json:"rating" gorm:"not null;index"` // 1-5星
	Title   string `json:"title" gorm:"type:varchar(200)"`
	Comment string `json:"comment" gorm:"type:text;not null"`

	IsApproved bool `json:"is_approved" gorm:"default:true"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
}

func (Review) TableName() string {
	return "reviews"
}

// ReviewResponse 返回给前端的评分结构
type ReviewResponse struct {
	ID          uint        `json:"id"`
	UserID      uint        `json:"user_id"`
	Username    string      `json:"username,omitempty"`
	ContentType ContentType `json:"content_type"`
	ObjectID    string      `json:"object_id"`
	Rating      int         `json:"rating"`
	Title       string      `json:"title"`
	Comment     string      `json:"comment"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (r *Review) ToResponse() ReviewResponse {
	response := ReviewResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		ContentType: r.ContentType,
		ObjectID:    r.ObjectID,
		Rating:      r.Rating,
		Title:       r.Title,
		Comment:     r.Comment,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}

	if r.User != nil {
		response.Username = r.User.Username
	}

	return response
}

// ReviewCreateRequest 提交评分的请求体
type ReviewCreateRequest struct {
	ContentType string `json:"content_type" binding:"required"`
	ObjectID    string `json:"object_id" binding:"required"`
	Rating      int    `json:"rating" binding:"required,min=1,max=5"`
	Title       string `json:"title" binding:"omitempty,max=200"`
	Comment     string `json:"comment" binding:"required"`
}

// ReviewUpdateRequest 修改评分的请求体
type ReviewUpdateRequest struct {
	Rating  int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Title   string `json:"title" binding:"omitempty,max=200"`
	Comment string `json:"comment"`
}

// ReviewStatsResponse 某内容的评分汇总
type ReviewStatsResponse struct {
	Count   int64   `json:"count"`
	Average float64 `json:"average"` // 保留两位小数，无评分时为0
}
