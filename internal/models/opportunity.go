package models

import (
	"time"

	"gorm.io/gorm"
)

// Opportunity 对应数据库中的 'opportunities' 表（招聘/奖学金等机会信息）
type Opportunity struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Title        string     `json:"title" gorm:"not null;type:varchar(500)"`
	Description  string     `json:"description" gorm:"type:text"`
	Organization string     `json:"organization" gorm:"type:varchar(255)"`
	Deadline     *time.Time `json:"deadline" gorm:"index"`
	CategoryID   *uint      `json:"category_id" gorm:"index"`
	CreatedBy    *uint      `json:"created_by" gorm:"index"`

	Status      ArticleStatus `json:"status" gorm:"type:varchar(20);default:'draft';index"`
	PublishedAt *time.Time    `json:"published_at" gorm:"index"`

	// 统计字段
	ViewCount     int64 `json:"view_count" gorm:"default:0"`
	LikeCount     int64 `json:"like_count" gorm:"default:0"`
	DislikeCount  int64 `json:"dislike_count" gorm:"default:0"`
	CommentCount  int64 `json:"comment_count" gorm:"default:0"`
	BookmarkCount int64 `json:"bookmark_count" gorm:"default:0"`
	ShareCount    int64 `json:"share_count" gorm:"default:0"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Opportunity) TableName() string {
	return "opportunities"
}
