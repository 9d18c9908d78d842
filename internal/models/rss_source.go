package models

import (
	"time"

	"gorm.io/gorm"
)

// RSSSource 抓取文章的RSS源
type RSSSource struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null;type:varchar(100)"`
	URL         string `json:"url" gorm:"uniqueIndex;not null;type:varchar(500)"`
	Description string `json:"description" gorm:"type:text"`
	CategoryID  *uint  `json:"category_id" gorm:"index"` // 抓取的文章归入此分类
	IsActive    bool   `json:"is_active" gorm:"default:true;index"`

	// 抓取状态
	LastFetched *time.Time `json:"last_fetched"`
	FetchCount  int64      `json:"fetch_count" gorm:"default:0"`
	ErrorCount  int64      `json:"error_count" gorm:"default:0"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID"`
}

func (RSSSource) TableName() string {
	return "rss_sources"
}

// RSSSourceCreateRequest 创建RSS源的请求体
type RSSSourceCreateRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	URL         string `json:"url" binding:"required,url,max=500"`
	Description string `json:"description"`
	CategoryID  *uint  `json:"category_id"`
}

// RSSFetchResult 一次抓取的结果汇总
type RSSFetchResult struct {
	SourceID uint   `json:"source_id"`
	Source   string `json:"source"`
	Total    int    `json:"total"`   // 源里的条目数
	Created  int    `json:"created"` // 新入库的文章数
	Skipped  int    `json:"skipped"` // 按GUID/链接去重跳过的条目数
	Error    string `json:"error,omitempty"`
}
