package models

import (
	"time"

	"gorm.io/gorm"
)

// ArticleStatus 文章状态枚举
type ArticleStatus string

const (
	ArticleStatusDraft     ArticleStatus = "draft"
	ArticleStatusPublished ArticleStatus = "published"
	ArticleStatusArchived  ArticleStatus = "archived"
)

// ArticleSource 文章来源类型
type ArticleSource string

const (
	ArticleSourceManual ArticleSource = "manual" // 手动创建的文章
	ArticleSourceRSS    ArticleSource = "rss"    // RSS抓取的文章
)

// Article 对应数据库中的 'articles' 表，门户的新闻内容实体
type Article struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	Title      string `json:"title" gorm:"not null;type:varchar(500)"`
	Slug       string `json:"slug" gorm:"type:varchar(520);uniqueIndex"`
	Excerpt    string `json:"excerpt" gorm:"type:text"`
	Content    string `json:"content" gorm:"type:text"`
	ImageURL   string `json:"image_url" gorm:"type:varchar(1000)"`
	CategoryID *uint  `json:"category_id" gorm:"index"`
	CreatedBy  *uint  `json:"created_by" gorm:"index"` // 创建者，RSS文章可为空

	// 发布状态
	Status      ArticleStatus `json:"status" gorm:"type:varchar(20);default:'draft';index"`
	PublishedAt *time.Time    `json:"published_at" gorm:"index"`

	// RSS相关字段
	SourceType ArticleSource `json:"source_type" gorm:"type:varchar(20);default:'manual';index"`
	Source     string        `json:"source" gorm:"type:varchar(100)"`
	Link       string        `json:"link" gorm:"type:varchar(1000);index"`
	GUID       string        `json:"guid" gorm:"type:varchar(500);index"`
	Author     string        `json:"author" gorm:"type:varchar(100)"`

	// 统计字段，由互动服务通过原子更新维护
	ViewCount     int64 `json:"view_count" gorm:"default:0"`
	LikeCount     int64 `json:"like_count" gorm:"default:0"`
	DislikeCount  int64 `json:"dislike_count" gorm:"default:0"`
	CommentCount  int64 `json:"comment_count" gorm:"default:0"`
	BookmarkCount int64 `json:"bookmark_count" gorm:"default:0"`
	ShareCount    int64 `json:"share_count" gorm:"default:0"`

	// GORM 自动维护的时间戳
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// GORM 关系定义
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID"`
	Creator  *User     `json:"creator,omitempty" gorm:"foreignKey:CreatedBy;references:ID"`
}

func (Article) TableName() string {
	return "articles"
}

// ArticleResponse 用于向前端返回文章信息
type ArticleResponse struct {
	ID            uint          `json:"id"`
	Title         string        `json:"title"`
	Slug          string        `json:"slug"`
	Excerpt       string        `json:"excerpt"`
	Content       string        `json:"content,omitempty"`
	ImageURL      string        `json:"image_url"`
	CategoryID    *uint         `json:"category_id,omitempty"`
	CategoryName  string        `json:"category_name,omitempty"`
	Status        ArticleStatus `json:"status"`
	PublishedAt   *time.Time    `json:"published_at"`
	Source        string        `json:"source"`
	Link          string        `json:"link,omitempty"`
	Author        string        `json:"author,omitempty"`
	ViewCount     int64         `json:"view_count"`
	LikeCount     int64         `json:"like_count"`
	DislikeCount  int64         `json:"dislike_count"`
	CommentCount  int64         `json:"comment_count"`
	BookmarkCount int64         `json:"bookmark_count"`
	ShareCount    int64         `json:"share_count"`
	CreatedAt     time.Time     `json:"created_at"`
}

func (a *Article) ToResponse() ArticleResponse {
	response := ArticleResponse{
		ID:            a.ID,
		Title:         a.Title,
		Slug:          a.Slug,
		Excerpt:       a.Excerpt,
		Content:       a.Content,
		ImageURL:      a.ImageURL,
		CategoryID:    a.CategoryID,
		Status:        a.Status,
		PublishedAt:   a.PublishedAt,
		Source:        a.Source,
		Link:          a.Link,
		Author:        a.Author,
		ViewCount:     a.ViewCount,
		LikeCount:     a.LikeCount,
		DislikeCount:  a.DislikeCount,
		CommentCount:  a.CommentCount,
		BookmarkCount: a.BookmarkCount,
		ShareCount:    a.ShareCount,
		CreatedAt:     a.CreatedAt,
	}

	if a.Category != nil {
		response.CategoryName = a.Category.Name
	}

	return response
}

// ArticleCreateRequest 创建文章的请求体
type ArticleCreateRequest struct {
	Title      string `json:"title" binding:"required,min=5,max=255"`
	Excerpt    string `json:"excerpt"`
	Content    string `json:"content" binding:"required"`
	ImageURL   string `json:"image_url"`
	CategoryID *uint  `json:"category_id"`
	Publish    bool   `json:"publish"` // true时直接发布
}

// ArticleUpdateRequest 更新文章的请求体
type ArticleUpdateRequest struct {
	Title      string `json:"title" binding:"omitempty,min=5,max=255"`
	Excerpt    string `json:"excerpt"`
	Content    string `json:"content"`
	ImageURL   string `json:"image_url"`
	CategoryID *uint  `json:"category_id"`
}
