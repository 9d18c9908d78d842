package models

import (
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"
)

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify 由名称生成URL友好的slug
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugInvalidChars.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// Category 内容主分类
type Category struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"uniqueIndex;not null;type:varchar(100)"`
	Slug        string `json:"slug" gorm:"uniqueIndex;not null;type:varchar(120)"`
	Description string `json:"description" gorm:"type:text"`
	Icon        string `json:"icon" gorm:"type:varchar(50)"`
	Color       string `json:"color" gorm:"type:varchar(7);default:'#000000'"`
	Order       uint   `json:"order" gorm:"default:0"` // 展示顺序
	IsActive    bool   `json:"is_active" gorm:"default:true"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate 未提供slug时由名称生成
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
	return nil
}

func (Category) TableName() string {
	return "categories"
}

// Tag 内容标签，可归属于分类
type Tag struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"uniqueIndex;not null;type:varchar(100)"`
	Slug        string `json:"slug" gorm:"uniqueIndex;not null;type:varchar(120)"`
	Description string `json:"description" gorm:"type:text"`
	CategoryID  *uint  `json:"category_id" gorm:"index"`
	UsageCount  int64  `json:"usage_count" gorm:"default:0;index"` // 被使用次数
	IsActive    bool   `json:"is_active" gorm:"default:true"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.Slug == "" {
		t.Slug = Slugify(t.Name)
	}
	return nil
}

func (Tag) TableName() string {
	return "tags"
}

// SubTag 标签下更细的分类
type SubTag struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null;type:varchar(100)"`
	Slug        string `json:"slug" gorm:"not null;type:varchar(120);index:idx_subtag_parent_slug,unique"`
	ParentTagID uint   `json:"parent_tag_id" gorm:"not null;index:idx_subtag_parent_slug,unique"`
	Description string `json:"description" gorm:"type:text"`
	UsageCount  int64  `json:"usage_count" gorm:"default:0"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ParentTag *Tag `json:"parent_tag,omitempty" gorm:"foreignKey:ParentTagID;references:ID"`
}

func (s *SubTag) BeforeCreate(tx *gorm.DB) error {
	if s.Slug == "" {
		s.Slug = Slugify(s.Name)
	}
	return nil
}

func (SubTag) TableName() string {
	return "sub_tags"
}

// CategoryCreateRequest 创建分类的请求体
type CategoryCreateRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	Icon        string `json:"icon" binding:"omitempty,max=50"`
	Color       string `json:"color" binding:"omitempty,len=7"`
	Order       uint   `json:"order"`
}

// TagCreateRequest 创建标签的请求体
type TagCreateRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	CategoryID  *uint  `json:"category_id"`
}
