package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment 通用的带层级评论，通过 (content_type, object_id) 挂在任意内容下
// parent 只支持一层嵌套：回复的回复仍挂在顶层评论上由前端展示
type Comment struct {
	ID          string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID      uint        `json:"user_id" gorm:"not null;index"`
	ContentType ContentType `json:"content_type" gorm:"not null;type:varchar(50);index:idx_comment_target"`
	ObjectID    string      `json:"object_id" gorm:"not null;type:varchar(255);index:idx_comment_target"`
	Content     string      `json:"content" gorm:"type:text;not null"`

	// 层级
	ParentID *string `json:"parent_id" gorm:"type:varchar(36);index"`

	// 编辑痕迹
	IsEdited bool       `json:"is_edited" gorm:"default:false"`
	EditedAt *time.Time `json:"edited_at"`

	// 审核状态
	IsApproved bool `json:"is_approved" gorm:"default:true"`
	IsFlagged  bool `json:"is_flagged" gorm:"default:false"`

	// 统计字段
	LikeCount  int64 `json:"like_count" gorm:"default:0"`
	ReplyCount int64 `json:"reply_count" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User    *User     `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
	Replies []Comment `json:"replies,omitempty" gorm:"foreignKey:ParentID;references:ID"`
}

// BeforeCreate 生成UUID主键
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func (Comment) TableName() string {
	return "comments"
}

// CommentResponse 返回给前端的评论结构
type CommentResponse struct {
	ID          string            `json:"id"`
	UserID      uint              `json:"user_id"`
	Username    string            `json:"username,omitempty"`
	ContentType ContentType       `json:"content_type"`
	ObjectID    string            `json:"object_id"`
	Content     string            `json:"content"`
	ParentID    *string           `json:"parent_id,omitempty"`
	IsEdited    bool              `json:"is_edited"`
	EditedAt    *time.Time        `json:"edited_at,omitempty"`
	LikeCount   int64             `json:"like_count"`
	ReplyCount  int64             `json:"reply_count"`
	CreatedAt   time.Time         `json:"created_at"`
	Replies     []CommentResponse `json:"replies,omitempty"`
}

func (c *Comment) ToResponse() CommentResponse {
	response := CommentResponse{
		ID:          c.ID,
		UserID:      c.UserID,
		ContentType: c.ContentType,
		ObjectID:    c.ObjectID,
		Content:     c.Content,
		ParentID:    c.ParentID,
		IsEdited:    c.IsEdited,
		EditedAt:    c.EditedAt,
		LikeCount:   c.LikeCount,
		ReplyCount:  c.ReplyCount,
		CreatedAt:   c.CreatedAt,
	}

	if c.User != nil {
		response.Username = c.User.Username
	}

	for _, reply := range c.Replies {
		response.Replies = append(response.Replies, reply.ToResponse())
	}

	return response
}

// CommentCreateRequest 创建评论的请求体
type CommentCreateRequest struct {
	ContentType string  `json:"content_type" binding:"required"`
	ObjectID    string  `json:"object_id" binding:"required"`
	Content     string  `json:"content" binding:"required,min=1,max=2000"`
	ParentID    *string `json:"parent_id"` // 回复某条评论时填写
}

// CommentUpdateRequest 编辑评论的请求体
type CommentUpdateRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}
