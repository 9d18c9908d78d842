package models

import "time"

// Like 通用点赞记录，通过 (content_type, object_id) 指向任意内容
type Like struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	UserID      uint        `json:"user_id" gorm:"not null;index:idx_like_user_target,unique"`
	ContentType ContentType `json:"content_type" gorm:"not null;type:varchar(50);index:idx_like_user_target,unique;index:idx_like_target"`
	ObjectID    string      `json:"object_id" gorm:"not null;type:varchar(255);index:idx_like_user_target,unique;index:idx_like_target"`
	CreatedAt   time.Time   `json:"created_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
}

func (Like) TableName() string {
	return "likes"
}

// Dislike 通用点踩记录，与Like互斥
type Dislike struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	UserID      uint        `json:"user_id" gorm:"not null;index:idx_dislike_user_target,unique"`
	ContentType ContentType `json:"content_type" gorm:"not null;type:varchar(50);index:idx_dislike_user_target,unique;index:idx_dislike_target"`
	ObjectID    string      `json:"object_id" gorm:"not null;type:varchar(255);index:idx_dislike_user_target,unique;index:idx_dislike_target"`
	CreatedAt   time.Time   `json:"created_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
}

func (Dislike) TableName() string {
	return "dislikes"
}

// Bookmark 通用收藏记录
type Bookmark struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	UserID      uint        `json:"user_id" gorm:"not null;index:idx_bookmark_user_target,unique;index:idx_bookmark_user_time"`
	ContentType ContentType `json:"content_type" gorm:"not null;type:varchar(50);index:idx_bookmark_user_target,unique"`
	ObjectID    string      `json:"object_id" gorm:"not null;type:varchar(255);index:idx_bookmark_user_target,unique"`
	CreatedAt   time.Time   `json:"created_at" gorm:"index:idx_bookmark_user_time"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
}

func (Bookmark) TableName() string {
	return "bookmarks"
}

// Share 分享记录，同一用户可对同一内容多次分享
type Share struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	UserID      uint        `json:"user_id" gorm:"not null;index"`
	ContentType ContentType `json:"content_type" gorm:"not null;type:varchar(50);index:idx_share_target"`
	ObjectID    string      `json:"object_id" gorm:"not null;type:varchar(255);index:idx_share_target"`
	Comment     string      `json:"comment" gorm:"type:text"`            // 分享时附带的评论
	IsQuote     bool        `json:"is_quote" gorm:"default:false"`       // 是否为引用式分享
	CreatedAt   time.Time   `json:"created_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
}

func (Share) TableName() string {
	return "shares"
}

// View 浏览记录，用于分析统计；允许匿名
type View struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	UserID      *uint       `json:"user_id" gorm:"index"` // 匿名浏览为空
	ContentType ContentType `json:"content_type" gorm:"not null;type:varchar(50);index:idx_view_target"`
	ObjectID    string      `json:"object_id" gorm:"not null;type:varchar(255);index:idx_view_target"`
	IPAddress   string      `json:"ip_address" gorm:"type:varchar(45);index"`
	UserAgent   string      `json:"user_agent" gorm:"type:text"`
	Referrer    string      `json:"referrer" gorm:"type:varchar(1000)"`
	Duration    int64       `json:"duration" gorm:"default:0"` // 停留秒数
	CreatedAt   time.Time   `json:"created_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
}

func (View) TableName() string {
	return "views"
}

// ToggleResponse 点赞/点踩/收藏切换后的状态
type ToggleResponse struct {
	Applied bool   `json:"applied"` // true表示本次新增了关系，false表示取消
	Message string `json:"message"`
}

// ShareCreateRequest 创建分享的请求体
type ShareCreateRequest struct {
	ContentType string `json:"content_type" binding:"required"`
	ObjectID    string `json:"object_id" binding:"required"`
	Comment     string `json:"comment" binding:"omitempty,max=1000"`
	IsQuote     bool   `json:"is_quote"`
}

// ViewCreateRequest 记录浏览的请求体
type ViewCreateRequest struct {
	ContentType string `json:"content_type" binding:"required"`
	ObjectID    string `json:"object_id" binding:"required"`
	Duration    int64  `json:"duration" binding:"omitempty,min=0"`
	Referrer    string `json:"referrer"`
}

// InteractionStatsResponse 内容的互动统计汇总
type InteractionStatsResponse struct {
	LikesCount     int64           `json:"likes_count"`
	DislikesCount  int64           `json:"dislikes_count"`
	ReviewsCount   int64           `json:"reviews_count"`
	AverageRating  float64         `json:"average_rating"`
	UserLiked      bool            `json:"user_liked"`
	UserDisliked   bool            `json:"user_disliked"`
	UserBookmarked bool            `json:"user_bookmarked"`
	UserReview     *ReviewResponse `json:"user_review"`
}
