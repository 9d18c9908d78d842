package models

// ContentType 多态互动的内容类型判别符
// 互动记录通过 (content_type, object_id) 指向任意内容实体，
// object_id 统一存为字符串以同时兼容整型主键和UUID主键
type ContentType string

const (
	ContentTypeArticle     ContentType = "news_article"
	ContentTypeEvent       ContentType = "event"
	ContentTypeOpportunity ContentType = "opportunity"
	ContentTypeComment     ContentType = "comment"
)

// CounterField 内容实体上的冗余计数字段
type CounterField string

const (
	CounterView     CounterField = "view_count"
	CounterLike     CounterField = "like_count"
	CounterDislike  CounterField = "dislike_count"
	CounterComment  CounterField = "comment_count"
	CounterBookmark CounterField = "bookmark_count"
	CounterShare    CounterField = "share_count"
)

// TargetRequest 指定互动目标的通用请求体
type TargetRequest struct {
	ContentType string `json:"content_type" binding:"required"`
	ObjectID    string `json:"object_id" binding:"required"`
}
