package models

import "time"

// FeedItem 推荐流中的一条内容
type FeedItem struct {
	Type        string     `json:"type"` // 目前只有 article
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	ImageURL    string     `json:"image,omitempty"`
	Category    string     `json:"category,omitempty"`
	PublishedAt *time.Time `json:"published_at"`
	ViewCount   int64      `json:"view_count"`
	Score       float64    `json:"score,omitempty"` // 个性化流才有
}

// FeedResponse 推荐流响应
type FeedResponse struct {
	Feed      []FeedItem `json:"feed"`
	Page      int        `json:"page"`
	PageSize  int        `json:"page_size"`
	Total     int        `json:"total"`
	Algorithm string     `json:"algorithm"` // personalized 或 trending
}
