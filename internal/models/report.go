package models

import (
	"time"

	"gorm.io/gorm"
)

// ReportReason 举报原因枚举
type ReportReason string

const (
	ReportReasonSpam           ReportReason = "spam"
	ReportReasonHarassment     ReportReason = "harassment"
	ReportReasonHateSpeech     ReportReason = "hate_speech"
	ReportReasonMisinformation ReportReason = "misinformation"
	ReportReasonInappropriate  ReportReason = "inappropriate"
	ReportReasonCopyright      ReportReason = "copyright"
	ReportReasonOther          ReportReason = "other"
)

// ReportStatus 举报处理状态，流转：pending -> reviewing -> resolved|dismissed
type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusReviewing ReportStatus = "reviewing"
	ReportStatusResolved  ReportStatus = "resolved"
	ReportStatusDismissed ReportStatus = "dismissed"
)

// ValidReportReason 检查举报原因是否合法
func ValidReportReason(reason ReportReason) bool {
	switch reason {
	case ReportReasonSpam, ReportReasonHarassment, ReportReasonHateSpeech,
		ReportReasonMisinformation, ReportReasonInappropriate,
		ReportReasonCopyright, ReportReasonOther:
		return true
	}
	return false
}

// Report 内容举报记录
type Report struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	ReporterID  uint        `json:"reporter_id" gorm:"not null;index"`
	ContentType ContentType `json:"content_type" gorm:"not null;type:varchar(50);index:idx_report_target"`
	ObjectID    string      `json:"object_id" gorm:"not null;type:varchar(255);index:idx_report_target"`

	Reason      ReportReason `json:"reason" gorm:"not null;type:varchar(20)"`
	Description string       `json:"description" gorm:"type:text"`

	Status ReportStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`

	// 审核信息
	ReviewedBy     *uint      `json:"reviewed_by"`
	ReviewedAt     *time.Time `json:"reviewed_at"`
	ModeratorNotes string     `json:"moderator_notes" gorm:"type:text"`
	ActionTaken    string     `json:"action_taken" gorm:"type:text"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Reporter *User `json:"reporter,omitempty" gorm:"foreignKey:ReporterID;references:ID"`
	Reviewer *User `json:"reviewer,omitempty" gorm:"foreignKey:ReviewedBy;references:ID"`
}

func (Report) TableName() string {
	return "reports"
}

// ReportCreateRequest 提交举报的请求体
type ReportCreateRequest struct {
	ContentType string `json:"content_type" binding:"required"`
	ObjectID    string `json:"object_id" binding:"required"`
	Reason      string `json:"reason" binding:"required"`
	Description string `json:"description" binding:"required,max=2000"`
}

// ReportReviewRequest 管理员处理举报的请求体
type ReportReviewRequest struct {
	Status         string `json:"status" binding:"required"`
	ModeratorNotes string `json:"moderator_notes"`
	ActionTaken    string `json:"action_taken"`
}
