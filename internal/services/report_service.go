package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/GhNoticeBoard/noticeboard-backend/internal/database"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	"gorm.io/gorm"
)

// ReportService 举报服务
type ReportService struct {
	db *gorm.DB
}

// NewReportService 创建举报服务实例
func NewReportService() *ReportService {
	return &ReportService{
		db: database.GetDB(),
	}
}

// CreateReport 提交举报
// 同一用户对同一内容的未处理举报只保留一条
func (s *ReportService) CreateReport(reporterID uint, req *models.ReportCreateRequest) (*models.Report, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	contentType, err := ResolveContentType(req.ContentType)
	if err != nil {
		return nil, err
	}

	exists, err := ContentExists(s.db, contentType, req.ObjectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s %s", ErrNotFound, contentType, req.ObjectID)
	}

	reason := models.ReportReason(req.Reason)
	if !models.ValidReportReason(reason) {
		return nil, fmt.Errorf("%w: unknown report reason %q", ErrValidation, req.Reason)
	}

	var count int64
	if err := s.db.Model(&models.Report{}).
		Where("reporter_id = ? AND content_type = ? AND object_id = ? AND status IN ?",
			reporterID, contentType, req.ObjectID,
			[]models.ReportStatus{models.ReportStatusPending, models.ReportStatusReviewing}).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check existing report: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: report already pending for %s %s", ErrConflict, contentType, req.ObjectID)
	}

	report := &models.Report{
		ReporterID:  reporterID,
		ContentType: contentType,
		ObjectID:    req.ObjectID,
		Reason:      reason,
		Description: req.Description,
		Status:      models.ReportStatusPending,
	}

	if err := s.db.Create(report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	return report, nil
}

// GetReports 管理端按状态筛选举报列表
func (s *ReportService) GetReports(status string, page, pageSize int) ([]models.Report, int64, error) {
	if s.db == nil {
		return nil, 0, errors.New("database connection not initialized")
	}

	query := s.db.Model(&models.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	var reports []models.Report
	if err := query.Preload("Reporter").
		Order("created_at desc").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&reports).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get reports: %w", err)
	}

	return reports, total, nil
}

// GetReportByID 获取单条举报
func (s *ReportService) GetReportByID(reportID uint) (*models.Report, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	var report models.Report
	if err := s.db.Preload("Reporter").Preload("Reviewer").First(&report, reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: report %d", ErrNotFound, reportID)
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return &report, nil
}

// validTransition 举报状态流转约束
// pending -> reviewing/resolved/dismissed，reviewing -> resolved/dismissed
func validTransition(from, to models.ReportStatus) bool {
	switch from {
	case models.ReportStatusPending:
		return to == models.ReportStatusReviewing || to == models.ReportStatusResolved || to == models.ReportStatusDismissed
	case models.ReportStatusReviewing:
		return to == models.ReportStatusResolved || to == models.ReportStatusDismissed
	}
	return false
}

// ReviewReport 管理员处理举报，记录审核人和处理动作
func (s *ReportService) ReviewReport(moderatorID uint, reportID uint, req *models.ReportReviewRequest) (*models.Report, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	var report models.Report
	if err := s.db.First(&report, reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: report %d", ErrNotFound, reportID)
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	newStatus := models.ReportStatus(req.Status)
	if !validTransition(report.Status, newStatus) {
		return nil, fmt.Errorf("%w: cannot move report from %s to %s", ErrValidation, report.Status, req.Status)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":          newStatus,
		"reviewed_by":     moderatorID,
		"reviewed_at":     now,
		"moderator_notes": req.ModeratorNotes,
		"action_taken":    req.ActionTaken,
	}
	if err := s.db.Model(&report).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to review report: %w", err)
	}

	report.Status = newStatus
	report.ReviewedBy = &moderatorID
	report.ReviewedAt = &now
	report.ModeratorNotes = req.ModeratorNotes
	report.ActionTaken = req.ActionTaken
	return &report, nil
}
