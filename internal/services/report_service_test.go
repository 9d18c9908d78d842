package services

import (
	"fmt"
	"testing"

	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReport(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")
	article := createTestArticle(t, db, "Reported story")
	objectID := fmt.Sprint(article.ID)

	svc := NewReportService()

	report, err := svc.CreateReport(user.ID, &models.ReportCreateRequest{
		ContentType: "news_article",
		ObjectID:    objectID,
		Reason:      "spam",
		Description: "repeated promotional posts",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusPending, report.Status)

	// 同一用户对同一内容的未决举报不允许重复
	_, err = svc.CreateReport(user.ID, &models.ReportCreateRequest{
		ContentType: "news_article",
		ObjectID:    objectID,
		Reason:      "spam",
		Description: "again",
	})
	assert.ErrorIs(t, err, ErrConflict)

	// 非法原因
	_, err = svc.CreateReport(user.ID, &models.ReportCreateRequest{
		ContentType: "news_article",
		ObjectID:    objectID,
		Reason:      "boring",
		Description: "not a valid reason",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestReviewReportTransitions(t *testing.T) {
	db := setupTestDB(t)
	reporter := createTestUser(t, db, "bob")
	moderator := createTestUser(t, db, "mod")
	article := createTestArticle(t, db, "Disputed story")

	svc := NewReportService()

	report, err := svc.CreateReport(reporter.ID, &models.ReportCreateRequest{
		ContentType: "news_article",
		ObjectID:    fmt.Sprint(article.ID),
		Reason:      "misinformation",
		Description: "figures do not add up",
	})
	require.NoError(t, err)

	// pending 不能直接回到 pending
	_, err = svc.ReviewReport(moderator.ID, report.ID, &models.ReportReviewRequest{Status: "pending"})
	assert.ErrorIs(t, err, ErrValidation)

	reviewed, err := svc.ReviewReport(moderator.ID, report.ID, &models.ReportReviewRequest{
		Status:         "reviewing",
		ModeratorNotes: "checking sources",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusReviewing, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedBy)
	assert.Equal(t, moderator.ID, *reviewed.ReviewedBy)
	assert.NotNil(t, reviewed.ReviewedAt)

	resolved, err := svc.ReviewReport(moderator.ID, report.ID, &models.ReportReviewRequest{
		Status:      "resolved",
		ActionTaken: "article corrected",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusResolved, resolved.Status)

	// 终态后不允许再流转
	_, err = svc.ReviewReport(moderator.ID, report.ID, &models.ReportReviewRequest{Status: "dismissed"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetReportsFilterByStatus(t *testing.T) {
	db := setupTestDB(t)
	reporter := createTestUser(t, db, "carol")
	moderator := createTestUser(t, db, "mod")
	first := createTestArticle(t, db, "First story")
	second := createTestArticle(t, db, "Second story")

	svc := NewReportService()

	open, err := svc.CreateReport(reporter.ID, &models.ReportCreateRequest{
		ContentType: "news_article",
		ObjectID:    fmt.Sprint(first.ID),
		Reason:      "other",
		Description: "something off",
	})
	require.NoError(t, err)

	closed, err := svc.CreateReport(reporter.ID, &models.ReportCreateRequest{
		ContentType: "news_article",
		ObjectID:    fmt.Sprint(second.ID),
		Reason:      "spam",
		Description: "advertising",
	})
	require.NoError(t, err)

	_, err = svc.ReviewReport(moderator.ID, closed.ID, &models.ReportReviewRequest{Status: "dismissed"})
	require.NoError(t, err)

	pending, total, err := svc.GetReports("pending", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, pending, 1)
	assert.Equal(t, open.ID, pending[0].ID)

	all, total, err := svc.GetReports("", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)
}
