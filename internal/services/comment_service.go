package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/GhNoticeBoard/noticeboard-backend/internal/database"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	"gorm.io/gorm"
)

// CommentService 评论服务
type CommentService struct {
	db *gorm.DB
}

// NewCommentService 创建评论服务实例
func NewCommentService() *CommentService {
	return &CommentService{
		db: database.GetDB(),
	}
}

// CreateComment 创建评论或回复
// 回复时父评论必须存在且与新评论指向同一内容，否则视为非法请求；
// 评论创建、父级 reply_count 重算、内容 comment_count 累加在同一事务内完成
func (s *CommentService) CreateComment(userID uint, req *models.CommentCreateRequest) (*models.Comment, error) {
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

	comment := &models.Comment{
		UserID:      userID,
		ContentType: contentType,
		ObjectID:    req.ObjectID,
		Content:     req.Content,
		ParentID:    req.ParentID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if req.ParentID != nil {
			var parent models.Comment
			if err := tx.First(&parent, "id = ?", *req.ParentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: parent comment %s", ErrNotFound, *req.ParentID)
				}
				return fmt.Errorf("failed to get parent comment: %w", err)
			}
			// 回复必须和父评论挂在同一内容下
			if parent.ContentType != contentType || parent.ObjectID != req.ObjectID {
				return fmt.Errorf("%w: parent comment belongs to a different target", ErrValidation)
			}
		}

		if err := tx.Create(comment).Error; err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}

		if req.ParentID != nil {
			if err := s.recountReplies(tx, *req.ParentID); err != nil {
				return err
			}
		}

		return AddToCounter(tx, contentType, req.ObjectID, models.CounterComment, 1)
	})
	if err != nil {
		return nil, err
	}

	return comment, nil
}

// recountReplies 精确重算某条评论的回复数，避免增量计数漂移
func (s *CommentService) recountReplies(tx *gorm.DB, parentID string) error {
	var count int64
	if err := tx.Model(&models.Comment{}).Where("parent_id = ?", parentID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count replies: %w", err)
	}
	if err := tx.Model(&models.Comment{}).Where("id = ?", parentID).
		UpdateColumn("reply_count", count).Error; err != nil {
		return fmt.Errorf("failed to update reply count: %w", err)
	}
	return nil
}

// GetComments 获取某内容下的评论列表
// 只返回顶层评论并预加载回复，按时间正序分页
func (s *CommentService) GetComments(rawType, objectID string, page, pageSize int) ([]models.CommentResponse, int64, error) {
	if s.db == nil {
		return nil, 0, errors.New("database connection not initialized")
	}

	contentType, err := ResolveContentType(rawType)
	if err != nil {
		return nil, 0, err
	}

	query := s.db.Model(&models.Comment{}).
		Where("content_type = ? AND object_id = ? AND parent_id IS NULL AND is_approved = ?",
			contentType, objectID, true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	var comments []models.Comment
	if err := query.
		Preload("User").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_approved = ?", true).Order("created_at asc")
		}).
		Preload("Replies.User").
		Order("created_at asc").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&comments).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get comments: %w", err)
	}

	responses := make([]models.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, comments[i].ToResponse())
	}

	return responses, total, nil
}

// GetCommentByID 获取单条评论
func (s *CommentService) GetCommentByID(commentID string) (*models.Comment, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	var comment models.Comment
	if err := s.db.Preload("User").First(&comment, "id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: comment %s", ErrNotFound, commentID)
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return &comment, nil
}

// UpdateComment 编辑自己的评论并留下编辑痕迹
func (s *CommentService) UpdateComment(userID uint, commentID string, req *models.CommentUpdateRequest) (*models.Comment, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	var comment models.Comment
	if err := s.db.First(&comment, "id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: comment %s", ErrNotFound, commentID)
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	if comment.UserID != userID {
		return nil, fmt.Errorf("%w: cannot edit another user's comment", ErrPermission)
	}

	// 内容没有变化就不写库，也不留编辑痕迹
	if comment.Content == req.Content {
		return &comment, nil
	}

	now := time.Now()
	updates := map[string]interface{}{
		"content":   req.Content,
		"is_edited": true,
		"edited_at": now,
	}
	if err := s.db.Model(&comment).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	comment.Content = req.Content
	comment.IsEdited = true
	comment.EditedAt = &now
	return &comment, nil
}

// DeleteComment 删除自己的评论（管理员可删任意评论）
// 回复会被级联删除，内容上的 comment_count 按实际删除条数扣减
func (s *CommentService) DeleteComment(userID uint, commentID string, isAdmin bool) error {
	if s.db == nil {
		return errors.New("database connection not initialized")
	}

	var comment models.Comment
	if err := s.db.First(&comment, "id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: comment %s", ErrNotFound, commentID)
		}
		return fmt.Errorf("failed to get comment: %w", err)
	}

	if comment.UserID != userID && !isAdmin {
		return fmt.Errorf("%w: cannot delete another user's comment", ErrPermission)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		removed := int64(1)

		// 级联删除回复
		result := tx.Where("parent_id = ?", commentID).Delete(&models.Comment{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete replies: %w", result.Error)
		}
		removed += result.RowsAffected

		if err := tx.Delete(&comment).Error; err != nil {
			return fmt.Errorf("failed to delete comment: %w", err)
		}

		if comment.ParentID != nil {
			if err := s.recountReplies(tx, *comment.ParentID); err != nil {
				return err
			}
		}

		return AddToCounter(tx, comment.ContentType, comment.ObjectID, models.CounterComment, -removed)
	})
}

// FlagComment 管理端标记评论待审
func (s *CommentService) FlagComment(commentID string, flagged bool) error {
	if s.db == nil {
		return errors.New("database connection not initialized")
	}

	result := s.db.Model(&models.Comment{}).Where("id = ?", commentID).
		UpdateColumn("is_flagged", flagged)
	if result.Error != nil {
		return fmt.Errorf("failed to flag comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: comment %s", ErrNotFound, commentID)
	}
	return nil
}
