package services

import (
	"errors"
	"fmt"

	"github.com/GhNoticeBoard/noticeboard-backend/internal/database"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	"gorm.io/gorm"
)

// TaxonomyService 分类/标签/子标签管理
type TaxonomyService struct {
	db *gorm.DB
}

// NewTaxonomyService 创建分类标签服务实例
func NewTaxonomyService() *TaxonomyService {
	return &TaxonomyService{
		db: database.GetDB(),
	}
}

// CreateCategory 创建分类，名称重复返回 ErrConflict
func (s *TaxonomyService) CreateCategory(req *models.CategoryCreateRequest) (*models.Category, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	var count int64
	if err := s.db.Model(&models.Category{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: category %q", ErrConflict, req.Name)
	}

	category := &models.Category{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
		Order:       req.Order,
		IsActive:    true,
	}
	if category.Color == "" {
		category.Color = "#000000"
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// GetCategories 获取启用的分类列表，按展示顺序排列
func (s *TaxonomyService) GetCategories() ([]models.Category, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	var categories []models.Category
	if err := s.db.Where("is_active = ?", true).
		Order("\"order\" asc, name asc").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

// GetCategoryBySlug 按slug获取分类
func (s *TaxonomyService) GetCategoryBySlug(slug string) (*models.Category, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	var category models.Category
	if err := s.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category %s", ErrNotFound, slug)
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

// CreateTag 创建标签，名称重复返回 ErrConflict
func (s *TaxonomyService) CreateTag(req *models.TagCreateRequest) (*models.Tag, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	var count int64
	if err := s.db.Model(&models.Tag{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check tag name: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: tag %q", ErrConflict, req.Name)
	}

	if req.CategoryID != nil {
		count = 0
		if err := s.db.Model(&models.Category{}).Where("id = ?", *req.CategoryID).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check category: %w", err)
		}
		if count == 0 {
			return nil, fmt.Errorf("%w: category %d", ErrNotFound, *req.CategoryID)
		}
	}

	tag := &models.Tag{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		IsActive:    true,
	}

	if err := s.db.Create(tag).Error; err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return tag, nil
}

// GetTags 获取启用的标签，可按分类过滤
func (s *TaxonomyService) GetTags(categoryID *uint) ([]models.Tag, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	query := s.db.Where("is_active = ?", true)
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	var tags []models.Tag
	if err := query.Order("usage_count desc, name asc").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	return tags, nil
}

// GetTagBySlug 按slug获取标签
func (s *TaxonomyService) GetTagBySlug(slug string) (*models.Tag, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	var tag models.Tag
	if err := s.db.Where("slug = ?", slug).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: tag %s", ErrNotFound, slug)
		}
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	return &tag, nil
}
