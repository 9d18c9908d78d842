package services

import (
	"errors"
	"log"

	"github.com/GhNoticeBoard/noticeboard-backend/internal/database"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	"gorm.io/gorm"
)

/*
SeedService 种子数据服务

主要功能：
1. 创建默认管理员账户
2. 创建默认分类与标签

使用方式：
  seedService := NewSeedService()
  seedService.SeedAllData()
*/

type SeedService struct {
	db *gorm.DB
}

// NewSeedService 创建新的种子数据服务实例
func NewSeedService() *SeedService {
	return &SeedService{
		db: database.GetDB(),
	}
}

// SeedAllData 执行全部种子任务，幂等：已存在的数据不重复创建
func (s *SeedService) SeedAllData() error {
	if s.db == nil {
		return errors.New("database connection not initialized")
	}

	if err := s.seedAdminUser(); err != nil {
		return err
	}
	if err := s.seedCategories(); err != nil {
		return err
	}
	return nil
}

// seedAdminUser 创建默认管理员账户
func (s *SeedService) seedAdminUser() error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("role = ?", "admin").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin := &models.User{
		Username: "admin",
		Email:    "admin@noticeboard.local",
		Password: "admin123456", // BeforeCreate 钩子会做哈希，首次登录后应修改
		Role:     "admin",
		Status:   "active",
	}
	if err := s.db.Create(admin).Error; err != nil {
		return err
	}
	log.Println("seeded default admin user")
	return nil
}

// seedCategories 创建默认分类
func (s *SeedService) seedCategories() error {
	var count int64
	if err := s.db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := []models.Category{
		{Name: "News", Description: "General news and announcements", Color: "#1E88E5", Order: 1, IsActive: true},
		{Name: "Events", Description: "Upcoming events and gatherings", Color: "#43A047", Order: 2, IsActive: true},
		{Name: "Opportunities", Description: "Jobs, scholarships and openings", Color: "#FB8C00", Order: 3, IsActive: true},
		{Name: "Education", Description: "Schools and learning", Color: "#8E24AA", Order: 4, IsActive: true},
		{Name: "Business", Description: "Business and economy", Color: "#E53935", Order: 5, IsActive: true},
	}
	if err := s.db.Create(&categories).Error; err != nil {
		return err
	}
	log.Printf("seeded %d default categories", len(categories))
	return nil
}
