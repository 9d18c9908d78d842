package services

import (
	"testing"

	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedAllDataIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSeedService()

	require.NoError(t, svc.SeedAllData())

	var admin models.User
	require.NoError(t, db.Where("username = ?", "admin").First(&admin).Error)
	assert.Equal(t, "admin", admin.Role)
	assert.True(t, admin.CheckPassword("admin123456"))

	var categories int64
	db.Model(&models.Category{}).Count(&categories)
	assert.Equal(t, int64(5), categories)

	// 再跑一遍不产生重复数据
	require.NoError(t, svc.SeedAllData())

	var users int64
	db.Model(&models.User{}).Count(&users)
	assert.Equal(t, int64(1), users)
	db.Model(&models.Category{}).Count(&categories)
	assert.Equal(t, int64(5), categories)
}
