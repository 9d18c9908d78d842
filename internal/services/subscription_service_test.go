package services

import (
	"testing"

	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeCategoryIdempotent(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")
	category := createTestCategory(t, db, "Events")

	svc := NewSubscriptionService()

	first, err := svc.SubscribeCategory(user.ID, category.ID, nil)
	require.NoError(t, err)
	assert.True(t, first.PushNotifications)
	assert.Equal(t, models.FrequencyInstant, first.NotificationFrequency)

	// 重复订阅返回同一条记录
	second, err := svc.SubscribeCategory(user.ID, category.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var total int64
	db.Model(&models.UserSubscription{}).Count(&total)
	assert.Equal(t, int64(1), total)
}

func TestSubscribeCategoryWithPreferences(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "bob")
	category := createTestCategory(t, db, "News")

	svc := NewSubscriptionService()

	off := false
	sub, err := svc.SubscribeCategory(user.ID, category.ID, &models.SubscribeRequest{
		PushNotifications:     &off,
		NotificationFrequency: "daily",
	})
	require.NoError(t, err)
	assert.False(t, sub.PushNotifications)
	assert.True(t, sub.EmailNotifications)
	assert.Equal(t, models.FrequencyDaily, sub.NotificationFrequency)

	// 显式的false必须落库，不能被默认值顶掉
	var stored models.UserSubscription
	require.NoError(t, db.First(&stored, sub.ID).Error)
	assert.False(t, stored.PushNotifications)
	assert.True(t, stored.EmailNotifications)
}

func TestSubscribeMissingEntity(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "carol")

	svc := NewSubscriptionService()

	_, err := svc.SubscribeCategory(user.ID, 9999, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.SubscribeTag(user.ID, 9999, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnsubscribeCategory(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "dave")
	category := createTestCategory(t, db, "Business")

	svc := NewSubscriptionService()

	_, err := svc.SubscribeCategory(user.ID, category.ID, nil)
	require.NoError(t, err)

	require.NoError(t, svc.UnsubscribeCategory(user.ID, category.ID))
	assert.ErrorIs(t, svc.UnsubscribeCategory(user.ID, category.ID), ErrNotFound)

	var total int64
	db.Model(&models.UserSubscription{}).Count(&total)
	assert.Equal(t, int64(0), total)
}

func TestGetSubscriptionStats(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "erin")
	category := createTestCategory(t, db, "Education")
	tag := &models.Tag{Name: "scholarships", IsActive: true}
	require.NoError(t, db.Create(tag).Error)

	svc := NewSubscriptionService()

	_, err := svc.SubscribeCategory(user.ID, category.ID, nil)
	require.NoError(t, err)

	off := false
	_, err = svc.SubscribeTag(user.ID, tag.ID, &models.SubscribeRequest{PushNotifications: &off})
	require.NoError(t, err)

	stats, err := svc.GetSubscriptionStats(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalSubscriptions)
	assert.Equal(t, int64(1), stats.CategorySubscriptions)
	assert.Equal(t, int64(1), stats.TagSubscriptions)
	assert.Equal(t, int64(0), stats.SubTagSubscriptions)
	assert.Equal(t, int64(1), stats.PushEnabledCount)
	assert.Equal(t, int64(2), stats.EmailEnabledCount)
}

func TestAudienceForCategory(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")
	category := createTestCategory(t, db, "Announcements")

	svc := NewSubscriptionService()

	_, err := svc.SubscribeCategory(alice.ID, category.ID, nil)
	require.NoError(t, err)

	// 关了推送的订阅者不进受众
	off := false
	_, err = svc.SubscribeCategory(bob.ID, category.ID, &models.SubscribeRequest{PushNotifications: &off})
	require.NoError(t, err)

	_ = carol // 未订阅

	audience, err := svc.AudienceForCategory(category.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{alice.ID}, audience)
}
