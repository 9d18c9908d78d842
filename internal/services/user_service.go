package services

import (
	"errors"
	"fmt"

	"github.com/GhNoticeBoard/noticeboard-backend/internal/database"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

// create user service instance
func NewUserService() *UserService {
	return &UserService{
		db: database.GetDB(),
	}
}

// user register
func (s *UserService) CreateUser(req *models.RegisterRequest) (*models.User, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	// check if username already exists
	var existingUser models.User
	if err := s.db.Where("username = ?", req.Username).First(&existingUser).Error; err == nil {
		return nil, fmt.Errorf("%w: username already exists", ErrConflict)
	}

	// check if email already exists
	if err := s.db.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		return nil, fmt.Errorf("%w: email already exists", ErrConflict)
	}

	// validate input
	if !utils.IsValidUsername(req.Username) {
		return nil, fmt.Errorf("%w: invalid username format", ErrValidation)
	}

	if !utils.IsValidEmail(req.Email) {
		return nil, fmt.Errorf("%w: invalid email format", ErrValidation)
	}

	if !utils.IsValidPassword(req.Password) {
		return nil, fmt.Errorf("%w: password must contain at least one letter and one number", ErrValidation)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     "user",
		Status:   "active",
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// user login
func (s *UserService) Login(req *models.LoginRequest) (*models.User, string, error) {
	if s.db == nil {
		return nil, "", errors.New("database connection not initialized")
	}

	var user models.User
	if err := s.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return nil, "", err
	}

	// check user status
	if user.Status != "active" {
		return nil, "", fmt.Errorf("%w: user account is not active", ErrPermission)
	}

	// check password
	if !user.CheckPassword(req.Password) {
		return nil, "", fmt.Errorf("%w: invalid password", ErrValidation)
	}

	// generate jwt token
	token, err := utils.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, "", err
	}

	return &user, token, nil
}

// get user by id
func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &user, nil
}

// get user by username
func (s *UserService) GetUserByUsername(username string) (*models.User, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, username)
		}
		return nil, err
	}
	return &user, nil
}

// update user profile
func (s *UserService) UpdateUser(user *models.User) error {
	if s.db == nil {
		return errors.New("database connection not initialized")
	}
	return s.db.Save(user).Error
}

// ChangePassword 修改密码，旧密码校验通过后直接写入新哈希
func (s *UserService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	if s.db == nil {
		return errors.New("database connection not initialized")
	}

	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}

	if !user.CheckPassword(oldPassword) {
		return fmt.Errorf("%w: old password is incorrect", ErrValidation)
	}

	if !utils.IsValidPassword(newPassword) {
		return fmt.Errorf("%w: password must contain at least one letter and one number", ErrValidation)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.db.Model(user).UpdateColumn("password", string(hashed)).Error
}

// SoftDeleteUser 软删除用户账户（用户自删除）
func (s *UserService) SoftDeleteUser(userID uint) error {
	if s.db == nil {
		return errors.New("database connection not initialized")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return err
	}

	if user.Status == "deleted" {
		return fmt.Errorf("%w: user account is already deleted", ErrValidation)
	}

	user.Status = "deleted"
	return s.db.Save(&user).Error
}

// GetActiveUsers 获取所有活跃用户（排除已删除的用户）
func (s *UserService) GetActiveUsers(page, pageSize int) ([]models.User, int64, error) {
	if s.db == nil {
		return nil, 0, errors.New("database connection not initialized")
	}

	var users []models.User
	var total int64

	if err := s.db.Model(&models.User{}).Where("status != ?", "deleted").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := s.db.Where("status != ?", "deleted").Offset(offset).Limit(pageSize).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// UpdateUserStatus 更新用户状态（管理员功能）
func (s *UserService) UpdateUserStatus(userID uint, newStatus string) error {
	if s.db == nil {
		return errors.New("database connection not initialized")
	}

	validStatuses := []string{"active", "inactive", "suspended", "deleted"}
	isValidStatus := false
	for _, status := range validStatuses {
		if status == newStatus {
			isValidStatus = true
			break
		}
	}
	if !isValidStatus {
		return fmt.Errorf("%w: invalid status %q", ErrValidation, newStatus)
	}

	result := s.db.Model(&models.User{}).Where("id = ?", userID).Update("status", newStatus)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}
	return nil
}
