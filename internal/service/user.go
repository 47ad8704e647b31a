package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nutrilens/backend/internal/models"
)

// ErrUsernameTaken is returned when a signup collides with an existing
// username.
var ErrUsernameTaken = errors.New("username already taken")

// UserService handles user accounts.
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a new UserService instance.
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Create registers a user with a hashed password. The stored credential is
// opaque; the plaintext is never persisted or returned.
func (s *UserService) Create(ctx context.Context, username, password, preferredLanguage string) (*models.User, error) {
	var existing models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&existing).Error; err == nil {
		return nil, ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if preferredLanguage == "" {
		preferredLanguage = "pt"
	}

	user := models.User{
		Username:          username,
		Password:          string(hashed),
		PreferredLanguage: preferredLanguage,
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// GetByID fetches a user.
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Exists reports whether a user row exists.
func (s *UserService) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
