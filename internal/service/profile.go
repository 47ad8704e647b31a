package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/nutrilens/backend/internal/models"
	"github.com/nutrilens/backend/internal/nutrition"
)

// ErrUserNotFound is returned when a profile operation references an
// unknown user.
var ErrUserNotFound = errors.New("user not found")

// ProfileService handles nutrition profiles and their computed targets.
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileService instance.
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// ProfileInput carries the attributes of a profile upsert.
type ProfileInput struct {
	UserID        uint
	Weight        float64
	Height        float64
	Age           int
	Gender        string
	ActivityLevel string
	Goal          string
}

// Upsert creates or updates the user's profile and recomputes the daily
// targets. When the inputs are not computable the attributes are still
// stored but previously computed targets are left unchanged; this is a
// defined state, not an error.
func (s *ProfileService) Upsert(ctx context.Context, in *ProfileInput) (*models.NutritionProfile, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", in.UserID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrUserNotFound
	}

	var profile models.NutritionProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", in.UserID).First(&profile).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	profile.UserID = in.UserID
	profile.Weight = in.Weight
	profile.Height = in.Height
	profile.Age = in.Age
	profile.Gender = in.Gender
	profile.ActivityLevel = in.ActivityLevel
	profile.Goal = in.Goal

	targets, ok := nutrition.ComputeTargets(nutrition.Profile{
		WeightKg:      in.Weight,
		HeightCm:      in.Height,
		AgeYears:      in.Age,
		Gender:        in.Gender,
		ActivityLevel: in.ActivityLevel,
		Goal:          in.Goal,
	})
	if ok {
		profile.Calories = targets.Calories
		profile.Protein = targets.Protein
		profile.Carbs = targets.Carbs
		profile.Fats = targets.Fats
		profile.Fiber = targets.Fiber
	}

	if err := s.db.WithContext(ctx).Save(&profile).Error; err != nil {
		return nil, err
	}

	return &profile, nil
}

// GetByUserID fetches a user's profile.
func (s *ProfileService) GetByUserID(ctx context.Context, userID uint) (*models.NutritionProfile, error) {
	var profile models.NutritionProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}
