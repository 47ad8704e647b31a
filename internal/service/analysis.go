package service

import (
	"context"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nutrilens/backend/internal/models"
)

// AnalysisService persists food analyses and keeps per-day nutrition logs
// accumulated from them.
type AnalysisService struct {
	db     *gorm.DB
	images *ImageService
}

// NewAnalysisService creates a new AnalysisService instance. The image
// service may be nil, in which case image references are stored as given.
func NewAnalysisService(db *gorm.DB, images *ImageService) *AnalysisService {
	return &AnalysisService{
		db:     db,
		images: images,
	}
}

// Save inserts an analysis row and, when the analysis belongs to a user,
// folds its nutrition figures into that user's daily log. The daily-log
// step is best-effort: the analysis row is already committed, so a failure
// there is logged and does not fail the save.
func (s *AnalysisService) Save(ctx context.Context, analysis *models.FoodAnalysis) (*models.FoodAnalysis, error) {
	if analysis.Foods == nil {
		analysis.Foods = models.StringList{}
	}
	if analysis.Suggestions == nil {
		analysis.Suggestions = models.StringList{}
	}

	// Offload data-URL payloads to object storage when configured. Keeping
	// the raw reference on failure still yields a working record.
	if s.images != nil && strings.HasPrefix(analysis.ImageURL, "data:") {
		if url, err := s.images.Upload(ctx, analysis.ImageURL); err != nil {
			log.Printf("image upload failed, storing raw reference: %v", err)
		} else {
			analysis.ImageURL = url
		}
	}

	if err := s.db.WithContext(ctx).Create(analysis).Error; err != nil {
		return nil, err
	}

	if analysis.UserID != nil {
		if err := s.accumulateDailyLog(ctx, analysis); err != nil {
			log.Printf("daily log accumulation failed for user %d: %v", *analysis.UserID, err)
		}
	}

	return analysis, nil
}

// accumulateDailyLog adds the analysis figures onto today's log for the
// owning user. A single upsert-with-increment keeps concurrent saves from
// losing updates; the unique (user_id, date) index backs the conflict
// target.
func (s *AnalysisService) accumulateDailyLog(ctx context.Context, analysis *models.FoodAnalysis) error {
	date := analysis.CreatedAt.Format("2006-01-02")

	entry := models.DailyNutritionLog{
		UserID:   *analysis.UserID,
		Date:     date,
		Calories: analysis.Calories,
		Protein:  analysis.Protein,
		Carbs:    analysis.Carbs,
		Fats:     analysis.Fats,
		Fiber:    analysis.Fiber,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"calories":   gorm.Expr("daily_nutrition_logs.calories + ?", analysis.Calories),
			"protein":    gorm.Expr("daily_nutrition_logs.protein + ?", analysis.Protein),
			"carbs":      gorm.Expr("daily_nutrition_logs.carbs + ?", analysis.Carbs),
			"fats":       gorm.Expr("daily_nutrition_logs.fats + ?", analysis.Fats),
			"fiber":      gorm.Expr("daily_nutrition_logs.fiber + ?", analysis.Fiber),
			"updated_at": time.Now(),
		}),
	}).Create(&entry).Error
	if err != nil {
		return err
	}

	// Backreference from the analysis to its daily log.
	var dailyLog models.DailyNutritionLog
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", *analysis.UserID, date).
		First(&dailyLog).Error; err != nil {
		return err
	}

	analysis.DailyLogID = &dailyLog.ID
	return s.db.WithContext(ctx).Model(analysis).Update("daily_log_id", dailyLog.ID).Error
}

// AnalysisUpdate carries the fields of an explicit analysis update. Nil
// fields are left untouched.
type AnalysisUpdate struct {
	Foods       []string
	Calories    *float64
	Protein     *float64
	Carbs       *float64
	Fats        *float64
	Fiber       *float64
	Analysis    *string
	Suggestions []string
	ImageURL    *string
	MealType    *string
	ServingSize *string
}

// Update applies an explicit update to a stored analysis.
func (s *AnalysisService) Update(ctx context.Context, id uint, upd *AnalysisUpdate) (*models.FoodAnalysis, error) {
	var analysis models.FoodAnalysis
	if err := s.db.WithContext(ctx).First(&analysis, id).Error; err != nil {
		return nil, err
	}

	if upd.Foods != nil {
		analysis.Foods = models.StringList(upd.Foods)
	}
	if upd.Calories != nil {
		analysis.Calories = *upd.Calories
	}
	if upd.Protein != nil {
		analysis.Protein = *upd.Protein
	}
	if upd.Carbs != nil {
		analysis.Carbs = *upd.Carbs
	}
	if upd.Fats != nil {
		analysis.Fats = *upd.Fats
	}
	if upd.Fiber != nil {
		analysis.Fiber = *upd.Fiber
	}
	if upd.Analysis != nil {
		analysis.Analysis = *upd.Analysis
	}
	if upd.Suggestions != nil {
		analysis.Suggestions = models.StringList(upd.Suggestions)
	}
	if upd.ImageURL != nil {
		analysis.ImageURL = *upd.ImageURL
	}
	if upd.MealType != nil {
		analysis.MealType = *upd.MealType
	}
	if upd.ServingSize != nil {
		analysis.ServingSize = *upd.ServingSize
	}

	if err := s.db.WithContext(ctx).Save(&analysis).Error; err != nil {
		return nil, err
	}

	return &analysis, nil
}

// List returns analyses newest first, optionally filtered by user and
// creation date range and capped at limit.
func (s *AnalysisService) List(ctx context.Context, userID *uint, limit int, startDate, endDate *time.Time) ([]models.FoodAnalysis, error) {
	query := s.db.WithContext(ctx).Order("created_at DESC")

	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	if startDate != nil {
		query = query.Where("created_at >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("created_at <= ?", *endDate)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var analyses []models.FoodAnalysis
	if err := query.Find(&analyses).Error; err != nil {
		return nil, err
	}
	return analyses, nil
}

// GetByID fetches a single analysis.
func (s *AnalysisService) GetByID(ctx context.Context, id uint) (*models.FoodAnalysis, error) {
	var analysis models.FoodAnalysis
	if err := s.db.WithContext(ctx).First(&analysis, id).Error; err != nil {
		return nil, err
	}
	return &analysis, nil
}

// DailyLogs returns a user's logs newest first, optionally bounded by
// YYYY-MM-DD dates.
func (s *AnalysisService) DailyLogs(ctx context.Context, userID uint, startDate, endDate string) ([]models.DailyNutritionLog, error) {
	query := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC")

	if startDate != "" {
		query = query.Where("date >= ?", startDate)
	}
	if endDate != "" {
		query = query.Where("date <= ?", endDate)
	}

	var logs []models.DailyNutritionLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
