package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// StringList is a custom type for string arrays stored as JSON text. It
// keeps ordering across the serialize/deserialize cycle and works on both
// Postgres and SQLite.
type StringList []string

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// User is an account that owns profiles, daily logs and saved analyses.
type User struct {
	ID                uint      `gorm:"primarykey" json:"id"`
	Username          string    `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Password          string    `gorm:"not null" json:"-"`
	PreferredLanguage string    `gorm:"size:5;default:'pt'" json:"preferred_language"`
	ProfileImage      string    `gorm:"size:255" json:"profile_image,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NutritionProfile stores a user's body attributes plus the daily targets
// computed from them. Latest row wins; recomputation replaces the targets
// outright.
type NutritionProfile struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	UserID        uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	Weight        float64   `gorm:"type:float;not null" json:"weight"`
	Height        float64   `gorm:"type:float;not null" json:"height"`
	Age           int       `gorm:"not null" json:"age"`
	Gender        string    `gorm:"size:10;not null" json:"gender"`
	ActivityLevel string    `gorm:"size:20;not null" json:"activity_level"`
	Goal          string    `gorm:"size:20;not null" json:"goal"`
	Calories      int       `json:"calories"`
	Protein       int       `json:"protein"`
	Carbs         int       `json:"carbs"`
	Fats          int       `json:"fats"`
	Fiber         int       `json:"fiber"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DailyNutritionLog accumulates the nutrition figures of every analysis a
// user saves on a calendar date. At most one row exists per user per date.
type DailyNutritionLog struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_daily_log_user_date" json:"user_id"`
	Date      string    `gorm:"size:10;not null;uniqueIndex:idx_daily_log_user_date" json:"date"`
	Calories  float64   `gorm:"type:float;not null;default:0" json:"calories"`
	Protein   float64   `gorm:"type:float;not null;default:0" json:"protein"`
	Carbs     float64   `gorm:"type:float;not null;default:0" json:"carbs"`
	Fats      float64   `gorm:"type:float;not null;default:0" json:"fats"`
	Fiber     float64   `gorm:"type:float;not null;default:0" json:"fiber"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FoodAnalysis is one saved image analysis. List-valued fields are stored
// as JSON text and re-expanded to arrays on every read.
type FoodAnalysis struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	UserID      *uint      `gorm:"index" json:"user_id,omitempty"`
	DailyLogID  *uint      `gorm:"index" json:"daily_log_id,omitempty"`
	ImageURL    string     `gorm:"type:text" json:"image_url"`
	Foods       StringList `gorm:"type:text;not null" json:"foods"`
	Calories    float64    `gorm:"type:float;not null" json:"calories"`
	Protein     float64    `gorm:"type:float;not null" json:"protein"`
	Carbs       float64    `gorm:"type:float;not null" json:"carbs"`
	Fats        float64    `gorm:"type:float;not null" json:"fats"`
	Fiber       float64    `gorm:"type:float;not null" json:"fiber"`
	Analysis    string     `gorm:"type:text;not null" json:"analysis"`
	Suggestions StringList `gorm:"type:text;not null" json:"suggestions"`
	Language    string     `gorm:"size:5;not null;default:'pt'" json:"language"`
	MealType    string     `gorm:"size:20" json:"meal_type,omitempty"`
	ServingSize string     `gorm:"size:50" json:"serving_size,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Language is a seeded reference row for a supported interface language.
type Language struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Code string `gorm:"size:5;not null;uniqueIndex" json:"code"`
	Name string `gorm:"size:50;not null" json:"name"`
}
