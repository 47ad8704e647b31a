package api

// Request bodies, one typed representation per endpoint.

type analyzeFoodRequest struct {
	Image string `json:"image" binding:"required"`
}

// The nutrition numbers bind through pointers so that an explicit zero
// still satisfies required.
type saveAnalysisRequest struct {
	Foods       []string `json:"foods" binding:"required"`
	Calories    *float64 `json:"calories" binding:"required"`
	Protein     *float64 `json:"protein" binding:"required"`
	Carbs       *float64 `json:"carbs" binding:"required"`
	Fats        *float64 `json:"fats" binding:"required"`
	Fiber       *float64 `json:"fiber" binding:"required"`
	Analysis    *string  `json:"analysis" binding:"required"`
	Suggestions []string `json:"suggestions" binding:"required"`
	ImageURL    string   `json:"imageUrl"`
	UserID      *uint    `json:"userId"`
	MealType    string   `json:"mealType"`
	ServingSize string   `json:"servingSize"`
}

type updateAnalysisRequest struct {
	Foods       []string `json:"foods"`
	Calories    *float64 `json:"calories"`
	Protein     *float64 `json:"protein"`
	Carbs       *float64 `json:"carbs"`
	Fats        *float64 `json:"fats"`
	Fiber       *float64 `json:"fiber"`
	Analysis    *string  `json:"analysis"`
	Suggestions []string `json:"suggestions"`
	ImageURL    *string  `json:"imageUrl"`
	MealType    *string  `json:"mealType"`
	ServingSize *string  `json:"servingSize"`
}

type createUserRequest struct {
	Username          string `json:"username" binding:"required"`
	Password          string `json:"password" binding:"required,min=6"`
	PreferredLanguage string `json:"preferredLanguage"`
}

type nutritionProfileRequest struct {
	UserID        uint    `json:"userId" binding:"required"`
	Weight        float64 `json:"weight" binding:"required"`
	Height        float64 `json:"height" binding:"required"`
	Age           int     `json:"age" binding:"required"`
	Gender        string  `json:"gender" binding:"required,oneof=male female other"`
	ActivityLevel string  `json:"activityLevel" binding:"required,oneof=sedentary light moderate active very_active"`
	Goal          string  `json:"goal" binding:"required,oneof=lose_weight maintain gain_muscle"`
}

type setLanguageRequest struct {
	Language string `json:"language" binding:"required"`
}
