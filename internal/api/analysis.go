package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nutrilens/backend/internal/models"
	"github.com/nutrilens/backend/internal/service"
)

// AnalysisHandler handles saved-analysis and daily-log requests.
type AnalysisHandler struct {
	analyses *service.AnalysisService
	users    *service.UserService
}

// NewAnalysisHandler creates a new AnalysisHandler instance.
func NewAnalysisHandler(analyses *service.AnalysisService, users *service.UserService) *AnalysisHandler {
	return &AnalysisHandler{
		analyses: analyses,
		users:    users,
	}
}

// RegisterRoutes registers the analysis persistence routes.
func (h *AnalysisHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/save-analysis", h.SaveAnalysis)
	router.GET("/analysis-history", h.AnalysisHistory)
	router.GET("/analysis/:id", h.GetAnalysis)
	router.PUT("/analysis/:id", h.UpdateAnalysis)
	router.GET("/daily-logs/:userId", h.DailyLogs)
}

// SaveAnalysis persists an analysis and folds it into the owner's daily
// log. Daily-log failures never fail the save; the row is already
// committed.
func (h *AnalysisHandler) SaveAnalysis(c *gin.Context) {
	var req saveAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid analysis data", "details": err.Error()})
		return
	}

	if req.UserID != nil {
		exists, err := h.users.Exists(c.Request.Context(), *req.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save analysis"})
			return
		}
		if !exists {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
	}

	analysis := &models.FoodAnalysis{
		UserID:      req.UserID,
		ImageURL:    req.ImageURL,
		Foods:       models.StringList(req.Foods),
		Calories:    *req.Calories,
		Protein:     *req.Protein,
		Carbs:       *req.Carbs,
		Fats:        *req.Fats,
		Fiber:       *req.Fiber,
		Analysis:    *req.Analysis,
		Suggestions: models.StringList(req.Suggestions),
		Language:    resolveLanguage(c),
		MealType:    req.MealType,
		ServingSize: req.ServingSize,
	}

	saved, err := h.analyses.Save(c.Request.Context(), analysis)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save analysis", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, saved)
}

// AnalysisHistory lists analyses newest first, optionally filtered by user,
// limit and creation date range.
func (h *AnalysisHandler) AnalysisHistory(c *gin.Context) {
	var userID *uint
	if v := c.Query("userId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid userId"})
			return
		}
		uid := uint(id)
		userID = &uid
	}

	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid limit"})
			return
		}
		limit = n
	}

	startDate, endDate, ok := parseDateRange(c)
	if !ok {
		return
	}

	analyses, err := h.analyses.List(c.Request.Context(), userID, limit, startDate, endDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch analysis history"})
		return
	}

	c.JSON(http.StatusOK, analyses)
}

// GetAnalysis fetches a single analysis by id.
func (h *AnalysisHandler) GetAnalysis(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid analysis ID"})
		return
	}

	analysis, err := h.analyses.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Analysis not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch analysis"})
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// UpdateAnalysis applies the explicit update path to a stored analysis.
func (h *AnalysisHandler) UpdateAnalysis(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid analysis ID"})
		return
	}

	var req updateAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid analysis data", "details": err.Error()})
		return
	}

	updated, err := h.analyses.Update(c.Request.Context(), uint(id), &service.AnalysisUpdate{
		Foods:       req.Foods,
		Calories:    req.Calories,
		Protein:     req.Protein,
		Carbs:       req.Carbs,
		Fats:        req.Fats,
		Fiber:       req.Fiber,
		Analysis:    req.Analysis,
		Suggestions: req.Suggestions,
		ImageURL:    req.ImageURL,
		MealType:    req.MealType,
		ServingSize: req.ServingSize,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Analysis not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update analysis"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DailyLogs lists a user's daily nutrition logs newest first, optionally
// bounded by startDate and endDate (YYYY-MM-DD).
func (h *AnalysisHandler) DailyLogs(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
		return
	}

	startDate := c.Query("startDate")
	endDate := c.Query("endDate")
	for _, d := range []string{startDate, endDate} {
		if d == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date, expected YYYY-MM-DD"})
			return
		}
	}

	logs, err := h.analyses.DailyLogs(c.Request.Context(), uint(id), startDate, endDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch daily logs"})
		return
	}

	c.JSON(http.StatusOK, logs)
}

// parseDateRange reads optional startDate/endDate query params. It writes
// the error response itself and reports ok=false on invalid input.
func parseDateRange(c *gin.Context) (*time.Time, *time.Time, bool) {
	var startDate, endDate *time.Time

	if v := c.Query("startDate"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid startDate, expected YYYY-MM-DD"})
			return nil, nil, false
		}
		startDate = &t
	}
	if v := c.Query("endDate"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid endDate, expected YYYY-MM-DD"})
			return nil, nil, false
		}
		// Inclusive upper bound: cover the whole end day.
		end := t.Add(24*time.Hour - time.Nanosecond)
		endDate = &end
	}

	return startDate, endDate, true
}
