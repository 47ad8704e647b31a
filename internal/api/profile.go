package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nutrilens/backend/internal/service"
)

// ProfileHandler handles nutrition profile requests.
type ProfileHandler struct {
	profiles *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler instance.
func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// RegisterRoutes registers the profile routes.
func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/nutrition-profile", h.UpsertProfile)
	router.GET("/nutrition-profile/:userId", h.GetProfile)
}

// UpsertProfile creates or updates a user's profile and recomputes the
// daily targets.
func (h *ProfileHandler) UpsertProfile(c *gin.Context) {
	var req nutritionProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid profile data", "details": err.Error()})
		return
	}

	profile, err := h.profiles.Upsert(c.Request.Context(), &service.ProfileInput{
		UserID:        req.UserID,
		Weight:        req.Weight,
		Height:        req.Height,
		Age:           req.Age,
		Gender:        req.Gender,
		ActivityLevel: req.ActivityLevel,
		Goal:          req.Goal,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save nutrition profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetProfile fetches a user's profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
		return
	}

	profile, err := h.profiles.GetByUserID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Nutrition profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch nutrition profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}
