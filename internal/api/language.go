package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nutrilens/backend/internal/language"
	"github.com/nutrilens/backend/internal/models"
)

// LanguageHandler handles language listing and preference requests.
type LanguageHandler struct {
	db *gorm.DB
}

// NewLanguageHandler creates a new LanguageHandler instance.
func NewLanguageHandler(db *gorm.DB) *LanguageHandler {
	return &LanguageHandler{db: db}
}

// RegisterRoutes registers the language routes.
func (h *LanguageHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/languages", h.ListLanguages)
	router.POST("/set-language", h.SetLanguage)
}

// ListLanguages returns the seeded reference set.
func (h *LanguageHandler) ListLanguages(c *gin.Context) {
	var languages []models.Language
	if err := h.db.WithContext(c.Request.Context()).Find(&languages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch languages"})
		return
	}

	c.JSON(http.StatusOK, languages)
}

// SetLanguage stores the preference cookie for one year.
func (h *LanguageHandler) SetLanguage(c *gin.Context) {
	var req setLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing language code"})
		return
	}

	if !language.IsSupported(req.Language) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unsupported language"})
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(language.CookieName, req.Language, 365*24*60*60, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{"language": req.Language})
}
