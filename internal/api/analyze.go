package api

import (
	"context"
	"encoding/base64"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nutrilens/backend/internal/language"
	"github.com/nutrilens/backend/internal/service"
)

// FoodAnalyzer is the external estimator boundary: image bytes plus a
// language tag in, a structured nutrition estimate or a failure out.
type FoodAnalyzer interface {
	AnalyzeFood(ctx context.Context, image []byte, lang string) (*service.FoodAnalysisResult, error)
}

// AnalyzeHandler handles food image analysis requests.
type AnalyzeHandler struct {
	analyzer FoodAnalyzer
}

// NewAnalyzeHandler creates a new AnalyzeHandler instance.
func NewAnalyzeHandler(analyzer FoodAnalyzer) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: analyzer}
}

// RegisterRoutes registers the analysis route.
func (h *AnalyzeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/analyze-food", h.AnalyzeFood)
}

// AnalyzeFood forwards the posted image to the vision model in the
// resolved request language and returns the validated estimate. Nothing is
// persisted here; saving is a separate call.
func (h *AnalyzeHandler) AnalyzeFood(c *gin.Context) {
	var req analyzeFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing or invalid image data"})
		return
	}

	// Handles the data URL format "data:image/jpeg;base64,<actual-base64>".
	payload := req.Image
	if idx := strings.Index(payload, "base64,"); idx >= 0 {
		payload = payload[idx+len("base64,"):]
	}

	image, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing or invalid image data"})
		return
	}

	lang := resolveLanguage(c)

	result, err := h.analyzer.AnalyzeFood(c.Request.Context(), image, lang)
	if err != nil {
		var invalid *service.InvalidResponseError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "Invalid response format",
				"details": invalid.Details,
			})
			return
		}

		log.Printf("Error in analyze-food endpoint: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to analyze food image",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// resolveLanguage applies the query > cookie > header precedence for a
// request.
func resolveLanguage(c *gin.Context) string {
	cookie, _ := c.Cookie(language.CookieName)
	return language.Resolve(c.Query("lang"), cookie, c.GetHeader("Accept-Language"))
}
