package router

import (
	"github.com/gin-gonic/gin"

	"github.com/nutrilens/backend/internal/api"
	"github.com/nutrilens/backend/internal/middleware"
)

// SetupRouter configures the application routes.
func SetupRouter(
	analyzeHandler *api.AnalyzeHandler,
	analysisHandler *api.AnalysisHandler,
	userHandler *api.UserHandler,
	profileHandler *api.ProfileHandler,
	languageHandler *api.LanguageHandler,
	healthHandler *api.HealthHandler,
) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())

	apiGroup := router.Group("/api")
	{
		analyzeHandler.RegisterRoutes(apiGroup)
		analysisHandler.RegisterRoutes(apiGroup)
		userHandler.RegisterRoutes(apiGroup)
		profileHandler.RegisterRoutes(apiGroup)
		languageHandler.RegisterRoutes(apiGroup)
		healthHandler.RegisterRoutes(apiGroup)
	}

	return router
}
