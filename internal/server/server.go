package server

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nutrilens/backend/config"
	"github.com/nutrilens/backend/internal/api"
	"github.com/nutrilens/backend/internal/router"
	"github.com/nutrilens/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	engine *gin.Engine
	http   *http.Server
	db     *gorm.DB
}

// New wires the services and handlers onto a server instance.
func New(cfg *config.Config, db *gorm.DB) (*Server, error) {
	visionService, err := service.NewVisionService(cfg)
	if err != nil {
		return nil, err
	}

	var imageService *service.ImageService
	s3Config, err := config.NewS3Config(context.Background(), cfg)
	if err != nil {
		// Object storage is optional; analyses fall back to raw references.
		log.Printf("S3 unavailable, storing image references inline: %v", err)
	} else if s3Config != nil {
		imageService = service.NewImageService(s3Config)
	}

	analysisService := service.NewAnalysisService(db, imageService)
	userService := service.NewUserService(db)
	profileService := service.NewProfileService(db)

	engine := router.SetupRouter(
		api.NewAnalyzeHandler(visionService),
		api.NewAnalysisHandler(analysisService, userService),
		api.NewUserHandler(userService),
		api.NewProfileHandler(profileService),
		api.NewLanguageHandler(db),
		api.NewHealthHandler(db),
	)

	return &Server{
		engine: engine,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: engine,
		},
		db: db,
	}, nil
}

// Start begins serving; it blocks until the listener stops.
func (s *Server) Start() error {
	log.Printf("serving on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
