package router

import (
	"github.com/gin-gonic/gin"

	"sovbridge/internal/config"
	"sovbridge/internal/handler"
	"sovbridge/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	sovH *handler.SOVHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	sov := v1.Group("/sov")
	sov.POST("/parse", sovH.Parse)

	files := sov.Group("/files")
	files.GET("", sovH.List)
	files.GET("/:id", sovH.GetByID)
	files.POST("/:id/extract", sovH.ReExtract)
	files.GET("/:id/records", sovH.Records)
	files.GET("/:id/export", sovH.Export)
	files.DELETE("/:id", sovH.Delete)

	return r
}
