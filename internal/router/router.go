package router

import (
	"github.com/gin-gonic/gin"

	"medscribe/internal/config"
	"medscribe/internal/handler"
	"medscribe/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	analyzeH *handler.AnalyzeHandler,
	insuranceH *handler.InsuranceHandler,
	recordH *handler.RecordHandler,
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
	v1.Use(middleware.Auth(cfg.Auth))

	documents := v1.Group("/documents")
	documents.POST("/analyze", analyzeH.Analyze)

	insurance := v1.Group("/insurance")
	insurance.POST("/check", insuranceH.Check)

	records := v1.Group("/records")
	records.POST("/confirm", recordH.Confirm)
	records.GET("/:mrn/history", recordH.History)
	records.GET("/:mrn/export", recordH.ExportCSV)

	return r
}
