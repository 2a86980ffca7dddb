package router

import (
	"github.com/gin-gonic/gin"

	"activitymagic/internal/config"
	"activitymagic/internal/handler"
	"activitymagic/internal/middleware"
	"activitymagic/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	extractH *handler.ExtractHandler,
	pageH *handler.PageHandler,
	auditH *handler.AuditHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(&cfg.CORS))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Extraction routes
	ex := protected.Group("/extract")
	ex.POST("/activity", extractH.ProcessActivity)
	ex.POST("/ingredients", extractH.GenerateIngredients)
	ex.POST("/recipe", extractH.AnalyzeRecipe)
	ex.POST("/inventory", extractH.ProcessInventory)
	ex.POST("/meal-suggestions", extractH.SuggestMeals)
	ex.POST("/inventory-meals", extractH.SuggestInventoryMeals)

	// Page content fetching
	protected.POST("/pages/fetch", pageH.FetchPage)

	// Extraction audit log
	protected.GET("/audit", auditH.List)

	return r
}
