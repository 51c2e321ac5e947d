package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nutribase/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware())
	if cfg.Metrics.Enabled {
		router.Use(MetricsMiddleware())
	}
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)
	if cfg.Metrics.Enabled {
		router.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(NewIPRateLimiter(cfg.RateLimit.PerIP)))
	{
		foods := v1.Group("/foods")
		{
			foods.GET("", handler.ListFoods)
			foods.POST("", handler.CreateFood)
			foods.GET("/:id", handler.GetFood)
			foods.PUT("/:id", handler.UpdateFood)
			foods.DELETE("/:id", handler.DeleteFood)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", handler.ListCategories)
			categories.POST("", handler.CreateCategory)
			categories.GET("/tree", handler.CategoryTree)
			categories.GET("/:id", handler.GetCategory)
			categories.PUT("/:id", handler.UpdateCategory)
			categories.DELETE("/:id", handler.DeleteCategory)
		}

		nutrition := v1.Group("/nutrition")
		{
			nutrition.GET("/foods/:id/serving", handler.ServingNutrition)
			nutrition.GET("/foods/:id/servings", handler.AlternativeServings)
			nutrition.GET("/foods/:id/recommended", handler.RecommendedServing)
			nutrition.GET("/foods/:id/density", handler.DensityScore)
			nutrition.GET("/foods/:id/daily-values", handler.ServingDailyValues)
			nutrition.GET("/daily-value", handler.DailyValue)
			nutrition.POST("/recipe", handler.RecipeNutrition)
			nutrition.POST("/compare", handler.CompareFoods)
		}
	}

	return router
}
