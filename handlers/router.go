package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rushali2005/studentpp/config"
	"github.com/rushali2005/studentpp/middleware"
	"github.com/rushali2005/studentpp/services"
)

type Dependencies struct {
	DB          *gorm.DB
	Auth        *services.AuthService
	Predictions *services.PredictionService
	Settings    *services.SettingsStore
	Cache       *services.CacheService
	CORS        config.CORSConfig
	Logger      *zap.Logger
}

func NewRouter(deps Dependencies) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(logger), gin.Recovery())
	router.Use(middleware.SetupCORS(deps.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "UP",
			"message": "Student performance API is running",
			"redis":   deps.Cache.Available(),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := NewAuthHandler(deps.DB, deps.Auth, logger)
	auth := router.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
	}

	router.GET("/ws/history", LiveHistory(deps.Cache, deps.Auth, logger))

	profile := NewProfileHandler(deps.DB)
	predictions := NewPredictionHandler(deps.Predictions)
	analytics := NewAnalyticsHandler(deps.Predictions)
	settings := NewSettingsHandler(deps.Settings)

	api := router.Group("/api/v1", middleware.RequireAuth(deps.Auth))
	{
		api.GET("/me", profile.Get)
		api.PATCH("/me", profile.Update)

		api.POST("/predictions", predictions.Submit)
		api.GET("/predictions", predictions.List)
		api.DELETE("/predictions/:id", predictions.Delete)

		api.GET("/analytics/series", analytics.Series)
		api.GET("/analytics/summary", analytics.Summary)

		api.GET("/settings", settings.Get)
		api.PUT("/settings", settings.Put)
		api.DELETE("/settings", settings.Reset)
	}

	return router
}
