package router

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"julianmorley.ca/con-plar/retail-assistant/pkg/global"
)

// NewEngine builds the gin engine with middleware and every route mounted.
func NewEngine(cfg *global.Config, h *Handler, metrics *Metrics, logger *slog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(logger), metrics.Middleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", apiKeyHeader},
		ExposeHeaders:    []string{"Content-Length", requestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api")
	{
		api.GET("/health", h.HealthCheck)

		protected := api.Group("")
		protected.Use(APIKey(cfg.APIKeyHash))
		{
			protected.POST("/query", h.ProcessQuery)
			protected.GET("/reports/:view", h.GetReport)
		}
	}
	return router
}
