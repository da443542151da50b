package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/climate-advisor/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, limiter RateLimiter) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestIDMiddleware(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
	)

	api := router.Group("/api")
	{
		api.GET("/health", handler.Health)
		api.GET("/zones", handler.Zones)

		limited := api.Group("", rateLimitMiddleware(cfg.HTTP.RateLimit, limiter, handler.logger))
		limited.GET("/geocode", handler.Geocode)
		limited.POST("/analyze", handler.Analyze)
		limited.POST("/export-csv", handler.ExportCSV)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
