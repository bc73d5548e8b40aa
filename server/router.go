package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"learnlens/config"
)

// NewRouter builds the gin engine and mounts all routes
func NewRouter(cfg config.ServerConfig, h *Handler) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", HealthCheck)

	router.POST("/upload", h.Upload)
	router.GET("/documents/:id", h.DocumentStatus)
	router.POST("/generate-video", h.GenerateVideo)
	router.GET("/videos/:id", h.VideoStatus)
	router.GET("/subscription", h.Subscription)
	router.POST("/subscribe", h.Subscribe)

	return router
}
