package routes

import (
	"github.com/gin-gonic/gin"

	"audio2text/internal/api/v1/handlers"
	"audio2text/internal/api/v1/services"
)

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	TranscriptionService services.TranscriptionService
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer) {
	transcriptionHandler := handlers.NewTranscriptionHandler(container.TranscriptionService)
	transcriptions := router.Group("/transcriptions")
	{
		transcriptions.POST("/upload", transcriptionHandler.Upload)
		transcriptions.GET("", transcriptionHandler.List)
		transcriptions.GET("/:key/download", transcriptionHandler.Download)
		transcriptions.DELETE("/:key", transcriptionHandler.Delete)
	}

	languagesHandler := handlers.NewLanguagesHandler()
	router.GET("/languages", languagesHandler.List)

	historyHandler := handlers.NewHistoryHandler(container.TranscriptionService)
	router.GET("/history", historyHandler.List)
}
