// Package server wires the HTTP routes.
package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/devhardik21/RootStudy/internal/handlers"
)

type RouterConfig struct {
	Groups *handlers.GroupHandler
	Pages  *handlers.PageHandler
	Pdf    *handlers.PdfHandler
	AI     *handlers.AIHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "X-Requested-With"},
	}))

	router.GET("/", handlers.Root)
	router.GET("/healthz", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/groups", cfg.Groups.List)
		api.POST("/create-page", cfg.Pages.Create)

		api.POST("/text", cfg.AI.GenerateText)
		api.POST("/image", cfg.AI.GenerateImage)
		api.POST("/youtube", cfg.AI.SuggestVideos)

		pdf := api.Group("/pdf")
		{
			pdf.POST("/upload", cfg.Pdf.Upload)
			pdf.POST("/render-page", cfg.Pdf.RenderPage)
			pdf.GET("/:pdfId", cfg.Pdf.Get)
		}
	}

	return router
}
