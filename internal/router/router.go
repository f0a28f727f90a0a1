package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"flotta/internal/handler"
	"flotta/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(extractH *handler.ExtractHandler, healthH *handler.HealthHandler) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS())

	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, handler.APIResponse{Success: false, Error: "method not allowed"})
	})

	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	extract := v1.Group("/extract")
	extract.POST("/document", extractH.Document)
	extract.POST("/logbook", extractH.Logbook)
	extract.POST("/logbook/export", extractH.LogbookExport)

	return r
}
