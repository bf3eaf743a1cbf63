// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tollsim/internal/http/handlers"
	"tollsim/internal/http/middleware"
	"tollsim/internal/modules/tracking"
	"tollsim/internal/realtime"
)

func NewRouter(trackingService *tracking.Service, hub *realtime.Hub) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	api := r.Group("/api")
	{
		trackingHandler := handlers.NewTrackingHandler(trackingService)
		api.POST("/tracking/start", trackingHandler.Start)
		api.POST("/tracking/stop", trackingHandler.Stop)
		api.POST("/tracking/reset", trackingHandler.Reset)
		api.POST("/tracking/tick", trackingHandler.Tick)
		api.GET("/state", trackingHandler.State)

		boothHandler := handlers.NewBoothHandler(trackingService)
		api.GET("/booths", boothHandler.List)
		api.POST("/booths", boothHandler.Add)

		feedHandler := handlers.NewFeedHandler(hub)
		api.GET("/feed", feedHandler.Serve)
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	return r
}
