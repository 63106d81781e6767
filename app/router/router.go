package router

import (
	"boardfarm/app/handler"
	"boardfarm/app/middleware"

	"github.com/gin-gonic/gin"
)

// Router wires handlers to routes
type Router struct {
	capabilityHandler *handler.CapabilityHandler
	relayHandler      *handler.RelayHandler
	testPCHandler     *handler.TestPCHandler
	statsHandler      *handler.PCStatsHandler
	boardHandler      *handler.BoardHandler
}

// NewRouter creates a new Router
func NewRouter(capabilityHandler *handler.CapabilityHandler, relayHandler *handler.RelayHandler, testPCHandler *handler.TestPCHandler, statsHandler *handler.PCStatsHandler, boardHandler *handler.BoardHandler) *Router {
	return &Router{
		capabilityHandler: capabilityHandler,
		relayHandler:      relayHandler,
		testPCHandler:     testPCHandler,
		statsHandler:      statsHandler,
		boardHandler:      boardHandler,
	}
}

// Setup sets up routes
func (r *Router) Setup(engine *gin.Engine) {
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger())

	api := engine.Group("/api/v1")
	api.Use(middleware.AuthMiddleware())
	{
		capabilities := api.Group("/capabilities")
		{
			capabilities.POST("", r.capabilityHandler.Create)
			capabilities.GET("", r.capabilityHandler.List)
			capabilities.GET("/:id", r.capabilityHandler.Get)
			capabilities.PUT("/:id", r.capabilityHandler.Update)
			capabilities.DELETE("/:id", r.capabilityHandler.Delete)
		}

		relays := api.Group("/relays")
		{
			relays.POST("", r.relayHandler.Create)
			relays.GET("", r.relayHandler.List)
			relays.GET("/:id", r.relayHandler.Get)
			relays.PUT("/:id", r.relayHandler.Update)
			relays.DELETE("/:id", r.relayHandler.Delete)
			relays.POST("/:id/checked", r.relayHandler.MarkChecked)
		}

		testPCs := api.Group("/test-pcs")
		{
			testPCs.POST("", r.testPCHandler.Create)
			testPCs.GET("", r.testPCHandler.List)
			testPCs.GET("/:id", r.testPCHandler.Get)
			testPCs.PUT("/:id", r.testPCHandler.Update)
			testPCs.DELETE("/:id", r.testPCHandler.Delete)
			testPCs.POST("/:id/heartbeat", r.testPCHandler.Heartbeat)
			testPCs.GET("/:id/stats", r.statsHandler.ListForPC)
			testPCs.GET("/:id/stats/latest", r.statsHandler.LatestForPC)
		}

		stats := api.Group("/pc-stats")
		{
			stats.POST("", r.statsHandler.Record)
			stats.GET("", r.statsHandler.List)
			stats.GET("/:id", r.statsHandler.Get)
		}

		boards := api.Group("/boards")
		{
			boards.POST("", r.boardHandler.Create)
			boards.GET("", r.boardHandler.List)
			boards.GET("/:id", r.boardHandler.Get)
			boards.PUT("/:id", r.boardHandler.Update)
			boards.DELETE("/:id", r.boardHandler.Delete)
			boards.POST("/:id/lock", r.boardHandler.Lock)
			boards.POST("/:id/unlock", r.boardHandler.Unlock)
			boards.POST("/:id/heartbeat", r.boardHandler.Heartbeat)
			boards.POST("/:id/logs", r.boardHandler.AddLog)
			boards.GET("/:id/logs", r.boardHandler.ListLogs)
		}
	}

	// Health check
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
