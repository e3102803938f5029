package http

import (
	"github.com/gin-gonic/gin"

	"github.com/blindattack4/backend/internal/transport/http/middleware"
)

// NewRouter wires the REST API. ws serves the WebSocket upgrade and may be nil.
func NewRouter(h *GameHandler, ws gin.HandlerFunc, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(allowedOrigins))

	router.GET("/health", Health)

	api := router.Group("/api")
	{
		api.GET("/version", Version)
		api.GET("/difficulties", Difficulties)
		api.POST("/games", h.CreateGame)
		api.GET("/replays/:id", h.ReplayFrame)
	}

	// Game routes require the token issued at creation
	games := api.Group("/games/:id")
	games.Use(middleware.GameTokenMiddleware())
	{
		games.GET("", h.GetGame)
		games.POST("/moves", h.MakeMove)
		games.GET("/valid-moves", h.ValidMoves)
		games.GET("/history", h.History)
		games.GET("/summary", h.Summary)
		games.DELETE("", h.QuitGame)
	}

	if ws != nil {
		router.GET("/ws", ws)
	}

	return router
}
