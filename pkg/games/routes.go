package games

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the game catalog routes.
func RegisterRoutes(e *echo.Echo, db *bun.DB) {
	gameService := NewService(db)

	h := &handler{
		gameService: gameService,
	}

	g := e.Group("/games")
	g.GET("", h.list)
	g.GET("/facets", h.facets)
	g.GET("/:id", h.retrieve)
	g.POST("", h.create)
	g.POST("/:id", h.update)
	g.DELETE("/:id", h.delete)
}
