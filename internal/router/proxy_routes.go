package router

import (
	"github.com/labstack/echo/v4"

	"github.com/faizanhere221/infoish-marketplace/internal/handler"
)

// RegisterProxy registers the pass-through routes to the external
// backend. The handler enforces the Authorization requirement itself so
// that a missing header is rejected before the backend is contacted.
func RegisterProxy(e *echo.Echo, p *handler.ProxyHandler) {
	e.GET("/api/search", p.Search)

	e.GET("/api/favorites", p.ListFavorites)
	e.POST("/api/favorites", p.AddFavorite)
	e.DELETE("/api/favorites/:id", p.RemoveFavorite)

	e.GET("/api/keys", p.ListKeys)
	e.POST("/api/keys", p.CreateKey)
	e.DELETE("/api/keys/:id", p.DeleteKey)

	e.POST("/api/auth/google", p.GoogleAuth)
}
