package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // the Echo web framework handles routing

	"github.com/faizanhere221/infoish-marketplace/internal/handler"
	"github.com/faizanhere221/infoish-marketplace/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication on the
// provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and monitoring probe this endpoint to verify the
	// service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the session endpoints. Register and login are
// open (and optionally rate limited); /api/auth/me sits behind the
// session middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, rl echo.MiddlewareFunc) {
	g := e.Group("/api/auth")
	if rl != nil {
		g.Use(rl)
	}
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/logout", a.Logout)

	// Protected: returns the claims of the current session token.
	g.GET("/me", a.Me, middleware.SessionAuth(jwtSecret))
}
