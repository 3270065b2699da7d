package router

import (
	"github.com/labstack/echo/v4"

	"github.com/faizanhere221/infoish-marketplace/internal/handler"
	"github.com/faizanhere221/infoish-marketplace/internal/middleware"
)

// RegisterAPI registers the authenticated marketplace endpoints under
// /api. Every route here requires a valid session token; ownership
// checks beyond that are left to the handlers.
func RegisterAPI(
	e *echo.Echo,
	jwtSecret string,
	cr *handler.CreatorHandler,
	br *handler.BrandHandler,
	cv *handler.ConversationHandler,
	dl *handler.DealHandler,
) {
	g := e.Group("/api", middleware.SessionAuth(jwtSecret))

	g.GET("/creators", cr.List)
	g.POST("/creators", cr.Create)
	g.GET("/creators/:id", cr.Get)
	g.PATCH("/creators/:id", cr.Update)
	g.DELETE("/creators/:id", cr.Delete)
	// The platform set is replaced wholesale; there is no per-platform
	// endpoint.
	g.PUT("/creators/:id/platforms", cr.ReplacePlatforms)

	g.GET("/brands", br.List)
	g.POST("/brands", br.Create)
	g.GET("/brands/:id", br.Get)
	g.PATCH("/brands/:id", br.Update)
	g.DELETE("/brands/:id", br.Delete)

	g.GET("/conversations", cv.List)
	g.POST("/conversations", cv.Create)
	g.GET("/conversations/:id", cv.Get)
	g.DELETE("/conversations/:id", cv.Delete)
	g.GET("/conversations/:id/messages", cv.ListMessages)
	g.POST("/conversations/:id/messages", cv.CreateMessage)

	g.GET("/deals", dl.List)
	g.POST("/deals", dl.Create)
	g.GET("/deals/:id", dl.Get)
	g.PATCH("/deals/:id", dl.Update)
	g.DELETE("/deals/:id", dl.Delete)
	// Workflow transitions. Accepting is creator-only; the other two are
	// open to either side of the deal.
	g.POST("/deals/:id/accept", dl.Accept, middleware.RequireUserType("creator"))
	g.POST("/deals/:id/deliver", dl.Deliver)
	g.POST("/deals/:id/approve", dl.Approve)
}

// RegisterIntake registers the public contact form and newsletter
// endpoints. No session is required; the rate limiter (when enabled)
// keeps abuse in check.
func RegisterIntake(e *echo.Echo, in *handler.IntakeHandler, rl echo.MiddlewareFunc) {
	g := e.Group("/api")
	if rl != nil {
		g.Use(rl)
	}
	g.POST("/contact", in.SubmitContact)
	g.POST("/newsletter/subscribe", in.SubscribeNewsletter)
	g.POST("/newsletter/unsubscribe", in.UnsubscribeNewsletter)
}
