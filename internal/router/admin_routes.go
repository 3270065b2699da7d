package router

import (
	"github.com/labstack/echo/v4"

	"github.com/faizanhere221/infoish-marketplace/internal/handler"
	"github.com/faizanhere221/infoish-marketplace/internal/middleware"
)

// RegisterAdmin registers the operator endpoints under /api/admin. All
// routes sit behind the static admin bearer token, compared in constant
// time.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, adminToken string) {
	g := e.Group("/api/admin", middleware.AdminAuth(adminToken))

	g.POST("/activate-subscription", a.ActivateSubscription)

	g.GET("/contact-submissions", a.ListContacts)
	g.PATCH("/contact-submissions/:id", a.UpdateContactStatus)
	g.DELETE("/contact-submissions/:id", a.DeleteContact)

	g.GET("/newsletter-subscriptions", a.ListNewsletter)
	g.GET("/payment-submissions", a.ListPayments)
}
