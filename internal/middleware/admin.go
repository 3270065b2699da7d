package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdminAuth returns a middleware that guards administrative endpoints with
// a shared bearer secret. The full header value is compared against
// "Bearer <token>" in constant time. The middleware fails closed: an empty
// configured token rejects every request rather than letting all through.
func AdminAuth(adminToken string) echo.MiddlewareFunc {
	expected := []byte("Bearer " + adminToken)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got := []byte(c.Request().Header.Get("Authorization"))
			if adminToken == "" || subtle.ConstantTimeCompare(got, expected) != 1 {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			return next(c)
		}
	}
}
