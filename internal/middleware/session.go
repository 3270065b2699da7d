package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/faizanhere221/infoish-marketplace/internal/utils"
)

// SessionAuth returns an Echo middleware that validates a Bearer session
// token and injects the token's identity claims into the request context.
// The provided secret must match the one used when issuing tokens. Handlers
// behind this middleware can read `user_id`, `email`, `user_type` and
// `profile_id` via c.Get(). A missing or malformed header is rejected with
// 401 before any downstream work happens.
func SessionAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := utils.ParseSessionToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set("user_id", claims.UserID)
			c.Set("email", claims.Email)
			c.Set("user_type", claims.UserType)
			c.Set("profile_id", claims.ProfileID)
			return next(c)
		}
	}
}

// RequireUserType returns a middleware that enforces that the authenticated
// user has one of the given types ("creator" or "brand"). It assumes
// SessionAuth already stored the type in the context. Requests from other
// types are rejected with 403.
func RequireUserType(types ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(types))
	for _, t := range types {
		allowed[t] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v := c.Get("user_type")
			ut, ok := v.(string)
			if !ok || !allowed[ut] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
