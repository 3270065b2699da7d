package handler // handler defines http handlers

import (
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/faizanhere221/infoish-marketplace/internal/config"
)

// Pagination defaults for every list endpoint.
const (
	defaultLimit = 20
	maxLimit     = 100
)

// emailPattern is the minimal shape check applied to every email input.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validEmail(s string) bool { return emailPattern.MatchString(s) }

// parsePagination reads ?limit= and ?offset= with defaults 20/0. Nonsense
// values fall back to the defaults; limit is capped to keep list queries
// bounded.
func parsePagination(c echo.Context) (int, int) {
	limit := defaultLimit
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := 0
	if v := c.QueryParam("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// missingFields returns the names whose values are empty, in the order
// given. Used to build the 400 body that lists every missing required
// field at once.
func missingFields(pairs ...string) []string {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	return missing
}

// badRequestMissing responds with a 400 naming all missing fields.
func badRequestMissing(c echo.Context, missing []string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"error": "missing required fields: " + strings.Join(missing, ", "),
	})
}

// internalError logs the underlying store/upstream failure and surfaces a
// generic 500. The raw error string is attached as details only outside
// production.
func internalError(c echo.Context, cfg config.Config, msg string, err error) error {
	log.Printf("%s: %v", msg, err)
	if cfg.IsProd() {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msg})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": msg, "details": err.Error()})
}
