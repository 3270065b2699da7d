package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/faizanhere221/infoish-marketplace/internal/config"
)

// ProxyHandler forwards search, favorites, API-key and third-party auth
// requests to the external backend. It is a thin pass-through: the
// Authorization header travels verbatim and the backend's status code and
// body come back byte-for-byte. No retries.
type ProxyHandler struct {
	Cfg    config.Config
	Client *http.Client
}

func NewProxyHandler(cfg config.Config) *ProxyHandler {
	return &ProxyHandler{
		Cfg:    cfg,
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Search handles GET /api/search, forwarding the raw query string.
func (h *ProxyHandler) Search(c echo.Context) error {
	path := "/search/influencers"
	if q := c.QueryString(); q != "" {
		path += "?" + q
	}
	return h.forward(c, path, true)
}

// ListFavorites handles GET /api/favorites.
func (h *ProxyHandler) ListFavorites(c echo.Context) error {
	return h.forward(c, "/favorites", true)
}

// AddFavorite handles POST /api/favorites.
func (h *ProxyHandler) AddFavorite(c echo.Context) error {
	return h.forward(c, "/favorites", true)
}

// RemoveFavorite handles DELETE /api/favorites/:id.
func (h *ProxyHandler) RemoveFavorite(c echo.Context) error {
	return h.forward(c, "/favorites/"+c.Param("id"), true)
}

// ListKeys handles GET /api/keys.
func (h *ProxyHandler) ListKeys(c echo.Context) error {
	return h.forward(c, "/api-keys", true)
}

// CreateKey handles POST /api/keys.
func (h *ProxyHandler) CreateKey(c echo.Context) error {
	return h.forward(c, "/api-keys", true)
}

// DeleteKey handles DELETE /api/keys/:id.
func (h *ProxyHandler) DeleteKey(c echo.Context) error {
	return h.forward(c, "/api-keys/"+c.Param("id"), true)
}

// GoogleAuth handles POST /api/auth/google. This is the one proxied route
// that needs no Authorization header, since it is itself a login path.
func (h *ProxyHandler) GoogleAuth(c echo.Context) error {
	return h.forward(c, "/auth/google", false)
}

// forward relays the inbound request to BACKEND_URL+path. When
// requireAuth is set and no Authorization header is present the request
// is rejected before the backend is ever contacted.
func (h *ProxyHandler) forward(c echo.Context, path string, requireAuth bool) error {
	auth := c.Request().Header.Get("Authorization")
	if requireAuth && auth == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization header"})
	}

	req, err := http.NewRequestWithContext(c.Request().Context(),
		c.Request().Method, h.Cfg.BackendURL+path, c.Request().Body)
	if err != nil {
		return internalError(c, h.Cfg, "failed to build backend request", err)
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	if ct := c.Request().Header.Get("Content-Type"); ct != "" {
		req.Header.Set("Content-Type", ct)
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "backend unreachable"})
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "backend unreachable"})
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = echo.MIMEApplicationJSON
	}
	return c.Blob(resp.StatusCode, contentType, body)
}
