package handler

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/faizanhere221/infoish-marketplace/internal/config"
	"github.com/faizanhere221/infoish-marketplace/internal/repository"
)

// CreatorHandler serves CRUD for creator profiles and their platform sets.
type CreatorHandler struct {
	Cfg      config.Config
	Creators *repository.CreatorRepo
}

func NewCreatorHandler(cfg config.Config, cr *repository.CreatorRepo) *CreatorHandler {
	return &CreatorHandler{Cfg: cfg, Creators: cr}
}

// List handles GET /api/creators with offset/limit pagination.
func (h *CreatorHandler) List(c echo.Context) error {
	limit, offset := parsePagination(c)
	items, total, err := h.Creators.List(c.Request().Context(), limit, offset)
	if err != nil {
		return internalError(c, h.Cfg, "failed to fetch creators", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"creators": items, "total": total, "limit": limit, "offset": offset,
	})
}

// Get handles GET /api/creators/:id and includes the platform rows.
func (h *CreatorHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	cr, err := h.Creators.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "creator not found"})
		}
		return internalError(c, h.Cfg, "failed to fetch creator", err)
	}
	platforms, err := h.Creators.ListPlatforms(c.Request().Context(), id)
	if err != nil {
		return internalError(c, h.Cfg, "failed to fetch creator platforms", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"creator": cr, "platforms": platforms})
}

type createCreatorReq struct {
	UserID      uint64   `json:"user_id"`
	Username    string   `json:"username"`
	DisplayName string   `json:"display_name"`
	Bio         *string  `json:"bio"`
	Country     *string  `json:"country"`
	Niches      []string `json:"niches"`
	IsAvailable bool     `json:"is_available"`
	MinBudget   *int64   `json:"min_budget"`
}

// Create handles POST /api/creators.
func (h *CreatorHandler) Create(c echo.Context) error {
	var req createCreatorReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	m := missingFields("username", req.Username, "display_name", req.DisplayName)
	if req.UserID == 0 {
		m = append([]string{"user_id"}, m...)
	}
	if len(m) > 0 {
		return badRequestMissing(c, m)
	}
	cr := &repository.Creator{
		UserID:      req.UserID,
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		Country:     req.Country,
		Niches:      req.Niches,
		IsAvailable: req.IsAvailable,
		MinBudget:   req.MinBudget,
	}
	if err := h.Creators.Create(c.Request().Context(), cr); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "creator profile already exists"})
		}
		return internalError(c, h.Cfg, "failed to create creator", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"creator": cr})
}

type updateCreatorReq struct {
	Username    *string `json:"username"`
	DisplayName *string `json:"display_name"`
	Bio         *string `json:"bio"`
	Country     *string `json:"country"`
	IsAvailable *bool   `json:"is_available"`
	MinBudget   *int64  `json:"min_budget"`
}

// Update handles PATCH /api/creators/:id with a partial field merge; only
// the provided fields change and updated_at is always stamped.
func (h *CreatorHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateCreatorReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if _, err := h.Creators.GetByID(c.Request().Context(), id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "creator not found"})
		}
		return internalError(c, h.Cfg, "failed to fetch creator", err)
	}
	fields := map[string]any{}
	if req.Username != nil {
		fields["username"] = *req.Username
	}
	if req.DisplayName != nil {
		fields["display_name"] = *req.DisplayName
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.Country != nil {
		fields["country"] = *req.Country
	}
	if req.IsAvailable != nil {
		fields["is_available"] = *req.IsAvailable
	}
	if req.MinBudget != nil {
		fields["min_budget"] = *req.MinBudget
	}
	if err := h.Creators.Update(c.Request().Context(), id, fields); err != nil {
		return internalError(c, h.Cfg, "failed to update creator", err)
	}
	cr, err := h.Creators.GetByID(c.Request().Context(), id)
	if err != nil {
		return internalError(c, h.Cfg, "failed to reload creator", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"creator": cr})
}

// Delete handles DELETE /api/creators/:id.
func (h *CreatorHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Creators.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "creator not found"})
		}
		return internalError(c, h.Cfg, "failed to delete creator", err)
	}
	return c.NoContent(http.StatusNoContent)
}

type platformReq struct {
	Platform         string  `json:"platform"`
	PlatformUsername *string `json:"platform_username"`
	PlatformURL      *string `json:"platform_url"`
	Followers        int64   `json:"followers"`
}

// ReplacePlatforms handles PUT /api/creators/:id/platforms. The platform
// set is replaced wholesale and total_followers recomputed in a single
// transaction; there is no partial-update path.
func (h *CreatorHandler) ReplacePlatforms(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Platforms []platformReq `json:"platforms"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if _, err := h.Creators.GetByID(c.Request().Context(), id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "creator not found"})
		}
		return internalError(c, h.Cfg, "failed to fetch creator", err)
	}
	platforms := make([]repository.CreatorPlatform, 0, len(body.Platforms))
	for _, p := range body.Platforms {
		if p.Platform == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "platform is required for every entry"})
		}
		platforms = append(platforms, repository.CreatorPlatform{
			Platform:         p.Platform,
			PlatformUsername: p.PlatformUsername,
			PlatformURL:      p.PlatformURL,
			Followers:        p.Followers,
		})
	}
	total, err := h.Creators.ReplacePlatforms(c.Request().Context(), id, platforms)
	if err != nil {
		return internalError(c, h.Cfg, "failed to update platforms", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":         "platforms updated successfully",
		"total_followers": total,
	})
}
