package handler

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/faizanhere221/infoish-marketplace/internal/config"
	"github.com/faizanhere221/infoish-marketplace/internal/repository"
)

// BrandHandler serves CRUD for brand profiles.
type BrandHandler struct {
	Cfg    config.Config
	Brands *repository.BrandRepo
}

func NewBrandHandler(cfg config.Config, b *repository.BrandRepo) *BrandHandler {
	return &BrandHandler{Cfg: cfg, Brands: b}
}

// List handles GET /api/brands.
func (h *BrandHandler) List(c echo.Context) error {
	limit, offset := parsePagination(c)
	items, total, err := h.Brands.List(c.Request().Context(), limit, offset)
	if err != nil {
		return internalError(c, h.Cfg, "failed to fetch brands", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"brands": items, "total": total, "limit": limit, "offset": offset,
	})
}

// Get handles GET /api/brands/:id.
func (h *BrandHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	b, err := h.Brands.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "brand not found"})
		}
		return internalError(c, h.Cfg, "failed to fetch brand", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"brand": b})
}

type createBrandReq struct {
	UserID         uint64  `json:"user_id"`
	CompanyName    string  `json:"company_name"`
	CompanyWebsite *string `json:"company_website"`
	Description    *string `json:"description"`
	Industry       *string `json:"industry"`
	Country        *string `json:"country"`
	ContactName    *string `json:"contact_name"`
}

// Create handles POST /api/brands.
func (h *BrandHandler) Create(c echo.Context) error {
	var req createBrandReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	m := missingFields("company_name", req.CompanyName)
	if req.UserID == 0 {
		m = append([]string{"user_id"}, m...)
	}
	if len(m) > 0 {
		return badRequestMissing(c, m)
	}
	b := &repository.Brand{
		UserID:         req.UserID,
		CompanyName:    req.CompanyName,
		CompanyWebsite: req.CompanyWebsite,
		Description:    req.Description,
		Industry:       req.Industry,
		Country:        req.Country,
		ContactName:    req.ContactName,
	}
	if err := h.Brands.Create(c.Request().Context(), b); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "brand profile already exists"})
		}
		return internalError(c, h.Cfg, "failed to create brand", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"brand": b})
}

type updateBrandReq struct {
	CompanyName    *string `json:"company_name"`
	CompanyWebsite *string `json:"company_website"`
	Description    *string `json:"description"`
	Industry       *string `json:"industry"`
	Country        *string `json:"country"`
	ContactName    *string `json:"contact_name"`
}

// Update handles PATCH /api/brands/:id with a partial field merge.
func (h *BrandHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateBrandReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if _, err := h.Brands.GetByID(c.Request().Context(), id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "brand not found"})
		}
		return internalError(c, h.Cfg, "failed to fetch brand", err)
	}
	fields := map[string]any{}
	if req.CompanyName != nil {
		fields["company_name"] = *req.CompanyName
	}
	if req.CompanyWebsite != nil {
		fields["company_website"] = *req.CompanyWebsite
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Industry != nil {
		fields["industry"] = *req.Industry
	}
	if req.Country != nil {
		fields["country"] = *req.Country
	}
	if req.ContactName != nil {
		fields["contact_name"] = *req.ContactName
	}
	if err := h.Brands.Update(c.Request().Context(), id, fields); err != nil {
		return internalError(c, h.Cfg, "failed to update brand", err)
	}
	b, err := h.Brands.GetByID(c.Request().Context(), id)
	if err != nil {
		return internalError(c, h.Cfg, "failed to reload brand", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"brand": b})
}

// Delete handles DELETE /api/brands/:id.
func (h *BrandHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Brands.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "brand not found"})
		}
		return internalError(c, h.Cfg, "failed to delete brand", err)
	}
	return c.NoContent(http.StatusNoContent)
}
