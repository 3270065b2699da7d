package handler

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/faizanhere221/infoish-marketplace/internal/config"
	"github.com/faizanhere221/infoish-marketplace/internal/queue"
	"github.com/faizanhere221/infoish-marketplace/internal/repository"
	publisher "github.com/faizanhere221/infoish-marketplace/internal/service"
)

// DealHandler serves deal CRUD and the status workflow
// (accept, deliver, approve).
type DealHandler struct {
	Cfg           config.Config
	Deals         *repository.DealRepo
	Conversations *repository.ConversationRepo
}

func NewDealHandler(cfg config.Config, d *repository.DealRepo, cv *repository.ConversationRepo) *DealHandler {
	return &DealHandler{Cfg: cfg, Deals: d, Conversations: cv}
}

// List handles GET /api/deals with creator_id/brand_id/status filters.
func (h *DealHandler) List(c echo.Context) error {
	limit, offset := parsePagination(c)
	creatorID, _ := strconv.ParseUint(c.QueryParam("creator_id"), 10, 64)
	brandID, _ := strconv.ParseUint(c.QueryParam("brand_id"), 10, 64)
	status := c.QueryParam("status")
	items, total, err := h.Deals.List(c.Request().Context(), creatorID, brandID, status, limit, offset)
	if err != nil {
		return internalError(c, h.Cfg, "failed to fetch deals", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"deals": items, "total": total, "limit": limit, "offset": offset,
	})
}

type createDealReq struct {
	ConversationID *uint64 `json:"conversation_id"`
	CreatorID      uint64  `json:"creator_id"`
	BrandID        uint64  `json:"brand_id"`
	Title          string  `json:"title"`
	Description    *string `json:"description"`
	AmountCents    int64   `json:"amount_cents"`
	Currency       string  `json:"currency"`
}

// Create handles POST /api/deals. New deals always start as pending.
func (h *DealHandler) Create(c echo.Context) error {
	var req createDealReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	m := missingFields("title", req.Title)
	if req.BrandID == 0 {
		m = append([]string{"brand_id"}, m...)
	}
	if req.CreatorID == 0 {
		m = append([]string{"creator_id"}, m...)
	}
	if len(m) > 0 {
		return badRequestMissing(c, m)
	}
	if req.AmountCents < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount_cents must not be negative"})
	}
	d := &repository.Deal{
		ConversationID: req.ConversationID,
		CreatorID:      req.CreatorID,
		BrandID:        req.BrandID,
		Title:          req.Title,
		Description:    req.Description,
		AmountCents:    req.AmountCents,
		Currency:       req.Currency,
	}
	if err := h.Deals.Create(c.Request().Context(), d); err != nil {
		return internalError(c, h.Cfg, "failed to create deal", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"deal": d})
}

// Get handles GET /api/deals/:id.
func (h *DealHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	d, err := h.Deals.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "deal not found"})
		}
		return internalError(c, h.Cfg, "failed to fetch deal", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deal": d})
}

type updateDealReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	AmountCents *int64  `json:"amount_cents"`
	Currency    *string `json:"currency"`
}

// Update handles PATCH /api/deals/:id with a partial field merge. Status
// never changes here; the workflow endpoints own transitions.
func (h *DealHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateDealReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if _, err := h.Deals.GetByID(c.Request().Context(), id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "deal not found"})
		}
		return internalError(c, h.Cfg, "failed to fetch deal", err)
	}
	fields := map[string]any{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.AmountCents != nil {
		fields["amount_cents"] = *req.AmountCents
	}
	if req.Currency != nil {
		fields["currency"] = *req.Currency
	}
	if err := h.Deals.Update(c.Request().Context(), id, fields); err != nil {
		return internalError(c, h.Cfg, "failed to update deal", err)
	}
	d, err := h.Deals.GetByID(c.Request().Context(), id)
	if err != nil {
		return internalError(c, h.Cfg, "failed to reload deal", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deal": d})
}

// Delete handles DELETE /api/deals/:id.
func (h *DealHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Deals.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "deal not found"})
		}
		return internalError(c, h.Cfg, "failed to delete deal", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Accept handles POST /api/deals/:id/accept. The pending -> in_progress
// flip happens as one conditional update, so a double accept loses
// cleanly. On success a system message lands in the deal's conversation;
// a failure there is logged but never undoes the accepted deal.
func (h *DealHandler) Accept(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	won, err := h.Deals.AcceptPending(ctx, id)
	if err != nil {
		return internalError(c, h.Cfg, "failed to accept deal", err)
	}
	d, err := h.Deals.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "deal not found"})
		}
		return internalError(c, h.Cfg, "failed to fetch deal", err)
	}
	if !won {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot accept deal with status: " + d.Status})
	}

	if d.ConversationID != nil {
		msg := &repository.Message{
			ConversationID:  *d.ConversationID,
			SenderID:        d.CreatorID,
			SenderType:      "creator",
			Content:         "Deal accepted! Work has begun on: " + d.Title,
			IsSystemMessage: true,
		}
		if err := h.Conversations.CreateMessage(ctx, msg); err != nil {
			log.Printf("deal %d accepted but system message failed: %v", d.ID, err)
		}
	}

	acceptedAt := time.Now().UTC()
	if d.AcceptedAt != nil {
		acceptedAt = *d.AcceptedAt
	}
	if err := publisher.PublishDealAccepted(ctx, queue.DealAcceptedEvent{
		DealID:         d.ID,
		ConversationID: d.ConversationID,
		CreatorID:      d.CreatorID,
		BrandID:        d.BrandID,
		Title:          d.Title,
		AmountCents:    d.AmountCents,
		Currency:       d.Currency,
		AcceptedAt:     acceptedAt.Format(time.RFC3339),
	}); err != nil {
		log.Printf("deal %d accepted but event publish failed: %v", d.ID, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "deal accepted", "deal": d})
}

type deliverDealReq struct {
	DeliveryURL   *string `json:"delivery_url"`
	DeliveryNotes *string `json:"delivery_notes"`
}

// Deliver handles POST /api/deals/:id/deliver, the in_progress ->
// delivered transition.
func (h *DealHandler) Deliver(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req deliverDealReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx := c.Request().Context()
	won, err := h.Deals.DeliverInProgress(ctx, id, req.DeliveryURL, req.DeliveryNotes)
	if err != nil {
		return internalError(c, h.Cfg, "failed to deliver deal", err)
	}
	d, err := h.Deals.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "deal not found"})
		}
		return internalError(c, h.Cfg, "failed to fetch deal", err)
	}
	if !won {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot deliver deal with status: " + d.Status})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deal delivered", "deal": d})
}

// Approve handles POST /api/deals/:id/approve, the delivered ->
// completed transition. The creator's completed_deals counter moves in
// the same transaction.
func (h *DealHandler) Approve(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	won, err := h.Deals.ApproveDelivered(ctx, id)
	if err != nil {
		return internalError(c, h.Cfg, "failed to approve deal", err)
	}
	d, err := h.Deals.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "deal not found"})
		}
		return internalError(c, h.Cfg, "failed to fetch deal", err)
	}
	if !won {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot approve deal with status: " + d.Status})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deal completed", "deal": d})
}
