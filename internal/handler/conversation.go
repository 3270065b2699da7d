package handler

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/faizanhere221/infoish-marketplace/internal/config"
	"github.com/faizanhere221/infoish-marketplace/internal/repository"
)

// ConversationHandler serves conversations and their message threads.
type ConversationHandler struct {
	Cfg           config.Config
	Conversations *repository.ConversationRepo
}

func NewConversationHandler(cfg config.Config, cv *repository.ConversationRepo) *ConversationHandler {
	return &ConversationHandler{Cfg: cfg, Conversations: cv}
}

// List handles GET /api/conversations with optional creator_id/brand_id
// filters.
func (h *ConversationHandler) List(c echo.Context) error {
	limit, offset := parsePagination(c)
	creatorID, _ := strconv.ParseUint(c.QueryParam("creator_id"), 10, 64)
	brandID, _ := strconv.ParseUint(c.QueryParam("brand_id"), 10, 64)
	items, total, err := h.Conversations.List(c.Request().Context(), creatorID, brandID, limit, offset)
	if err != nil {
		return internalError(c, h.Cfg, "failed to fetch conversations", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"conversations": items, "total": total, "limit": limit, "offset": offset,
	})
}

type createConversationReq struct {
	CreatorID uint64 `json:"creator_id"`
	BrandID   uint64 `json:"brand_id"`
}

// Create handles POST /api/conversations. The creator/brand pair maps to
// at most one conversation, so an existing one is returned rather than
// duplicated.
func (h *ConversationHandler) Create(c echo.Context) error {
	var req createConversationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	var m []string
	if req.CreatorID == 0 {
		m = append(m, "creator_id")
	}
	if req.BrandID == 0 {
		m = append(m, "brand_id")
	}
	if len(m) > 0 {
		return badRequestMissing(c, m)
	}
	cv, created, err := h.Conversations.GetOrCreate(c.Request().Context(), req.CreatorID, req.BrandID)
	if err != nil {
		return internalError(c, h.Cfg, "failed to create conversation", err)
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, echo.Map{"conversation": cv})
}

// Get handles GET /api/conversations/:id.
func (h *ConversationHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	cv, err := h.Conversations.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "conversation not found"})
		}
		return internalError(c, h.Cfg, "failed to fetch conversation", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"conversation": cv})
}

// Delete handles DELETE /api/conversations/:id.
func (h *ConversationHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Conversations.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "conversation not found"})
		}
		return internalError(c, h.Cfg, "failed to delete conversation", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListMessages handles GET /api/conversations/:id/messages; messages come
// back in chronological order.
func (h *ConversationHandler) ListMessages(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, err := h.Conversations.GetByID(c.Request().Context(), id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "conversation not found"})
		}
		return internalError(c, h.Cfg, "failed to fetch conversation", err)
	}
	msgs, err := h.Conversations.ListMessages(c.Request().Context(), id)
	if err != nil {
		return internalError(c, h.Cfg, "failed to fetch messages", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"messages": msgs})
}

type createMessageReq struct {
	SenderID    uint64                  `json:"sender_id"`
	SenderType  string                  `json:"sender_type"`
	Content     string                  `json:"content"`
	Attachments []repository.Attachment `json:"attachments"`
}

// CreateMessage handles POST /api/conversations/:id/messages.
func (h *ConversationHandler) CreateMessage(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req createMessageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	m := missingFields("sender_type", req.SenderType, "content", req.Content)
	if req.SenderID == 0 {
		m = append([]string{"sender_id"}, m...)
	}
	if len(m) > 0 {
		return badRequestMissing(c, m)
	}
	if req.SenderType != "creator" && req.SenderType != "brand" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": `invalid sender_type, must be "creator" or "brand"`})
	}
	if _, err := h.Conversations.GetByID(c.Request().Context(), id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "conversation not found"})
		}
		return internalError(c, h.Cfg, "failed to fetch conversation", err)
	}
	msg := &repository.Message{
		ConversationID: id,
		SenderID:       req.SenderID,
		SenderType:     req.SenderType,
		Content:        req.Content,
		Attachments:    req.Attachments,
	}
	if err := h.Conversations.CreateMessage(c.Request().Context(), msg); err != nil {
		return internalError(c, h.Cfg, "failed to create message", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": msg})
}
