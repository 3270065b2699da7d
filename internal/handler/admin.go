package handler

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/faizanhere221/infoish-marketplace/internal/config"
	"github.com/faizanhere221/infoish-marketplace/internal/repository"
)

// AdminHandler serves the operator-only endpoints: subscription
// activation and the submission listings. All routes sit behind the
// static admin bearer token.
type AdminHandler struct {
	Cfg         config.Config
	Users       *repository.UserRepo
	Submissions *repository.SubmissionRepo
}

func NewAdminHandler(cfg config.Config, u *repository.UserRepo, s *repository.SubmissionRepo) *AdminHandler {
	return &AdminHandler{Cfg: cfg, Users: u, Submissions: s}
}

type activateSubscriptionReq struct {
	UserEmail        string  `json:"user_email"`
	ProductSlug      string  `json:"product_slug"`
	Tier             string  `json:"tier"`
	BillingCycle     string  `json:"billing_cycle"`
	PaymentReference *string `json:"payment_reference"`
	Notes            *string `json:"notes"`
}

// ActivateSubscription handles POST /api/admin/activate-subscription.
// The tier merge and subscription window run in one locked transaction;
// the history row and payment verification are secondary writes whose
// failures are logged, never rolled back.
func (h *AdminHandler) ActivateSubscription(c echo.Context) error {
	var req activateSubscriptionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	m := missingFields("user_email", req.UserEmail, "product_slug", req.ProductSlug, "tier", req.Tier)
	if len(m) > 0 {
		return badRequestMissing(c, m)
	}
	cycle := req.BillingCycle
	if cycle == "" {
		cycle = "monthly"
	}
	if cycle != "monthly" && cycle != "yearly" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": `invalid billing_cycle, must be "monthly" or "yearly"`})
	}

	start := time.Now().UTC()
	end := start.AddDate(0, 1, 0)
	if cycle == "yearly" {
		end = start.AddDate(1, 0, 0)
	}

	ctx := c.Request().Context()
	userID, merged, err := h.Users.ActivateSubscription(ctx, req.UserEmail, req.ProductSlug, req.Tier, start, end)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no user found with that email"})
		}
		return internalError(c, h.Cfg, "failed to activate subscription", err)
	}

	hist := &repository.SubscriptionHistory{
		UserID:           userID,
		UserEmail:        req.UserEmail,
		ProductSlug:      req.ProductSlug,
		Tier:             req.Tier,
		Action:           "activated",
		StartDate:        start,
		EndDate:          end,
		PaymentReference: req.PaymentReference,
		Notes:            req.Notes,
	}
	if err := h.Submissions.AddSubscriptionHistory(ctx, hist); err != nil {
		log.Printf("subscription activated for user %d but history append failed: %v", userID, err)
	}
	if req.PaymentReference != nil && *req.PaymentReference != "" {
		if err := h.Submissions.VerifyPaymentByReference(ctx, *req.PaymentReference); err != nil {
			log.Printf("subscription activated for user %d but payment verify failed: %v", userID, err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":            "subscription activated",
		"user_id":            userID,
		"tool_subscriptions": merged,
		"subscription_start": start,
		"subscription_end":   end,
		"billing_cycle":      cycle,
	})
}

// ListContacts handles GET /api/admin/contact-submissions.
func (h *AdminHandler) ListContacts(c echo.Context) error {
	limit, offset := parsePagination(c)
	items, total, err := h.Submissions.ListContacts(c.Request().Context(), limit, offset)
	if err != nil {
		return internalError(c, h.Cfg, "failed to fetch contact submissions", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"submissions": items, "total": total, "limit": limit, "offset": offset,
	})
}

type contactStatusReq struct {
	Status string `json:"status"`
}

// UpdateContactStatus handles PATCH /api/admin/contact-submissions/:id.
func (h *AdminHandler) UpdateContactStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req contactStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	switch req.Status {
	case "new", "read", "replied":
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": `invalid status, must be "new", "read" or "replied"`})
	}
	if err := h.Submissions.UpdateContactStatus(c.Request().Context(), id, req.Status); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "submission not found"})
		}
		return internalError(c, h.Cfg, "failed to update submission", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "status updated"})
}

// DeleteContact handles DELETE /api/admin/contact-submissions/:id.
func (h *AdminHandler) DeleteContact(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Submissions.DeleteContact(c.Request().Context(), id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "submission not found"})
		}
		return internalError(c, h.Cfg, "failed to delete submission", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListNewsletter handles GET /api/admin/newsletter-subscriptions.
func (h *AdminHandler) ListNewsletter(c echo.Context) error {
	limit, offset := parsePagination(c)
	items, total, err := h.Submissions.ListNewsletter(c.Request().Context(), limit, offset)
	if err != nil {
		return internalError(c, h.Cfg, "failed to fetch newsletter subscriptions", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"subscriptions": items, "total": total, "limit": limit, "offset": offset,
	})
}

// ListPayments handles GET /api/admin/payment-submissions.
func (h *AdminHandler) ListPayments(c echo.Context) error {
	limit, offset := parsePagination(c)
	items, total, err := h.Submissions.ListPayments(c.Request().Context(), limit, offset)
	if err != nil {
		return internalError(c, h.Cfg, "failed to fetch payment submissions", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"payments": items, "total": total, "limit": limit, "offset": offset,
	})
}
