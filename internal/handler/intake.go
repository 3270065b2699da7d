package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/faizanhere221/infoish-marketplace/internal/config"
	"github.com/faizanhere221/infoish-marketplace/internal/queue"
	"github.com/faizanhere221/infoish-marketplace/internal/repository"
	publisher "github.com/faizanhere221/infoish-marketplace/internal/service"
)

// IntakeHandler serves the public contact form and newsletter endpoints.
// These routes need no session.
type IntakeHandler struct {
	Cfg         config.Config
	Submissions *repository.SubmissionRepo
}

func NewIntakeHandler(cfg config.Config, s *repository.SubmissionRepo) *IntakeHandler {
	return &IntakeHandler{Cfg: cfg, Submissions: s}
}

type contactReq struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Company *string `json:"company"`
	Subject string  `json:"subject"`
	Message string  `json:"message"`
}

// SubmitContact handles POST /api/contact. The submission is stored
// first; the notification event is best-effort.
func (h *IntakeHandler) SubmitContact(c echo.Context) error {
	var req contactReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	m := missingFields("name", req.Name, "email", req.Email, "subject", req.Subject, "message", req.Message)
	if len(m) > 0 {
		return badRequestMissing(c, m)
	}
	if !validEmail(req.Email) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email format"})
	}
	s := &repository.ContactSubmission{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.Submissions.CreateContact(c.Request().Context(), s); err != nil {
		return internalError(c, h.Cfg, "failed to submit contact form", err)
	}

	if err := publisher.PublishContactSubmitted(c.Request().Context(), queue.ContactSubmittedEvent{
		SubmissionID: s.ID,
		Name:         s.Name,
		Email:        s.Email,
		Subject:      s.Subject,
		SubmittedAt:  time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		log.Printf("contact submission %d stored but event publish failed: %v", s.ID, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":    "thank you for reaching out, we will get back to you soon",
		"submission": s,
	})
}

type newsletterReq struct {
	Email string `json:"email"`
}

// SubscribeNewsletter handles POST /api/newsletter/subscribe. Subscribing
// an already-active email is a no-op success.
func (h *IntakeHandler) SubscribeNewsletter(c echo.Context) error {
	var req newsletterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if m := missingFields("email", req.Email); len(m) > 0 {
		return badRequestMissing(c, m)
	}
	if !validEmail(req.Email) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email format"})
	}
	if err := h.Submissions.SubscribeNewsletter(c.Request().Context(), req.Email); err != nil {
		return internalError(c, h.Cfg, "failed to subscribe", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "subscribed successfully"})
}

// UnsubscribeNewsletter handles POST /api/newsletter/unsubscribe.
func (h *IntakeHandler) UnsubscribeNewsletter(c echo.Context) error {
	var req newsletterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if m := missingFields("email", req.Email); len(m) > 0 {
		return badRequestMissing(c, m)
	}
	if err := h.Submissions.UnsubscribeNewsletter(c.Request().Context(), req.Email); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "email is not subscribed"})
		}
		return internalError(c, h.Cfg, "failed to unsubscribe", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "unsubscribed successfully"})
}
