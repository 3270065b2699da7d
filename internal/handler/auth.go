package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/faizanhere221/infoish-marketplace/internal/config"
	"github.com/faizanhere221/infoish-marketplace/internal/repository"
	"github.com/faizanhere221/infoish-marketplace/internal/utils"
)

// sessionCookie is the client-held credential; the signed token inside it
// is the only state carried between requests.
const sessionCookie = "auth_token"

// AuthHandler bundles dependencies for session endpoints.
type AuthHandler struct {
	Cfg      config.Config
	Users    *repository.UserRepo
	Creators *repository.CreatorRepo
	Brands   *repository.BrandRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, cr *repository.CreatorRepo, b *repository.BrandRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Creators: cr, Brands: b}
}

// ----- DTOs -----

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"user_type"` // creator | brand
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register: validate, hash and create the user. No session is issued here;
// the client logs in afterwards.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if m := missingFields("email", req.Email, "password", req.Password, "user_type", req.UserType); len(m) > 0 {
		return badRequestMissing(c, m)
	}
	if req.UserType != "creator" && req.UserType != "brand" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": `invalid user_type, must be "creator" or "brand"`})
	}
	if !validEmail(req.Email) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email format"})
	}
	if len(req.Password) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 8 characters"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Email, req.Password, req.UserType, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "user with this email already exists"})
		}
		return internalError(c, h.Cfg, "failed to create user", err)
	}
	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return internalError(c, h.Cfg, "failed to load user", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "user registered successfully",
		"user":    u,
	})
}

// Login: verify credentials, stamp last login, load the role profile and
// issue a 7-day session token both in the body and as the auth_token
// cookie. Unknown email and wrong password produce byte-identical
// responses so accounts cannot be enumerated.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if m := missingFields("email", req.Email, "password", req.Password); len(m) > 0 {
		return badRequestMissing(c, m)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid email or password"})
		}
		return internalError(c, h.Cfg, "login query failed", err)
	}
	if !u.IsActive {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "account is deactivated, please contact support"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid email or password"})
	}

	if err := h.Users.TouchLastLogin(ctx, u.ID); err != nil {
		return internalError(c, h.Cfg, "failed to update last login", err)
	}

	// Role-specific profile; a user who has not completed one yet simply
	// gets a null profile and a zero profile_id claim.
	var profile any
	var profileID uint64
	switch u.UserType {
	case "creator":
		if p, err := h.Creators.GetByUserID(ctx, u.ID); err == nil {
			profile, profileID = p, p.ID
		} else if err != sql.ErrNoRows {
			return internalError(c, h.Cfg, "failed to load creator profile", err)
		}
	case "brand":
		if p, err := h.Brands.GetByUserID(ctx, u.ID); err == nil {
			profile, profileID = p, p.ID
		} else if err != sql.ErrNoRows {
			return internalError(c, h.Cfg, "failed to load brand profile", err)
		}
	}

	tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, utils.SessionClaims{
		UserID:    u.ID,
		Email:     u.Email,
		UserType:  u.UserType,
		ProfileID: profileID,
	}, h.Cfg.TokenTTLDays)
	if err != nil {
		return internalError(c, h.Cfg, "failed to issue session token", err)
	}

	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    tok.Token,
		HttpOnly: true,
		Secure:   h.Cfg.IsProd(),
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   h.Cfg.TokenTTLDays * 24 * 3600,
		Expires:  tok.Exp,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"message": "login successful",
		"user":    u,
		"profile": profile,
		"token":   tok.Token,
	})
}

// Me echoes the identity claims of the current session (protected).
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"user_id":    c.Get("user_id"),
		"email":      c.Get("email"),
		"user_type":  c.Get("user_type"),
		"profile_id": c.Get("profile_id"),
	})
}

// Logout clears the session cookie. Tokens are stateless, so there is
// nothing to revoke server-side; expiry does the rest.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		HttpOnly: true,
		Secure:   h.Cfg.IsProd(),
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})
	return c.NoContent(http.StatusNoContent)
}
