package utils // package utils provides helpers for session token creation and password hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// SessionToken represents a signed JWT session token along with its expiry.
// The Token field contains the JWT string. Exp stores the expiration time.
// The same token is returned in the login response body and set as the
// auth_token cookie.
type SessionToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// SessionClaims is the identity embedded into a session token. ProfileID is
// the id of the role-specific profile row (creators or brands) and is zero
// when the user has not completed a profile yet.
type SessionClaims struct {
	UserID    uint64
	Email     string
	UserType  string
	ProfileID uint64
}

// NewSessionToken builds and signs an HS256 JWT for a user. ttlDays controls
// the token lifetime; the platform issues 7-day sessions. The claims carry
// user_id, email, user_type and profile_id plus standard exp/iat.
func NewSessionToken(secret string, claims SessionClaims, ttlDays int) (SessionToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlDays) * 24 * time.Hour)
	mc := jwt.MapClaims{
		"user_id":    claims.UserID,
		"email":      claims.Email,
		"user_type":  claims.UserType,
		"profile_id": claims.ProfileID,
		"exp":        exp.Unix(),
		"iat":        time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, mc)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken validates a signed session token and extracts its
// identity claims. Only HMAC-signed tokens are accepted; anything else is
// rejected before the signature is checked.
func ParseSessionToken(secret, raw string) (SessionClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return SessionClaims{}, errors.New("invalid token")
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return SessionClaims{}, errors.New("invalid claims")
	}
	var c SessionClaims
	if v, ok := mc["user_id"].(float64); ok {
		c.UserID = uint64(v)
	}
	if v, ok := mc["email"].(string); ok {
		c.Email = v
	}
	if v, ok := mc["user_type"].(string); ok {
		c.UserType = v
	}
	if v, ok := mc["profile_id"].(float64); ok {
		c.ProfileID = uint64(v)
	}
	if c.UserID == 0 {
		return SessionClaims{}, errors.New("missing user_id claim")
	}
	return c, nil
}
