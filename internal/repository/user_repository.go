package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/faizanhere221/infoish-marketplace/internal/utils"
)

// User mirrors the 'users' table. PasswordHash is never serialized; the
// tier map (product slug -> tier name) lives in the tool_subscriptions
// JSON column and is only ever merged, never replaced.
type User struct {
	ID                uint64            `json:"id"`
	Email             string            `json:"email"`
	PasswordHash      string            `json:"-"`
	UserType          string            `json:"user_type"`
	EmailVerified     bool              `json:"email_verified"`
	IsActive          bool              `json:"is_active"`
	ToolSubscriptions map[string]string `json:"tool_subscriptions"`
	SubscriptionStart *time.Time        `json:"subscription_start,omitempty"`
	SubscriptionEnd   *time.Time        `json:"subscription_end,omitempty"`
	LastLoginAt       *time.Time        `json:"last_login_at,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")

const userCols = "id,email,password_hash,user_type,email_verified,is_active,tool_subscriptions,subscription_start,subscription_end,last_login_at,created_at,updated_at"

// Create inserts a user and returns its ID. Email is normalized to
// lowercase before insert; the unique index makes duplicates race-safe.
func (r *UserRepo) Create(ctx context.Context, email, password, userType string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, user_type, email_verified, is_active, tool_subscriptions) VALUES (?,?,?,false,true,'{}')",
		email, hash, userType)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE id=? LIMIT 1", id))
}

func (r *UserRepo) scanOne(row *sql.Row) (User, error) {
	var u User
	var subs []byte
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.UserType, &u.EmailVerified, &u.IsActive,
		&subs, &u.SubscriptionStart, &u.SubscriptionEnd, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return u, err
	}
	u.ToolSubscriptions = map[string]string{}
	if err := decodeJSON(subs, &u.ToolSubscriptions); err != nil {
		return u, err
	}
	return u, nil
}

// TouchLastLogin stamps last_login_at for a successful login.
func (r *UserRepo) TouchLastLogin(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET last_login_at=UTC_TIMESTAMP() WHERE id=?", id)
	return err
}

// mergeTier returns a copy of the tier map with {slug: tier} merged in.
// Last write wins on the single key; every other key is preserved.
func mergeTier(existing map[string]string, slug, tier string) map[string]string {
	merged := make(map[string]string, len(existing)+1)
	for k, v := range existing {
		merged[k] = v
	}
	merged[slug] = tier
	return merged
}

// ActivateSubscription merges {productSlug: tier} into the user's tier map
// and stamps the subscription window, all inside one transaction with the
// row locked, so two concurrent activations cannot drop each other's keys.
// It returns the merged map and the user's id. sql.ErrNoRows is returned
// when no user with that email exists.
func (r *UserRepo) ActivateSubscription(ctx context.Context, email, productSlug, tier string, start, end time.Time) (uint64, map[string]string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var id uint64
	var subs []byte
	err = tx.QueryRowContext(ctx,
		"SELECT id, tool_subscriptions FROM users WHERE email=? FOR UPDATE", email).
		Scan(&id, &subs)
	if err != nil {
		return 0, nil, err
	}
	existing := map[string]string{}
	if err := decodeJSON(subs, &existing); err != nil {
		return 0, nil, err
	}
	merged := mergeTier(existing, productSlug, tier)
	enc, err := encodeJSON(merged)
	if err != nil {
		return 0, nil, err
	}
	_, err = tx.ExecContext(ctx,
		"UPDATE users SET tool_subscriptions=?, subscription_start=?, subscription_end=?, updated_at=UTC_TIMESTAMP() WHERE id=?",
		enc, start, end, id)
	if err != nil {
		return 0, nil, err
	}
	if err := tx.Commit(); err != nil {
		return 0, nil, err
	}
	return id, merged, nil
}
