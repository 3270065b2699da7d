package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// Creator mirrors the 'creators' table. Each creator is owned one-to-one
// by a user via UserID. TotalFollowers is a derived aggregate recomputed
// whenever the platform set is replaced.
type Creator struct {
	ID                 uint64    `json:"id"`
	UserID             uint64    `json:"user_id"`
	Username           string    `json:"username"`
	DisplayName        string    `json:"display_name"`
	Bio                *string   `json:"bio"`
	Country            *string   `json:"country"`
	Niches             []string  `json:"niches"`
	VerificationStatus string    `json:"verification_status"`
	TotalFollowers     int64     `json:"total_followers"`
	CompletedDeals     int64     `json:"completed_deals"`
	IsAvailable        bool      `json:"is_available"`
	MinBudget          *int64    `json:"min_budget"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CreatorPlatform mirrors the 'creator_platforms' table. The platform set
// for a creator is only ever replaced wholesale, never patched row by row.
type CreatorPlatform struct {
	ID               uint64    `json:"id"`
	CreatorID        uint64    `json:"creator_id"`
	Platform         string    `json:"platform"`
	PlatformUsername *string   `json:"platform_username"`
	PlatformURL      *string   `json:"platform_url"`
	Followers        int64     `json:"followers"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type CreatorRepo struct{ DB *sql.DB }

func NewCreatorRepo(db *sql.DB) *CreatorRepo { return &CreatorRepo{DB: db} }

const creatorCols = "id,user_id,username,display_name,bio,country,niches,verification_status,total_followers,completed_deals,is_available,min_budget,created_at,updated_at"

// Create inserts a creator profile and populates the generated ID.
func (r *CreatorRepo) Create(ctx context.Context, cr *Creator) error {
	if cr.VerificationStatus == "" {
		cr.VerificationStatus = "pending"
	}
	niches, err := encodeJSON(cr.Niches)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO creators (user_id, username, display_name, bio, country, niches, verification_status, is_available, min_budget) VALUES (?,?,?,?,?,?,?,?,?)",
		cr.UserID, cr.Username, cr.DisplayName, cr.Bio, cr.Country, niches, cr.VerificationStatus, cr.IsAvailable, cr.MinBudget)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	cr.ID = uint64(id)
	return nil
}

// GetByID fetches a creator by id; sql.ErrNoRows on miss.
func (r *CreatorRepo) GetByID(ctx context.Context, id uint64) (Creator, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+creatorCols+" FROM creators WHERE id=? LIMIT 1", id))
}

// GetByUserID fetches the creator profile owned by a user.
func (r *CreatorRepo) GetByUserID(ctx context.Context, userID uint64) (Creator, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+creatorCols+" FROM creators WHERE user_id=? LIMIT 1", userID))
}

func (r *CreatorRepo) scanOne(row *sql.Row) (Creator, error) {
	var cr Creator
	var niches []byte
	err := row.Scan(&cr.ID, &cr.UserID, &cr.Username, &cr.DisplayName, &cr.Bio, &cr.Country,
		&niches, &cr.VerificationStatus, &cr.TotalFollowers, &cr.CompletedDeals,
		&cr.IsAvailable, &cr.MinBudget, &cr.CreatedAt, &cr.UpdatedAt)
	if err != nil {
		return cr, err
	}
	cr.Niches = []string{}
	if err := decodeJSON(niches, &cr.Niches); err != nil {
		return cr, err
	}
	return cr, nil
}

// List returns a page of creators ordered newest first plus the total count.
func (r *CreatorRepo) List(ctx context.Context, limit, offset int) ([]Creator, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM creators").Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+creatorCols+" FROM creators ORDER BY created_at DESC LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items := make([]Creator, 0)
	for rows.Next() {
		var cr Creator
		var niches []byte
		if err := rows.Scan(&cr.ID, &cr.UserID, &cr.Username, &cr.DisplayName, &cr.Bio, &cr.Country,
			&niches, &cr.VerificationStatus, &cr.TotalFollowers, &cr.CompletedDeals,
			&cr.IsAvailable, &cr.MinBudget, &cr.CreatedAt, &cr.UpdatedAt); err != nil {
			return nil, 0, err
		}
		cr.Niches = []string{}
		if err := decodeJSON(niches, &cr.Niches); err != nil {
			return nil, 0, err
		}
		items = append(items, cr)
	}
	return items, total, rows.Err()
}

// Update applies a partial field merge. fields maps whitelisted column
// names to new values; callers are responsible for the whitelist.
// updated_at is always stamped. An empty map is a no-op.
func (r *CreatorRepo) Update(ctx context.Context, id uint64, fields map[string]any) error {
	return partialUpdate(ctx, r.DB, "creators", id, fields)
}

// Delete removes a creator row; ErrNotFound when nothing was deleted.
func (r *CreatorRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM creators WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListPlatforms returns the platform rows for a creator.
func (r *CreatorRepo) ListPlatforms(ctx context.Context, creatorID uint64) ([]CreatorPlatform, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,creator_id,platform,platform_username,platform_url,followers,created_at,updated_at FROM creator_platforms WHERE creator_id=? ORDER BY followers DESC, id",
		creatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]CreatorPlatform, 0)
	for rows.Next() {
		var p CreatorPlatform
		if err := rows.Scan(&p.ID, &p.CreatorID, &p.Platform, &p.PlatformUsername, &p.PlatformURL,
			&p.Followers, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// SumFollowers computes the derived total_followers aggregate for a
// platform set.
func SumFollowers(platforms []CreatorPlatform) int64 {
	var total int64
	for _, p := range platforms {
		total += p.Followers
	}
	return total
}

// ReplacePlatforms swaps the creator's whole platform set and recomputes
// total_followers inside a single transaction, so readers never observe an
// empty platform list or a stale aggregate. Returns the new total.
func (r *CreatorRepo) ReplacePlatforms(ctx context.Context, creatorID uint64, platforms []CreatorPlatform) (int64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM creator_platforms WHERE creator_id=?", creatorID); err != nil {
		return 0, err
	}
	if len(platforms) > 0 {
		q := "INSERT INTO creator_platforms (creator_id, platform, platform_username, platform_url, followers) VALUES "
		args := make([]any, 0, len(platforms)*5)
		for i, p := range platforms {
			if i > 0 {
				q += ","
			}
			q += "(?,?,?,?,?)"
			args = append(args, creatorID, p.Platform, p.PlatformUsername, p.PlatformURL, p.Followers)
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return 0, err
		}
	}
	total := SumFollowers(platforms)
	if _, err := tx.ExecContext(ctx,
		"UPDATE creators SET total_followers=?, updated_at=UTC_TIMESTAMP() WHERE id=?", total, creatorID); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return total, nil
}
