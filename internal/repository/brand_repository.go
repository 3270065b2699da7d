package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// Brand mirrors the 'brands' table; one-to-one with a user via UserID.
type Brand struct {
	ID                 uint64    `json:"id"`
	UserID             uint64    `json:"user_id"`
	CompanyName        string    `json:"company_name"`
	CompanyWebsite     *string   `json:"company_website"`
	Description        *string   `json:"description"`
	Industry           *string   `json:"industry"`
	Country            *string   `json:"country"`
	ContactName        *string   `json:"contact_name"`
	VerificationStatus string    `json:"verification_status"`
	TotalDeals         int64     `json:"total_deals"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type BrandRepo struct{ DB *sql.DB }

func NewBrandRepo(db *sql.DB) *BrandRepo { return &BrandRepo{DB: db} }

const brandCols = "id,user_id,company_name,company_website,description,industry,country,contact_name,verification_status,total_deals,created_at,updated_at"

// Create inserts a brand profile and populates the generated ID.
func (r *BrandRepo) Create(ctx context.Context, b *Brand) error {
	if b.VerificationStatus == "" {
		b.VerificationStatus = "pending"
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO brands (user_id, company_name, company_website, description, industry, country, contact_name, verification_status) VALUES (?,?,?,?,?,?,?,?)",
		b.UserID, b.CompanyName, b.CompanyWebsite, b.Description, b.Industry, b.Country, b.ContactName, b.VerificationStatus)
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
	b.ID = uint64(id)
	return nil
}

// GetByID fetches a brand by id; sql.ErrNoRows on miss.
func (r *BrandRepo) GetByID(ctx context.Context, id uint64) (Brand, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+brandCols+" FROM brands WHERE id=? LIMIT 1", id))
}

// GetByUserID fetches the brand profile owned by a user.
func (r *BrandRepo) GetByUserID(ctx context.Context, userID uint64) (Brand, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+brandCols+" FROM brands WHERE user_id=? LIMIT 1", userID))
}

func (r *BrandRepo) scanOne(row *sql.Row) (Brand, error) {
	var b Brand
	err := row.Scan(&b.ID, &b.UserID, &b.CompanyName, &b.CompanyWebsite, &b.Description,
		&b.Industry, &b.Country, &b.ContactName, &b.VerificationStatus, &b.TotalDeals,
		&b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// List returns a page of brands ordered newest first plus the total count.
func (r *BrandRepo) List(ctx context.Context, limit, offset int) ([]Brand, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM brands").Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+brandCols+" FROM brands ORDER BY created_at DESC LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items := make([]Brand, 0)
	for rows.Next() {
		var b Brand
		if err := rows.Scan(&b.ID, &b.UserID, &b.CompanyName, &b.CompanyWebsite, &b.Description,
			&b.Industry, &b.Country, &b.ContactName, &b.VerificationStatus, &b.TotalDeals,
			&b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, b)
	}
	return items, total, rows.Err()
}

// Update applies a partial field merge; updated_at is always stamped.
func (r *BrandRepo) Update(ctx context.Context, id uint64, fields map[string]any) error {
	return partialUpdate(ctx, r.DB, "brands", id, fields)
}

// Delete removes a brand row; ErrNotFound when nothing was deleted.
func (r *BrandRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM brands WHERE id=?", id)
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
