package repository

import (
	"context"
	"database/sql"
	"time"
)

// Deal statuses. Transitions are one-directional: accept moves
// pending -> in_progress, deliver moves in_progress -> delivered and
// approve moves delivered -> completed.
const (
	DealStatusPending    = "pending"
	DealStatusInProgress = "in_progress"
	DealStatusDelivered  = "delivered"
	DealStatusCompleted  = "completed"
	DealStatusCancelled  = "cancelled"
)

// Deal mirrors the 'deals' table. A deal belongs to a creator/brand pair
// and optionally references the conversation where its system messages are
// posted.
type Deal struct {
	ID             uint64     `json:"id"`
	ConversationID *uint64    `json:"conversation_id"`
	CreatorID      uint64     `json:"creator_id"`
	BrandID        uint64     `json:"brand_id"`
	Title          string     `json:"title"`
	Description    *string    `json:"description"`
	AmountCents    int64      `json:"amount_cents"`
	Currency       string     `json:"currency"`
	Status         string     `json:"status"`
	AcceptedAt     *time.Time `json:"accepted_at"`
	DeliveredAt    *time.Time `json:"delivered_at"`
	CompletedAt    *time.Time `json:"completed_at"`
	DeliveryURL    *string    `json:"delivery_url"`
	DeliveryNotes  *string    `json:"delivery_notes"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type DealRepo struct{ DB *sql.DB }

func NewDealRepo(db *sql.DB) *DealRepo { return &DealRepo{DB: db} }

const dealCols = "id,conversation_id,creator_id,brand_id,title,description,amount_cents,currency,status,accepted_at,delivered_at,completed_at,delivery_url,delivery_notes,created_at,updated_at"

// Create inserts a deal in pending status and populates the generated ID.
func (r *DealRepo) Create(ctx context.Context, d *Deal) error {
	if d.Currency == "" {
		d.Currency = "USD"
	}
	d.Status = DealStatusPending
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO deals (conversation_id, creator_id, brand_id, title, description, amount_cents, currency, status) VALUES (?,?,?,?,?,?,?,?)",
		d.ConversationID, d.CreatorID, d.BrandID, d.Title, d.Description, d.AmountCents, d.Currency, d.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	return nil
}

// GetByID fetches a deal by id; sql.ErrNoRows on miss.
func (r *DealRepo) GetByID(ctx context.Context, id uint64) (Deal, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+dealCols+" FROM deals WHERE id=? LIMIT 1", id))
}

func (r *DealRepo) scanOne(row *sql.Row) (Deal, error) {
	var d Deal
	err := row.Scan(&d.ID, &d.ConversationID, &d.CreatorID, &d.BrandID, &d.Title, &d.Description,
		&d.AmountCents, &d.Currency, &d.Status, &d.AcceptedAt, &d.DeliveredAt, &d.CompletedAt,
		&d.DeliveryURL, &d.DeliveryNotes, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

// List returns a page of deals filtered by optional creator, brand and
// status, ordered newest first, plus the total count for the filter.
func (r *DealRepo) List(ctx context.Context, creatorID, brandID uint64, status string, limit, offset int) ([]Deal, int, error) {
	where := "1=1"
	args := []any{}
	if creatorID != 0 {
		where += " AND creator_id=?"
		args = append(args, creatorID)
	}
	if brandID != 0 {
		where += " AND brand_id=?"
		args = append(args, brandID)
	}
	if status != "" {
		where += " AND status=?"
		args = append(args, status)
	}
	var total int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM deals WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	args = append(args, limit, offset)
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+dealCols+" FROM deals WHERE "+where+" ORDER BY created_at DESC LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items := make([]Deal, 0)
	for rows.Next() {
		var d Deal
		if err := rows.Scan(&d.ID, &d.ConversationID, &d.CreatorID, &d.BrandID, &d.Title, &d.Description,
			&d.AmountCents, &d.Currency, &d.Status, &d.AcceptedAt, &d.DeliveredAt, &d.CompletedAt,
			&d.DeliveryURL, &d.DeliveryNotes, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, rows.Err()
}

// Update applies a partial field merge; updated_at is always stamped.
func (r *DealRepo) Update(ctx context.Context, id uint64, fields map[string]any) error {
	return partialUpdate(ctx, r.DB, "deals", id, fields)
}

// Delete removes a deal; ErrNotFound when nothing was deleted.
func (r *DealRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM deals WHERE id=?", id)
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

// AcceptPending performs the guarded pending -> in_progress transition as a
// single conditional update, so two concurrent accepts cannot both succeed.
// It reports whether this call won the transition.
func (r *DealRepo) AcceptPending(ctx context.Context, id uint64) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE deals SET status=?, accepted_at=UTC_TIMESTAMP(), updated_at=UTC_TIMESTAMP() WHERE id=? AND status=?",
		DealStatusInProgress, id, DealStatusPending)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DeliverInProgress performs in_progress -> delivered, recording the
// delivery artifacts alongside the status flip.
func (r *DealRepo) DeliverInProgress(ctx context.Context, id uint64, deliveryURL, deliveryNotes *string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE deals SET status=?, delivered_at=UTC_TIMESTAMP(), delivery_url=?, delivery_notes=?, updated_at=UTC_TIMESTAMP() WHERE id=? AND status=?",
		DealStatusDelivered, deliveryURL, deliveryNotes, id, DealStatusInProgress)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ApproveDelivered performs delivered -> completed and bumps the creator's
// completed_deals counter. The counter bump rides in the same transaction.
func (r *DealRepo) ApproveDelivered(ctx context.Context, id uint64) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"UPDATE deals SET status=?, completed_at=UTC_TIMESTAMP(), updated_at=UTC_TIMESTAMP() WHERE id=? AND status=?",
		DealStatusCompleted, id, DealStatusDelivered)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE creators SET completed_deals=completed_deals+1, updated_at=UTC_TIMESTAMP() WHERE id=(SELECT creator_id FROM deals WHERE id=?)", id); err != nil {
		return false, err
	}
	return true, tx.Commit()
}
