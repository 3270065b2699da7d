package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// ContactSubmission is an append-only record with a mutable status field
// (new -> read -> replied).
type ContactSubmission struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   *string   `json:"company"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewsletterSubscription flips between active and unsubscribed with a
// timestamp for each status change.
type NewsletterSubscription struct {
	ID             uint64     `json:"id"`
	Email          string     `json:"email"`
	Status         string     `json:"status"`
	SubscribedAt   time.Time  `json:"subscribed_at"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at"`
}

// PaymentSubmission is a manually verified payment record; activation
// flips its status to verified.
type PaymentSubmission struct {
	ID               uint64     `json:"id"`
	UserEmail        string     `json:"user_email"`
	ProductSlug      string     `json:"product_slug"`
	Tier             string     `json:"tier"`
	AmountCents      int64      `json:"amount_cents"`
	PaymentReference string     `json:"payment_reference"`
	Status           string     `json:"status"`
	VerifiedAt       *time.Time `json:"verified_at"`
	CreatedAt        time.Time  `json:"created_at"`
}

// SubscriptionHistory is an append-only audit trail of tier activations.
type SubscriptionHistory struct {
	ID               uint64    `json:"id"`
	UserID           uint64    `json:"user_id"`
	UserEmail        string    `json:"user_email"`
	ProductSlug      string    `json:"product_slug"`
	Tier             string    `json:"tier"`
	Action           string    `json:"action"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	PaymentReference *string   `json:"payment_reference"`
	Notes            *string   `json:"notes"`
	CreatedAt        time.Time `json:"created_at"`
}

type SubmissionRepo struct{ DB *sql.DB }

func NewSubmissionRepo(db *sql.DB) *SubmissionRepo { return &SubmissionRepo{DB: db} }

// CreateContact appends a contact submission with status=new.
func (r *SubmissionRepo) CreateContact(ctx context.Context, s *ContactSubmission) error {
	s.Status = "new"
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO contact_submissions (name, email, company, subject, message, status) VALUES (?,?,?,?,?,?)",
		s.Name, strings.ToLower(strings.TrimSpace(s.Email)), s.Company, s.Subject, s.Message, s.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// ListContacts returns a page of contact submissions, newest first.
func (r *SubmissionRepo) ListContacts(ctx context.Context, limit, offset int) ([]ContactSubmission, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM contact_submissions").Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,email,company,subject,message,status,created_at,updated_at FROM contact_submissions ORDER BY created_at DESC LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items := make([]ContactSubmission, 0)
	for rows.Next() {
		var s ContactSubmission
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Company, &s.Subject, &s.Message,
			&s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, rows.Err()
}

// UpdateContactStatus flips a contact submission's status.
func (r *SubmissionRepo) UpdateContactStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE contact_submissions SET status=?, updated_at=UTC_TIMESTAMP() WHERE id=?", status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// distinguish a missing row from an unchanged status
		var exists bool
		if err := r.DB.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM contact_submissions WHERE id=?)", id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
	}
	return nil
}

// DeleteContact removes a contact submission.
func (r *SubmissionRepo) DeleteContact(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM contact_submissions WHERE id=?", id)
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

// SubscribeNewsletter records a subscription, reactivating a previously
// unsubscribed email. Idempotent for already-active subscribers.
func (r *SubmissionRepo) SubscribeNewsletter(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO newsletter_subscriptions (email, status, subscribed_at) VALUES (?,'active',UTC_TIMESTAMP()) "+
			"ON DUPLICATE KEY UPDATE status='active', subscribed_at=UTC_TIMESTAMP(), unsubscribed_at=NULL",
		email)
	return err
}

// UnsubscribeNewsletter flips a subscription to unsubscribed; ErrNotFound
// when the email was never subscribed.
func (r *SubmissionRepo) UnsubscribeNewsletter(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"UPDATE newsletter_subscriptions SET status='unsubscribed', unsubscribed_at=UTC_TIMESTAMP() WHERE email=?",
		email)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists bool
		if err := r.DB.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM newsletter_subscriptions WHERE email=?)", email).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
	}
	return nil
}

// ListNewsletter returns a page of newsletter subscriptions, newest first.
func (r *SubmissionRepo) ListNewsletter(ctx context.Context, limit, offset int) ([]NewsletterSubscription, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM newsletter_subscriptions").Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,email,status,subscribed_at,unsubscribed_at FROM newsletter_subscriptions ORDER BY subscribed_at DESC LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items := make([]NewsletterSubscription, 0)
	for rows.Next() {
		var s NewsletterSubscription
		if err := rows.Scan(&s.ID, &s.Email, &s.Status, &s.SubscribedAt, &s.UnsubscribedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, rows.Err()
}

// ListPayments returns a page of payment submissions, newest first.
func (r *SubmissionRepo) ListPayments(ctx context.Context, limit, offset int) ([]PaymentSubmission, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM payment_submissions").Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_email,product_slug,tier,amount_cents,payment_reference,status,verified_at,created_at FROM payment_submissions ORDER BY created_at DESC LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items := make([]PaymentSubmission, 0)
	for rows.Next() {
		var p PaymentSubmission
		if err := rows.Scan(&p.ID, &p.UserEmail, &p.ProductSlug, &p.Tier, &p.AmountCents,
			&p.PaymentReference, &p.Status, &p.VerifiedAt, &p.CreatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

// VerifyPaymentByReference marks the payment submission matching the
// reference as verified. Used by subscription activation as a secondary,
// non-transactional update.
func (r *SubmissionRepo) VerifyPaymentByReference(ctx context.Context, reference string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE payment_submissions SET status='verified', verified_at=UTC_TIMESTAMP() WHERE payment_reference=?",
		reference)
	return err
}

// AddSubscriptionHistory appends an audit row for a tier activation.
func (r *SubmissionRepo) AddSubscriptionHistory(ctx context.Context, h *SubscriptionHistory) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO subscription_history (user_id, user_email, product_slug, tier, action, start_date, end_date, payment_reference, notes) VALUES (?,?,?,?,?,?,?,?,?)",
		h.UserID, h.UserEmail, h.ProductSlug, h.Tier, h.Action, h.StartDate, h.EndDate, h.PaymentReference, h.Notes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	return nil
}
