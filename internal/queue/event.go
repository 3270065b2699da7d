// Package queue defines message payloads exchanged over the message broker.
package queue

// DealAcceptedEvent is published when a creator accepts a deal. It carries
// enough information for downstream consumers to notify the brand or feed
// analytics without querying the primary database.
type DealAcceptedEvent struct {
	DealID         uint64  `json:"deal_id"`
	ConversationID *uint64 `json:"conversation_id,omitempty"`
	CreatorID      uint64  `json:"creator_id"`
	BrandID        uint64  `json:"brand_id"`
	Title          string  `json:"title"`
	AmountCents    int64   `json:"amount_cents"`
	Currency       string  `json:"currency"`
	AcceptedAt     string  `json:"accepted_at"`
}

// ContactSubmittedEvent is published for every new contact form submission
// so an operator can be notified out-of-band.
type ContactSubmittedEvent struct {
	SubmissionID uint64 `json:"submission_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Subject      string `json:"subject"`
	SubmittedAt  string `json:"submitted_at"`
}
