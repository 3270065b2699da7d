package repository

import (
	"context"
	"database/sql"
	"time"
)

// Conversation links one creator and one brand and owns an ordered
// sequence of messages (insertion order is chronological order).
type Conversation struct {
	ID                 uint64     `json:"id"`
	CreatorID          uint64     `json:"creator_id"`
	BrandID            uint64     `json:"brand_id"`
	DealID             *uint64    `json:"deal_id"`
	LastMessageAt      *time.Time `json:"last_message_at"`
	LastMessagePreview *string    `json:"last_message_preview"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// Attachment describes one file attached to a message; stored inline in
// the messages.attachments JSON column.
type Attachment struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Type     string `json:"type"`
	Size     int64  `json:"size"`
}

// Message mirrors the 'messages' table. System messages are generated by
// the platform (e.g. on deal acceptance) rather than a human participant.
type Message struct {
	ID              uint64       `json:"id"`
	ConversationID  uint64       `json:"conversation_id"`
	SenderID        uint64       `json:"sender_id"`
	SenderType      string       `json:"sender_type"`
	Content         string       `json:"content"`
	IsSystemMessage bool         `json:"is_system_message"`
	Attachments     []Attachment `json:"attachments"`
	CreatedAt       time.Time    `json:"created_at"`
}

type ConversationRepo struct{ DB *sql.DB }

func NewConversationRepo(db *sql.DB) *ConversationRepo { return &ConversationRepo{DB: db} }

const convCols = "id,creator_id,brand_id,deal_id,last_message_at,last_message_preview,created_at,updated_at"

// GetOrCreate returns the conversation between a creator and a brand,
// creating it when none exists. Created reports whether a new row was
// inserted.
func (r *ConversationRepo) GetOrCreate(ctx context.Context, creatorID, brandID uint64) (Conversation, bool, error) {
	cv, err := r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+convCols+" FROM conversations WHERE creator_id=? AND brand_id=? LIMIT 1",
		creatorID, brandID))
	if err == nil {
		return cv, false, nil
	}
	if err != sql.ErrNoRows {
		return Conversation{}, false, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO conversations (creator_id, brand_id) VALUES (?,?)", creatorID, brandID)
	if err != nil {
		return Conversation{}, false, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Conversation{}, false, err
	}
	cv, err = r.GetByID(ctx, uint64(id))
	return cv, true, err
}

// GetByID fetches a conversation by id; sql.ErrNoRows on miss.
func (r *ConversationRepo) GetByID(ctx context.Context, id uint64) (Conversation, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+convCols+" FROM conversations WHERE id=? LIMIT 1", id))
}

func (r *ConversationRepo) scanOne(row *sql.Row) (Conversation, error) {
	var cv Conversation
	err := row.Scan(&cv.ID, &cv.CreatorID, &cv.BrandID, &cv.DealID,
		&cv.LastMessageAt, &cv.LastMessagePreview, &cv.CreatedAt, &cv.UpdatedAt)
	return cv, err
}

// List returns a page of conversations, optionally filtered by creator or
// brand, ordered by most recent activity. Zero filter values are ignored.
func (r *ConversationRepo) List(ctx context.Context, creatorID, brandID uint64, limit, offset int) ([]Conversation, int, error) {
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
	var total int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM conversations WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	args = append(args, limit, offset)
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+convCols+" FROM conversations WHERE "+where+
			" ORDER BY COALESCE(last_message_at, created_at) DESC LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items := make([]Conversation, 0)
	for rows.Next() {
		var cv Conversation
		if err := rows.Scan(&cv.ID, &cv.CreatorID, &cv.BrandID, &cv.DealID,
			&cv.LastMessageAt, &cv.LastMessagePreview, &cv.CreatedAt, &cv.UpdatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, cv)
	}
	return items, total, rows.Err()
}

// Delete removes a conversation; its messages go with it via FK cascade.
func (r *ConversationRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM conversations WHERE id=?", id)
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

// CreateMessage appends a message to a conversation and refreshes the
// conversation's last-message bookkeeping. The two writes are deliberately
// independent: a failed preview update never loses the message itself.
func (r *ConversationRepo) CreateMessage(ctx context.Context, m *Message) error {
	if m.Attachments == nil {
		m.Attachments = []Attachment{}
	}
	att, err := encodeJSON(m.Attachments)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO messages (conversation_id, sender_id, sender_type, content, is_system_message, attachments) VALUES (?,?,?,?,?,?)",
		m.ConversationID, m.SenderID, m.SenderType, m.Content, m.IsSystemMessage, att)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)

	preview := m.Content
	if len(preview) > 120 {
		preview = preview[:120]
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE conversations SET last_message_at=UTC_TIMESTAMP(), last_message_preview=?, updated_at=UTC_TIMESTAMP() WHERE id=?",
		preview, m.ConversationID)
	return err
}

// ListMessages returns every message of a conversation in chronological
// order (insertion order).
func (r *ConversationRepo) ListMessages(ctx context.Context, conversationID uint64) ([]Message, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,conversation_id,sender_id,sender_type,content,is_system_message,attachments,created_at FROM messages WHERE conversation_id=? ORDER BY created_at ASC, id ASC",
		conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]Message, 0)
	for rows.Next() {
		var m Message
		var att []byte
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.SenderType,
			&m.Content, &m.IsSystemMessage, &att, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Attachments = []Attachment{}
		if err := decodeJSON(att, &m.Attachments); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}
