package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Omar96MJ/sanad-sub001/internal/model"
)

type ConversationStore struct {
	db *pgxpool.Pool
}

func NewConversationStore(db *pgxpool.Pool) *ConversationStore {
	return &ConversationStore{db: db}
}

const convColumns = `id, patient_id, doctor_id, last_message_at, created_at`

func scanConversation(row pgx.Row) (*model.Conversation, error) {
	var c model.Conversation
	err := row.Scan(&c.ID, &c.PatientID, &c.DoctorID, &c.LastMessageAt, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan conversation: %w", err)
	}
	return &c, nil
}

func (s *ConversationStore) Create(ctx context.Context, patientID, doctorID uuid.UUID) (*model.Conversation, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO conversations (id, patient_id, doctor_id)
		VALUES ($1, $2, $3)
		RETURNING `+convColumns, newID(), patientID, doctorID)
	return scanConversation(row)
}

func (s *ConversationStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Conversation, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+convColumns+` FROM conversations WHERE id = $1`, id)
	return scanConversation(row)
}

func (s *ConversationStore) FindByPair(ctx context.Context, patientID, doctorID uuid.UUID) (*model.Conversation, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+convColumns+` FROM conversations WHERE patient_id = $1 AND doctor_id = $2`,
		patientID, doctorID)
	return scanConversation(row)
}

// ListForUser returns the user's conversations, most recently active first.
// Conversations with no messages yet sort last by creation time.
func (s *ConversationStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.Conversation, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+convColumns+` FROM conversations
		WHERE patient_id = $1 OR doctor_id = $1
		ORDER BY last_message_at DESC NULLS LAST, created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	var out []*model.Conversation
	for rows.Next() {
		c, err := scanConversation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *ConversationStore) TouchLastMessage(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := s.db.Exec(ctx,
		`UPDATE conversations SET last_message_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("touch conversation: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

func (s *ConversationStore) CreateMessage(ctx context.Context, m *model.Message) (*model.Message, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO messages (id, conversation_id, sender_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, conversation_id, sender_id, content, created_at`,
		newID(), m.ConversationID, m.SenderID, m.Content)

	var out model.Message
	if err := row.Scan(&out.ID, &out.ConversationID, &out.SenderID, &out.Content, &out.CreatedAt); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return &out, nil
}

func (s *ConversationStore) GetMessage(ctx context.Context, convID, messageID uuid.UUID) (*model.Message, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, conversation_id, sender_id, content, created_at
		FROM messages
		WHERE id = $1 AND conversation_id = $2 AND deleted_at IS NULL`,
		messageID, convID)

	var m model.Message
	if err := row.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &m.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get message: %w", err)
	}
	return &m, nil
}

func (s *ConversationStore) ListMessages(ctx context.Context, convID uuid.UUID, limit, offset int) ([]*model.Message, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, conversation_id, sender_id, content, created_at
		FROM messages
		WHERE conversation_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, convID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var out []*model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (s *ConversationStore) SoftDeleteMessage(ctx context.Context, messageID uuid.UUID) error {
	_, err := s.db.Exec(ctx,
		`UPDATE messages SET deleted_at = now() WHERE id = $1`, messageID)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}
