package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/Omar96MJ/sanad-sub001/internal/model"
	"github.com/Omar96MJ/sanad-sub001/internal/store"
	"github.com/Omar96MJ/sanad-sub001/pkg/constants"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type StartRequest struct {
	PatientID uuid.UUID
	DoctorID  uuid.UUID
}

type SendMessageRequest struct {
	SenderID uuid.UUID
	Content  string
}

type ListMessagesRequest struct {
	Page    int
	PerPage int
}

// ---------------------------------------------------------------------------
// Store dependency
// ---------------------------------------------------------------------------

type Store interface {
	Create(ctx context.Context, patientID, doctorID uuid.UUID) (*model.Conversation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Conversation, error)
	FindByPair(ctx context.Context, patientID, doctorID uuid.UUID) (*model.Conversation, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.Conversation, error)
	TouchLastMessage(ctx context.Context, id uuid.UUID, at time.Time) error
	CreateMessage(ctx context.Context, m *model.Message) (*model.Message, error)
	GetMessage(ctx context.Context, convID, messageID uuid.UUID) (*model.Message, error)
	ListMessages(ctx context.Context, convID uuid.UUID, limit, offset int) ([]*model.Message, error)
	SoftDeleteMessage(ctx context.Context, messageID uuid.UUID) error
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	// Start returns the existing thread for the pair or creates a new one.
	Start(ctx context.Context, req StartRequest) (*model.Conversation, error)
	GetByID(ctx context.Context, convID, userID uuid.UUID) (*model.Conversation, error)
	// List returns the user's threads ordered by last activity, newest first.
	List(ctx context.Context, userID uuid.UUID) ([]*model.Conversation, error)
	ListMessages(ctx context.Context, convID, userID uuid.UUID, req ListMessagesRequest) ([]*model.Message, error)
	SendMessage(ctx context.Context, convID uuid.UUID, req SendMessageRequest) (*model.Message, error)
	DeleteMessage(ctx context.Context, convID, messageID, userID uuid.UUID) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type conversationService struct {
	convs Store
	nc    *nats.Conn
}

func New(convs Store, nc *nats.Conn) Service {
	return &conversationService{convs: convs, nc: nc}
}

func (s *conversationService) Start(ctx context.Context, req StartRequest) (*model.Conversation, error) {
	existing, err := s.convs.FindByPair(ctx, req.PatientID, req.DoctorID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("find conversation: %w", err)
	}

	conv, err := s.convs.Create(ctx, req.PatientID, req.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	return conv, nil
}

func (s *conversationService) GetByID(ctx context.Context, convID, userID uuid.UUID) (*model.Conversation, error) {
	conv, err := s.convs.GetByID(ctx, convID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	if !conv.Participant(userID) {
		return nil, ErrNotParticipant
	}
	return conv, nil
}

func (s *conversationService) List(ctx context.Context, userID uuid.UUID) ([]*model.Conversation, error) {
	convs, err := s.convs.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return convs, nil
}

func (s *conversationService) ListMessages(ctx context.Context, convID, userID uuid.UUID, req ListMessagesRequest) ([]*model.Message, error) {
	if _, err := s.GetByID(ctx, convID, userID); err != nil {
		return nil, err
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage < 1 || req.PerPage > 100 {
		req.PerPage = 50
	}
	offset := (req.Page - 1) * req.PerPage

	msgs, err := s.convs.ListMessages(ctx, convID, req.PerPage, offset)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}

func (s *conversationService) SendMessage(ctx context.Context, convID uuid.UUID, req SendMessageRequest) (*model.Message, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyMessage
	}

	conv, err := s.GetByID(ctx, convID, req.SenderID)
	if err != nil {
		return nil, err
	}

	msg, err := s.convs.CreateMessage(ctx, &model.Message{
		ConversationID: conv.ID,
		SenderID:       req.SenderID,
		Content:        content,
	})
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	// Touch last_message_at so the thread reorders to the top of the list.
	// Not fatal when it fails; the message row is already committed.
	_ = s.convs.TouchLastMessage(ctx, conv.ID, msg.CreatedAt)

	if s.nc != nil {
		subject := fmt.Sprintf("%s.%s", constants.SubjectMessageNew, conv.ID.String())
		_ = s.nc.Publish(subject, []byte(msg.ID.String()))
	}

	return msg, nil
}

func (s *conversationService) DeleteMessage(ctx context.Context, convID, messageID, userID uuid.UUID) error {
	msg, err := s.convs.GetMessage(ctx, convID, messageID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrMessageNotFound
		}
		return fmt.Errorf("get message: %w", err)
	}
	if msg.SenderID != userID {
		return ErrNotParticipant
	}
	return s.convs.SoftDeleteMessage(ctx, messageID)
}
