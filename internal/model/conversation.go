package model

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is a two-party thread between a patient and a doctor.
// Ordering on list reads is last_message_at descending, so a new message in
// any conversation moves it to the top.
type Conversation struct {
	ID            uuid.UUID  `json:"id"`
	PatientID     uuid.UUID  `json:"patient_id"`
	DoctorID      uuid.UUID  `json:"doctor_id"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Participant reports whether userID is a member of the conversation.
func (c *Conversation) Participant(userID uuid.UUID) bool {
	return c.PatientID == userID || c.DoctorID == userID
}

// Other returns the counterpart of userID in the conversation.
func (c *Conversation) Other(userID uuid.UUID) uuid.UUID {
	if c.PatientID == userID {
		return c.DoctorID
	}
	return c.PatientID
}

type Message struct {
	ID             uuid.UUID  `json:"id"`
	ConversationID uuid.UUID  `json:"conversation_id"`
	SenderID       uuid.UUID  `json:"sender_id"`
	Content        string     `json:"content"`
	CreatedAt      time.Time  `json:"created_at"`
	DeletedAt      *time.Time `json:"-"`
}
