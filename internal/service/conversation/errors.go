package conversation

import "errors"

var (
	ErrNotFound        = errors.New("conversation not found")
	ErrMessageNotFound = errors.New("message not found")
	ErrNotParticipant  = errors.New("user is not a participant of the conversation")
	ErrEmptyMessage    = errors.New("message content is required")
)
