package model

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilitySlot is one contiguous hour-aligned availability block for a
// doctor. Persisted slots are always available; unavailable hours are simply
// absent rows. day_of_week follows time.Weekday: Sunday=0.
type AvailabilitySlot struct {
	ID          uuid.UUID `json:"id"`
	DoctorID    uuid.UUID `json:"doctor_id"`
	DayOfWeek   int       `json:"day_of_week"`
	StartTime   string    `json:"start_time"` // HH:MM:SS
	EndTime     string    `json:"end_time"`   // HH:MM:SS
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
}
