package model

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus is the canonical lifecycle status of an appointment row.
type AppointmentStatus string

const (
	StatusScheduled   AppointmentStatus = "scheduled"
	StatusCompleted   AppointmentStatus = "completed"
	StatusCancelled   AppointmentStatus = "cancelled"
	StatusRescheduled AppointmentStatus = "rescheduled"
	StatusNoShow      AppointmentStatus = "no_show"
)

// SessionType categorizes what kind of session was booked.
type SessionType string

const (
	SessionInitialConsultation SessionType = "initial_consultation"
	SessionFollowUp            SessionType = "follow_up"
	SessionTherapy             SessionType = "therapy_session"
	SessionEmergency           SessionType = "emergency"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusRescheduled, StatusNoShow:
		return true
	}
	return false
}

func (t SessionType) Valid() bool {
	switch t {
	case SessionInitialConsultation, SessionFollowUp, SessionTherapy, SessionEmergency:
		return true
	}
	return false
}

// CanTransition reports whether moving from s to next is a legal business
// event through the public API. Completed and no_show are set by the
// therapist-side complete action or batch jobs, never by patients, and both
// are terminal together with cancelled for the cancel path. Re-booking a
// cancelled appointment as rescheduled is permitted.
func (s AppointmentStatus) CanTransition(next AppointmentStatus) bool {
	switch s {
	case StatusScheduled, StatusRescheduled:
		return next == StatusCancelled || next == StatusRescheduled ||
			next == StatusCompleted || next == StatusNoShow
	case StatusCancelled:
		return next == StatusRescheduled
	default:
		// completed and no_show are terminal
		return false
	}
}

// Appointment is the canonical booked session between a doctor and a patient.
type Appointment struct {
	ID          uuid.UUID         `json:"id"`
	PatientID   uuid.UUID         `json:"patient_id"`
	DoctorID    uuid.UUID         `json:"doctor_id"`
	SessionDate time.Time         `json:"session_date"`
	SessionType SessionType       `json:"session_type"`
	Status      AppointmentStatus `json:"status"`
	Notes       *string           `json:"notes,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`

	// Counterpart is populated on list reads; nil when the joined profile
	// row is missing.
	Counterpart *CounterpartProfile `json:"counterpart,omitempty"`
}

// CounterpartProfile is the joined display data of the other party of an
// appointment: the doctor when a patient lists, the patient when a doctor
// lists.
type CounterpartProfile struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Image          *string   `json:"image,omitempty"`
	Specialization *string   `json:"specialization,omitempty"`
	Bio            *string   `json:"bio,omitempty"`
}

// ViewStatus is the reduced status set shown on the patient dashboard.
type ViewStatus string

const (
	ViewUpcoming  ViewStatus = "upcoming"
	ViewCompleted ViewStatus = "completed"
	ViewCancelled ViewStatus = "cancelled"
)

// ViewStatusOf maps a canonical status onto the patient-facing subset.
func ViewStatusOf(s AppointmentStatus) ViewStatus {
	switch s {
	case StatusCompleted, StatusNoShow:
		return ViewCompleted
	case StatusCancelled:
		return ViewCancelled
	default:
		return ViewUpcoming
	}
}

// PatientAppointment is the denormalized patient-facing copy of an
// appointment. It embeds the doctor's display name so the patient dashboard
// never needs a join. Written best-effort after the canonical row; may lag.
type PatientAppointment struct {
	ID            uuid.UUID   `json:"id"`
	AppointmentID uuid.UUID   `json:"appointment_id"`
	PatientID     uuid.UUID   `json:"patient_id"`
	DoctorID      uuid.UUID   `json:"doctor_id"`
	DoctorName    string      `json:"doctor_name"`
	SessionDate   time.Time   `json:"session_date"`
	SessionType   SessionType `json:"session_type"`
	Status        ViewStatus  `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}
