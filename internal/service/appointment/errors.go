package appointment

import "errors"

var (
	ErrNotFound          = errors.New("appointment not found")
	ErrMissingFields     = errors.New("patient, doctor and session date are required")
	ErrInvalidSession    = errors.New("invalid session type")
	ErrInvalidStatus     = errors.New("invalid appointment status")
	ErrAlreadyCompleted  = errors.New("appointment is already completed")
	ErrAlreadyCancelled  = errors.New("appointment is already cancelled")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrDoctorNotFound    = errors.New("doctor not found")
)
