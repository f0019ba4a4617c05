package appointment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
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

type BookRequest struct {
	PatientID   uuid.UUID
	DoctorID    uuid.UUID
	SessionDate time.Time
	SessionType model.SessionType
	Notes       *string
}

type UpdateStatusRequest struct {
	Status model.AppointmentStatus
	// SessionDate must be set when Status is rescheduled; ignored otherwise.
	SessionDate *time.Time
}

// ---------------------------------------------------------------------------
// Store dependencies
// ---------------------------------------------------------------------------

type Store interface {
	Create(ctx context.Context, a *model.Appointment) (*model.Appointment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	ListForOwner(ctx context.Context, ownerID uuid.UUID, role model.Role) ([]*model.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus, sessionDate *time.Time) (*model.Appointment, error)
	UpsertPatientAppointment(ctx context.Context, pa *model.PatientAppointment) error
	ListPatientAppointments(ctx context.Context, patientID uuid.UUID) ([]*model.PatientAppointment, error)
}

type DoctorStore interface {
	GetDoctorByID(ctx context.Context, id uuid.UUID) (*model.DoctorProfile, error)
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	Book(ctx context.Context, req BookRequest) (*model.Appointment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	List(ctx context.Context, ownerID uuid.UUID, role model.Role) ([]*model.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*model.Appointment, error)
	// ListPatientView reads the denormalized dashboard rows for a patient.
	ListPatientView(ctx context.Context, patientID uuid.UUID) ([]*model.PatientAppointment, error)
	// SyncPatientView rewrites one appointment's denormalized row from the
	// canonical row. Used by the sync worker to repair lagging copies.
	SyncPatientView(ctx context.Context, appointmentID uuid.UUID) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type appointmentService struct {
	appts   Store
	doctors DoctorStore
	nc      *nats.Conn
	logger  *slog.Logger
}

func New(appts Store, doctors DoctorStore, nc *nats.Conn, logger *slog.Logger) Service {
	return &appointmentService{appts: appts, doctors: doctors, nc: nc, logger: logger}
}

func (s *appointmentService) Book(ctx context.Context, req BookRequest) (*model.Appointment, error) {
	if req.PatientID == uuid.Nil || req.DoctorID == uuid.Nil || req.SessionDate.IsZero() {
		return nil, ErrMissingFields
	}
	if !req.SessionType.Valid() {
		return nil, ErrInvalidSession
	}

	doctor, err := s.doctors.GetDoctorByID(ctx, req.DoctorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, fmt.Errorf("get doctor: %w", err)
	}

	appt, err := s.appts.Create(ctx, &model.Appointment{
		PatientID:   req.PatientID,
		DoctorID:    req.DoctorID,
		SessionDate: req.SessionDate,
		SessionType: req.SessionType,
		Status:      model.StatusScheduled,
		Notes:       req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	// The patient-facing copy is best effort. A failed write is logged and
	// repaired later by the sync worker; the booking itself already stands.
	if err := s.writePatientView(ctx, appt, doctor.DisplayName); err != nil {
		s.logger.ErrorContext(ctx, "patient appointment write failed",
			"appointment_id", appt.ID,
			"error", err,
		)
	}

	s.publish(constants.SubjectAppointmentCreated, appt.ID)
	return appt, nil
}

func (s *appointmentService) GetByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	appt, err := s.appts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return appt, nil
}

func (s *appointmentService) List(ctx context.Context, ownerID uuid.UUID, role model.Role) ([]*model.Appointment, error) {
	appts, err := s.appts.ListForOwner(ctx, ownerID, role)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	// A deleted or missing counterpart row must not hide the appointment.
	for _, a := range appts {
		if a.Counterpart == nil {
			a.Counterpart = &model.CounterpartProfile{Name: "Unknown"}
		}
	}
	return appts, nil
}

func (s *appointmentService) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*model.Appointment, error) {
	if !req.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	appt, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !appt.Status.CanTransition(req.Status) {
		switch appt.Status {
		case model.StatusCancelled:
			return nil, ErrAlreadyCancelled
		case model.StatusCompleted:
			return nil, ErrAlreadyCompleted
		default:
			return nil, ErrInvalidTransition
		}
	}

	var sessionDate *time.Time
	if req.Status == model.StatusRescheduled {
		if req.SessionDate == nil || req.SessionDate.IsZero() {
			return nil, ErrMissingFields
		}
		sessionDate = req.SessionDate
	}

	updated, err := s.appts.UpdateStatus(ctx, id, req.Status, sessionDate)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update appointment status: %w", err)
	}

	if err := s.syncPatientView(ctx, updated); err != nil {
		s.logger.ErrorContext(ctx, "patient appointment sync failed",
			"appointment_id", updated.ID,
			"error", err,
		)
	}

	if req.Status == model.StatusCancelled {
		s.publish(constants.SubjectAppointmentCancelled, updated.ID)
	} else {
		s.publish(constants.SubjectAppointmentUpdated, updated.ID)
	}
	return updated, nil
}

func (s *appointmentService) ListPatientView(ctx context.Context, patientID uuid.UUID) ([]*model.PatientAppointment, error) {
	rows, err := s.appts.ListPatientAppointments(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("list patient appointments: %w", err)
	}
	return rows, nil
}

func (s *appointmentService) SyncPatientView(ctx context.Context, appointmentID uuid.UUID) error {
	appt, err := s.GetByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	return s.syncPatientView(ctx, appt)
}

func (s *appointmentService) syncPatientView(ctx context.Context, appt *model.Appointment) error {
	doctor, err := s.doctors.GetDoctorByID(ctx, appt.DoctorID)
	if err != nil {
		return fmt.Errorf("get doctor: %w", err)
	}
	return s.writePatientView(ctx, appt, doctor.DisplayName)
}

func (s *appointmentService) writePatientView(ctx context.Context, appt *model.Appointment, doctorName string) error {
	return s.appts.UpsertPatientAppointment(ctx, &model.PatientAppointment{
		AppointmentID: appt.ID,
		PatientID:     appt.PatientID,
		DoctorID:      appt.DoctorID,
		DoctorName:    doctorName,
		SessionDate:   appt.SessionDate,
		SessionType:   appt.SessionType,
		Status:        model.ViewStatusOf(appt.Status),
	})
}

func (s *appointmentService) publish(prefix string, id uuid.UUID) {
	if s.nc == nil {
		return
	}
	subject := fmt.Sprintf("%s.%s", prefix, id.String())
	_ = s.nc.Publish(subject, []byte(id.String()))
}
