package availability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Omar96MJ/sanad-sub001/internal/model"
	"github.com/Omar96MJ/sanad-sub001/internal/store"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type SaveRequest struct {
	DoctorID uuid.UUID
	Grid     Grid
}

// ---------------------------------------------------------------------------
// Store dependency
// ---------------------------------------------------------------------------

type Store interface {
	ListSlots(ctx context.Context, doctorID uuid.UUID) ([]model.AvailabilitySlot, error)
	ReplaceSlots(ctx context.Context, doctorID uuid.UUID, slots []model.AvailabilitySlot, hours int) error
}

type DoctorStore interface {
	GetDoctorByID(ctx context.Context, id uuid.UUID) (*model.DoctorProfile, error)
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	// Grid loads a doctor's weekly grid from the persisted slot rows.
	Grid(ctx context.Context, doctorID uuid.UUID) (Grid, error)
	// Save persists a grid wholesale: every existing slot row for the doctor
	// is dropped and re-inserted from the grid, and the denormalized
	// available_hours counter is refreshed in the same transaction.
	Save(ctx context.Context, req SaveRequest) error
	// ListSlots returns the raw slot rows, ordered by day then start time.
	ListSlots(ctx context.Context, doctorID uuid.UUID) ([]model.AvailabilitySlot, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type availabilityService struct {
	slots   Store
	doctors DoctorStore
	logger  *slog.Logger
}

func New(slots Store, doctors DoctorStore, logger *slog.Logger) Service {
	return &availabilityService{slots: slots, doctors: doctors, logger: logger}
}

func (s *availabilityService) Grid(ctx context.Context, doctorID uuid.UUID) (Grid, error) {
	slots, err := s.slots.ListSlots(ctx, doctorID)
	if err != nil {
		return Grid{}, fmt.Errorf("list availability slots: %w", err)
	}
	return BuildGrid(slots), nil
}

func (s *availabilityService) Save(ctx context.Context, req SaveRequest) error {
	if _, err := s.doctors.GetDoctorByID(ctx, req.DoctorID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrDoctorNotFound
		}
		return fmt.Errorf("get doctor: %w", err)
	}

	slots := req.Grid.Slots(req.DoctorID)
	if err := s.slots.ReplaceSlots(ctx, req.DoctorID, slots, req.Grid.Hours()); err != nil {
		return fmt.Errorf("replace availability slots: %w", err)
	}

	s.logger.InfoContext(ctx, "availability saved",
		"doctor_id", req.DoctorID,
		"hours", req.Grid.Hours(),
	)
	return nil
}

func (s *availabilityService) ListSlots(ctx context.Context, doctorID uuid.UUID) ([]model.AvailabilitySlot, error) {
	slots, err := s.slots.ListSlots(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("list availability slots: %w", err)
	}
	return slots, nil
}
