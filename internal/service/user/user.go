package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"

	"github.com/Omar96MJ/sanad-sub001/internal/model"
	"github.com/Omar96MJ/sanad-sub001/internal/store"
)

// DefaultPhoneRegion is assumed when a phone number carries no country code.
const DefaultPhoneRegion = "SA"

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type UpdateDoctorRequest struct {
	DisplayName    *string
	Specialization *string
	Bio            *string
	IsAccepting    *bool
}

// ---------------------------------------------------------------------------
// Store dependency
// ---------------------------------------------------------------------------

type Store interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateUserPhone(ctx context.Context, id uuid.UUID, phone string) error
	UpdateUserImage(ctx context.Context, id uuid.UUID, image string) error
	GetDoctorByID(ctx context.Context, id uuid.UUID) (*model.DoctorProfile, error)
	GetDoctorByUserID(ctx context.Context, userID uuid.UUID) (*model.DoctorProfile, error)
	ListDoctors(ctx context.Context, acceptingOnly bool) ([]*model.DoctorProfile, error)
	UpdateDoctor(ctx context.Context, d *model.DoctorProfile) (*model.DoctorProfile, error)
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdatePhone(ctx context.Context, id uuid.UUID, phone string) (string, error)
	UpdateImage(ctx context.Context, id uuid.UUID, image string) error
	GetDoctor(ctx context.Context, id uuid.UUID) (*model.DoctorProfile, error)
	GetDoctorByUser(ctx context.Context, userID uuid.UUID) (*model.DoctorProfile, error)
	ListDoctors(ctx context.Context, acceptingOnly bool) ([]*model.DoctorProfile, error)
	UpdateDoctor(ctx context.Context, id uuid.UUID, req UpdateDoctorRequest) (*model.DoctorProfile, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type userService struct {
	users Store
}

func New(users Store) Service {
	return &userService{users: users}
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// UpdatePhone validates and normalizes the number to E.164 before persisting.
// The normalized form is returned.
func (s *userService) UpdatePhone(ctx context.Context, id uuid.UUID, phone string) (string, error) {
	num, err := phonenumbers.Parse(phone, DefaultPhoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return "", ErrInvalidPhone
	}
	normalized := phonenumbers.Format(num, phonenumbers.E164)

	if err := s.users.UpdateUserPhone(ctx, id, normalized); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("update phone: %w", err)
	}
	return normalized, nil
}

func (s *userService) UpdateImage(ctx context.Context, id uuid.UUID, image string) error {
	if err := s.users.UpdateUserImage(ctx, id, image); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("update image: %w", err)
	}
	return nil
}

func (s *userService) GetDoctor(ctx context.Context, id uuid.UUID) (*model.DoctorProfile, error) {
	d, err := s.users.GetDoctorByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, fmt.Errorf("get doctor: %w", err)
	}
	return d, nil
}

func (s *userService) GetDoctorByUser(ctx context.Context, userID uuid.UUID) (*model.DoctorProfile, error) {
	d, err := s.users.GetDoctorByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, fmt.Errorf("get doctor: %w", err)
	}
	return d, nil
}

func (s *userService) ListDoctors(ctx context.Context, acceptingOnly bool) ([]*model.DoctorProfile, error) {
	docs, err := s.users.ListDoctors(ctx, acceptingOnly)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return docs, nil
}

func (s *userService) UpdateDoctor(ctx context.Context, id uuid.UUID, req UpdateDoctorRequest) (*model.DoctorProfile, error) {
	d, err := s.GetDoctor(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		d.DisplayName = *req.DisplayName
	}
	if req.Specialization != nil {
		d.Specialization = req.Specialization
	}
	if req.Bio != nil {
		d.Bio = req.Bio
	}
	if req.IsAccepting != nil {
		d.IsAccepting = *req.IsAccepting
	}

	updated, err := s.users.UpdateDoctor(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("update doctor: %w", err)
	}
	return updated, nil
}
