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

type AppointmentStore struct {
	db *pgxpool.Pool
}

func NewAppointmentStore(db *pgxpool.Pool) *AppointmentStore {
	return &AppointmentStore{db: db}
}

const apptColumns = `id, patient_id, doctor_id, session_date, session_type, status, notes, created_at, updated_at`

func scanAppointment(row pgx.Row) (*model.Appointment, error) {
	var a model.Appointment
	err := row.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.SessionDate, &a.SessionType,
		&a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan appointment: %w", err)
	}
	return &a, nil
}

func (s *AppointmentStore) Create(ctx context.Context, a *model.Appointment) (*model.Appointment, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO appointments (id, patient_id, doctor_id, session_date, session_type, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+apptColumns,
		newID(), a.PatientID, a.DoctorID, a.SessionDate, a.SessionType, a.Status, a.Notes)
	return scanAppointment(row)
}

func (s *AppointmentStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+apptColumns+` FROM appointments WHERE id = $1`, id)
	return scanAppointment(row)
}

// ListForOwner returns all appointments owned by a patient or a doctor,
// LEFT-JOINed with the counterpart's display profile, ordered by session
// date ascending. Counterpart is nil when the joined row is missing.
func (s *AppointmentStore) ListForOwner(ctx context.Context, ownerID uuid.UUID, role model.Role) ([]*model.Appointment, error) {
	var query string
	switch role {
	case model.RoleDoctor:
		query = `
			SELECT ` + apptJoinColumns + `,
			       u.id, u.name, u.image, NULL::text, NULL::text
			FROM appointments a
			LEFT JOIN users u ON u.id = a.patient_id AND u.deleted_at IS NULL
			WHERE a.doctor_id = (SELECT id FROM doctors WHERE user_id = $1)
			ORDER BY a.session_date ASC`
	default:
		query = `
			SELECT ` + apptJoinColumns + `,
			       d.id, d.display_name, d.image, d.specialization, d.bio
			FROM appointments a
			LEFT JOIN doctors d ON d.id = a.doctor_id
			WHERE a.patient_id = $1
			ORDER BY a.session_date ASC`
	}

	rows, err := s.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var appts []*model.Appointment
	for rows.Next() {
		var (
			a             model.Appointment
			cpID          *uuid.UUID
			cpName        *string
			cpImage       *string
			cpSpec, cpBio *string
		)
		if err := rows.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.SessionDate, &a.SessionType,
			&a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
			&cpID, &cpName, &cpImage, &cpSpec, &cpBio); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		if cpID != nil && cpName != nil {
			a.Counterpart = &model.CounterpartProfile{
				ID:             *cpID,
				Name:           *cpName,
				Image:          cpImage,
				Specialization: cpSpec,
				Bio:            cpBio,
			}
		}
		appts = append(appts, &a)
	}
	return appts, rows.Err()
}

const apptJoinColumns = `a.id, a.patient_id, a.doctor_id, a.session_date, a.session_type, a.status, a.notes, a.created_at, a.updated_at`

// UpdateStatus applies a status (and, when rescheduling, the new session
// timestamp) to exactly one row and returns the updated row.
func (s *AppointmentStore) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus, sessionDate *time.Time) (*model.Appointment, error) {
	var row pgx.Row
	if sessionDate != nil {
		row = s.db.QueryRow(ctx, `
			UPDATE appointments SET status = $2, session_date = $3, updated_at = now()
			WHERE id = $1
			RETURNING `+apptColumns, id, status, *sessionDate)
	} else {
		row = s.db.QueryRow(ctx, `
			UPDATE appointments SET status = $2, updated_at = now()
			WHERE id = $1
			RETURNING `+apptColumns, id, status)
	}
	return scanAppointment(row)
}

// ---------------------------------------------------------------------------
// Denormalized patient-facing view
// ---------------------------------------------------------------------------

// UpsertPatientAppointment writes the denormalized patient-facing copy. Keyed
// by appointment_id so the sync worker can repair it idempotently.
func (s *AppointmentStore) UpsertPatientAppointment(ctx context.Context, pa *model.PatientAppointment) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO patient_appointments
			(id, appointment_id, patient_id, doctor_id, doctor_name, session_date, session_type, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (appointment_id) DO UPDATE SET
			doctor_name  = EXCLUDED.doctor_name,
			session_date = EXCLUDED.session_date,
			session_type = EXCLUDED.session_type,
			status       = EXCLUDED.status,
			updated_at   = now()`,
		newID(), pa.AppointmentID, pa.PatientID, pa.DoctorID, pa.DoctorName,
		pa.SessionDate, pa.SessionType, pa.Status)
	if err != nil {
		return fmt.Errorf("upsert patient appointment: %w", err)
	}
	return nil
}

// ListPatientAppointments reads the denormalized dashboard rows.
func (s *AppointmentStore) ListPatientAppointments(ctx context.Context, patientID uuid.UUID) ([]*model.PatientAppointment, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, appointment_id, patient_id, doctor_id, doctor_name,
		       session_date, session_type, status, created_at, updated_at
		FROM patient_appointments
		WHERE patient_id = $1
		ORDER BY session_date ASC`, patientID)
	if err != nil {
		return nil, fmt.Errorf("list patient appointments: %w", err)
	}
	defer rows.Close()

	var out []*model.PatientAppointment
	for rows.Next() {
		var pa model.PatientAppointment
		if err := rows.Scan(&pa.ID, &pa.AppointmentID, &pa.PatientID, &pa.DoctorID, &pa.DoctorName,
			&pa.SessionDate, &pa.SessionType, &pa.Status, &pa.CreatedAt, &pa.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan patient appointment: %w", err)
		}
		out = append(out, &pa)
	}
	return out, rows.Err()
}
