package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Omar96MJ/sanad-sub001/internal/model"
)

type AvailabilityStore struct {
	db *pgxpool.Pool
}

func NewAvailabilityStore(db *pgxpool.Pool) *AvailabilityStore {
	return &AvailabilityStore{db: db}
}

// ListSlots returns all availability rows for a doctor ordered by day then
// start time.
func (s *AvailabilityStore) ListSlots(ctx context.Context, doctorID uuid.UUID) ([]model.AvailabilitySlot, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, doctor_id, day_of_week, start_time::text, end_time::text, is_available, created_at
		FROM therapist_availability
		WHERE doctor_id = $1
		ORDER BY day_of_week, start_time`, doctorID)
	if err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}
	defer rows.Close()

	var slots []model.AvailabilitySlot
	for rows.Next() {
		var sl model.AvailabilitySlot
		if err := rows.Scan(&sl.ID, &sl.DoctorID, &sl.DayOfWeek, &sl.StartTime, &sl.EndTime, &sl.IsAvailable, &sl.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan availability: %w", err)
		}
		slots = append(slots, sl)
	}
	return slots, rows.Err()
}

// ReplaceSlots atomically swaps the doctor's full availability set and
// refreshes the denormalized available_hours counter on the profile. The
// save is delete-all-then-insert: concurrent saves are last-write-wins.
func (s *AvailabilityStore) ReplaceSlots(ctx context.Context, doctorID uuid.UUID, slots []model.AvailabilitySlot, hours int) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM therapist_availability WHERE doctor_id = $1`, doctorID); err != nil {
		return fmt.Errorf("delete availability: %w", err)
	}

	for _, sl := range slots {
		if _, err := tx.Exec(ctx, `
			INSERT INTO therapist_availability (id, doctor_id, day_of_week, start_time, end_time, is_available)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			newID(), doctorID, sl.DayOfWeek, sl.StartTime, sl.EndTime, sl.IsAvailable); err != nil {
			return fmt.Errorf("insert availability: %w", err)
		}
	}

	if _, err := tx.Exec(ctx, `
		UPDATE doctors SET available_hours = $2, updated_at = now()
		WHERE id = $1`, doctorID, hours); err != nil {
		return fmt.Errorf("update available_hours: %w", err)
	}

	return tx.Commit(ctx)
}
