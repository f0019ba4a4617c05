package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate creates the schema. Statements are idempotent so the command can
// run on every deploy.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		name          TEXT NOT NULL,
		role          TEXT NOT NULL CHECK (role IN ('patient','doctor','admin')),
		phone         TEXT,
		image         TEXT,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		deleted_at    TIMESTAMPTZ
	)`,

	`CREATE TABLE IF NOT EXISTS doctors (
		id              UUID PRIMARY KEY,
		user_id         UUID NOT NULL REFERENCES users(id),
		display_name    TEXT NOT NULL,
		specialization  TEXT,
		bio             TEXT,
		image           TEXT,
		available_hours INT NOT NULL DEFAULT 0,
		is_accepting    BOOLEAN NOT NULL DEFAULT true,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS doctors_user_id_idx ON doctors (user_id)`,

	`CREATE TABLE IF NOT EXISTS therapist_availability (
		id           UUID PRIMARY KEY,
		doctor_id    UUID NOT NULL REFERENCES doctors(id),
		day_of_week  SMALLINT NOT NULL CHECK (day_of_week BETWEEN 0 AND 6),
		start_time   TIME NOT NULL,
		end_time     TIME NOT NULL,
		is_available BOOLEAN NOT NULL DEFAULT true,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS therapist_availability_doctor_idx
		ON therapist_availability (doctor_id, day_of_week)`,

	`CREATE TABLE IF NOT EXISTS appointments (
		id           UUID PRIMARY KEY,
		patient_id   UUID NOT NULL REFERENCES users(id),
		doctor_id    UUID NOT NULL REFERENCES doctors(id),
		session_date TIMESTAMPTZ NOT NULL,
		session_type TEXT NOT NULL,
		status       TEXT NOT NULL DEFAULT 'scheduled'
			CHECK (status IN ('scheduled','completed','cancelled','rescheduled','no_show')),
		notes        TEXT,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS appointments_patient_idx ON appointments (patient_id, session_date)`,
	`CREATE INDEX IF NOT EXISTS appointments_doctor_idx ON appointments (doctor_id, session_date)`,

	`CREATE TABLE IF NOT EXISTS patient_appointments (
		id             UUID PRIMARY KEY,
		appointment_id UUID NOT NULL,
		patient_id     UUID NOT NULL,
		doctor_id      UUID NOT NULL,
		doctor_name    TEXT NOT NULL,
		session_date   TIMESTAMPTZ NOT NULL,
		session_type   TEXT NOT NULL,
		status         TEXT NOT NULL DEFAULT 'upcoming'
			CHECK (status IN ('upcoming','completed','cancelled')),
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS patient_appointments_appt_idx
		ON patient_appointments (appointment_id)`,
	`CREATE INDEX IF NOT EXISTS patient_appointments_patient_idx
		ON patient_appointments (patient_id, session_date)`,

	`CREATE TABLE IF NOT EXISTS conversations (
		id              UUID PRIMARY KEY,
		patient_id      UUID NOT NULL REFERENCES users(id),
		doctor_id       UUID NOT NULL REFERENCES users(id),
		last_message_at TIMESTAMPTZ,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS conversations_pair_idx
		ON conversations (patient_id, doctor_id)`,

	`CREATE TABLE IF NOT EXISTS messages (
		id              UUID PRIMARY KEY,
		conversation_id UUID NOT NULL REFERENCES conversations(id),
		sender_id       UUID NOT NULL REFERENCES users(id),
		content         TEXT NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
		deleted_at      TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS messages_conversation_idx
		ON messages (conversation_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS psych_tests (
		id          UUID PRIMARY KEY,
		name        TEXT NOT NULL,
		category    TEXT,
		description TEXT,
		questions   JSONB NOT NULL DEFAULT '[]',
		bands       JSONB NOT NULL DEFAULT '[]',
		is_active   BOOLEAN NOT NULL DEFAULT true,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS patient_assessments (
		id         UUID PRIMARY KEY,
		patient_id UUID NOT NULL REFERENCES users(id),
		test_id    UUID NOT NULL REFERENCES psych_tests(id),
		answers    JSONB NOT NULL,
		score      INT NOT NULL,
		severity   TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS patient_assessments_patient_idx
		ON patient_assessments (patient_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id         UUID PRIMARY KEY,
		user_id    UUID NOT NULL REFERENCES users(id),
		type       TEXT NOT NULL,
		title      TEXT NOT NULL,
		body       TEXT,
		data       JSONB,
		is_read    BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS notifications_user_idx
		ON notifications (user_id, is_read, created_at)`,
}
