package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Omar96MJ/sanad-sub001/internal/model"
)

type PsychTestStore struct {
	db *pgxpool.Pool
}

func NewPsychTestStore(db *pgxpool.Pool) *PsychTestStore {
	return &PsychTestStore{db: db}
}

func scanPsychTest(row pgx.Row) (*model.PsychTest, error) {
	var t model.PsychTest
	err := row.Scan(&t.ID, &t.Name, &t.Category, &t.Description, &t.Questions, &t.Bands,
		&t.IsActive, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan psych test: %w", err)
	}
	return &t, nil
}

const testColumns = `id, name, category, description, questions, bands, is_active, created_at`

func (s *PsychTestStore) List(ctx context.Context) ([]*model.PsychTest, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+testColumns+` FROM psych_tests WHERE is_active ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list psych tests: %w", err)
	}
	defer rows.Close()

	var out []*model.PsychTest
	for rows.Next() {
		t, err := scanPsychTest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *PsychTestStore) GetByID(ctx context.Context, id uuid.UUID) (*model.PsychTest, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+testColumns+` FROM psych_tests WHERE id = $1 AND is_active`, id)
	return scanPsychTest(row)
}

func (s *PsychTestStore) CreateTest(ctx context.Context, t *model.PsychTest) (*model.PsychTest, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO psych_tests (id, name, category, description, questions, bands)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+testColumns,
		newID(), t.Name, t.Category, t.Description, t.Questions, t.Bands)
	return scanPsychTest(row)
}

func (s *PsychTestStore) CreateAssessment(ctx context.Context, a *model.PatientAssessment) (*model.PatientAssessment, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO patient_assessments (id, patient_id, test_id, answers, score, severity)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, patient_id, test_id, answers, score, severity, created_at`,
		newID(), a.PatientID, a.TestID, a.Answers, a.Score, a.Severity)

	var out model.PatientAssessment
	if err := row.Scan(&out.ID, &out.PatientID, &out.TestID, &out.Answers, &out.Score,
		&out.Severity, &out.CreatedAt); err != nil {
		return nil, fmt.Errorf("create assessment: %w", err)
	}
	return &out, nil
}

func (s *PsychTestStore) ListAssessments(ctx context.Context, patientID uuid.UUID) ([]*model.PatientAssessment, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, patient_id, test_id, answers, score, severity, created_at
		FROM patient_assessments
		WHERE patient_id = $1
		ORDER BY created_at DESC`, patientID)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	defer rows.Close()

	var out []*model.PatientAssessment
	for rows.Next() {
		var a model.PatientAssessment
		if err := rows.Scan(&a.ID, &a.PatientID, &a.TestID, &a.Answers, &a.Score,
			&a.Severity, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
