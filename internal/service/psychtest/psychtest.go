package psychtest

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Omar96MJ/sanad-sub001/internal/model"
	"github.com/Omar96MJ/sanad-sub001/internal/store"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type CreateRequest struct {
	Name        string
	Category    *string
	Description *string
	Questions   []model.Question
	Bands       []model.ScoringBand
}

type SubmitRequest struct {
	PatientID uuid.UUID
	TestID    uuid.UUID
	// Answers holds one selected option value per question, in question order.
	Answers []int
}

// ---------------------------------------------------------------------------
// Store dependency
// ---------------------------------------------------------------------------

type Store interface {
	List(ctx context.Context) ([]*model.PsychTest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.PsychTest, error)
	CreateTest(ctx context.Context, t *model.PsychTest) (*model.PsychTest, error)
	CreateAssessment(ctx context.Context, a *model.PatientAssessment) (*model.PatientAssessment, error)
	ListAssessments(ctx context.Context, patientID uuid.UUID) ([]*model.PatientAssessment, error)
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	// Create adds a test to the catalog.
	Create(ctx context.Context, req CreateRequest) (*model.PsychTest, error)
	List(ctx context.Context) ([]*model.PsychTest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.PsychTest, error)
	// Submit scores the answers against the test's bands and records the
	// assessment.
	Submit(ctx context.Context, req SubmitRequest) (*model.PatientAssessment, error)
	History(ctx context.Context, patientID uuid.UUID) ([]*model.PatientAssessment, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type service struct {
	tests Store
}

func New(tests Store) Service {
	return &service{tests: tests}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*model.PsychTest, error) {
	if req.Name == "" || len(req.Questions) == 0 || len(req.Bands) == 0 {
		return nil, ErrInvalidTest
	}
	for _, q := range req.Questions {
		if q.Text == "" || len(q.Options) == 0 {
			return nil, ErrInvalidTest
		}
	}

	t, err := s.tests.CreateTest(ctx, &model.PsychTest{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Questions:   req.Questions,
		Bands:       req.Bands,
	})
	if err != nil {
		return nil, fmt.Errorf("create psych test: %w", err)
	}
	return t, nil
}

func (s *service) List(ctx context.Context) ([]*model.PsychTest, error) {
	tests, err := s.tests.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list psych tests: %w", err)
	}
	return tests, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*model.PsychTest, error) {
	t, err := s.tests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get psych test: %w", err)
	}
	return t, nil
}

func (s *service) Submit(ctx context.Context, req SubmitRequest) (*model.PatientAssessment, error) {
	test, err := s.GetByID(ctx, req.TestID)
	if err != nil {
		return nil, err
	}

	if len(req.Answers) != len(test.Questions) {
		return nil, ErrAnswerCount
	}

	score := 0
	for i, v := range req.Answers {
		if !validOption(test.Questions[i], v) {
			return nil, ErrInvalidAnswer
		}
		score += v
	}

	severity, ok := severityOf(test.Bands, score)
	if !ok {
		return nil, ErrScoreOutOfRange
	}

	a, err := s.tests.CreateAssessment(ctx, &model.PatientAssessment{
		PatientID: req.PatientID,
		TestID:    req.TestID,
		Answers:   req.Answers,
		Score:     score,
		Severity:  severity,
	})
	if err != nil {
		return nil, fmt.Errorf("create assessment: %w", err)
	}
	return a, nil
}

func (s *service) History(ctx context.Context, patientID uuid.UUID) ([]*model.PatientAssessment, error) {
	out, err := s.tests.ListAssessments(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	return out, nil
}

func validOption(q model.Question, value int) bool {
	for _, o := range q.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// severityOf finds the band whose inclusive [Min, Max] range covers score.
func severityOf(bands []model.ScoringBand, score int) (string, bool) {
	for _, b := range bands {
		if score >= b.Min && score <= b.Max {
			return b.Severity, true
		}
	}
	return "", false
}
