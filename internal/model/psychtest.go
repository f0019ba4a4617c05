package model

import (
	"time"

	"github.com/google/uuid"
)

// PsychTest is a self-assessment catalog entry. Questions and scoring bands
// are stored as JSONB on the row.
type PsychTest struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Category    *string       `json:"category,omitempty"`
	Description *string       `json:"description,omitempty"`
	Questions   []Question    `json:"questions"`
	Bands       []ScoringBand `json:"bands"`
	IsActive    bool          `json:"is_active"`
	CreatedAt   time.Time     `json:"created_at"`
}

type Question struct {
	Text    string   `json:"text"`
	Options []Option `json:"options"`
}

type Option struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// ScoringBand maps an inclusive score range onto a severity label,
// e.g. 0-4 "minimal", 5-9 "mild".
type ScoringBand struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Severity string `json:"severity"`
}

// PatientAssessment records one completed administration of a test.
type PatientAssessment struct {
	ID        uuid.UUID `json:"id"`
	PatientID uuid.UUID `json:"patient_id"`
	TestID    uuid.UUID `json:"test_id"`
	Answers   []int     `json:"answers"`
	Score     int       `json:"score"`
	Severity  string    `json:"severity"`
	CreatedAt time.Time `json:"created_at"`
}
