package models

import (
	"time"

	"github.com/google/uuid"
)

type ScreeningStatus string

const (
	StatusQueued     ScreeningStatus = "queued"
	StatusProcessing ScreeningStatus = "processing"
	StatusCompleted  ScreeningStatus = "completed"
	StatusFailed     ScreeningStatus = "failed"
)

type Verdict string

const (
	VerdictStrong   Verdict = "Strong Match"
	VerdictModerate Verdict = "Moderate Match"
	VerdictWeak     Verdict = "Weak Match"
)

// Requirement is the screening criteria shared read-only by every document
// in a batch.
type Requirement struct {
	TechnicalSkills string `json:"technical_skills"`
	SoftSkills      string `json:"soft_skills"`
}

// MatchResult is produced once per document and never reused.
type MatchResult struct {
	CandidateName string  `json:"candidate_name"`
	Score         int     `json:"score"`
	Verdict       Verdict `json:"verdict"`
	Rationale     string  `json:"rationale"`
	SkillsFound   string  `json:"skills_found"`
	SkillsMissing string  `json:"skills_missing"`
}

// ScreeningItem tracks one uploaded document through the pipeline. Exactly
// one of Result or ErrorMessage is set once the item is terminal.
type ScreeningItem struct {
	DocumentID   uuid.UUID       `json:"document_id"`
	Filename     string          `json:"filename"`
	Status       ScreeningStatus `json:"status"`
	Result       *MatchResult    `json:"result,omitempty"`
	ErrorKind    string          `json:"error_kind,omitempty"`
	ErrorMessage string          `json:"error_message,omitempty"`
}

// Screening is one batch of uploaded resumes evaluated against a single
// requirement. Items keep upload order.
type Screening struct {
	ID          uuid.UUID       `json:"id"`
	Requirement Requirement     `json:"requirement"`
	Status      ScreeningStatus `json:"status"`
	Items       []ScreeningItem `json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
