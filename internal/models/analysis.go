package models

import (
	"time"

	"github.com/google/uuid"
)

type AnalysisStatus string

const (
	StatusQueued     AnalysisStatus = "queued"
	StatusProcessing AnalysisStatus = "processing"
	StatusCompleted  AnalysisStatus = "completed"
	StatusFailed     AnalysisStatus = "failed"
)

// Analysis is one queued resume-vs-JD critique job. The resume text is
// extracted at upload time so the worker never touches the original file.
type Analysis struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RequestedByID uuid.UUID      `gorm:"type:uuid" json:"requested_by_id"`
	FileName      string         `gorm:"type:text;not null" json:"file_name"`
	ResumeText    string         `gorm:"type:text;not null" json:"-"`
	JDText        string         `gorm:"type:text;not null" json:"-"`
	Status        AnalysisStatus `gorm:"not null;default:'queued'" json:"status"`
	MatchScore    *float64       `gorm:"type:decimal(4,2)" json:"match_score,omitempty"`
	Tier          *MatchTier     `gorm:"type:text" json:"tier,omitempty"`
	MatchedSkills *string        `gorm:"type:text" json:"matched_skills,omitempty"`
	MissingSkills *string        `gorm:"type:text" json:"missing_skills,omitempty"`
	Suggestions   *string        `gorm:"type:text" json:"suggestions,omitempty"`
	Summary       *string        `gorm:"type:text" json:"summary,omitempty"`
	ErrorMessage  *string        `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt     time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Analysis) TableName() string {
	return "analyses"
}
