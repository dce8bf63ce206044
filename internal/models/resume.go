package models

import (
	"time"

	"github.com/google/uuid"
)

type MatchTier string

const (
	TierExcellent MatchTier = "Excellent Match"
	TierPotential MatchTier = "Potential Match"
	TierRejected  MatchTier = "Rejected"
)

type MatchColor string

const (
	ColorGreen  MatchColor = "GREEN"
	ColorYellow MatchColor = "YELLOW"
	ColorRed    MatchColor = "RED"
)

type Resume struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"job_id"`
	FileName   string     `gorm:"type:text;not null" json:"file_name"`
	FilePath   string     `gorm:"type:text" json:"-"`
	ResumeText string     `gorm:"type:text;not null" json:"-"`
	RawScore   float64    `gorm:"type:decimal(5,4)" json:"raw_score"`
	MatchScore float64    `gorm:"type:decimal(4,2)" json:"match_score"`
	Tier       MatchTier  `gorm:"type:text" json:"tier"`
	Color      MatchColor `gorm:"type:text" json:"color"`
	CreatedAt  time.Time  `gorm:"type:timestamp;default:now()" json:"created_at"`

	// Relations
	Job JobDescription `gorm:"foreignKey:JobID" json:"-"`
}

func (r *Resume) TableName() string {
	return "resumes"
}
