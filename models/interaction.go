package models

import "gorm.io/gorm"

const (
	SeverityMild     = "mild"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
)

// Interaction is one pairwise warning between an active medication and an
// active supplement. The whole set is replaced on every check.
type Interaction struct {
	gorm.Model
	UserID            uint   `gorm:"index;not null" json:"user_id"`
	MedicationID      uint   `gorm:"index;not null" json:"medication_id"`
	SupplementID      uint   `gorm:"index;not null" json:"supplement_id"`
	Severity          string `gorm:"size:16" json:"severity"`
	Description       string `gorm:"type:text" json:"description"`
	Recommendation    string `gorm:"type:text" json:"recommendation"`
	SeparationMinutes *int   `json:"separation_minutes"`
}
