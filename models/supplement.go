package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Supplement mirrors Medication structurally but lives in its own table and
// additionally records where the advice came from.
type Supplement struct {
	gorm.Model
	UserID    uint   `gorm:"index;not null" json:"user_id"`
	Name      string `gorm:"not null" json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Reason    string `json:"reason"`
	Source    string `json:"source"` // e.g. "lab_recommendation", "manual"

	TimeOfDay string `gorm:"size:16" json:"time_of_day"`
	WithFood  bool   `json:"with_food"`

	TimeBlock     string `gorm:"size:16;default:'morning'" json:"time_block"`
	ScheduledTime string `gorm:"size:5" json:"scheduled_time"`
	FoodRule      string `gorm:"size:16;default:'either'" json:"food_rule"`

	SeparationRules     datatypes.JSON `json:"separation_rules"`
	AllowedTogetherWith datatypes.JSON `json:"allowed_together_with"`
	UserOverride        bool           `json:"user_override"`

	StackID *uint `gorm:"index" json:"stack_id"`
	Active  bool  `gorm:"default:true" json:"active"`
}

func (s *Supplement) EffectiveTimeBlock() string {
	if s.TimeBlock == "" {
		return TimeBlockMorning
	}
	return s.TimeBlock
}
