package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	TimeBlockMorning = "morning"
	TimeBlockMidday  = "midday"
	TimeBlockEvening = "evening"
	TimeBlockBedtime = "bedtime"
)

const (
	FoodRuleWithFood     = "with_food"
	FoodRuleEmptyStomach = "empty_stomach"
	FoodRuleEither       = "either"
)

// SeparationRule declares a minimum gap between this pill and another one,
// stored as a JSON list on the owning row.
type SeparationRule struct {
	OtherID      uint   `json:"other_id"`
	OtherType    string `json:"other_type"` // "medication" | "supplement"
	OtherName    string `json:"other_name"`
	MinutesApart int    `json:"minutes_apart"`
	Reason       string `json:"reason"`
}

type Medication struct {
	gorm.Model
	UserID    uint   `gorm:"index;not null" json:"user_id"`
	Name      string `gorm:"not null" json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`

	// Legacy scheduling fields kept for older clients.
	TimeOfDay string `gorm:"size:16" json:"time_of_day"`
	WithFood  bool   `json:"with_food"`

	TimeBlock     string `gorm:"size:16;default:'morning'" json:"time_block"`
	ScheduledTime string `gorm:"size:5" json:"scheduled_time"` // HH:MM, optional
	FoodRule      string `gorm:"size:16;default:'either'" json:"food_rule"`

	SeparationRules     datatypes.JSON `json:"separation_rules"`
	AllowedTogetherWith datatypes.JSON `json:"allowed_together_with"`
	UserOverride        bool           `json:"user_override"`

	StackID *uint `gorm:"index" json:"stack_id"`
	Active  bool  `gorm:"default:true" json:"active"`
}

// EffectiveTimeBlock is the block the dose generator keys on.
func (m *Medication) EffectiveTimeBlock() string {
	if m.TimeBlock == "" {
		return TimeBlockMorning
	}
	return m.TimeBlock
}
