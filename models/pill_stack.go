package models

import "gorm.io/gorm"

// PillStack is a named grouping of pills for a time block. It is a label
// only; medications and supplements point at it via StackID without a
// referential constraint.
type PillStack struct {
	gorm.Model
	UserID        uint   `gorm:"index;not null" json:"user_id"`
	Name          string `gorm:"not null" json:"name"`
	TimeBlock     string `gorm:"size:16;default:'morning'" json:"time_block"`
	ScheduledTime string `gorm:"size:5" json:"scheduled_time"`
	Description   string `json:"description"`
}
