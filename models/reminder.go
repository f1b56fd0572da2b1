package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Reminder struct {
	gorm.Model
	UserID    uint           `gorm:"index;not null" json:"user_id"`
	Title     string         `gorm:"not null" json:"title"`
	Time      string         `gorm:"size:5;not null" json:"time"` // HH:MM
	Days      datatypes.JSON `json:"days"`                        // weekday names, e.g. ["Monday","Thursday"]
	Type      string         `gorm:"size:16" json:"type"`         // "medication" | "supplement" | "activity"
	RelatedID *uint          `json:"related_id"`
	Enabled   bool           `gorm:"default:true" json:"enabled"`
}
