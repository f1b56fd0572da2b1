package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

const (
	PillTypeMedication = "medication"
	PillTypeSupplement = "supplement"
)

const (
	DoseStatusPending = "pending"
	DoseStatusTaken   = "taken"
	DoseStatusSkipped = "skipped"
	DoseStatusSnoozed = "snoozed"
)

// PillDose is one day's tracked instance of a pill. The generator keys rows
// by (pill type, pill id, date, time block) and must never create two rows
// sharing that tuple.
type PillDose struct {
	gorm.Model
	UserID             uint       `gorm:"index;not null" json:"user_id"`
	PillType           string     `gorm:"size:16;not null" json:"pill_type"`
	PillID             uint       `gorm:"not null" json:"pill_id"`
	ScheduledDate      string     `gorm:"size:10;index;not null" json:"scheduled_date"` // YYYY-MM-DD
	ScheduledTimeBlock string     `gorm:"size:16" json:"scheduled_time_block"`
	Status             string     `gorm:"size:16;default:'pending'" json:"status"`
	TakenAt            *time.Time `json:"taken_at"`
	SnoozedUntil       *time.Time `json:"snoozed_until"`
}

// NaturalKey identifies a dose within one calendar date.
func (d *PillDose) NaturalKey() string {
	return DoseKey(d.PillType, d.PillID, d.ScheduledTimeBlock)
}

func DoseKey(pillType string, pillID uint, timeBlock string) string {
	return fmt.Sprintf("%s-%d-%s", pillType, pillID, timeBlock)
}
