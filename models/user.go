package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	FullName string `json:"full_name"`

	// Health profile. Pointer fields stay NULL until the user fills them in,
	// which is what profile completion is computed from.
	Age           *int           `json:"age"`
	Sex           string         `gorm:"size:16" json:"sex"`
	HeightCm      *float64       `json:"height_cm"`
	WeightKg      *float64       `json:"weight_kg"`
	ActivityLevel string         `gorm:"size:32" json:"activity_level"`
	Allergies     datatypes.JSON `json:"allergies"`
	Conditions    datatypes.JSON `json:"conditions"`
	OtherMeds     datatypes.JSON `json:"other_meds"`

	ProfileComplete  bool       `json:"profile_complete"`
	ProfileSkippedAt *time.Time `json:"profile_skipped_at"`
	ProfileUpdatedAt *time.Time `json:"profile_updated_at"`

	ResetToken    string    `json:"-"`
	ResetTokenExp time.Time `json:"-"`
}

// ProfileIsComplete is the single source of truth for the completion flag:
// age, height and weight all present. Sex, activity level and the list fields
// do not count.
func (u *User) ProfileIsComplete() bool {
	return u.Age != nil && u.HeightCm != nil && u.WeightKg != nil
}
