package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	LabStatusProcessing = "processing"
	LabStatusCompleted  = "completed"
	LabStatusError      = "error"
)

// LabResult is created in "processing" state at upload time; the extraction
// pipeline moves it to "completed" or "error" asynchronously.
type LabResult struct {
	gorm.Model
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	FileName   string    `gorm:"not null" json:"file_name"`
	FileURL    string    `json:"file_url"` // S3 location of the original upload, if archived
	UploadDate time.Time `json:"upload_date"`
	RawText    string    `gorm:"type:text" json:"raw_text"`
	Status     string    `gorm:"size:16;default:'processing'" json:"status"`

	Markers         []HealthMarker   `gorm:"constraint:OnDelete:CASCADE" json:"markers,omitempty"`
	Recommendations []Recommendation `gorm:"constraint:OnDelete:CASCADE" json:"recommendations,omitempty"`
}

type HealthMarker struct {
	gorm.Model
	LabResultID uint    `gorm:"index;not null" json:"lab_result_id"`
	Name        string  `gorm:"not null" json:"name"`
	Value       float64 `gorm:"type:numeric(12,2)" json:"value"`
	Unit        string  `gorm:"size:32" json:"unit"`
	NormalMin   float64 `gorm:"type:numeric(12,2)" json:"normal_min"`
	NormalMax   float64 `gorm:"type:numeric(12,2)" json:"normal_max"`
	Status      string  `gorm:"size:8" json:"status"` // "low" | "normal" | "high"
	Category    string  `json:"category"`
}

type Recommendation struct {
	gorm.Model
	LabResultID   uint           `gorm:"index;not null" json:"lab_result_id"`
	Type          string         `gorm:"size:16" json:"type"` // "supplement" | "dietary" | "physical"
	Title         string         `json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	Priority      string         `gorm:"size:8" json:"priority"` // "high" | "medium" | "low"
	RelatedMarker string         `json:"related_marker"`
	ActionItems   datatypes.JSON `json:"action_items"`
}
