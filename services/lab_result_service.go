package services

import (
	"encoding/json"
	"log"
	"math"
	"time"

	"github.com/NasiChan/lab2life-webapp/config"
	"github.com/NasiChan/lab2life-webapp/models"
	"github.com/NasiChan/lab2life-webapp/utils"
)

type LabResultService struct {
	ai Extractor
}

func NewLabResultService(ai Extractor) *LabResultService {
	return &LabResultService{ai: ai}
}

// Upload creates the lab result in "processing" state and kicks off
// extraction in a detached goroutine. The caller gets the pending row back
// immediately and polls for the status transition.
func (s *LabResultService) Upload(userID uint, fileName string, data []byte) (*models.LabResult, error) {
	lr := &models.LabResult{
		UserID:     userID,
		FileName:   fileName,
		UploadDate: time.Now(),
		Status:     models.LabStatusProcessing,
	}
	if err := config.DB.Create(lr).Error; err != nil {
		return nil, err
	}

	go s.Process(lr.ID, fileName, data)

	return lr, nil
}

// Process runs the ingestion pipeline for one lab result. Any failure flips
// the status to "error"; rows written before the failure stay as they are.
func (s *LabResultService) Process(labResultID uint, fileName string, data []byte) {
	// Archiving the original upload is best-effort; extraction works from
	// the in-memory bytes either way.
	if url, err := utils.UploadLabFile(data, fileName); err != nil {
		log.Printf("lab result %d: archive skipped: %v", labResultID, err)
	} else {
		config.DB.Model(&models.LabResult{}).Where("id = ?", labResultID).Update("file_url", url)
	}

	text := string(data)

	extracted, err := s.ai.ExtractLabData(text)
	if err != nil {
		log.Printf("lab result %d: extraction failed: %v", labResultID, err)
		s.fail(labResultID)
		return
	}

	for _, m := range extracted.Markers {
		marker := &models.HealthMarker{
			LabResultID: labResultID,
			Name:        m.Name,
			Value:       round2(float64(m.Value)),
			Unit:        m.Unit,
			NormalMin:   round2(float64(m.NormalMin)),
			NormalMax:   round2(float64(m.NormalMax)),
			Status:      m.Status,
			Category:    m.Category,
		}
		if err := config.DB.Create(marker).Error; err != nil {
			log.Printf("lab result %d: marker insert failed: %v", labResultID, err)
			s.fail(labResultID)
			return
		}
	}

	for _, r := range extracted.Recommendations {
		items, _ := json.Marshal(r.ActionItems)
		rec := &models.Recommendation{
			LabResultID:   labResultID,
			Type:          r.Type,
			Title:         r.Title,
			Description:   r.Description,
			Priority:      r.Priority,
			RelatedMarker: r.RelatedMarker,
			ActionItems:   items,
		}
		if err := config.DB.Create(rec).Error; err != nil {
			log.Printf("lab result %d: recommendation insert failed: %v", labResultID, err)
			s.fail(labResultID)
			return
		}
	}

	if err := config.DB.Model(&models.LabResult{}).Where("id = ?", labResultID).
		Updates(map[string]interface{}{
			"raw_text": text,
			"status":   models.LabStatusCompleted,
		}).Error; err != nil {
		log.Printf("lab result %d: finalize failed: %v", labResultID, err)
		s.fail(labResultID)
	}
}

func (s *LabResultService) fail(labResultID uint) {
	if err := config.DB.Model(&models.LabResult{}).Where("id = ?", labResultID).
		Update("status", models.LabStatusError).Error; err != nil {
		log.Printf("lab result %d: could not mark error: %v", labResultID, err)
	}
}

func (s *LabResultService) List(userID uint) ([]models.LabResult, error) {
	var results []models.LabResult
	err := config.DB.
		Preload("Markers").
		Preload("Recommendations").
		Where("user_id = ?", userID).
		Order("upload_date DESC").
		Find(&results).Error
	return results, err
}

func (s *LabResultService) Get(userID, id uint) (*models.LabResult, error) {
	var lr models.LabResult
	err := config.DB.
		Preload("Markers").
		Preload("Recommendations").
		Where("id = ? AND user_id = ?", id, userID).
		First(&lr).Error
	if err != nil {
		return nil, err
	}
	return &lr, nil
}

// Delete removes the lab result together with its markers and
// recommendations.
func (s *LabResultService) Delete(userID, id uint) error {
	var lr models.LabResult
	if err := config.DB.
		Where("id = ? AND user_id = ?", id, userID).
		First(&lr).Error; err != nil {
		return err
	}
	if err := config.DB.Where("lab_result_id = ?", lr.ID).Delete(&models.HealthMarker{}).Error; err != nil {
		return err
	}
	if err := config.DB.Where("lab_result_id = ?", lr.ID).Delete(&models.Recommendation{}).Error; err != nil {
		return err
	}
	return config.DB.Delete(&lr).Error
}

func (s *LabResultService) ListMarkers(userID uint) ([]models.HealthMarker, error) {
	var markers []models.HealthMarker
	err := config.DB.
		Joins("JOIN lab_results ON lab_results.id = health_markers.lab_result_id").
		Where("lab_results.user_id = ?", userID).
		Order("health_markers.created_at DESC").
		Find(&markers).Error
	return markers, err
}

func (s *LabResultService) ListRecommendations(userID uint) ([]models.Recommendation, error) {
	var recs []models.Recommendation
	err := config.DB.
		Joins("JOIN lab_results ON lab_results.id = recommendations.lab_result_id").
		Where("lab_results.user_id = ?", userID).
		Order("recommendations.created_at DESC").
		Find(&recs).Error
	return recs, err
}

// round2 keeps marker values within the numeric(12,2) column precision.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
