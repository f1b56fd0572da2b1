package services

import (
	"log"

	"github.com/NasiChan/lab2life-webapp/config"
	"github.com/NasiChan/lab2life-webapp/models"
)

type InteractionService struct {
	ai Extractor
}

func NewInteractionService(ai Extractor) *InteractionService {
	return &InteractionService{ai: ai}
}

func (s *InteractionService) List(userID uint) ([]models.Interaction, error) {
	var out []models.Interaction
	err := config.DB.Where("user_id = ?", userID).Find(&out).Error
	return out, err
}

// Check recomputes the full interaction set for the user's active pills and
// replaces the stored rows wholesale. A collaborator failure degrades to an
// empty result, so prior rows are cleared either way.
func (s *InteractionService) Check(userID uint) ([]models.Interaction, error) {
	var meds []models.Medication
	if err := config.DB.
		Where("user_id = ? AND active = ?", userID, true).
		Find(&meds).Error; err != nil {
		return nil, err
	}
	var supps []models.Supplement
	if err := config.DB.
		Where("user_id = ? AND active = ?", userID, true).
		Find(&supps).Error; err != nil {
		return nil, err
	}

	var results []InteractionResult
	if len(meds) > 0 && len(supps) > 0 {
		medRefs := make([]PillRef, 0, len(meds))
		for _, m := range meds {
			medRefs = append(medRefs, PillRef{ID: m.ID, Name: m.Name})
		}
		suppRefs := make([]PillRef, 0, len(supps))
		for _, sp := range supps {
			suppRefs = append(suppRefs, PillRef{ID: sp.ID, Name: sp.Name})
		}

		var err error
		results, err = s.ai.CheckInteractions(medRefs, suppRefs)
		if err != nil {
			log.Printf("interaction check for user %d degraded to empty: %v", userID, err)
			results = nil
		}
	}

	if err := config.DB.
		Where("user_id = ?", userID).
		Delete(&models.Interaction{}).Error; err != nil {
		return nil, err
	}

	stored := make([]models.Interaction, 0, len(results))
	for _, r := range results {
		row := models.Interaction{
			UserID:            userID,
			MedicationID:      r.MedicationID,
			SupplementID:      r.SupplementID,
			Severity:          r.Severity,
			Description:       r.Description,
			Recommendation:    r.Recommendation,
			SeparationMinutes: r.SeparationMinutes,
		}
		if err := config.DB.Create(&row).Error; err != nil {
			return nil, err
		}
		stored = append(stored, row)
	}
	return stored, nil
}

// DeleteForMedication / DeleteForSupplement keep the invariant that an
// interaction never outlives either referenced pill.
func DeleteInteractionsForMedication(medicationID uint) error {
	return config.DB.Where("medication_id = ?", medicationID).Delete(&models.Interaction{}).Error
}

func DeleteInteractionsForSupplement(supplementID uint) error {
	return config.DB.Where("supplement_id = ?", supplementID).Delete(&models.Interaction{}).Error
}
