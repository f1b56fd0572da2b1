package services

import (
	"time"

	"github.com/NasiChan/lab2life-webapp/config"
	"github.com/NasiChan/lab2life-webapp/models"
)

type DoseService struct{}

func NewDoseService() *DoseService {
	return &DoseService{}
}

// Generate inserts one pending dose per active pill for the given date,
// keyed by (pill type, pill id, time block). Re-running with the same date
// and pill set inserts nothing; the existing-key check makes it idempotent.
// A pill whose time block was edited after generation gets a second dose
// under the new block, because the key embeds the block.
func (s *DoseService) Generate(userID uint, date string) ([]models.PillDose, error) {
	var existing []models.PillDose
	if err := config.DB.
		Where("user_id = ? AND scheduled_date = ?", userID, date).
		Find(&existing).Error; err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(existing))
	for _, d := range existing {
		seen[d.NaturalKey()] = struct{}{}
	}

	var meds []models.Medication
	if err := config.DB.
		Where("user_id = ? AND active = ?", userID, true).
		Find(&meds).Error; err != nil {
		return nil, err
	}
	for _, m := range meds {
		block := m.EffectiveTimeBlock()
		key := models.DoseKey(models.PillTypeMedication, m.ID, block)
		if _, ok := seen[key]; ok {
			continue
		}
		dose := models.PillDose{
			UserID:             userID,
			PillType:           models.PillTypeMedication,
			PillID:             m.ID,
			ScheduledDate:      date,
			ScheduledTimeBlock: block,
			Status:             models.DoseStatusPending,
		}
		if err := config.DB.Create(&dose).Error; err != nil {
			return nil, err
		}
		seen[key] = struct{}{}
		existing = append(existing, dose)
	}

	var supps []models.Supplement
	if err := config.DB.
		Where("user_id = ? AND active = ?", userID, true).
		Find(&supps).Error; err != nil {
		return nil, err
	}
	for _, sp := range supps {
		block := sp.EffectiveTimeBlock()
		key := models.DoseKey(models.PillTypeSupplement, sp.ID, block)
		if _, ok := seen[key]; ok {
			continue
		}
		dose := models.PillDose{
			UserID:             userID,
			PillType:           models.PillTypeSupplement,
			PillID:             sp.ID,
			ScheduledDate:      date,
			ScheduledTimeBlock: block,
			Status:             models.DoseStatusPending,
		}
		if err := config.DB.Create(&dose).Error; err != nil {
			return nil, err
		}
		seen[key] = struct{}{}
		existing = append(existing, dose)
	}

	return existing, nil
}

func (s *DoseService) ListByDate(userID uint, date string) ([]models.PillDose, error) {
	var doses []models.PillDose
	err := config.DB.
		Where("user_id = ? AND scheduled_date = ?", userID, date).
		Order("id").
		Find(&doses).Error
	return doses, err
}

func (s *DoseService) Create(dose *models.PillDose) error {
	if dose.Status == "" {
		dose.Status = models.DoseStatusPending
	}
	return config.DB.Create(dose).Error
}

// DoseUpdate carries a partial status transition. The documented status
// domain is pending/taken/skipped/snoozed but the server does not police
// transitions.
type DoseUpdate struct {
	Status       *string    `json:"status"`
	TakenAt      *time.Time `json:"taken_at"`
	SnoozedUntil *time.Time `json:"snoozed_until"`
}

func (s *DoseService) Update(userID, id uint, patch DoseUpdate) (*models.PillDose, error) {
	var dose models.PillDose
	if err := config.DB.
		Where("id = ? AND user_id = ?", id, userID).
		First(&dose).Error; err != nil {
		return nil, err
	}

	if patch.Status != nil {
		dose.Status = *patch.Status
	}
	if patch.TakenAt != nil {
		dose.TakenAt = patch.TakenAt
	}
	if patch.SnoozedUntil != nil {
		dose.SnoozedUntil = patch.SnoozedUntil
	}

	if err := config.DB.Save(&dose).Error; err != nil {
		return nil, err
	}
	return &dose, nil
}
