package services

import (
	"encoding/json"

	"github.com/NasiChan/lab2life-webapp/config"
	"github.com/NasiChan/lab2life-webapp/models"
	"github.com/NasiChan/lab2life-webapp/utils"
)

// MedicationInput is the create body. Optional scheduling fields fall back
// to the column defaults (morning block, "either" food rule).
type MedicationInput struct {
	Name                string                  `json:"name" binding:"required"`
	Dosage              string                  `json:"dosage"`
	Frequency           string                  `json:"frequency"`
	TimeOfDay           string                  `json:"time_of_day"`
	WithFood            bool                    `json:"with_food"`
	TimeBlock           string                  `json:"time_block"`
	ScheduledTime       string                  `json:"scheduled_time"`
	FoodRule            string                  `json:"food_rule"`
	SeparationRules     []models.SeparationRule `json:"separation_rules"`
	AllowedTogetherWith []uint                  `json:"allowed_together_with"`
	UserOverride        bool                    `json:"user_override"`
	StackID             *uint                   `json:"stack_id"`
}

// MedicationPatch mirrors MedicationInput with every field optional.
type MedicationPatch struct {
	Name                *string                  `json:"name"`
	Dosage              *string                  `json:"dosage"`
	Frequency           *string                  `json:"frequency"`
	TimeOfDay           *string                  `json:"time_of_day"`
	WithFood            *bool                    `json:"with_food"`
	TimeBlock           *string                  `json:"time_block"`
	ScheduledTime       *string                  `json:"scheduled_time"`
	FoodRule            *string                  `json:"food_rule"`
	SeparationRules     *[]models.SeparationRule `json:"separation_rules"`
	AllowedTogetherWith *[]uint                  `json:"allowed_together_with"`
	UserOverride        *bool                    `json:"user_override"`
	StackID             *uint                    `json:"stack_id"`
	Active              *bool                    `json:"active"`
}

func CreateMedication(userID uint, in MedicationInput) (*models.Medication, error) {
	rules, _ := json.Marshal(in.SeparationRules)
	allowed, _ := json.Marshal(in.AllowedTogetherWith)

	med := &models.Medication{
		UserID:              userID,
		Name:                in.Name,
		Dosage:              in.Dosage,
		Frequency:           in.Frequency,
		TimeOfDay:           in.TimeOfDay,
		WithFood:            in.WithFood,
		TimeBlock:           in.TimeBlock,
		ScheduledTime:       in.ScheduledTime,
		FoodRule:            in.FoodRule,
		SeparationRules:     rules,
		AllowedTogetherWith: allowed,
		UserOverride:        in.UserOverride,
		StackID:             in.StackID,
		Active:              true,
	}
	if med.TimeBlock == "" {
		med.TimeBlock = models.TimeBlockMorning
	}
	if med.FoodRule == "" {
		med.FoodRule = models.FoodRuleEither
	}
	if err := config.DB.Create(med).Error; err != nil {
		return nil, err
	}
	return med, nil
}

func ListMedications(userID uint) ([]models.Medication, error) {
	var meds []models.Medication
	err := config.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&meds).Error
	return meds, err
}

func GetMedication(userID, id uint) (*models.Medication, error) {
	var med models.Medication
	if err := config.DB.Where("id = ? AND user_id = ?", id, userID).First(&med).Error; err != nil {
		return nil, err
	}
	return &med, nil
}

func UpdateMedication(userID, id uint, patch MedicationPatch) (*models.Medication, error) {
	med, err := GetMedication(userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		med.Name = *patch.Name
	}
	if patch.Dosage != nil {
		med.Dosage = *patch.Dosage
	}
	if patch.Frequency != nil {
		med.Frequency = *patch.Frequency
	}
	if patch.TimeOfDay != nil {
		med.TimeOfDay = *patch.TimeOfDay
	}
	if patch.WithFood != nil {
		med.WithFood = *patch.WithFood
	}
	if patch.TimeBlock != nil {
		med.TimeBlock = *patch.TimeBlock
	}
	if patch.ScheduledTime != nil {
		med.ScheduledTime = *patch.ScheduledTime
	}
	if patch.FoodRule != nil {
		med.FoodRule = *patch.FoodRule
	}
	if patch.SeparationRules != nil {
		b, _ := json.Marshal(*patch.SeparationRules)
		med.SeparationRules = b
	}
	if patch.AllowedTogetherWith != nil {
		b, _ := json.Marshal(*patch.AllowedTogetherWith)
		med.AllowedTogetherWith = b
	}
	if patch.UserOverride != nil {
		med.UserOverride = *patch.UserOverride
	}
	if patch.StackID != nil {
		med.StackID = patch.StackID
	}
	if patch.Active != nil {
		med.Active = *patch.Active
	}

	if err := config.DB.Save(med).Error; err != nil {
		return nil, err
	}
	return med, nil
}

// DeleteMedication hard-deletes the row and every interaction referencing
// it.
func DeleteMedication(userID, id uint) error {
	med, err := GetMedication(userID, id)
	if err != nil {
		return err
	}
	if err := DeleteInteractionsForMedication(med.ID); err != nil {
		return err
	}
	return config.DB.Unscoped().Delete(med).Error
}

// SupplementInput adds the provenance fields on top of the medication shape.
type SupplementInput struct {
	MedicationInput
	Reason string `json:"reason"`
	Source string `json:"source"`
}

type SupplementPatch struct {
	MedicationPatch
	Reason *string `json:"reason"`
	Source *string `json:"source"`
}

func CreateSupplement(userID uint, in SupplementInput) (*models.Supplement, error) {
	rules, _ := json.Marshal(in.SeparationRules)
	allowed, _ := json.Marshal(in.AllowedTogetherWith)

	sup := &models.Supplement{
		UserID:              userID,
		Name:                in.Name,
		Dosage:              in.Dosage,
		Frequency:           in.Frequency,
		Reason:              in.Reason,
		Source:              in.Source,
		TimeOfDay:           in.TimeOfDay,
		WithFood:            in.WithFood,
		TimeBlock:           in.TimeBlock,
		ScheduledTime:       in.ScheduledTime,
		FoodRule:            in.FoodRule,
		SeparationRules:     rules,
		AllowedTogetherWith: allowed,
		UserOverride:        in.UserOverride,
		StackID:             in.StackID,
		Active:              true,
	}
	if sup.TimeBlock == "" {
		sup.TimeBlock = models.TimeBlockMorning
	}
	if sup.FoodRule == "" {
		sup.FoodRule = models.FoodRuleEither
	}
	if err := config.DB.Create(sup).Error; err != nil {
		return nil, err
	}
	return sup, nil
}

func ListSupplements(userID uint) ([]models.Supplement, error) {
	var supps []models.Supplement
	err := config.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&supps).Error
	return supps, err
}

func GetSupplement(userID, id uint) (*models.Supplement, error) {
	var sup models.Supplement
	if err := config.DB.Where("id = ? AND user_id = ?", id, userID).First(&sup).Error; err != nil {
		return nil, err
	}
	return &sup, nil
}

func UpdateSupplement(userID, id uint, patch SupplementPatch) (*models.Supplement, error) {
	sup, err := GetSupplement(userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		sup.Name = *patch.Name
	}
	if patch.Dosage != nil {
		sup.Dosage = *patch.Dosage
	}
	if patch.Frequency != nil {
		sup.Frequency = *patch.Frequency
	}
	if patch.Reason != nil {
		sup.Reason = *patch.Reason
	}
	if patch.Source != nil {
		sup.Source = *patch.Source
	}
	if patch.TimeOfDay != nil {
		sup.TimeOfDay = *patch.TimeOfDay
	}
	if patch.WithFood != nil {
		sup.WithFood = *patch.WithFood
	}
	if patch.TimeBlock != nil {
		sup.TimeBlock = *patch.TimeBlock
	}
	if patch.ScheduledTime != nil {
		sup.ScheduledTime = *patch.ScheduledTime
	}
	if patch.FoodRule != nil {
		sup.FoodRule = *patch.FoodRule
	}
	if patch.SeparationRules != nil {
		b, _ := json.Marshal(*patch.SeparationRules)
		sup.SeparationRules = b
	}
	if patch.AllowedTogetherWith != nil {
		b, _ := json.Marshal(*patch.AllowedTogetherWith)
		sup.AllowedTogetherWith = b
	}
	if patch.UserOverride != nil {
		sup.UserOverride = *patch.UserOverride
	}
	if patch.StackID != nil {
		sup.StackID = patch.StackID
	}
	if patch.Active != nil {
		sup.Active = *patch.Active
	}

	if err := config.DB.Save(sup).Error; err != nil {
		return nil, err
	}
	return sup, nil
}

func DeleteSupplement(userID, id uint) error {
	sup, err := GetSupplement(userID, id)
	if err != nil {
		return err
	}
	if err := DeleteInteractionsForSupplement(sup.ID); err != nil {
		return err
	}
	return config.DB.Unscoped().Delete(sup).Error
}

// ScheduleWarnings runs the separation/food-rule assessment over the user's
// active pills.
func ScheduleWarnings(userID uint) ([]utils.ScheduleWarning, error) {
	var meds []models.Medication
	if err := config.DB.Where("user_id = ? AND active = ?", userID, true).Find(&meds).Error; err != nil {
		return nil, err
	}
	var supps []models.Supplement
	if err := config.DB.Where("user_id = ? AND active = ?", userID, true).Find(&supps).Error; err != nil {
		return nil, err
	}

	pills := make([]utils.ScheduledPill, 0, len(meds)+len(supps))
	for _, m := range meds {
		pills = append(pills, utils.ScheduledPill{
			Type:            models.PillTypeMedication,
			ID:              m.ID,
			Name:            m.Name,
			TimeBlock:       m.EffectiveTimeBlock(),
			FoodRule:        m.FoodRule,
			SeparationRules: parseSeparationRules(m.SeparationRules),
		})
	}
	for _, sp := range supps {
		pills = append(pills, utils.ScheduledPill{
			Type:            models.PillTypeSupplement,
			ID:              sp.ID,
			Name:            sp.Name,
			TimeBlock:       sp.EffectiveTimeBlock(),
			FoodRule:        sp.FoodRule,
			SeparationRules: parseSeparationRules(sp.SeparationRules),
		})
	}

	return utils.AssessSchedule(pills), nil
}

func parseSeparationRules(raw []byte) []models.SeparationRule {
	if len(raw) == 0 {
		return nil
	}
	var rules []models.SeparationRule
	if err := json.Unmarshal(raw, &rules); err != nil {
		return nil
	}
	return rules
}
