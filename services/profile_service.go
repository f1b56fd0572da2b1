package services

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/NasiChan/lab2life-webapp/config"
	"github.com/NasiChan/lab2life-webapp/models"
	"github.com/NasiChan/lab2life-webapp/utils"
)

// ProfilePatch is a shallow merge: only fields present in the request body
// overwrite the stored value. There is no way to clear a field back to unset.
type ProfilePatch struct {
	Age           *int     `json:"age"`
	Sex           *string  `json:"sex"`
	HeightCm      *float64 `json:"height_cm"`
	WeightKg      *float64 `json:"weight_kg"`
	ActivityLevel *string  `json:"activity_level"`
	Allergies     []string `json:"allergies"`
	Conditions    []string `json:"conditions"`
	OtherMeds     []string `json:"other_meds"`
}

func GetUser(userID uint) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}

// UpdateHealthProfile merges the patch, recomputes the completion flag, and
// unconditionally clears any earlier skip. An empty patch still clears it.
func UpdateHealthProfile(userID uint, patch ProfilePatch) (*models.User, error) {
	user, err := GetUser(userID)
	if err != nil {
		return nil, err
	}

	if patch.Age != nil {
		user.Age = patch.Age
	}
	if patch.Sex != nil {
		user.Sex = *patch.Sex
	}
	if patch.HeightCm != nil {
		user.HeightCm = patch.HeightCm
	}
	if patch.WeightKg != nil {
		user.WeightKg = patch.WeightKg
	}
	if patch.ActivityLevel != nil {
		user.ActivityLevel = *patch.ActivityLevel
	}
	if patch.Allergies != nil {
		b, _ := json.Marshal(patch.Allergies)
		user.Allergies = b
	}
	if patch.Conditions != nil {
		b, _ := json.Marshal(patch.Conditions)
		user.Conditions = b
	}
	if patch.OtherMeds != nil {
		b, _ := json.Marshal(patch.OtherMeds)
		user.OtherMeds = b
	}

	now := time.Now()
	user.ProfileComplete = user.ProfileIsComplete()
	user.ProfileUpdatedAt = &now
	user.ProfileSkippedAt = nil

	if err := config.DB.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// SkipHealthProfile records that onboarding was dismissed. It touches nothing
// else: completion stays whatever the profile says.
func SkipHealthProfile(userID uint) (*models.User, error) {
	user, err := GetUser(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.ProfileSkippedAt = &now

	if err := config.DB.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// ShowOnboarding is the prompt rule downstream clients rely on.
func ShowOnboarding(user *models.User) bool {
	return !user.ProfileComplete && user.ProfileSkippedAt == nil
}

// ProfileView is the /api/me payload: the user plus derived values.
func ProfileView(user *models.User) map[string]interface{} {
	view := map[string]interface{}{
		"user":            user,
		"show_onboarding": ShowOnboarding(user),
	}
	if user.HeightCm != nil && user.WeightKg != nil {
		if bmi, err := utils.CalculateBMI(*user.HeightCm, *user.WeightKg); err == nil {
			view["bmi"] = round2(bmi)
			view["bmi_category"] = utils.BMICategory(bmi)
		}
	}
	return view
}
