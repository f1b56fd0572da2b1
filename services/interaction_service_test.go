package services

import (
	"errors"
	"testing"

	"github.com/NasiChan/lab2life-webapp/config"
	"github.com/NasiChan/lab2life-webapp/models"
)

type fakeExtractor struct {
	extracted    *ExtractedData
	extractErr   error
	interactions []InteractionResult
	err          error
	calls        int
}

func (f *fakeExtractor) ExtractLabData(text string) (*ExtractedData, error) {
	if f.extractErr != nil {
		return nil, f.extractErr
	}
	if f.extracted != nil {
		return f.extracted, nil
	}
	return &ExtractedData{}, nil
}

func (f *fakeExtractor) CheckInteractions(meds, supps []PillRef) ([]InteractionResult, error) {
	f.calls++
	return f.interactions, f.err
}

func seedActivePills(t *testing.T, userID uint) (models.Medication, models.Supplement) {
	t.Helper()

	med := models.Medication{UserID: userID, Name: "Warfarin", Active: true}
	if err := config.DB.Create(&med).Error; err != nil {
		t.Fatal(err)
	}
	sup := models.Supplement{UserID: userID, Name: "Fish Oil", Active: true}
	if err := config.DB.Create(&sup).Error; err != nil {
		t.Fatal(err)
	}
	return med, sup
}

func TestCheckReplacesInteractionSet(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t)
	med, sup := seedActivePills(t, user.ID)

	fake := &fakeExtractor{interactions: []InteractionResult{{
		MedicationID:   med.ID,
		SupplementID:   sup.ID,
		Severity:       models.SeverityModerate,
		Description:    "increased bleeding risk",
		Recommendation: "separate doses and monitor",
	}}}
	svc := NewInteractionService(fake)

	out, err := svc.Check(user.ID)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 interaction, got %d", len(out))
	}

	// Second run returning nothing clears the prior set wholesale.
	fake.interactions = nil
	out, err = svc.Check(user.ID)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty replacement, got %d", len(out))
	}
	stored, err := svc.List(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 0 {
		t.Errorf("prior interactions should be gone, found %d", len(stored))
	}
}

func TestCheckSkipsCollaboratorWithoutBothPillKinds(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t)

	med := models.Medication{UserID: user.ID, Name: "Warfarin", Active: true}
	if err := config.DB.Create(&med).Error; err != nil {
		t.Fatal(err)
	}
	// Seed a stale interaction to verify the clear still happens.
	if err := config.DB.Create(&models.Interaction{UserID: user.ID, MedicationID: med.ID, SupplementID: 99}).Error; err != nil {
		t.Fatal(err)
	}

	fake := &fakeExtractor{}
	out, err := NewInteractionService(fake).Check(user.ID)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if fake.calls != 0 {
		t.Error("collaborator should not be called with no active supplements")
	}
	if len(out) != 0 {
		t.Errorf("expected empty result, got %d", len(out))
	}
	var count int64
	config.DB.Model(&models.Interaction{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Error("stale interactions should still be cleared")
	}
}

func TestCheckDegradesCollaboratorFailureToEmpty(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t)
	med, sup := seedActivePills(t, user.ID)

	if err := config.DB.Create(&models.Interaction{UserID: user.ID, MedicationID: med.ID, SupplementID: sup.ID}).Error; err != nil {
		t.Fatal(err)
	}

	fake := &fakeExtractor{err: errors.New("model unavailable")}
	out, err := NewInteractionService(fake).Check(user.ID)
	if err != nil {
		t.Fatalf("collaborator failure should not surface: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected empty result, got %d", len(out))
	}
}

func TestDeletingPillsRemovesInteractions(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t)
	med, sup := seedActivePills(t, user.ID)

	if err := config.DB.Create(&models.Interaction{UserID: user.ID, MedicationID: med.ID, SupplementID: sup.ID}).Error; err != nil {
		t.Fatal(err)
	}

	if err := DeleteMedication(user.ID, med.ID); err != nil {
		t.Fatalf("delete medication: %v", err)
	}
	var count int64
	config.DB.Model(&models.Interaction{}).Count(&count)
	if count != 0 {
		t.Error("interaction should not outlive its medication")
	}

	if err := config.DB.Create(&models.Interaction{UserID: user.ID, MedicationID: 42, SupplementID: sup.ID}).Error; err != nil {
		t.Fatal(err)
	}
	if err := DeleteSupplement(user.ID, sup.ID); err != nil {
		t.Fatalf("delete supplement: %v", err)
	}
	config.DB.Model(&models.Interaction{}).Count(&count)
	if count != 0 {
		t.Error("interaction should not outlive its supplement")
	}
}
