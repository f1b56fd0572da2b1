package services

import "testing"

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func TestProfileCompletionRequiresAgeHeightWeight(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t)

	got, err := UpdateHealthProfile(user.ID, ProfilePatch{Age: intPtr(34)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.ProfileComplete {
		t.Error("age alone should not complete the profile")
	}

	got, err = UpdateHealthProfile(user.ID, ProfilePatch{
		HeightCm: floatPtr(178),
		WeightKg: floatPtr(71.5),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !got.ProfileComplete {
		t.Error("age+height+weight should complete the profile")
	}

	// Sex and activity level are irrelevant to completion.
	got, err = UpdateHealthProfile(user.ID, ProfilePatch{
		Sex:           strPtr("female"),
		ActivityLevel: strPtr("moderate"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !got.ProfileComplete {
		t.Error("sex/activity patch must not drop completion")
	}
}

func TestPatchIsShallowMerge(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t)

	if _, err := UpdateHealthProfile(user.ID, ProfilePatch{Age: intPtr(40), HeightCm: floatPtr(165)}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := UpdateHealthProfile(user.ID, ProfilePatch{WeightKg: floatPtr(60)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if got.Age == nil || *got.Age != 40 {
		t.Error("omitted age should retain prior value")
	}
	if got.HeightCm == nil || *got.HeightCm != 165 {
		t.Error("omitted height should retain prior value")
	}
	if !got.ProfileComplete {
		t.Error("profile should be complete after the merge")
	}
}

func TestSkipOnlySetsSkippedAt(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t)

	got, err := SkipHealthProfile(user.ID)
	if err != nil {
		t.Fatalf("skip: %v", err)
	}
	if got.ProfileSkippedAt == nil {
		t.Fatal("skip should set skipped_at")
	}
	if got.ProfileComplete {
		t.Error("skip must not change completion")
	}
	if ShowOnboarding(got) {
		t.Error("onboarding prompt should be suppressed after skip")
	}
}

func TestAnyProfileUpdateClearsSkip(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t)

	if _, err := SkipHealthProfile(user.ID); err != nil {
		t.Fatalf("skip: %v", err)
	}

	// Even an empty patch clears the skip.
	got, err := UpdateHealthProfile(user.ID, ProfilePatch{})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.ProfileSkippedAt != nil {
		t.Error("profile update should clear skipped_at")
	}
	if got.ProfileUpdatedAt == nil {
		t.Error("profile update should stamp last updated")
	}
	if !ShowOnboarding(got) {
		t.Error("incomplete unskipped profile should prompt onboarding again")
	}
}
