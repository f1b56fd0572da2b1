package utils

import (
	"strings"
	"testing"

	"github.com/NasiChan/lab2life-webapp/models"
)

func TestAssessScheduleFlagsSeparationViolation(t *testing.T) {
	pills := []ScheduledPill{
		{
			Type: models.PillTypeMedication, ID: 1, Name: "Levothyroxine",
			TimeBlock: models.TimeBlockMorning,
			SeparationRules: []models.SeparationRule{{
				OtherType: models.PillTypeSupplement, OtherID: 2,
				MinutesApart: 240, Reason: "calcium reduces absorption",
			}},
		},
		{
			Type: models.PillTypeSupplement, ID: 2, Name: "Calcium",
			TimeBlock: models.TimeBlockMorning,
		},
	}

	warnings := AssessSchedule(pills)
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d: %+v", len(warnings), warnings)
	}
	w := warnings[0]
	if w.Code != "SEPARATION_VIOLATED" {
		t.Errorf("code = %q", w.Code)
	}
	if w.Severity != High {
		t.Errorf("240 minute rule should be high severity, got %q", w.Severity)
	}
	if w.MinutesApart != 240 || w.Reason != "calcium reduces absorption" {
		t.Errorf("rule details lost: %+v", w)
	}
	if len(w.Pills) != 2 {
		t.Errorf("expected both pill keys, got %v", w.Pills)
	}
}

func TestAssessScheduleSeparationSeverityThreshold(t *testing.T) {
	pills := []ScheduledPill{
		{
			Type: models.PillTypeMedication, ID: 1, Name: "A",
			TimeBlock: models.TimeBlockEvening,
			SeparationRules: []models.SeparationRule{{
				OtherType: models.PillTypeMedication, OtherID: 2, MinutesApart: 60,
			}},
		},
		{Type: models.PillTypeMedication, ID: 2, Name: "B", TimeBlock: models.TimeBlockEvening},
	}

	warnings := AssessSchedule(pills)
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(warnings))
	}
	if warnings[0].Severity != Caution {
		t.Errorf("60 minute rule should be caution, got %q", warnings[0].Severity)
	}
}

func TestAssessScheduleRuleDirectionDoesNotMatter(t *testing.T) {
	// The rule lives on the second pill; the pair must still be flagged.
	pills := []ScheduledPill{
		{Type: models.PillTypeMedication, ID: 1, Name: "A", TimeBlock: models.TimeBlockMidday},
		{
			Type: models.PillTypeSupplement, ID: 2, Name: "B",
			TimeBlock: models.TimeBlockMidday,
			SeparationRules: []models.SeparationRule{{
				OtherType: models.PillTypeMedication, OtherID: 1, MinutesApart: 30,
			}},
		},
	}

	if got := len(AssessSchedule(pills)); got != 1 {
		t.Errorf("expected 1 warning regardless of rule direction, got %d", got)
	}
}

func TestAssessScheduleIgnoresSeparatedBlocks(t *testing.T) {
	pills := []ScheduledPill{
		{
			Type: models.PillTypeMedication, ID: 1, Name: "A",
			TimeBlock: models.TimeBlockMorning,
			SeparationRules: []models.SeparationRule{{
				OtherType: models.PillTypeSupplement, OtherID: 2, MinutesApart: 240,
			}},
			FoodRule: models.FoodRuleEmptyStomach,
		},
		{
			Type: models.PillTypeSupplement, ID: 2, Name: "B",
			TimeBlock: models.TimeBlockEvening,
			FoodRule:  models.FoodRuleWithFood,
		},
	}

	if warnings := AssessSchedule(pills); len(warnings) != 0 {
		t.Errorf("pills in different blocks should not warn, got %+v", warnings)
	}
}

func TestAssessScheduleFlagsFoodRuleConflict(t *testing.T) {
	pills := []ScheduledPill{
		{Type: models.PillTypeMedication, ID: 1, Name: "Iron", TimeBlock: models.TimeBlockMorning, FoodRule: models.FoodRuleEmptyStomach},
		{Type: models.PillTypeSupplement, ID: 2, Name: "Omega 3", TimeBlock: models.TimeBlockMorning, FoodRule: models.FoodRuleWithFood},
		{Type: models.PillTypeSupplement, ID: 3, Name: "Zinc", TimeBlock: models.TimeBlockMorning, FoodRule: models.FoodRuleEither},
	}

	warnings := AssessSchedule(pills)
	if len(warnings) != 1 {
		t.Fatalf("expected exactly the iron/omega conflict, got %d: %+v", len(warnings), warnings)
	}
	w := warnings[0]
	if w.Code != "FOOD_RULE_CONFLICT" || w.Severity != Caution {
		t.Errorf("unexpected warning %+v", w)
	}
	for _, name := range []string{"Omega 3", "Iron"} {
		if !strings.Contains(w.Message, name) {
			t.Errorf("message should name %s: %q", name, w.Message)
		}
	}
}

func TestAssessScheduleDefaultsEmptyBlockToMorning(t *testing.T) {
	pills := []ScheduledPill{
		{Type: models.PillTypeMedication, ID: 1, Name: "Iron", FoodRule: models.FoodRuleEmptyStomach},
		{Type: models.PillTypeSupplement, ID: 2, Name: "Omega 3", TimeBlock: models.TimeBlockMorning, FoodRule: models.FoodRuleWithFood},
	}

	warnings := AssessSchedule(pills)
	if len(warnings) != 1 {
		t.Fatalf("blockless pill should land in morning, got %d warnings", len(warnings))
	}
	if warnings[0].TimeBlock != models.TimeBlockMorning {
		t.Errorf("time_block = %q, want morning", warnings[0].TimeBlock)
	}
}
