package utils

import (
	"fmt"

	"github.com/NasiChan/lab2life-webapp/models"
)

// WarningSeverity categorizes how serious the flag is.
type WarningSeverity string

const (
	Info    WarningSeverity = "info"
	Caution WarningSeverity = "caution"
	High    WarningSeverity = "high"
)

// ScheduleWarning is a structured finding about the day's pill layout.
type ScheduleWarning struct {
	Code         string          `json:"code"`
	Severity     WarningSeverity `json:"severity"`
	Message      string          `json:"message"`
	TimeBlock    string          `json:"time_block"`
	Pills        []string        `json:"pills"`
	MinutesApart int             `json:"minutes_apart,omitempty"`
	Reason       string          `json:"reason,omitempty"`
}

// ScheduledPill is the flattened view of a medication or supplement the
// assessment works on.
type ScheduledPill struct {
	Type            string
	ID              uint
	Name            string
	TimeBlock       string
	FoodRule        string
	SeparationRules []models.SeparationRule
}

func (p ScheduledPill) key() string {
	return models.DoseKey(p.Type, p.ID, p.TimeBlock)
}

// AssessSchedule flags pairs of pills that share a time block but declare a
// separation rule against each other, and blocks that mix with_food and
// empty_stomach pills.
func AssessSchedule(pills []ScheduledPill) []ScheduleWarning {
	byBlock := make(map[string][]ScheduledPill)
	for _, p := range pills {
		block := p.TimeBlock
		if block == "" {
			block = models.TimeBlockMorning
		}
		byBlock[block] = append(byBlock[block], p)
	}

	var warnings []ScheduleWarning
	for block, group := range byBlock {
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				a, b := group[i], group[j]
				if rule, ok := separationBetween(a, b); ok {
					sev := Caution
					if rule.MinutesApart >= 120 {
						sev = High
					}
					warnings = append(warnings, ScheduleWarning{
						Code:         "SEPARATION_VIOLATED",
						Severity:     sev,
						Message:      fmt.Sprintf("%s and %s are both scheduled for %s but should be at least %d minutes apart", a.Name, b.Name, block, rule.MinutesApart),
						TimeBlock:    block,
						Pills:        []string{a.key(), b.key()},
						MinutesApart: rule.MinutesApart,
						Reason:       rule.Reason,
					})
				}
				if foodConflict(a, b) {
					warnings = append(warnings, ScheduleWarning{
						Code:      "FOOD_RULE_CONFLICT",
						Severity:  Caution,
						Message:   fmt.Sprintf("%s needs food while %s needs an empty stomach in the %s block", withFoodName(a, b), emptyStomachName(a, b), block),
						TimeBlock: block,
						Pills:     []string{a.key(), b.key()},
					})
				}
			}
		}
	}
	return warnings
}

func separationBetween(a, b ScheduledPill) (models.SeparationRule, bool) {
	for _, r := range a.SeparationRules {
		if r.OtherType == b.Type && r.OtherID == b.ID {
			return r, true
		}
	}
	for _, r := range b.SeparationRules {
		if r.OtherType == a.Type && r.OtherID == a.ID {
			return r, true
		}
	}
	return models.SeparationRule{}, false
}

func foodConflict(a, b ScheduledPill) bool {
	return (a.FoodRule == models.FoodRuleWithFood && b.FoodRule == models.FoodRuleEmptyStomach) ||
		(a.FoodRule == models.FoodRuleEmptyStomach && b.FoodRule == models.FoodRuleWithFood)
}

func withFoodName(a, b ScheduledPill) string {
	if a.FoodRule == models.FoodRuleWithFood {
		return a.Name
	}
	return b.Name
}

func emptyStomachName(a, b ScheduledPill) string {
	if a.FoodRule == models.FoodRuleEmptyStomach {
		return a.Name
	}
	return b.Name
}
