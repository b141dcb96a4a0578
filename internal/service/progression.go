package service

import (
	"candypang_backend/internal/model"
	"time"
)

// Leveling cost. Earlier front-end builds disagreed on the per-level step
// (20 vs 10); the backend standardizes on the 10 step as the single source
// of truth. Change it here and nowhere else.
const (
	baseRequiredExp = 150
	requiredExpStep = 10

	// friendPraiseReward is the fixed secondary credit for the praiser when
	// a friend praise is approved with a "yes" response. The fever
	// multiplier does not apply to it.
	friendPraiseReward = 5
)

// RequiredExp returns the XP needed to advance from level to level+1.
func RequiredExp(level int) int {
	return baseRequiredExp + level*requiredExpStep
}

// ApplyGain adds amount to exp and rolls the surplus through as many
// level-ups as it covers, emitting one levelUp event per increment in
// ascending order. amount must be non-negative; rejections always credit 0,
// never a negative amount.
//
// Post-condition: 0 <= exp' < RequiredExp(level') and level' >= level.
func ApplyGain(studentID string, exp, level, amount int, now time.Time) (int, int, []model.ExpEvent) {
	exp += amount

	var events []model.ExpEvent
	for exp >= RequiredExp(level) {
		exp -= RequiredExp(level)
		events = append(events, model.ExpEvent{
			UUIDBase:  model.UUIDBase{CreatedAt: now},
			StudentID: studentID,
			Kind:      model.ExpEventLevelUp,
			FromLevel: level,
			ToLevel:   level + 1,
		})
		level++
	}

	return exp, level, events
}
