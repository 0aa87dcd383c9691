package check

import (
	"math"

	"github.com/udisondev/la2go/internal/config"
	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/world"
)

// baseXP is the XP a bare Success is worth, whatever the check's
// difficulty; every other outcome scales from it via resultMultiplier.
const baseXP = 10.0

// resultMultiplier scales the base award by how well the check went.
// ExtremeFailure earns nothing; ExtremeSuccess earns double a plain
// Success.
func resultMultiplier(r Result) float64 {
	switch r {
	case ExtremeSuccess:
		return 2.0
	case Success:
		return 1.0
	case Failure:
		return 0.25
	default:
		return 0.0
	}
}

// Award performs a stat/skill check, records the use in the entity's
// CheckHistory, and credits TotalXP scaled by both the check's outcome
// and the stat's recent-use fatigue: using the same stat repeatedly
// yields diminishing returns.
//
// name identifies the stat or skill being used (shared string space
// between model.Stat and model.Skill, per CheckHistory's doc comment).
func Award(s *world.Store, e world.EntityID, name string, mean float64, d Difficulty, cfg config.Simulation, uniform func() float64) Result {
	_, result := Roll(mean, cfg.CheckStandardDeviation, d, uniform)

	fatigue := model.FatigueMultiplier(s, e, name)
	model.RecordUse(s, e, name, 1, 1)

	xp := baseXP * resultMultiplier(result) * fatigue
	if xp > 0 {
		CreditXP(s, e, xp, cfg)
	}
	return result
}

// CreditXP adds xp to the entity's TotalXP and grants advancement points
// for every threshold crossed. Thresholds grow geometrically: threshold(n)
// = FirstAdvancementThreshold * AdvancementThresholdRatio^n. Exported so
// admin tooling (cheat commands) can grant XP directly without going
// through a fake check.
func CreditXP(s *world.Store, e world.EntityID, xp float64, cfg config.Simulation) {
	stats, ok := world.Get[model.Stats](s, e)
	if !ok {
		return
	}

	before := stats.TotalXP
	stats.TotalXP += int64(math.Round(xp))

	pointsBefore := pointsEarned(before, cfg)
	pointsAfter := pointsEarned(stats.TotalXP, cfg)
	if gained := pointsAfter - pointsBefore; gained > 0 {
		stats.SkillPointsAvailable += gained
		stats.AttributePointsAvailable += gained
	}

	world.Attach(s, e, stats)
}

// pointsEarned counts how many advancement thresholds totalXP has crossed.
func pointsEarned(totalXP int64, cfg config.Simulation) int {
	if totalXP <= 0 || cfg.FirstAdvancementThreshold <= 0 {
		return 0
	}
	threshold := float64(cfg.FirstAdvancementThreshold)
	count := 0
	for float64(totalXP) >= threshold {
		count++
		threshold *= cfg.AdvancementThresholdRatio
	}
	return count
}
