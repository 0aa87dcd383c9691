package model

import "github.com/udisondev/la2go/internal/world"

// CheckHistory tracks recent use of each stat/skill so that repeatedly
// leaning on the same one yields diminishing XP. Fatigue is a simple
// running counter per stat name (Stat and Skill share the string space
// here since both are checked the same way).
type CheckHistory struct {
	Fatigue map[string]int
}

// NewCheckHistory returns an empty history.
func NewCheckHistory() CheckHistory {
	return CheckHistory{Fatigue: make(map[string]int)}
}

// RecordUse bumps the fatigue counter for `used` by incrementAmount and
// decays every other tracked stat by decayAmount (floor 0): one increment
// for the used stat, a smaller decrement for all others.
func RecordUse(s *world.Store, e world.EntityID, used string, incrementAmount, decayAmount int) {
	hist, ok := world.Get[CheckHistory](s, e)
	if !ok {
		hist = NewCheckHistory()
	}

	for name := range hist.Fatigue {
		if name == used {
			continue
		}
		hist.Fatigue[name] -= decayAmount
		if hist.Fatigue[name] < 0 {
			hist.Fatigue[name] = 0
		}
	}
	hist.Fatigue[used] += incrementAmount

	world.Attach(s, e, hist)
}

// FatigueMultiplier returns the XP scaling factor for the given stat: 1.0
// with no recent use, decreasing toward a floor as fatigue accumulates.
// The formula is deliberately simple: 1 / (1 + fatigue/10), floored at
// 0.1.
func FatigueMultiplier(s *world.Store, e world.EntityID, used string) float64 {
	hist, ok := world.Get[CheckHistory](s, e)
	if !ok {
		return 1.0
	}
	fatigue := hist.Fatigue[used]
	mult := 1.0 / (1.0 + float64(fatigue)/10.0)
	if mult < 0.1 {
		mult = 0.1
	}
	return mult
}
