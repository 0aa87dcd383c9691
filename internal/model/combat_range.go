package model

import "github.com/udisondev/la2go/internal/world"

// CombatRange is the discrete ordinal distance between two combatants.
type CombatRange int

const (
	RangeShortest CombatRange = iota
	RangeShort
	RangeMedium
	RangeLong
	RangeLongest
)

// String renders the range the way it appears in player-facing messages.
func (r CombatRange) String() string {
	switch r {
	case RangeShortest:
		return "shortest"
	case RangeShort:
		return "short"
	case RangeMedium:
		return "medium"
	case RangeLong:
		return "long"
	case RangeLongest:
		return "longest"
	default:
		return "unknown"
	}
}

// Steps returns the absolute number of range increments between r and
// other, used to compute to-hit and damage penalties per range step.
func (r CombatRange) Steps(other CombatRange) int {
	d := int(r) - int(other)
	if d < 0 {
		d = -d
	}
	return d
}

// CombatState is the attribute naming who an entity is currently fighting
// and at what range. Symmetric by invariant: if A's CombatState maps B to
// R, B's CombatState maps A to R too. The combat package owns the
// operations that keep this symmetric; this type only holds the data.
type CombatState struct {
	Opponents map[world.EntityID]CombatRange
}

// InCombat reports whether the entity's CombatState lists anyone.
func InCombat(s *world.Store, e world.EntityID) bool {
	cs, ok := world.Get[CombatState](s, e)
	return ok && len(cs.Opponents) > 0
}
