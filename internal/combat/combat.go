// Package combat maintains combat state: who is fighting whom, at what
// range, and the notifications entering/leaving combat fires.
package combat

import (
	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/notify"
	"github.com/udisondev/la2go/internal/world"
)

// EnterCombat is fired when two entities start fighting each other.
type EnterCombat struct {
	Entity1, Entity2 world.EntityID
	Range            model.CombatRange
}

// ExitCombat is fired when two entities stop fighting each other.
type ExitCombat struct {
	Entity1, Entity2 world.EntityID
}

// EntitiesInCombatWith returns who entity is currently fighting and at
// what range. Absent a CombatState attribute, this is an empty map, not an
// error — most entities are never in combat.
func EntitiesInCombatWith(s *world.Store, entity world.EntityID) map[world.EntityID]model.CombatRange {
	cs, ok := world.Get[model.CombatState](s, entity)
	if !ok {
		return nil
	}
	return cs.Opponents
}

func opponentsOf(s *world.Store, e world.EntityID) model.CombatState {
	cs, ok := world.Get[model.CombatState](s, e)
	if !ok {
		return model.CombatState{Opponents: make(map[world.EntityID]model.CombatRange)}
	}
	if cs.Opponents == nil {
		cs.Opponents = make(map[world.EntityID]model.CombatRange)
	}
	return cs
}

// SetInCombat marks two entities as fighting each other at the given
// range, symmetrically, and fires EnterCombat. Calling this on a pair
// already in combat just updates the range without re-firing EnterCombat
// — that is ChangeRange's job. W is the driver's world type, threaded
// through exactly like notify.Registry's own type parameter.
func SetInCombat[W any](s *world.Store, reg *notify.Registry[W], w W, entity1, entity2 world.EntityID, rng model.CombatRange) {
	_, alreadyFighting := EntitiesInCombatWith(s, entity1)[entity2]

	cs1 := opponentsOf(s, entity1)
	cs1.Opponents[entity2] = rng
	world.Attach(s, entity1, cs1)

	cs2 := opponentsOf(s, entity2)
	cs2.Opponents[entity1] = rng
	world.Attach(s, entity2, cs2)

	if !alreadyFighting {
		notify.Dispatch(reg, notify.Kind("enter_combat"), w, EnterCombat{Entity1: entity1, Entity2: entity2, Range: rng})
	}
}

// LeaveCombat marks two entities as no longer fighting each other,
// symmetrically, and fires ExitCombat. A no-op if they weren't fighting.
func LeaveCombat[W any](s *world.Store, reg *notify.Registry[W], w W, entity1, entity2 world.EntityID) {
	if _, ok := EntitiesInCombatWith(s, entity1)[entity2]; !ok {
		return
	}

	cs1 := opponentsOf(s, entity1)
	delete(cs1.Opponents, entity2)
	world.Attach(s, entity1, cs1)

	cs2 := opponentsOf(s, entity2)
	delete(cs2.Opponents, entity1)
	world.Attach(s, entity2, cs2)

	notify.Dispatch(reg, notify.Kind("exit_combat"), w, ExitCombat{Entity1: entity1, Entity2: entity2})
}

// LeaveAllCombat exits entity from combat with every current opponent.
// Used on death and despawn, per original_source's
// remove_from_combat_on_death/remove_from_combat_on_despawn handlers.
func LeaveAllCombat[W any](s *world.Store, reg *notify.Registry[W], w W, entity world.EntityID) {
	for opponent := range EntitiesInCombatWith(s, entity) {
		LeaveCombat(s, reg, w, entity, opponent)
	}
}

// ChangeRange moves the range between two combatants by delta steps
// (positive widens, negative closes), clamped to [RangeShortest,
// RangeLongest], and keeps both sides' CombatState in sync. It does not
// fire EnterCombat/ExitCombat — range changes happen within an existing
// fight.
func ChangeRange(s *world.Store, entity1, entity2 world.EntityID, delta int) model.CombatRange {
	current, ok := EntitiesInCombatWith(s, entity1)[entity2]
	if !ok {
		return model.RangeShortest
	}

	next := int(current) + delta
	if next < int(model.RangeShortest) {
		next = int(model.RangeShortest)
	}
	if next > int(model.RangeLongest) {
		next = int(model.RangeLongest)
	}
	rng := model.CombatRange(next)

	cs1 := opponentsOf(s, entity1)
	cs1.Opponents[entity2] = rng
	world.Attach(s, entity1, cs1)

	cs2 := opponentsOf(s, entity2)
	cs2.Opponents[entity1] = rng
	world.Attach(s, entity2, cs2)

	return rng
}
