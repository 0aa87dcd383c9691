package model

import "github.com/udisondev/la2go/internal/world"

// SleepState marks that a character is currently asleep: wait and sleep
// actions are multi-tick and store their remaining-ticks/progress on the
// action object itself, so this attribute doesn't need to duplicate it
// for other systems to query (e.g. "is this character awake enough to
// be attacked").
type SleepState struct {
	Asleep bool
}

// Respawner marks that a dead entity is allowed to respawn, naming the
// room it respawns into.
type Respawner struct {
	SpawnRoom world.EntityID
}

// Invisible marks that an entity is not visible to other observers.
// Visibility is queried explicitly per-observer by the message package —
// there is no implicit filtering in the format engine.
type Invisible struct {
	// VisibleToSelf is always true implicitly; VisibleToAdmins allows a
	// future admin/cheat visibility override without a second attribute.
	VisibleToAdmins bool
}

// IsVisibleTo reports whether target is visible to observer. An entity
// is always visible to itself; otherwise it's visible unless it carries
// Invisible.
func IsVisibleTo(s *world.Store, target, observer world.EntityID) bool {
	if target == observer {
		return true
	}
	_, invisible := world.Get[Invisible](s, target)
	return !invisible
}
