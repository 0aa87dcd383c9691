package parser

import (
	"strings"

	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/world"
)

// Direction is a compass/vertical movement direction.
type Direction int

const (
	North Direction = iota
	Northeast
	East
	Southeast
	South
	Southwest
	West
	Northwest
	Up
	Down
)

var directionNames = map[string]Direction{
	"n": North, "north": North,
	"ne": Northeast, "northeast": Northeast,
	"e": East, "east": East,
	"se": Southeast, "southeast": Southeast,
	"s": South, "south": South,
	"sw": Southwest, "southwest": Southwest,
	"w": West, "west": West,
	"nw": Northwest, "northwest": Northwest,
	"u": Up, "up": Up,
	"d": Down, "down": Down,
}

// ParseDirection resolves a direction's short or long form, case
// insensitively.
func ParseDirection(s string) (Direction, bool) {
	d, ok := directionNames[strings.ToLower(strings.TrimSpace(s))]
	return d, ok
}

// ResolveTarget resolves a target name submitted by entity, from
// entity's point of view, to an EntityID. Handles the reflexive and
// room-deictic forms plus a name search over candidates (primary name,
// room-name, or alias, case-insensitive).
//
// candidates is every entity the caller considers addressable from
// entity's context (typically the occupants of entity's room plus its
// own inventory/worn/equipped items) — ResolveTarget itself has no
// opinion on scoping, only on matching.
func ResolveTarget(s *world.Store, entity world.EntityID, name string, room world.EntityID, candidates []world.EntityID) (world.EntityID, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return world.Invalid, &Error{Kind: MissingTarget}
	}

	lower := strings.ToLower(trimmed)
	switch lower {
	case "me", "myself", "self":
		return entity, nil
	case "here":
		return room, nil
	}

	for _, c := range candidates {
		if matchesName(s, c, lower) {
			return c, nil
		}
	}

	return world.Invalid, &Error{Kind: TargetNotFound, Target: trimmed}
}

func matchesName(s *world.Store, e world.EntityID, lower string) bool {
	d, ok := world.Get[model.Description](s, e)
	if !ok {
		return false
	}
	if strings.EqualFold(d.Name, lower) || strings.EqualFold(d.RoomName, lower) {
		return true
	}
	for _, alias := range d.Aliases {
		if strings.EqualFold(alias, lower) {
			return true
		}
	}
	return false
}
