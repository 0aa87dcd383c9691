// Package model defines the attribute kinds attached to entities in the
// world store (internal/world), plus the domain rules (equip, wear,
// contain, pour, vitals...) that operate purely on values — no behaviour
// is encoded as a method on an entity handle, keeping the store an
// untyped bag with a typed façade.
package model

import "github.com/udisondev/la2go/internal/world"

// LocationKind distinguishes the three ways an entity can be positioned
// relative to its owner.
type LocationKind int

const (
	// LocationContainer means the entity is held inside a Container
	// attribute on the owner (a room, a box, a backpack...).
	LocationContainer LocationKind = iota
	// LocationWorn means the entity sits in the owner's WornItems stack
	// for one or more body parts.
	LocationWorn
	// LocationEquipped means the entity is held in the owner's
	// EquippedItems list.
	LocationEquipped
)

// Location is the attribute every positioned entity carries, naming its
// owner and how it is attached to that owner. Exactly one Location may be
// attached to a positioned entity at a time.
type Location struct {
	Owner world.EntityID
	Kind  LocationKind
}

// HasLocation reports whether e currently has a Location attribute.
func HasLocation(s *world.Store, e world.EntityID) bool {
	return world.Has[Location](s, e)
}

// SetLocation overwrites e's Location attribute. Callers are responsible
// for keeping the owner's reciprocal collection (Container/WornItems/
// EquippedItems) consistent — this function only updates the pointer
// side of the relationship. Use MoveToContainer, Wear and Equip (in
// container.go, worn.go and equipped.go) to move an entity across both
// sides instead of calling this directly.
func SetLocation(s *world.Store, e world.EntityID, loc Location) {
	world.Attach(s, e, loc)
}

// GetLocation returns e's current Location, if any.
func GetLocation(s *world.Store, e world.EntityID) (Location, bool) {
	return world.Get[Location](s, e)
}
