package model

import "github.com/udisondev/la2go/internal/world"

// OpenState is whether a door-like entity is currently open.
type OpenState struct {
	Open bool
}

// KeyedLock is a lock an entity carries: an optional required key item
// id and whether it is currently engaged.
type KeyedLock struct {
	KeyID  string // empty means unlockable without a key
	Locked bool
}

// Key marks an item as usable to lock/unlock a KeyedLock whose KeyID
// matches.
type Key struct {
	ID string
}

// FindKey searches holder's Container contents, recursively, for an item
// carrying a Key matching keyID. Returns the first match.
func FindKey(s *world.Store, holder world.EntityID, keyID string) (world.EntityID, bool) {
	c, ok := world.Get[Container](s, holder)
	if !ok {
		return world.Invalid, false
	}
	for _, item := range c.Contents {
		if k, ok := world.Get[Key](s, item); ok && k.ID == keyID {
			return item, true
		}
		if found, ok := FindKey(s, item, keyID); ok {
			return found, true
		}
	}
	return world.Invalid, false
}

// SetOpen sets e's OpenState and mirrors the flag onto its connected
// other side, if e has a Connection attribute naming one. Returns an
// error if e has no OpenState.
func SetOpen(s *world.Store, e world.EntityID, open bool) error {
	if !world.Mutate(s, e, func(o *OpenState) { o.Open = open }) {
		return errNoOpenState(e)
	}
	if conn, ok := world.Get[Connection](s, e); ok && conn.OtherSide != world.Invalid {
		world.Mutate(s, conn.OtherSide, func(o *OpenState) { o.Open = open })
	}
	return nil
}

// SetLocked sets e's KeyedLock.Locked and mirrors it onto the other side.
func SetLocked(s *world.Store, e world.EntityID, locked bool) error {
	if !world.Mutate(s, e, func(l *KeyedLock) { l.Locked = locked }) {
		return errNoLock(e)
	}
	if conn, ok := world.Get[Connection](s, e); ok && conn.OtherSide != world.Invalid {
		world.Mutate(s, conn.OtherSide, func(l *KeyedLock) { l.Locked = locked })
	}
	return nil
}

func errNoOpenState(e world.EntityID) error {
	return &missingAttrError{entity: e, attr: "OpenState"}
}

func errNoLock(e world.EntityID) error {
	return &missingAttrError{entity: e, attr: "KeyedLock"}
}

type missingAttrError struct {
	entity world.EntityID
	attr   string
}

func (e *missingAttrError) Error() string {
	return "model: entity has no " + e.attr
}

// Direction is a compass/vertical heading used by Connection and the
// move parser.
type Direction int

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
	Up
	Down
)

// Opposite returns the reciprocal direction, used to phrase "walks in
// from the south" style observer messages.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case NorthEast:
		return SouthWest
	case East:
		return West
	case SouthEast:
		return NorthWest
	case South:
		return North
	case SouthWest:
		return NorthEast
	case West:
		return East
	case NorthWest:
		return SouthEast
	case Up:
		return Down
	case Down:
		return Up
	default:
		return d
	}
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case NorthEast:
		return "northeast"
	case East:
		return "east"
	case SouthEast:
		return "southeast"
	case South:
		return "south"
	case SouthWest:
		return "southwest"
	case West:
		return "west"
	case NorthWest:
		return "northwest"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown direction"
	}
}

// Connection is a one-way link from a room to a destination room in a
// given direction, with an optional entity representing the link itself
// (a door) and that door's mirrored entity on the other side.
type Connection struct {
	Direction   Direction
	Destination world.EntityID
	OtherSide   world.EntityID // the paired Connection entity on Destination, if any
}

// Room marks an entity as a room: it is also a Container for whatever is
// present.
type Room struct {
	Name        string
	Description string
	MapIcon     string
}
