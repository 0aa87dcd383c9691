package model

import (
	"fmt"
	"slices"

	"github.com/udisondev/la2go/internal/world"
)

// Container is the set of entities held directly inside another entity —
// a room, a box, a backpack. MaxVolume/MaxWeight of zero mean unlimited
// (a room has no declared capacity; a chest might).
type Container struct {
	Contents  []world.EntityID
	MaxVolume float64 // 0 == unlimited
	MaxWeight float64 // 0 == unlimited
}

// Contains reports whether child is directly present in e's Container.
func Contains(s *world.Store, e, child world.EntityID) bool {
	c, ok := world.Get[Container](s, e)
	if !ok {
		return false
	}
	return slices.Contains(c.Contents, child)
}

// ContainsTransitively reports whether child is e itself, or present
// anywhere in e's containment/worn/equipped subtree. Used to reject
// putting an item inside itself.
func ContainsTransitively(s *world.Store, e, child world.EntityID) bool {
	if e == child {
		return true
	}
	if c, ok := world.Get[Container](s, e); ok {
		for _, item := range c.Contents {
			if ContainsTransitively(s, item, child) {
				return true
			}
		}
	}
	if worn, ok := world.Get[WornItems](s, e); ok {
		for _, stack := range worn.ByPart {
			for _, item := range stack {
				if ContainsTransitively(s, item, child) {
					return true
				}
			}
		}
	}
	if eq, ok := world.Get[EquippedItems](s, e); ok {
		for _, item := range eq.Items {
			if ContainsTransitively(s, item, child) {
				return true
			}
		}
	}
	return false
}

// CanAcceptVolume reports whether a container with capacity `maxVolume`
// currently holding `currentVolume` has room for `additional` more liters.
// maxVolume == 0 means unlimited.
func CanAcceptVolume(maxVolume, currentVolume, additional float64) bool {
	if maxVolume <= 0 {
		return true
	}
	return currentVolume+additional <= maxVolume+1e-9
}

// CanAcceptWeight is CanAcceptVolume's weight-capacity counterpart.
func CanAcceptWeight(maxWeight, currentWeight, additional float64) bool {
	if maxWeight <= 0 {
		return true
	}
	return currentWeight+additional <= maxWeight+1e-9
}

// ContainerFreeVolume returns how many more liters e's Container can
// accept, or 1e18 if e has no declared MaxVolume.
func ContainerFreeVolume(s *world.Store, e world.EntityID) float64 {
	c, ok := world.Get[Container](s, e)
	if !ok || c.MaxVolume <= 0 {
		return 1e18
	}
	used := 0.0
	for _, child := range c.Contents {
		used += NestedVolume(s, child)
	}
	return c.MaxVolume - used
}

// MoveToContainer atomically removes e from its current owner (whatever
// that owner's sub-model is) and inserts it into dest's Container,
// updating e's Location in the same logical step. The caller is
// responsible for capacity verification beforehand — this function
// performs the move unconditionally, panicking on an inconsistent prior
// state.
func MoveToContainer(s *world.Store, e, dest world.EntityID) error {
	destContainer, ok := world.Get[Container](s, dest)
	if !ok {
		return fmt.Errorf("model: entity %d is not a container", dest)
	}

	detachFromCurrentOwner(s, e)

	destContainer.Contents = append(destContainer.Contents, e)
	world.Attach(s, dest, destContainer)
	world.Attach(s, e, Location{Owner: dest, Kind: LocationContainer})
	return nil
}

// detachFromCurrentOwner removes e from whichever sub-model its current
// Location names, without attaching a new Location. Safe to call on an
// entity with no Location yet (first placement into the world).
func detachFromCurrentOwner(s *world.Store, e world.EntityID) {
	loc, ok := world.Get[Location](s, e)
	if !ok {
		return
	}

	switch loc.Kind {
	case LocationContainer:
		if c, ok := world.Get[Container](s, loc.Owner); ok {
			c.Contents = removeEntity(c.Contents, e)
			world.Attach(s, loc.Owner, c)
		} else {
			panic(fmt.Sprintf("model: entity %d's Location names container %d that has no Container attribute", e, loc.Owner))
		}
	case LocationWorn:
		if w, ok := world.Get[WornItems](s, loc.Owner); ok {
			for part, stack := range w.ByPart {
				w.ByPart[part] = removeEntity(stack, e)
			}
			world.Attach(s, loc.Owner, w)
		}
	case LocationEquipped:
		if eq, ok := world.Get[EquippedItems](s, loc.Owner); ok {
			eq.Items = removeEntity(eq.Items, e)
			world.Attach(s, loc.Owner, eq)
		}
	}
}

func removeEntity(list []world.EntityID, e world.EntityID) []world.EntityID {
	out := list[:0]
	for _, id := range list {
		if id != e {
			out = append(out, id)
		}
	}
	return out
}
