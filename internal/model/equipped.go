package model

import (
	"fmt"
	"slices"

	"github.com/udisondev/la2go/internal/world"
)

// EquippedItems is the ordered list of entities held in a wielder's hands.
// Hands is the total hand count available (2 for a typical humanoid);
// each equipped item consumes the hands declared by its HandCost attribute
// (1 when it has none).
type EquippedItems struct {
	Items []world.EntityID
	Hands int
}

// HandCost is attached to any item that can be equipped, declaring how
// many hands it occupies while held (a dagger costs 1, a two-handed
// sword costs 2).
type HandCost struct {
	Hands int
}

// ItemHandCost returns how many hands item costs to hold, defaulting to 1
// for items with no declared HandCost.
func ItemHandCost(s *world.Store, item world.EntityID) int {
	if hc, ok := world.Get[HandCost](s, item); ok {
		return hc.Hands
	}
	return 1
}

// handsUsed sums the hand cost of every currently-equipped item.
func handsUsed(s *world.Store, items []world.EntityID) int {
	total := 0
	for _, item := range items {
		if hc, ok := world.Get[HandCost](s, item); ok {
			total += hc.Hands
		} else {
			total++
		}
	}
	return total
}

// CanEquip reports whether item can be added to wielder's EquippedItems
// without exceeding available hands, and that it is not already equipped
// or worn by wielder.
func CanEquip(s *world.Store, wielder, item world.EntityID) (bool, string) {
	if IsWearing(s, wielder, item) {
		return false, "you're wearing that; remove it first"
	}

	eq, ok := world.Get[EquippedItems](s, wielder)
	if !ok {
		eq = EquippedItems{Hands: 2}
	}
	if slices.Contains(eq.Items, item) {
		return false, "you're already holding that"
	}

	cost := ItemHandCost(s, item)

	if handsUsed(s, eq.Items)+cost > eq.Hands {
		return false, "you don't have enough free hands"
	}
	return true, ""
}

// OldestEquippedUntilFits returns, in oldest-first order, the minimum
// prefix of wielder's equipped items that must be unequipped to make room
// for an item costing `needed` additional hands. Spec §4.6: "when
// equipping would exceed hand capacity, enqueue unequip for the oldest
// items until it fits."
func OldestEquippedUntilFits(s *world.Store, wielder world.EntityID, needed int) []world.EntityID {
	eq, ok := world.Get[EquippedItems](s, wielder)
	if !ok {
		return nil
	}

	free := eq.Hands - handsUsed(s, eq.Items)
	if free >= needed {
		return nil
	}

	var toRemove []world.EntityID
	for _, item := range eq.Items {
		if free >= needed {
			break
		}
		cost := ItemHandCost(s, item)
		toRemove = append(toRemove, item)
		free += cost
	}
	return toRemove
}

// Equip moves item into wielder's EquippedItems. Callers must have
// already verified CanEquip.
func Equip(s *world.Store, wielder, item world.EntityID) error {
	detachFromCurrentOwner(s, item)

	eq, ok := world.Get[EquippedItems](s, wielder)
	if !ok {
		eq = EquippedItems{Hands: 2}
	}
	eq.Items = append(eq.Items, item)
	world.Attach(s, wielder, eq)
	world.Attach(s, item, Location{Owner: wielder, Kind: LocationEquipped})
	return nil
}

// Unequip removes item from wielder's EquippedItems, leaving it with no
// Location.
func Unequip(s *world.Store, wielder, item world.EntityID) error {
	eq, ok := world.Get[EquippedItems](s, wielder)
	if !ok || !slices.Contains(eq.Items, item) {
		return fmt.Errorf("model: entity %d is not equipping %d", wielder, item)
	}
	eq.Items = removeEntity(eq.Items, item)
	world.Attach(s, wielder, eq)
	world.Detach[Location](s, item)
	return nil
}

// IsEquipping reports whether wielder currently holds item in
// EquippedItems.
func IsEquipping(s *world.Store, wielder, item world.EntityID) bool {
	eq, ok := world.Get[EquippedItems](s, wielder)
	if !ok {
		return false
	}
	return slices.Contains(eq.Items, item)
}

// PrimaryEquipped returns the first equipped item, conventionally the
// primary weapon used when an attack names no explicit weapon.
func PrimaryEquipped(s *world.Store, wielder world.EntityID) (world.EntityID, bool) {
	eq, ok := world.Get[EquippedItems](s, wielder)
	if !ok || len(eq.Items) == 0 {
		return world.Invalid, false
	}
	return eq.Items[0], true
}
