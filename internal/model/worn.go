package model

import (
	"fmt"
	"slices"

	"github.com/udisondev/la2go/internal/world"
)

// BodyPart is a discrete wearable region of a character.
type BodyPart int

const (
	BodyHead BodyPart = iota
	BodyTorso
	BodyLeftArm
	BodyRightArm
	BodyLeftLeg
	BodyRightLeg
	BodyLeftHand
	BodyRightHand
	BodyLeftFoot
	BodyRightFoot
)

// String returns the body part's display name.
func (b BodyPart) String() string {
	switch b {
	case BodyHead:
		return "head"
	case BodyTorso:
		return "torso"
	case BodyLeftArm:
		return "left arm"
	case BodyRightArm:
		return "right arm"
	case BodyLeftLeg:
		return "left leg"
	case BodyRightLeg:
		return "right leg"
	case BodyLeftHand:
		return "left hand"
	case BodyRightHand:
		return "right hand"
	case BodyLeftFoot:
		return "left foot"
	case BodyRightFoot:
		return "right foot"
	default:
		return "unknown body part"
	}
}

// DamageMultiplier scales damage landed on b: a head hit is more punishing
// than a torso hit, and a hit anywhere else (an arm, a leg, a hand, a foot)
// is softer than either.
func (b BodyPart) DamageMultiplier() float64 {
	switch b {
	case BodyHead:
		return 1.2
	case BodyTorso:
		return 1.0
	default:
		return 0.8
	}
}

// BodyPartProfile gives a character's body parts their hit-probability
// weight (used by combat to pick a random target location) and display
// name. Attached to anything that can be attacked and dressed.
type BodyPartProfile struct {
	HitWeight map[BodyPart]float64
}

// DefaultBodyPartProfile returns the standard humanoid hit distribution:
// the torso is the biggest target, the head the smallest, and limbs split
// the remainder. Used for anything attackable that never got a profile of
// its own.
func DefaultBodyPartProfile() BodyPartProfile {
	return BodyPartProfile{HitWeight: map[BodyPart]float64{
		BodyHead:      10,
		BodyTorso:     30,
		BodyLeftArm:   10,
		BodyRightArm:  10,
		BodyLeftLeg:   10,
		BodyRightLeg:  10,
		BodyLeftHand:  5,
		BodyRightHand: 5,
		BodyLeftFoot:  5,
		BodyRightFoot: 5,
	}}
}

// totalWeight sums HitWeight across every part, in map iteration order;
// the order does not affect the sum.
func (p BodyPartProfile) totalWeight() float64 {
	var total float64
	for _, w := range p.HitWeight {
		total += w
	}
	return total
}

// RandomPart picks a body part weighted by HitWeight using roll, a value
// in [0, total weight). Exposed as a pure function so combat can drive it
// with a reproducible random source in tests.
func (p BodyPartProfile) RandomPart(roll float64) BodyPart {
	total := p.totalWeight()
	if total <= 0 {
		return BodyTorso
	}

	parts := make([]BodyPart, 0, len(p.HitWeight))
	for part := range p.HitWeight {
		parts = append(parts, part)
	}
	slices.Sort(parts)

	acc := 0.0
	for _, part := range parts {
		acc += p.HitWeight[part]
		if roll < acc {
			return part
		}
	}
	return parts[len(parts)-1]
}

// RollPart picks a body part using a [0,1) uniform source, scaling it into
// RandomPart's [0, total weight) domain.
func (p BodyPartProfile) RollPart(uniform func() float64) BodyPart {
	return p.RandomPart(uniform() * p.totalWeight())
}

// Wearable describes the body parts an item covers and how thick it is.
// Multi-part items (a cloak covering both shoulders) occupy every listed
// part.
type Wearable struct {
	Parts     []BodyPart
	Thickness float64
}

// WornItems is the per-body-part ordered stack of worn entities, with a
// thickness cap per part.
type WornItems struct {
	ByPart        map[BodyPart][]world.EntityID
	MaxThickness  float64
}

// NewWornItems returns an empty WornItems with the given per-part
// thickness cap.
func NewWornItems(maxThickness float64) WornItems {
	return WornItems{ByPart: make(map[BodyPart][]world.EntityID), MaxThickness: maxThickness}
}

// thicknessOnPart sums the thickness of everything already worn on part.
func thicknessOnPart(s *world.Store, stack []world.EntityID) float64 {
	total := 0.0
	for _, item := range stack {
		if w, ok := world.Get[Wearable](s, item); ok {
			total += w.Thickness
		}
	}
	return total
}

// CanWear reports whether item can be added to wearer's worn stack: a
// single item always fits regardless of its own thickness; the cap only
// bites once a part already has at least one item.
func CanWear(s *world.Store, wearer, item world.EntityID) (bool, string) {
	wearable, ok := world.Get[Wearable](s, item)
	if !ok {
		return false, "that's not wearable"
	}

	worn, ok := world.Get[WornItems](s, wearer)
	if !ok {
		worn = NewWornItems(0)
	}

	for _, part := range wearable.Parts {
		if slices.Contains(worn.ByPart[part], item) {
			return false, "you are already wearing that"
		}
	}

	for _, part := range wearable.Parts {
		stack := worn.ByPart[part]
		if len(stack) == 0 {
			continue
		}
		if worn.MaxThickness > 0 && thicknessOnPart(s, stack)+wearable.Thickness > worn.MaxThickness+1e-9 {
			return false, fmt.Sprintf("there's no more room on your %s", part)
		}
	}

	return true, ""
}

// Wear moves item from wherever it currently is into wearer's WornItems,
// across every body part the item's Wearable declares. Callers must have
// already verified CanWear.
func Wear(s *world.Store, wearer, item world.EntityID) error {
	wearable, ok := world.Get[Wearable](s, item)
	if !ok {
		return fmt.Errorf("model: entity %d is not wearable", item)
	}

	detachFromCurrentOwner(s, item)

	worn, ok := world.Get[WornItems](s, wearer)
	if !ok {
		worn = NewWornItems(0)
	}
	for _, part := range wearable.Parts {
		worn.ByPart[part] = append(worn.ByPart[part], item)
	}
	world.Attach(s, wearer, worn)
	world.Attach(s, item, Location{Owner: wearer, Kind: LocationWorn})
	return nil
}

// RemoveWorn takes item off of wearer, returning it to no Location (the
// caller is expected to immediately MoveToContainer it somewhere, per the
// auto-reconciliation handlers that react to this).
func RemoveWorn(s *world.Store, wearer, item world.EntityID) error {
	wearable, ok := world.Get[Wearable](s, item)
	if !ok {
		return fmt.Errorf("model: entity %d is not wearable", item)
	}

	worn, ok := world.Get[WornItems](s, wearer)
	if !ok {
		return fmt.Errorf("model: entity %d is wearing nothing", wearer)
	}

	for _, part := range wearable.Parts {
		if !slices.Contains(worn.ByPart[part], item) {
			return fmt.Errorf("model: entity %d is not wearing %d on %s", wearer, item, part)
		}
	}
	for _, part := range wearable.Parts {
		worn.ByPart[part] = removeEntity(worn.ByPart[part], item)
	}
	world.Attach(s, wearer, worn)
	world.Detach[Location](s, item)
	return nil
}

// WearerOf returns whoever currently has item in their WornItems, via
// item's own Location attribute.
func WearerOf(s *world.Store, item world.EntityID) (world.EntityID, bool) {
	loc, ok := GetLocation(s, item)
	if !ok || loc.Kind != LocationWorn {
		return world.Invalid, false
	}
	return loc.Owner, true
}

// IsWearing reports whether wearer currently has item in WornItems.
func IsWearing(s *world.Store, wearer, item world.EntityID) bool {
	worn, ok := world.Get[WornItems](s, wearer)
	if !ok {
		return false
	}
	for _, stack := range worn.ByPart {
		if slices.Contains(stack, item) {
			return true
		}
	}
	return false
}
