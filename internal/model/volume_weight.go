package model

import "github.com/udisondev/la2go/internal/world"

// Volume is a scalar volume in liters, attached to any entity whose bulk
// matters for capacity checks (items, and the composition of fluids).
type Volume struct {
	Liters float64
}

// Weight is a scalar weight in kilograms, attached to any entity whose
// mass matters for capacity or carry checks.
type Weight struct {
	Kilograms float64
}

// EntityVolume returns the volume an entity itself occupies, 0 if it
// carries no Volume attribute.
func EntityVolume(s *world.Store, e world.EntityID) float64 {
	v, ok := world.Get[Volume](s, e)
	if !ok {
		return 0
	}
	return v.Liters
}

// EntityWeight returns the weight an entity itself contributes, 0 if it
// carries no Weight attribute.
func EntityWeight(s *world.Store, e world.EntityID) float64 {
	w, ok := world.Get[Weight](s, e)
	if !ok {
		return 0
	}
	return w.Kilograms
}

// NestedVolume sums the volume of e plus everything nested inside its
// Container, recursively. Worn and equipped items DO count toward
// nested volume/weight (decision recorded in DESIGN.md) — containment
// totals are framed in terms of everything carried, not just what's
// loose in a bag.
func NestedVolume(s *world.Store, e world.EntityID) float64 {
	total := EntityVolume(s, e)
	if c, ok := world.Get[Container](s, e); ok {
		for _, child := range c.Contents {
			total += NestedVolume(s, child)
		}
	}
	if worn, ok := world.Get[WornItems](s, e); ok {
		for _, stack := range worn.ByPart {
			for _, item := range stack {
				total += NestedVolume(s, item)
			}
		}
	}
	if eq, ok := world.Get[EquippedItems](s, e); ok {
		for _, item := range eq.Items {
			total += NestedVolume(s, item)
		}
	}
	return total
}

// NestedWeight sums the weight of e plus everything nested inside its
// Container, worn items and equipped items, recursively.
func NestedWeight(s *world.Store, e world.EntityID) float64 {
	total := EntityWeight(s, e)
	if c, ok := world.Get[Container](s, e); ok {
		for _, child := range c.Contents {
			total += NestedWeight(s, child)
		}
	}
	if worn, ok := world.Get[WornItems](s, e); ok {
		for _, stack := range worn.ByPart {
			for _, item := range stack {
				total += NestedWeight(s, item)
			}
		}
	}
	if eq, ok := world.Get[EquippedItems](s, e); ok {
		for _, item := range eq.Items {
			total += NestedWeight(s, item)
		}
	}
	return total
}
