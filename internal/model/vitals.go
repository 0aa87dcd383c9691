package model

import "github.com/udisondev/la2go/internal/world"

// VitalKind names one of the four constrained vital values.
type VitalKind int

const (
	Health VitalKind = iota
	Satiety
	Hydration
	Energy
)

func (k VitalKind) String() string {
	switch k {
	case Health:
		return "health"
	case Satiety:
		return "satiety"
	case Hydration:
		return "hydration"
	case Energy:
		return "energy"
	default:
		return "unknown vital"
	}
}

// Vital is one constrained value in [0, Max].
type Vital struct {
	Current float64
	Max     float64
}

func (v Vital) clamp() Vital {
	if v.Current < 0 {
		v.Current = 0
	}
	if v.Current > v.Max {
		v.Current = v.Max
	}
	return v
}

// Vitals is the attribute holding all four of a character's vital
// values.
type Vitals struct {
	Values map[VitalKind]Vital
}

// NewVitals builds full vitals at the given maximums.
func NewVitals(health, satiety, hydration, energy float64) Vitals {
	return Vitals{Values: map[VitalKind]Vital{
		Health:    {Current: health, Max: health},
		Satiety:   {Current: satiety, Max: satiety},
		Hydration: {Current: hydration, Max: hydration},
		Energy:    {Current: energy, Max: energy},
	}}
}

// VitalOp is the operation applied by a vital change.
type VitalOp int

const (
	VitalAdd VitalOp = iota
	VitalSubtract
	VitalMultiply
	VitalSet
)

// ApplyVital applies op/amount to the named vital on e, clamped to
// [0, max], returning the vital's value before and after the change.
// Panics if e has no Vitals attribute — callers only apply vital changes
// to entities the spec guarantees have them (living characters).
func ApplyVital(s *world.Store, e world.EntityID, kind VitalKind, op VitalOp, amount float64) (before, after Vital) {
	vitals := world.MustGet[Vitals](s, e)
	v := vitals.Values[kind]
	before = v

	switch op {
	case VitalAdd:
		v.Current += amount
	case VitalSubtract:
		v.Current -= amount
	case VitalMultiply:
		v.Current *= amount
	case VitalSet:
		v.Current = amount
	}
	v = v.clamp()

	vitals.Values[kind] = v
	world.Attach(s, e, vitals)
	return before, v
}

// GetVital returns the current value of a character's named vital.
func GetVital(s *world.Store, e world.EntityID, kind VitalKind) Vital {
	vitals := world.MustGet[Vitals](s, e)
	return vitals.Values[kind]
}

// IsDead reports whether e's Health has reached zero.
func IsDead(s *world.Store, e world.EntityID) bool {
	vitals, ok := world.Get[Vitals](s, e)
	if !ok {
		return false
	}
	return vitals.Values[Health].Current <= 0
}
