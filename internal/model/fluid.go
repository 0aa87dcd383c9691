package model

import (
	"fmt"

	"github.com/udisondev/la2go/internal/world"
)

// FluidType names a kind of drinkable/pourable substance.
type FluidType string

const (
	FluidWater FluidType = "water"
	FluidWine  FluidType = "wine"
	FluidBlood FluidType = "blood"
	FluidOil   FluidType = "oil"
)

// HydrationFactor scales how much a liter of this fluid restores the
// Hydration vital when drunk.
var HydrationFactor = map[FluidType]float64{
	FluidWater: 1.0,
	FluidWine:  0.6,
	FluidBlood: 0.0,
	FluidOil:   0.0,
}

// FluidContainer is a container of typed fluids, e.g. a flask or a
// barrel. MaxVolume of 0 means unlimited.
type FluidContainer struct {
	Composition map[FluidType]float64 // liters per fluid type
	MaxVolume   float64
}

// NewFluidContainer returns an empty fluid container with the given
// capacity (0 for unlimited).
func NewFluidContainer(maxVolume float64) FluidContainer {
	return FluidContainer{Composition: make(map[FluidType]float64), MaxVolume: maxVolume}
}

// TotalVolume sums every fluid type currently held.
func (f FluidContainer) TotalVolume() float64 {
	total := 0.0
	for _, v := range f.Composition {
		total += v
	}
	return total
}

// FreeVolume returns how many more liters can be added, or 1e18 if
// unlimited.
func (f FluidContainer) FreeVolume() float64 {
	if f.MaxVolume <= 0 {
		return 1e18
	}
	free := f.MaxVolume - f.TotalVolume()
	if free < 0 {
		free = 0
	}
	return free
}

// prune removes zero/near-zero components; empty components don't
// linger in the map.
func (f *FluidContainer) prune() {
	for t, v := range f.Composition {
		if v <= 1e-9 {
			delete(f.Composition, t)
		}
	}
}

// Pour moves `amount` liters out of src proportionally across its
// composition and into dest, clamped by both src's contents and dest's
// free space. Returns the amount actually transferred. The
// extracted-equals-entered conservation property holds by construction:
// whatever is subtracted from src's composition is added to dest's.
func Pour(s *world.Store, src, dest world.EntityID, amount float64) (float64, error) {
	srcFC, ok := world.Get[FluidContainer](s, src)
	if !ok {
		return 0, fmt.Errorf("model: entity %d is not a fluid container", src)
	}
	destFC, ok := world.Get[FluidContainer](s, dest)
	if !ok {
		return 0, fmt.Errorf("model: entity %d is not a fluid container", dest)
	}

	available := srcFC.TotalVolume()
	transfer := amount
	if transfer > available {
		transfer = available
	}
	if free := destFC.FreeVolume(); transfer > free {
		transfer = free
	}
	if transfer <= 0 {
		return 0, nil
	}

	if destFC.Composition == nil {
		destFC.Composition = make(map[FluidType]float64)
	}
	for t, v := range srcFC.Composition {
		share := v / available * transfer
		srcFC.Composition[t] -= share
		destFC.Composition[t] += share
	}
	srcFC.prune()
	destFC.prune()

	world.Attach(s, src, srcFC)
	world.Attach(s, dest, destFC)
	return transfer, nil
}

// Fill pours from src into dest until dest is at capacity or src is
// exhausted.
func Fill(s *world.Store, src, dest world.EntityID) (float64, error) {
	destFC, ok := world.Get[FluidContainer](s, dest)
	if !ok {
		return 0, fmt.Errorf("model: entity %d is not a fluid container", dest)
	}
	return Pour(s, src, dest, destFC.FreeVolume())
}
