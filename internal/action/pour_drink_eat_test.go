package action

import (
	"testing"

	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/world"
)

func TestPourAction_TransfersFluidBetweenContainers(t *testing.T) {
	w := newTestWorld()
	actor := w.Store.Create()

	source := w.Store.Create()
	sourceFC := model.NewFluidContainer(10)
	sourceFC.Composition[model.FluidWater] = 5
	world.Attach(w.Store, source, sourceFC)

	dest := w.Store.Create()
	world.Attach(w.Store, dest, model.NewFluidContainer(10))

	res := NewPourAction(actor, source, dest, 2).Perform(w)
	if !res.Success {
		t.Fatalf("expected pour to succeed")
	}

	destFC, _ := world.Get[model.FluidContainer](w.Store, dest)
	if destFC.TotalVolume() != 2 {
		t.Errorf("dest volume = %v, want 2", destFC.TotalVolume())
	}
}

func TestPourAction_EmptySourceFails(t *testing.T) {
	w := newTestWorld()
	actor := w.Store.Create()

	source := w.Store.Create()
	world.Attach(w.Store, source, model.NewFluidContainer(10))
	dest := w.Store.Create()
	world.Attach(w.Store, dest, model.NewFluidContainer(10))

	res := NewPourAction(actor, source, dest, 2).Perform(w)
	if res.Success {
		t.Fatalf("expected pour from an empty source to fail")
	}
}

func TestFillAction_FillsDestToCapacity(t *testing.T) {
	w := newTestWorld()
	actor := w.Store.Create()

	source := w.Store.Create()
	sourceFC := model.NewFluidContainer(10)
	sourceFC.Composition[model.FluidWater] = 10
	world.Attach(w.Store, source, sourceFC)

	dest := w.Store.Create()
	world.Attach(w.Store, dest, model.NewFluidContainer(3))

	res := NewFillAction(actor, source, dest).Perform(w)
	if !res.Success {
		t.Fatalf("expected fill to succeed")
	}
	destFC, _ := world.Get[model.FluidContainer](w.Store, dest)
	if destFC.TotalVolume() != 3 {
		t.Errorf("dest volume = %v, want 3 (capped at capacity)", destFC.TotalVolume())
	}
}

func TestDrinkAction_RaisesHydration(t *testing.T) {
	w := newTestWorld()
	actor := w.Store.Create()
	world.Attach(w.Store, actor, model.NewVitals(100, 100, 0, 100))

	flask := w.Store.Create()
	fc := model.NewFluidContainer(10)
	fc.Composition[model.FluidWater] = 10
	world.Attach(w.Store, flask, fc)

	res := NewDrinkAction(actor, flask).Perform(w)
	if !res.Success {
		t.Fatalf("expected drink to succeed")
	}
	vitals, _ := world.Get[model.Vitals](w.Store, actor)
	if vitals.Values[model.Hydration].Current <= 0 {
		t.Errorf("expected hydration to rise above 0, got %v", vitals.Values[model.Hydration].Current)
	}
}

func TestDrinkAction_EmptyContainerFails(t *testing.T) {
	w := newTestWorld()
	actor := w.Store.Create()
	flask := w.Store.Create()
	world.Attach(w.Store, flask, model.NewFluidContainer(10))

	res := NewDrinkAction(actor, flask).Perform(w)
	if res.Success {
		t.Fatalf("expected drink from an empty container to fail")
	}
}

func TestDrinkAction_NotAFluidContainerFails(t *testing.T) {
	w := newTestWorld()
	actor := w.Store.Create()
	rock := w.Store.Create()

	res := NewDrinkAction(actor, rock).Perform(w)
	if res.Success {
		t.Fatalf("expected drinking from a non-fluid-container to fail")
	}
}

func TestEatAction_RaisesSatietyAndDespawnsFood(t *testing.T) {
	w := newTestWorld()
	actor := w.Store.Create()
	world.Attach(w.Store, actor, model.NewVitals(100, 0, 100, 100))

	food := w.Store.Create()
	world.Attach(w.Store, food, model.Edible{SatiationFactor: 40})

	res := NewEatAction(actor, food).Perform(w)
	if !res.Success {
		t.Fatalf("expected eat to succeed")
	}
	for _, effect := range res.PostEffects {
		effect(w)
	}

	vitals, _ := world.Get[model.Vitals](w.Store, actor)
	if vitals.Values[model.Satiety].Current != 40 {
		t.Errorf("satiety = %v, want 40", vitals.Values[model.Satiety].Current)
	}
	if w.Store.Exists(food) {
		t.Errorf("expected food entity to be despawned after eating")
	}
}

func TestEatAction_NotEdibleFails(t *testing.T) {
	w := newTestWorld()
	actor := w.Store.Create()
	rock := w.Store.Create()

	res := NewEatAction(actor, rock).Perform(w)
	if res.Success {
		t.Fatalf("expected eating a non-edible item to fail")
	}
}
