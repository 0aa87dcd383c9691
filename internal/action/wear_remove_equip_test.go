package action

import (
	"testing"

	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/parser"
	"github.com/udisondev/la2go/internal/world"
)

func TestWearAction_PutsItemOnAndMovesItOutOfInventory(t *testing.T) {
	w := newTestWorld()
	room := w.Store.Create()
	world.Attach(w.Store, room, model.Container{MaxVolume: 1000, MaxWeight: 1000})

	actor := w.Store.Create()
	world.Attach(w.Store, actor, model.Container{MaxVolume: 50, MaxWeight: 50})
	_ = model.MoveToContainer(w.Store, actor, room)

	shirt := w.Store.Create()
	world.Attach(w.Store, shirt, model.Description{Name: "a shirt"})
	world.Attach(w.Store, shirt, model.Wearable{Parts: []model.BodyPart{model.BodyTorso}})
	_ = model.MoveToContainer(w.Store, shirt, actor)

	res := NewWearAction(actor, shirt).Perform(w)
	if !res.Success {
		t.Fatalf("expected wear to succeed")
	}
	if !model.IsWearing(w.Store, actor, shirt) {
		t.Errorf("expected actor to be wearing the shirt")
	}
}

func TestWearAction_NotWearableFails(t *testing.T) {
	w := newTestWorld()
	actor := w.Store.Create()
	world.Attach(w.Store, actor, model.Container{MaxVolume: 50, MaxWeight: 50})

	rock := w.Store.Create()
	world.Attach(w.Store, rock, model.Description{Name: "a rock"})
	_ = model.MoveToContainer(w.Store, rock, actor)

	res := NewWearAction(actor, rock).Perform(w)
	if res.Success {
		t.Fatalf("expected wearing a non-wearable item to fail")
	}
}

func TestWearAction_VerifyRejectsItemNotHeld(t *testing.T) {
	w := newTestWorld()
	actor := w.Store.Create()
	other := w.Store.Create()

	world.Attach(w.Store, other, model.Container{MaxVolume: 50, MaxWeight: 50})

	shirt := w.Store.Create()
	world.Attach(w.Store, shirt, model.Wearable{Parts: []model.BodyPart{model.BodyTorso}})
	_ = model.MoveToContainer(w.Store, shirt, other)

	v := NewWearAction(actor, shirt).SendVerify(w)
	if v.Valid {
		t.Fatalf("expected verify to reject wearing an item the actor doesn't have")
	}
}

func TestRemoveAction_TakesItemOffAndReturnsToInventory(t *testing.T) {
	w := newTestWorld()
	actor := w.Store.Create()
	world.Attach(w.Store, actor, model.Container{MaxVolume: 50, MaxWeight: 50})

	shirt := w.Store.Create()
	world.Attach(w.Store, shirt, model.Description{Name: "a shirt"})
	world.Attach(w.Store, shirt, model.Wearable{Parts: []model.BodyPart{model.BodyTorso}})
	if err := model.Wear(w.Store, actor, shirt); err != nil {
		t.Fatalf("setup Wear() error = %v", err)
	}

	res := NewRemoveAction(actor, shirt).Perform(w)
	if !res.Success {
		t.Fatalf("expected remove to succeed")
	}
	if model.IsWearing(w.Store, actor, shirt) {
		t.Errorf("expected actor to no longer be wearing the shirt")
	}
	loc, ok := model.GetLocation(w.Store, shirt)
	if !ok || loc.Owner != actor || loc.Kind != model.LocationContainer {
		t.Errorf("expected shirt to be back in actor's inventory, got %+v", loc)
	}
}

func TestRemoveAction_NotWornFails(t *testing.T) {
	w := newTestWorld()
	actor := w.Store.Create()
	item := w.Store.Create()

	res := NewRemoveAction(actor, item).Perform(w)
	if res.Success {
		t.Fatalf("expected removing an item that isn't worn to fail")
	}
}

func TestEquipAction_HoldsItemInHands(t *testing.T) {
	w := newTestWorld()
	actor := w.Store.Create()
	world.Attach(w.Store, actor, model.Container{MaxVolume: 50, MaxWeight: 50})
	world.Attach(w.Store, actor, model.EquippedItems{Hands: 2})

	sword := w.Store.Create()
	world.Attach(w.Store, sword, model.Description{Name: "a sword"})
	world.Attach(w.Store, sword, model.Weapon{WeaponType: "sword", DamageMin: 1, DamageMax: 4})
	_ = model.MoveToContainer(w.Store, sword, actor)

	res := NewEquipAction(actor, sword).Perform(w)
	if !res.Success {
		t.Fatalf("expected equip to succeed")
	}
	if !model.IsEquipping(w.Store, actor, sword) {
		t.Errorf("expected actor to be equipping the sword")
	}
}

func TestEquipAction_UnequipReturnsItemToInventory(t *testing.T) {
	w := newTestWorld()
	actor := w.Store.Create()
	world.Attach(w.Store, actor, model.Container{MaxVolume: 50, MaxWeight: 50})
	world.Attach(w.Store, actor, model.EquippedItems{Hands: 2})

	sword := w.Store.Create()
	world.Attach(w.Store, sword, model.Description{Name: "a sword"})
	world.Attach(w.Store, sword, model.Weapon{WeaponType: "sword", DamageMin: 1, DamageMax: 4})
	_ = model.MoveToContainer(w.Store, sword, actor)
	if err := model.Equip(w.Store, actor, sword); err != nil {
		t.Fatalf("setup Equip() error = %v", err)
	}

	res := NewUnequipAction(actor, sword).Perform(w)
	if !res.Success {
		t.Fatalf("expected unequip to succeed")
	}
	if model.IsEquipping(w.Store, actor, sword) {
		t.Errorf("expected actor to no longer be equipping the sword")
	}
}

func TestEquipParser_RecognizesSynonyms(t *testing.T) {
	w := newTestWorld()
	actor := w.Store.Create()
	room := w.Store.Create()
	world.Attach(w.Store, room, model.Container{MaxVolume: 1000, MaxWeight: 1000})
	world.Attach(w.Store, actor, model.Container{MaxVolume: 50, MaxWeight: 50})
	_ = model.MoveToContainer(w.Store, actor, room)

	sword := w.Store.Create()
	world.Attach(w.Store, sword, model.Description{Name: "sword"})
	world.Attach(w.Store, sword, model.Weapon{WeaponType: "sword", DamageMin: 1, DamageMax: 4})
	_ = model.MoveToContainer(w.Store, sword, actor)

	parsed, err := (equipParser{}).Parse(w, actor, parser.Input{Verb: "wield", Rest: "sword"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	eq, ok := parsed.(*EquipAction)
	if !ok || !eq.equipping {
		t.Fatalf("Parse(wield sword) = %+v, want an equipping EquipAction", parsed)
	}
}
