package model

import (
	"testing"

	"github.com/udisondev/la2go/internal/world"
)

func TestWear_SingleItemAlwaysFitsRegardlessOfThickness(t *testing.T) {
	s := world.NewStore()
	wearer := s.Create()
	world.Attach(s, wearer, NewWornItems(1.0))

	coat := s.Create()
	world.Attach(s, coat, Wearable{Parts: []BodyPart{BodyTorso}, Thickness: 99.0})

	ok, reason := CanWear(s, wearer, coat)
	if !ok {
		t.Fatalf("CanWear(first item) = false (%s), want true", reason)
	}
	if err := Wear(s, wearer, coat); err != nil {
		t.Fatalf("Wear() error: %v", err)
	}
	if !IsWearing(s, wearer, coat) {
		t.Errorf("IsWearing(coat) = false after Wear()")
	}
}

func TestWear_ThicknessCapOnceTwoItemsPresent(t *testing.T) {
	s := world.NewStore()
	wearer := s.Create()
	world.Attach(s, wearer, NewWornItems(1.0))

	shirt := s.Create()
	world.Attach(s, shirt, Wearable{Parts: []BodyPart{BodyTorso}, Thickness: 0.8})
	_ = Wear(s, wearer, shirt)

	coat := s.Create()
	world.Attach(s, coat, Wearable{Parts: []BodyPart{BodyTorso}, Thickness: 0.5})

	ok, _ := CanWear(s, wearer, coat)
	if ok {
		t.Errorf("CanWear(coat) = true, want false (0.8+0.5 > 1.0 cap)")
	}
}

func TestWearRemove_RoundTrip(t *testing.T) {
	s := world.NewStore()
	wearer := s.Create()
	world.Attach(s, wearer, NewWornItems(0))

	shirt := s.Create()
	world.Attach(s, shirt, Wearable{Parts: []BodyPart{BodyTorso}, Thickness: 0.5})

	if err := Wear(s, wearer, shirt); err != nil {
		t.Fatalf("Wear() error: %v", err)
	}
	before, _ := world.Get[WornItems](s, wearer)
	beforeTorso := len(before.ByPart[BodyTorso])

	if err := RemoveWorn(s, wearer, shirt); err != nil {
		t.Fatalf("RemoveWorn() error: %v", err)
	}
	after, _ := world.Get[WornItems](s, wearer)

	if len(after.ByPart[BodyTorso]) != 0 {
		t.Errorf("WornItems after remove = %v, want empty torso stack", after.ByPart[BodyTorso])
	}
	if beforeTorso != 1 {
		t.Errorf("sanity: before state should have had 1 item on torso")
	}
}

func TestEquip_HandCapacity(t *testing.T) {
	s := world.NewStore()
	wielder := s.Create()
	world.Attach(s, wielder, EquippedItems{Hands: 2})

	sword := s.Create()
	world.Attach(s, sword, HandCost{Hands: 2})

	ok, _ := CanEquip(s, wielder, sword)
	if !ok {
		t.Fatalf("CanEquip(sword, 2 hands free) = false, want true")
	}
	if err := Equip(s, wielder, sword); err != nil {
		t.Fatalf("Equip() error: %v", err)
	}

	dagger := s.Create()
	world.Attach(s, dagger, HandCost{Hands: 1})
	ok, _ = CanEquip(s, wielder, dagger)
	if ok {
		t.Errorf("CanEquip(dagger, 0 hands free) = true, want false")
	}
}

func TestOldestEquippedUntilFits(t *testing.T) {
	s := world.NewStore()
	wielder := s.Create()
	world.Attach(s, wielder, EquippedItems{Hands: 2})

	a := s.Create()
	world.Attach(s, a, HandCost{Hands: 1})
	_ = Equip(s, wielder, a)

	b := s.Create()
	world.Attach(s, b, HandCost{Hands: 1})
	_ = Equip(s, wielder, b)

	toRemove := OldestEquippedUntilFits(s, wielder, 2)
	if len(toRemove) != 2 || toRemove[0] != a || toRemove[1] != b {
		t.Errorf("OldestEquippedUntilFits() = %v, want [a, b] oldest-first", toRemove)
	}
}

func TestEquipUnequip_RoundTrip(t *testing.T) {
	s := world.NewStore()
	wielder := s.Create()
	world.Attach(s, wielder, EquippedItems{Hands: 2})

	sword := s.Create()
	world.Attach(s, sword, HandCost{Hands: 1})
	_ = Equip(s, wielder, sword)

	before, _ := world.Get[EquippedItems](s, wielder)

	if err := Unequip(s, wielder, sword); err != nil {
		t.Fatalf("Unequip() error: %v", err)
	}
	after, _ := world.Get[EquippedItems](s, wielder)

	if len(after.Items) != 0 {
		t.Errorf("EquippedItems after unequip = %v, want empty", after.Items)
	}
	if len(before.Items) != 1 {
		t.Errorf("sanity: before state should have had 1 equipped item")
	}
}
