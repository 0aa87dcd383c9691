package model

import (
	"testing"

	"github.com/udisondev/la2go/internal/world"
)

func TestMoveToContainer_Reciprocity(t *testing.T) {
	s := world.NewStore()
	room := s.Create()
	world.Attach(s, room, Container{})

	box := s.Create()
	world.Attach(s, box, Container{})
	if err := MoveToContainer(s, box, room); err != nil {
		t.Fatalf("MoveToContainer(box, room) error: %v", err)
	}

	key := s.Create()
	if err := MoveToContainer(s, key, box); err != nil {
		t.Fatalf("MoveToContainer(key, box) error: %v", err)
	}

	if !Contains(s, box, key) {
		t.Errorf("box does not contain key after move")
	}
	loc, ok := GetLocation(s, key)
	if !ok || loc.Owner != box || loc.Kind != LocationContainer {
		t.Errorf("key Location = %+v, %v; want owner=box, kind=Container", loc, ok)
	}

	// Move again: key should leave box and reciprocity should hold for both.
	if err := MoveToContainer(s, key, room); err != nil {
		t.Fatalf("MoveToContainer(key, room) error: %v", err)
	}
	if Contains(s, box, key) {
		t.Errorf("box still contains key after moving it out")
	}
	if !Contains(s, room, key) {
		t.Errorf("room does not contain key after move")
	}
}

func TestContainsTransitively_RejectsSelfNesting(t *testing.T) {
	s := world.NewStore()
	box := s.Create()
	world.Attach(s, box, Container{})

	if !ContainsTransitively(s, box, box) {
		t.Errorf("ContainsTransitively(box, box) = false, want true")
	}

	inner := s.Create()
	world.Attach(s, inner, Container{})
	_ = MoveToContainer(s, inner, box)

	if !ContainsTransitively(s, box, inner) {
		t.Errorf("ContainsTransitively(box, inner) = false, want true (nested)")
	}
	if ContainsTransitively(s, inner, box) {
		t.Errorf("ContainsTransitively(inner, box) = true, want false")
	}
}

func TestContainerFreeVolume_Unlimited(t *testing.T) {
	s := world.NewStore()
	room := s.Create()
	world.Attach(s, room, Container{}) // MaxVolume 0 == unlimited

	if got := ContainerFreeVolume(s, room); got < 1e17 {
		t.Errorf("ContainerFreeVolume(unlimited room) = %v, want effectively infinite", got)
	}
}

func TestCanAcceptVolume(t *testing.T) {
	if !CanAcceptVolume(0, 100, 50) {
		t.Errorf("CanAcceptVolume(unlimited) = false, want true")
	}
	if !CanAcceptVolume(10, 5, 5) {
		t.Errorf("CanAcceptVolume(10, 5, 5) = false, want true (exactly fits)")
	}
	if CanAcceptVolume(10, 5, 6) {
		t.Errorf("CanAcceptVolume(10, 5, 6) = true, want false (overflows)")
	}
}
