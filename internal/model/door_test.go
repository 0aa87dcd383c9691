package model

import (
	"testing"

	"github.com/udisondev/la2go/internal/world"
)

func TestSetOpen_MirrorsAcrossConnection(t *testing.T) {
	s := world.NewStore()
	doorA := s.Create()
	world.Attach(s, doorA, OpenState{Open: false})
	doorB := s.Create()
	world.Attach(s, doorB, OpenState{Open: false})

	world.Attach(s, doorA, Connection{Direction: North, OtherSide: doorB})
	world.Attach(s, doorB, Connection{Direction: South, OtherSide: doorA})

	if err := SetOpen(s, doorA, true); err != nil {
		t.Fatalf("SetOpen() error: %v", err)
	}

	aState, _ := world.Get[OpenState](s, doorA)
	bState, _ := world.Get[OpenState](s, doorB)
	if !aState.Open || !bState.Open {
		t.Errorf("OpenState after SetOpen = (%v, %v), want (true, true)", aState.Open, bState.Open)
	}

	if err := SetOpen(s, doorA, false); err != nil {
		t.Fatalf("SetOpen(close) error: %v", err)
	}
	aState, _ = world.Get[OpenState](s, doorA)
	bState, _ = world.Get[OpenState](s, doorB)
	if aState.Open || bState.Open {
		t.Errorf("OpenState after close = (%v, %v), want (false, false)", aState.Open, bState.Open)
	}
}

func TestSetLocked_MirrorsAcrossConnection(t *testing.T) {
	s := world.NewStore()
	doorA := s.Create()
	world.Attach(s, doorA, KeyedLock{KeyID: "brass-key", Locked: true})
	doorB := s.Create()
	world.Attach(s, doorB, KeyedLock{KeyID: "brass-key", Locked: true})

	world.Attach(s, doorA, Connection{OtherSide: doorB})
	world.Attach(s, doorB, Connection{OtherSide: doorA})

	if err := SetLocked(s, doorA, false); err != nil {
		t.Fatalf("SetLocked() error: %v", err)
	}

	aLock, _ := world.Get[KeyedLock](s, doorA)
	bLock, _ := world.Get[KeyedLock](s, doorB)
	if aLock.Locked || bLock.Locked {
		t.Errorf("locked state = (%v, %v), want (false, false)", aLock.Locked, bLock.Locked)
	}
}

func TestDirection_Opposite(t *testing.T) {
	cases := map[Direction]Direction{
		North: South,
		East:  West,
		Up:    Down,
	}
	for d, want := range cases {
		if got := d.Opposite(); got != want {
			t.Errorf("%v.Opposite() = %v, want %v", d, got, want)
		}
		if got := want.Opposite(); got != d {
			t.Errorf("%v.Opposite() = %v, want %v (not involutive)", want, got, d)
		}
	}
}
