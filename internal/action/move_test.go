package action

import (
	"testing"

	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/parser"
	"github.com/udisondev/la2go/internal/world"
)

func connectRooms(s *world.Store, from, to world.EntityID, dir model.Direction) {
	conn := s.Create()
	world.Attach(s, conn, model.Connection{Direction: dir, Destination: to})
	fromContainer, _ := world.Get[model.Container](s, from)
	fromContainer.Contents = append(fromContainer.Contents, conn)
	world.Attach(s, from, fromContainer)
}

func TestMoveAction_WalksThroughAConnection(t *testing.T) {
	w := newTestWorld()
	roomA := w.Store.Create()
	roomB := w.Store.Create()
	world.Attach(w.Store, roomA, model.Container{MaxVolume: 1000, MaxWeight: 1000})
	world.Attach(w.Store, roomB, model.Container{MaxVolume: 1000, MaxWeight: 1000})
	connectRooms(w.Store, roomA, roomB, model.North)

	actor := w.Store.Create()
	_ = model.MoveToContainer(w.Store, actor, roomA)

	res := NewMoveAction(actor, model.North).Perform(w)
	if !res.Success {
		t.Fatalf("expected move through an open connection to succeed")
	}
	loc, ok := model.GetLocation(w.Store, actor)
	if !ok || loc.Owner != roomB {
		t.Errorf("expected actor to end up in roomB, got %+v", loc)
	}
}

func TestMoveAction_NoConnectionFails(t *testing.T) {
	w := newTestWorld()
	room := w.Store.Create()
	world.Attach(w.Store, room, model.Container{MaxVolume: 1000, MaxWeight: 1000})

	actor := w.Store.Create()
	_ = model.MoveToContainer(w.Store, actor, room)

	res := NewMoveAction(actor, model.South).Perform(w)
	if res.Success {
		t.Fatalf("expected move with no connection in that direction to fail")
	}
}

func TestMoveAction_EscapesCombatOnOverwhelmingAgility(t *testing.T) {
	w := newTestWorld()
	roomA := w.Store.Create()
	roomB := w.Store.Create()
	world.Attach(w.Store, roomA, model.Container{MaxVolume: 1000, MaxWeight: 1000})
	world.Attach(w.Store, roomB, model.Container{MaxVolume: 1000, MaxWeight: 1000})
	connectRooms(w.Store, roomA, roomB, model.East)

	actor := w.Store.Create()
	world.Attach(w.Store, actor, model.Stats{Attributes: map[model.Stat]int{model.StatAgility: 1000}})
	_ = model.MoveToContainer(w.Store, actor, roomA)

	opponent := w.Store.Create()
	world.Attach(w.Store, opponent, model.Stats{Attributes: map[model.Stat]int{model.StatAgility: -1000}})
	w.SetInCombat(actor, opponent, model.RangeShort)

	res := NewMoveAction(actor, model.East).Perform(w)
	if !res.Success {
		t.Fatalf("expected overwhelming agility advantage to escape combat and move")
	}
	if model.InCombat(w.Store, actor) {
		t.Errorf("expected actor to have left combat after escaping")
	}
}

func TestMoveAction_FailedEscapeBlocksMove(t *testing.T) {
	w := newTestWorld()
	roomA := w.Store.Create()
	roomB := w.Store.Create()
	world.Attach(w.Store, roomA, model.Container{MaxVolume: 1000, MaxWeight: 1000})
	world.Attach(w.Store, roomB, model.Container{MaxVolume: 1000, MaxWeight: 1000})
	connectRooms(w.Store, roomA, roomB, model.West)

	actor := w.Store.Create()
	world.Attach(w.Store, actor, model.Stats{Attributes: map[model.Stat]int{model.StatAgility: -1000}})
	_ = model.MoveToContainer(w.Store, actor, roomA)

	opponent := w.Store.Create()
	world.Attach(w.Store, opponent, model.Stats{Attributes: map[model.Stat]int{model.StatAgility: 1000}})
	w.SetInCombat(actor, opponent, model.RangeShort)

	res := NewMoveAction(actor, model.West).Perform(w)
	if res.Success {
		t.Fatalf("expected a failed escape check to block the move")
	}
	loc, ok := model.GetLocation(w.Store, actor)
	if !ok || loc.Owner != roomA {
		t.Errorf("expected actor to remain in roomA after a failed escape")
	}
}

func TestMoveParser_RecognizesDirectionWordsAndShortForms(t *testing.T) {
	w := newTestWorld()
	actor := w.Store.Create()

	for _, verb := range []string{"n", "north", "go"} {
		rest := ""
		if verb == "go" {
			rest = "north"
		}
		parsed, err := (moveParser{}).Parse(w, actor, parser.Input{Verb: verb, Rest: rest})
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", verb, err)
		}
		m, ok := parsed.(*MoveAction)
		if !ok || m.direction != model.North {
			t.Errorf("Parse(%q) = %+v, want a north MoveAction", verb, parsed)
		}
	}
}
