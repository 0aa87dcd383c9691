package action

import (
	"strings"
	"testing"

	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/parser"
	"github.com/udisondev/la2go/internal/world"
)

func TestPutAction_DropMovesItemToRoom(t *testing.T) {
	w := newTestWorld()
	room := w.Store.Create()
	world.Attach(w.Store, room, model.Container{MaxVolume: 1000, MaxWeight: 1000})

	actor := w.Store.Create()
	world.Attach(w.Store, actor, model.Container{MaxVolume: 50, MaxWeight: 50})
	_ = model.MoveToContainer(w.Store, actor, room)

	item := w.Store.Create()
	world.Attach(w.Store, item, model.Description{Name: "a coin"})
	_ = model.MoveToContainer(w.Store, item, actor)

	res := NewPutAction(actor, item, actor, room).Perform(w)
	if !res.Success {
		t.Fatalf("expected drop to succeed")
	}
	loc, ok := model.GetLocation(w.Store, item)
	if !ok || loc.Owner != room {
		t.Errorf("expected item to end up in the room, got %+v", loc)
	}
}

func TestPutParser_ParsesDropGetAndPut(t *testing.T) {
	w := newTestWorld()
	room := w.Store.Create()
	world.Attach(w.Store, room, model.Container{MaxVolume: 1000, MaxWeight: 1000})

	actor := w.Store.Create()
	world.Attach(w.Store, actor, model.Container{MaxVolume: 50, MaxWeight: 50})
	_ = model.MoveToContainer(w.Store, actor, room)

	coin := w.Store.Create()
	world.Attach(w.Store, coin, model.Description{Name: "coin"})
	_ = model.MoveToContainer(w.Store, coin, actor)

	parsed, err := (putParser{}).Parse(w, actor, parser.Input{Verb: "drop", Rest: "coin"})
	if err != nil {
		t.Fatalf("Parse(drop coin) error = %v", err)
	}
	p, ok := parsed.(*PutAction)
	if !ok || p.destination != room {
		t.Errorf("Parse(drop coin) = %+v, want destination=room", parsed)
	}
}

func TestOpenAction_OpensAClosedDoor(t *testing.T) {
	w := newTestWorld()
	actor := w.Store.Create()
	door := w.Store.Create()
	world.Attach(w.Store, door, model.OpenState{Open: false})

	res := NewOpenAction(actor, door).Perform(w)
	if !res.Success {
		t.Fatalf("expected open to succeed")
	}
	state, _ := world.Get[model.OpenState](w.Store, door)
	if !state.Open {
		t.Errorf("expected door to be open")
	}
}

func TestOpenAction_AlreadyOpenFails(t *testing.T) {
	w := newTestWorld()
	actor := w.Store.Create()
	door := w.Store.Create()
	world.Attach(w.Store, door, model.OpenState{Open: true})

	res := NewOpenAction(actor, door).Perform(w)
	if res.Success {
		t.Fatalf("expected opening an already-open door to fail")
	}
}

func TestLockAction_RequiresMatchingKey(t *testing.T) {
	w := newTestWorld()
	actor := w.Store.Create()
	world.Attach(w.Store, actor, model.Container{MaxVolume: 50, MaxWeight: 50})

	door := w.Store.Create()
	world.Attach(w.Store, door, model.KeyedLock{KeyID: "brass", Locked: false})

	res := NewLockAction(actor, door).Perform(w)
	if res.Success {
		t.Fatalf("expected locking without the matching key to fail")
	}

	key := w.Store.Create()
	world.Attach(w.Store, key, model.Key{ID: "brass"})
	_ = model.MoveToContainer(w.Store, key, actor)

	res = NewLockAction(actor, door).Perform(w)
	if !res.Success {
		t.Fatalf("expected locking with the matching key to succeed")
	}
	lock, _ := world.Get[model.KeyedLock](w.Store, door)
	if !lock.Locked {
		t.Errorf("expected door to be locked")
	}
}

func TestLockAction_NoKeyRequiredLocksDirectly(t *testing.T) {
	w := newTestWorld()
	actor := w.Store.Create()
	door := w.Store.Create()
	world.Attach(w.Store, door, model.KeyedLock{Locked: false})

	res := NewLockAction(actor, door).Perform(w)
	if !res.Success {
		t.Fatalf("expected locking a keyless lock to succeed")
	}
}

func TestStopAction_ClearsQueueAndReportsWhatWasDoing(t *testing.T) {
	w := newTestWorld()
	actor := w.Store.Create()
	performed := 0
	w.Enqueue(actor, &noopAction{actor: actor, performed: &performed})

	res := NewStopAction(actor).Perform(w)
	if !res.Success {
		t.Fatalf("expected stop with something queued to report success")
	}
	if !w.QueueFor(actor).Empty() {
		t.Errorf("expected queue to be empty after stop")
	}
}

func TestStopAction_NothingQueuedReportsFailure(t *testing.T) {
	w := newTestWorld()
	actor := w.Store.Create()

	res := NewStopAction(actor).Perform(w)
	if res.Success {
		t.Fatalf("expected stop with nothing queued to report failure")
	}
}

func TestLookAction_DescribesRoomAndContents(t *testing.T) {
	w := newTestWorld()
	room := w.Store.Create()
	world.Attach(w.Store, room, model.Container{MaxVolume: 1000, MaxWeight: 1000})
	world.Attach(w.Store, room, model.Description{Name: "a quiet room"})
	world.Attach(w.Store, room, model.Room{Name: "Quiet Room", Description: "Dust motes hang in still air."})

	actor := w.Store.Create()
	_ = model.MoveToContainer(w.Store, actor, room)

	other := w.Store.Create()
	world.Attach(w.Store, other, model.Description{Name: "a stray cat"})
	_ = model.MoveToContainer(w.Store, other, room)

	res := NewLookAction(actor).Perform(w)
	if !res.Success {
		t.Fatalf("expected look to succeed")
	}
	text := renderedText(t, w, res)
	if !strings.Contains(text, "stray cat") {
		t.Errorf("look output missing room occupant: %q", text)
	}
}
