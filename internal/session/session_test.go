package session

import (
	"context"
	"testing"
	"time"

	"github.com/udisondev/la2go/internal/action"
	"github.com/udisondev/la2go/internal/clock"
	"github.com/udisondev/la2go/internal/config"
	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/world"
)

func newTestWorld() *action.World {
	s := world.NewStore()
	c := clock.New(config.Default().TickQuantumSeconds)
	w := action.NewWorld(s, c, config.Default(), nil)
	action.RegisterStandardHandlers(w)
	w.Parsers.Register(action.SayParser)
	w.Parsers.Register(action.WaitParser)
	return w
}

func spawnPlayer(w *action.World) world.EntityID {
	e := w.Store.Create()
	world.Attach(w.Store, e, model.Player{ID: "p"})
	world.Attach(w.Store, e, model.Description{Name: "tester"})
	return e
}

func TestManager_AttachPointsPlayerOutboxAtSession(t *testing.T) {
	w := newTestWorld()
	mgr := NewManager(w, nil)
	entity := spawnPlayer(w)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan string)
	out := make(chan any, 4)
	mgr.Attach(ctx, &Session{ID: "s1", Entity: entity, In: in, Out: out})

	player, ok := world.Get[model.Player](w.Store, entity)
	if !ok {
		t.Fatalf("expected player component to still be attached")
	}
	select {
	case player.Outbox <- "probe":
	default:
		t.Fatalf("expected player's outbox to accept a send")
	}
	select {
	case v := <-out:
		if v != "probe" {
			t.Errorf("out received %v, want \"probe\"", v)
		}
	default:
		t.Fatalf("expected the probe value to have reached the session's Out channel")
	}
}

func TestManager_DetachRemovesSessionWithoutTouchingWorldState(t *testing.T) {
	w := newTestWorld()
	mgr := NewManager(w, nil)
	entity := spawnPlayer(w)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	in := make(chan string)
	out := make(chan any, 4)
	mgr.Attach(ctx, &Session{ID: "s1", Entity: entity, In: in, Out: out})

	mgr.Detach(entity)

	if len(mgr.liveEntities()) != 0 {
		t.Errorf("expected no live entities after detach")
	}
	if !w.Store.Exists(entity) {
		t.Errorf("expected entity to still exist in the world after a mere disconnect")
	}
}

func TestManager_SubmitEnqueuesAParsedAction(t *testing.T) {
	w := newTestWorld()
	mgr := NewManager(w, nil)
	entity := spawnPlayer(w)

	mgr.submit(entity, "say hello")

	if w.QueueFor(entity).Empty() {
		t.Errorf("expected a say action to be enqueued after a valid command line")
	}
}

func TestManager_SubmitReportsParseErrorToSubmitterOnly(t *testing.T) {
	w := newTestWorld()
	mgr := NewManager(w, nil)
	entity := spawnPlayer(w)
	other := spawnPlayer(w)

	outEntity := make(chan any, 4)
	outOther := make(chan any, 4)
	world.Attach(w.Store, entity, model.Player{ID: "p1", Outbox: outEntity})
	world.Attach(w.Store, other, model.Player{ID: "p2", Outbox: outOther})

	mgr.submit(entity, "frobnicate the quux")

	select {
	case <-outEntity:
	default:
		t.Errorf("expected the submitter to receive a parse-error message")
	}
	select {
	case <-outOther:
		t.Errorf("expected an uninvolved player to receive nothing")
	default:
	}
	if !w.QueueFor(entity).Empty() {
		t.Errorf("expected nothing to be enqueued after a parse error")
	}
}

func TestManager_AdvanceFillsIdleEntitiesWithAWaitBeforeRunningRound(t *testing.T) {
	w := newTestWorld()
	mgr := NewManager(w, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	busy := spawnPlayer(w)
	idle := spawnPlayer(w)
	mgr.Attach(ctx, &Session{ID: "busy", Entity: busy, In: make(chan string), Out: make(chan any, 4)})
	mgr.Attach(ctx, &Session{ID: "idle", Entity: idle, In: make(chan string), Out: make(chan any, 4)})

	w.Enqueue(busy, action.NewWaitAction(busy, 1))

	mgr.advance()

	if !w.QueueFor(busy).Empty() {
		t.Errorf("expected busy entity's one-tick wait to complete during advance")
	}
	if !w.QueueFor(idle).Empty() {
		t.Errorf("expected idle entity to also have been auto-advanced")
	}
}

func TestManager_RunStopsOnContextCancel(t *testing.T) {
	w := newTestWorld()
	mgr := NewManager(w, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- mgr.Run(ctx, time.Hour) }()

	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run() error = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("Run() did not return after context cancellation")
	}
}
