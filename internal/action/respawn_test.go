package action

import (
	"testing"

	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/world"
)

func TestRespawnAction_WithoutRespawnerFails(t *testing.T) {
	w := newTestWorld()
	actor := w.Store.Create()

	res := NewRespawnAction(actor).Perform(w)

	if res.Success {
		t.Fatalf("expected respawn without a Respawner attribute to fail")
	}
}

func TestRespawnAction_RestoresVitalsAndMoves(t *testing.T) {
	w := newTestWorld()
	room := w.Store.Create()
	world.Attach(w.Store, room, model.Container{MaxVolume: 1000, MaxWeight: 1000})

	actor := w.Store.Create()
	world.Attach(w.Store, actor, model.Respawner{SpawnRoom: room})
	world.Attach(w.Store, actor, model.NewVitals(100, 100, 100, 100))
	model.ApplyVital(w.Store, actor, model.Health, model.VitalSet, 0)

	res := NewRespawnAction(actor).Perform(w)

	if !res.Success {
		t.Fatalf("expected respawn to succeed")
	}
	vitals, _ := world.Get[model.Vitals](w.Store, actor)
	if vitals.Values[model.Health].Current != 100 {
		t.Errorf("health after respawn = %v, want 100", vitals.Values[model.Health].Current)
	}
	loc, ok := model.GetLocation(w.Store, actor)
	if !ok || loc.Owner != room {
		t.Errorf("expected actor to be moved into spawn room")
	}
}

func TestRespawnAction_QueuesLookAfterPerform(t *testing.T) {
	w := newTestWorld()
	room := w.Store.Create()
	world.Attach(w.Store, room, model.Container{MaxVolume: 1000, MaxWeight: 1000})

	actor := w.Store.Create()
	world.Attach(w.Store, actor, model.Respawner{SpawnRoom: room})
	world.Attach(w.Store, actor, model.NewVitals(100, 100, 100, 100))

	a := NewRespawnAction(actor)
	a.Perform(w)
	a.SendAfterPerform(w)

	if q := w.QueueFor(actor); q.Empty() {
		t.Errorf("expected a look action to be queued after respawn")
	}
}
