package action

import (
	"testing"

	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/world"
)

func TestThrowAction_HitsLivingTargetAndDamages(t *testing.T) {
	w := newTestWorld()
	room := w.Store.Create()
	world.Attach(w.Store, room, model.Container{MaxVolume: 1000, MaxWeight: 1000})

	thrower := w.Store.Create()
	world.Attach(w.Store, thrower, model.Stats{Attributes: map[model.Stat]int{model.StatStrength: 1000}})
	_ = model.MoveToContainer(w.Store, thrower, room)

	item := w.Store.Create()
	world.Attach(w.Store, item, model.Item{})
	world.Attach(w.Store, item, model.Weight{Kilograms: 1})

	target := w.Store.Create()
	world.Attach(w.Store, target, model.Stats{Skills: map[model.Skill]int{model.SkillDodge: -1000}})
	world.Attach(w.Store, target, model.NewVitals(100, 100, 100, 100))

	res := NewThrowAction(thrower, item, target).Perform(w)

	if !res.Success {
		t.Fatalf("expected overwhelming strength advantage to hit")
	}
	vitals, _ := world.Get[model.Vitals](w.Store, target)
	if vitals.Values[model.Health].Current >= 100 {
		t.Errorf("target health = %v, want less than 100", vitals.Values[model.Health].Current)
	}
}

func TestThrowAction_PostEffectMovesItemToRoom(t *testing.T) {
	w := newTestWorld()
	room := w.Store.Create()
	world.Attach(w.Store, room, model.Container{MaxVolume: 1000, MaxWeight: 1000})

	thrower := w.Store.Create()
	world.Attach(w.Store, thrower, model.Stats{Attributes: map[model.Stat]int{model.StatStrength: 10}})
	_ = model.MoveToContainer(w.Store, thrower, room)

	item := w.Store.Create()
	world.Attach(w.Store, item, model.Item{})
	_ = model.MoveToContainer(w.Store, item, room)

	target := w.Store.Create()
	world.Attach(w.Store, target, model.Item{})
	_ = model.MoveToContainer(w.Store, target, room)

	res := NewThrowAction(thrower, item, target).Perform(w)
	for _, effect := range res.PostEffects {
		effect(w)
	}

	loc, ok := model.GetLocation(w.Store, item)
	if !ok || loc.Owner != room {
		t.Errorf("expected item to end up in the thrower's room after the throw")
	}
}
