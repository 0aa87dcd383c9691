package action

import (
	"testing"

	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/parser"
	"github.com/udisondev/la2go/internal/world"
)

func TestChangeRangeAction_NotInCombatFails(t *testing.T) {
	w := newTestWorld()
	actor := w.Store.Create()
	target := w.Store.Create()

	res := NewAdvanceAction(actor, target).Perform(w)
	if res.Success {
		t.Fatalf("expected advance with no opponent to fail")
	}
}

func TestChangeRangeAction_AdvanceDecreasesRange(t *testing.T) {
	w := newTestWorld()
	actor := w.Store.Create()
	target := w.Store.Create()
	w.SetInCombat(actor, target, model.RangeLong)

	res := NewAdvanceAction(actor, target).Perform(w)
	if !res.Success {
		t.Fatalf("expected advance to succeed while in combat")
	}
	rng, ok := opponentRange(w, actor, target)
	if !ok || rng != model.RangeMedium {
		t.Errorf("range after advance = %v, want RangeMedium", rng)
	}
}

func TestChangeRangeAction_RetreatIncreasesRange(t *testing.T) {
	w := newTestWorld()
	actor := w.Store.Create()
	target := w.Store.Create()
	w.SetInCombat(actor, target, model.RangeShort)

	res := NewRetreatAction(actor, target).Perform(w)
	if !res.Success {
		t.Fatalf("expected retreat to succeed while in combat")
	}
	rng, ok := opponentRange(w, actor, target)
	if !ok || rng != model.RangeMedium {
		t.Errorf("range after retreat = %v, want RangeMedium", rng)
	}
}

func TestChangeRangeParser_RejectsUnknownOpponent(t *testing.T) {
	w := newTestWorld()
	actor := w.Store.Create()
	target := w.Store.Create()
	world.Attach(w.Store, target, model.Description{Name: "goblin"})
	w.SetInCombat(actor, target, model.RangeShort)

	_, err := (changeRangeParser{}).Parse(w, actor, parser.Input{Verb: "advance", Rest: "a dragon"})
	if err == nil {
		t.Fatalf("expected an error for advancing toward an unknown opponent")
	}
}

func opponentRange(w *World, actor, target world.EntityID) (model.CombatRange, bool) {
	cs, ok := world.Get[model.CombatState](w.Store, actor)
	if !ok {
		return 0, false
	}
	rng, ok := cs.Opponents[target]
	return rng, ok
}
