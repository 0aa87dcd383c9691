package action

import (
	"testing"

	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/parser"
	"github.com/udisondev/la2go/internal/world"
)

func TestCheatParser_ParsesCommandAndArgs(t *testing.T) {
	w := newTestWorld()
	actor := w.Store.Create()

	parsed, err := (cheatParser{}).Parse(w, actor, parser.Input{Verb: "%give_xp%", Rest: "50"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	ca, ok := parsed.(*CheatAction)
	if !ok {
		t.Fatalf("Parse() returned %T, want *CheatAction", parsed)
	}
	if ca.command != "give_xp" || len(ca.args) != 1 || ca.args[0] != "50" {
		t.Errorf("parsed cheat = %+v, want command=give_xp args=[50]", ca)
	}
}

func TestCheatAction_GiveXPCreditsAdvancement(t *testing.T) {
	w := newTestWorld()
	actor := w.Store.Create()
	world.Attach(w.Store, actor, model.Stats{Attributes: map[model.Stat]int{}, Skills: map[model.Skill]int{}})

	res := NewCheatAction(actor, "give_xp", []string{"50"}).Perform(w)
	if !res.Success {
		t.Fatalf("expected give_xp to succeed")
	}

	stats, _ := world.Get[model.Stats](w.Store, actor)
	if stats.TotalXP != 50 {
		t.Errorf("TotalXP = %d, want 50", stats.TotalXP)
	}
}

func TestCheatAction_SetHPOnSelf(t *testing.T) {
	w := newTestWorld()
	actor := w.Store.Create()
	world.Attach(w.Store, actor, model.NewVitals(100, 100, 100, 100))

	res := NewCheatAction(actor, "set_hp", []string{"42"}).Perform(w)
	if !res.Success {
		t.Fatalf("expected set_hp to succeed")
	}

	vitals, _ := world.Get[model.Vitals](w.Store, actor)
	if vitals.Values[model.Health].Current != 42 {
		t.Errorf("health = %v, want 42", vitals.Values[model.Health].Current)
	}
}

func TestCheatAction_UnknownCommandFails(t *testing.T) {
	w := newTestWorld()
	actor := w.Store.Create()

	res := NewCheatAction(actor, "nonexistent", nil).Perform(w)
	if res.Success {
		t.Fatalf("expected unknown cheat command to fail")
	}
}
