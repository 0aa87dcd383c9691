package action

import (
	"testing"

	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/world"
)

func fistAttacker(w *World, strength int) world.EntityID {
	e := w.Store.Create()
	world.Attach(w.Store, e, model.Stats{
		Attributes: map[model.Stat]int{model.StatStrength: strength},
		Skills:     map[model.Skill]int{},
	})
	world.Attach(w.Store, e, model.FistActions{
		UppercutMessages: model.WeaponMessages{Hit: "${attacker.name} uppercuts ${target.name}.", Miss: "${attacker.name} whiffs an uppercut at ${target.name}."},
		HaymakerMessages: model.WeaponMessages{Hit: "${attacker.name} haymakers ${target.name}.", Miss: "${attacker.name} whiffs a haymaker at ${target.name}."},
	})
	world.Attach(w.Store, e, model.InnateWeapon{Entity: model.Weapon{
		WeaponType:   "fists",
		DamageMin:    3,
		DamageMax:    3,
		PrimaryStat:  model.StatStrength,
		UsableRanges: []model.CombatRange{model.RangeShortest},
		OptimalRange: model.RangeShortest,
	}})
	return e
}

func fistTarget(w *World, dodge int) world.EntityID {
	e := w.Store.Create()
	world.Attach(w.Store, e, model.Stats{
		Attributes: map[model.Stat]int{},
		Skills:     map[model.Skill]int{model.SkillDodge: dodge},
	})
	world.Attach(w.Store, e, model.NewVitals(100, 100, 100, 100))
	return e
}

func TestUppercutAction_RequiresFistActions(t *testing.T) {
	w := newTestWorld()
	attacker := w.Store.Create()
	target := fistTarget(w, 0)

	a := NewUppercutAction(attacker, target)
	res := a.Perform(w)

	if res.Success {
		t.Fatalf("expected uppercut without FistActions to fail")
	}
}

func TestUppercutAction_HitDamagesTarget(t *testing.T) {
	w := newTestWorld()
	attacker := fistAttacker(w, 1000)
	target := fistTarget(w, -1000)

	a := NewUppercutAction(attacker, target)
	res := a.Perform(w)

	if !res.Success {
		t.Fatalf("expected overwhelming strength advantage to land")
	}

	vitals, _ := world.Get[model.Vitals](w.Store, target)
	if vitals.Values[model.Health].Current >= 100 {
		t.Errorf("target health = %v, want less than 100 after a hit", vitals.Values[model.Health].Current)
	}
}

func TestUppercutAction_MissLeavesTargetUnharmed(t *testing.T) {
	w := newTestWorld()
	attacker := fistAttacker(w, -1000)
	target := fistTarget(w, 1000)

	a := NewUppercutAction(attacker, target)
	res := a.Perform(w)

	if res.Success {
		t.Fatalf("expected overwhelming dodge advantage to avoid the hit")
	}

	vitals, _ := world.Get[model.Vitals](w.Store, target)
	if vitals.Values[model.Health].Current != 100 {
		t.Errorf("target health = %v, want 100 unchanged after a miss", vitals.Values[model.Health].Current)
	}
}

func TestUppercutParser_RequiresFistActionsForHelp(t *testing.T) {
	w := newTestWorld()
	plain := w.Store.Create()
	fister := fistAttacker(w, 10)

	if formats := (uppercutParser{}).HelpFormats(w, plain, plain); formats != nil {
		t.Errorf("HelpFormats() for entity without FistActions = %v, want nil", formats)
	}
	if formats := (uppercutParser{}).HelpFormats(w, fister, fister); len(formats) == 0 {
		t.Errorf("HelpFormats() for entity with FistActions = empty, want at least one format")
	}
}
