package action

import (
	"testing"

	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/parser"
	"github.com/udisondev/la2go/internal/world"
)

func TestAttackAction_NoWeaponFails(t *testing.T) {
	w := newTestWorld()
	attacker := w.Store.Create()
	target := w.Store.Create()

	res := NewAttackAction(attacker, target, world.Invalid).Perform(w)
	if res.Success {
		t.Fatalf("expected attacking with no weapon to fail")
	}
}

func TestAttackAction_OverwhelmingAdvantageHitsAndDamages(t *testing.T) {
	w := newTestWorld()
	attacker := w.Store.Create()
	world.Attach(w.Store, attacker, model.Stats{Attributes: map[model.Stat]int{model.StatStrength: 1000}})
	world.Attach(w.Store, attacker, model.InnateWeapon{Entity: model.Weapon{
		WeaponType:   "fists",
		DamageMin:    3,
		DamageMax:    3,
		PrimaryStat:  model.StatStrength,
		UsableRanges: []model.CombatRange{model.RangeShortest},
		OptimalRange: model.RangeShortest,
	}})

	target := w.Store.Create()
	world.Attach(w.Store, target, model.Stats{Skills: map[model.Skill]int{model.SkillDodge: -1000}})
	world.Attach(w.Store, target, model.NewVitals(100, 100, 100, 100))

	res := NewAttackAction(attacker, target, world.Invalid).Perform(w)
	if !res.Success {
		t.Fatalf("expected overwhelming strength advantage to hit")
	}
	vitals, _ := world.Get[model.Vitals](w.Store, target)
	if vitals.Values[model.Health].Current >= 100 {
		t.Errorf("target health = %v, want less than 100", vitals.Values[model.Health].Current)
	}
}

func TestAttackAction_OutOfRangeFails(t *testing.T) {
	w := newTestWorld()
	attacker := w.Store.Create()
	world.Attach(w.Store, attacker, model.Stats{})
	world.Attach(w.Store, attacker, model.InnateWeapon{Entity: model.Weapon{
		WeaponType:   "fists",
		DamageMin:    1,
		DamageMax:    1,
		UsableRanges: []model.CombatRange{model.RangeShortest},
		OptimalRange: model.RangeShortest,
	}})

	target := w.Store.Create()
	world.Attach(w.Store, target, model.Stats{})
	w.SetInCombat(attacker, target, model.RangeLong)

	res := NewAttackAction(attacker, target, world.Invalid).Perform(w)
	if res.Success {
		t.Fatalf("expected attack at a range the weapon can't use to fail")
	}
}

func TestAttackParser_RecognizesSynonymsAndWithWeaponClause(t *testing.T) {
	w := newTestWorld()
	room := w.Store.Create()
	world.Attach(w.Store, room, model.Container{MaxVolume: 1000, MaxWeight: 1000})

	attacker := w.Store.Create()
	_ = model.MoveToContainer(w.Store, attacker, room)

	target := w.Store.Create()
	world.Attach(w.Store, target, model.Description{Name: "rat"})
	_ = model.MoveToContainer(w.Store, target, room)

	sword := w.Store.Create()
	world.Attach(w.Store, sword, model.Description{Name: "sword"})
	world.Attach(w.Store, sword, model.Weapon{WeaponType: "sword"})
	_ = model.MoveToContainer(w.Store, sword, attacker)

	parsed, err := (attackParser{}).Parse(w, attacker, parser.Input{Verb: "k", Rest: "rat with sword"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	atk, ok := parsed.(*AttackAction)
	if !ok {
		t.Fatalf("Parse() returned %T, want *AttackAction", parsed)
	}
	if atk.target != target || atk.weapon != sword {
		t.Errorf("Parse() = %+v, want target=%v weapon=%v", atk, target, sword)
	}
}
