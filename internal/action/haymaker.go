package action

import (
	"fmt"

	"github.com/udisondev/la2go/internal/check"
	"github.com/udisondev/la2go/internal/combat"
	"github.com/udisondev/la2go/internal/message"
	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/notify"
	"github.com/udisondev/la2go/internal/parser"
	"github.com/udisondev/la2go/internal/world"
)

// haymakerToHitModifier is added to the to-hit roll on the tick the
// haymaker actually lands — a full wind-up buys better aim.
const haymakerToHitModifier = 2.0

// haymakerDamageMultiplier scales damage on a landed haymaker.
const haymakerDamageMultiplier = 1.5

// haymakerChargeTicks is how many ticks the wind-up takes before the
// punch lands.
const haymakerChargeTicks = 1

// HaymakerEnd is dispatched after a haymaker completes or is abandoned.
type HaymakerEnd struct {
	Attacker, Target world.EntityID
}

// HaymakerAction is a special unarmed attack that spends a tick winding
// up before swinging, trading an open window for harder-hitting damage
// on landing. Available only to entities with FistActions.
type HaymakerAction struct {
	attacker       world.EntityID
	target         world.EntityID
	ticksRemaining int
}

// NewHaymakerAction builds a haymaker of target by attacker.
func NewHaymakerAction(attacker, target world.EntityID) *HaymakerAction {
	return &HaymakerAction{attacker: attacker, target: target, ticksRemaining: haymakerChargeTicks}
}

func (a *HaymakerAction) Actor() world.EntityID { return a.attacker }
func (a *HaymakerAction) Tags() []Tag           { return []Tag{TagCombat} }
func (a *HaymakerAction) MayRequireTick() bool  { return true }
func (a *HaymakerAction) SendBefore(w *World)   {}
func (a *HaymakerAction) SendVerify(w *World) Verdict {
	return Verdict{Valid: true}
}
func (a *HaymakerAction) SendAfterPerform(w *World) {
	notifyDispatch(w, notify.AfterPerform, HaymakerEnd{Attacker: a.attacker, Target: a.target})
}
func (a *HaymakerAction) SendEnd(w *World) {
	notifyDispatch(w, notify.End, HaymakerEnd{Attacker: a.attacker, Target: a.target})
}
func (a *HaymakerAction) Interrupt(w *World) InterruptResult {
	return InterruptResult{Messages: []Outgoing{toSelf(a.attacker, "You stop preparing for a haymaker.", model.CategoryInternalAction)}}
}

func (a *HaymakerAction) Perform(w *World) Result {
	fist, ok := world.Get[model.FistActions](w.Store, a.attacker)
	if !ok {
		return Result{Complete: true, Success: false, Messages: []Outgoing{
			toSelf(a.attacker, "You don't know how to haymaker.", model.CategoryInternalMisc),
		}}
	}
	weaponEntity, weapon, ok := fistWeapon(w, a.attacker, fist.HaymakerMessages)
	if !ok {
		return Result{Complete: true, Success: false, Messages: []Outgoing{
			toSelf(a.attacker, "You have nothing to haymaker with.", model.CategoryInternalMisc),
		}}
	}

	rng, alreadyFighting := combat.EntitiesInCombatWith(w.Store, a.attacker)[a.target]
	if !alreadyFighting {
		rng = weapon.LongestUsableRange()
	}
	w.SetInCombat(a.attacker, a.target, rng)

	if a.ticksRemaining > 0 {
		winding := a.ticksRemaining == haymakerChargeTicks
		a.ticksRemaining--
		text := "You continue preparing for a haymaker."
		if winding {
			text = fmt.Sprintf("You face %s and wind up for a haymaker.", Name(w.Store, a.target))
		}
		return Result{Complete: false, ShouldTick: true, Messages: []Outgoing{
			toSelf(a.attacker, text, model.CategoryInternalAction),
		}}
	}

	if !weapon.CanUseAtRange(rng) {
		return Result{Complete: true, ShouldTick: true, Success: false, Messages: []Outgoing{
			toSelfFmt(a.attacker, fmtTargetOutOfRange, message.Tokens{
				"target": message.EntityToken(a.target),
				"weapon": message.EntityToken(weaponEntity),
			}, model.CategoryInternalMisc),
		}}
	}

	steps := rng.Steps(weapon.OptimalRange)
	attackerStats, _ := world.Get[model.Stats](w.Store, a.attacker)
	defenderStats, _ := world.Get[model.Stats](w.Store, a.target)

	toHit := float64(attackerStats.StatTotal(weapon.PrimaryStat)) - float64(steps*weapon.ToHitPenaltyPerStep) + haymakerToHitModifier
	dodge := float64(defenderStats.SkillTotal(model.SkillDodge))

	attackerWins, _, _ := check.Opposed(toHit, dodge, w.Config.CheckStandardDeviation, check.Moderate, check.TieFavorsDefender, w.Uniform)

	room := CurrentRoom(w.Store, a.attacker)
	messages := weapon.MessagesFor("default")

	if !attackerWins {
		var out []Outgoing
		tokens := message.Tokens{"attacker": message.EntityToken(a.attacker), "target": message.EntityToken(a.target)}
		out = append(out, toSelfFmt(a.attacker, fallbackOrTemplate(messages.Miss, fmtMiss), tokens, model.CategoryInternalAction))
		out = append(out, toRoom(w, room, a.attacker, fallbackOrTemplate(messages.Miss, fmtMiss), tokens, model.CategorySurroundingsAction)...)
		return Result{Complete: true, ShouldTick: true, Success: false, Messages: out}
	}

	damage := weapon.DamageMin
	if weapon.DamageMax > weapon.DamageMin {
		damage += int(w.Uniform() * float64(weapon.DamageMax-weapon.DamageMin+1))
	}
	damage -= steps * weapon.DamagePenaltyPerStep
	damage = int(float64(damage)*haymakerDamageMultiplier + 0.5)
	if damage < 1 {
		damage = 1
	}

	part := resolveBodyPart(w, a.attacker, a.target)
	finalDamage := float64(damage) * part.DamageMultiplier()
	if a.attacker == a.target {
		finalDamage *= selfAttackDamageMultiplier
	}

	model.ApplyVital(w.Store, a.target, model.Health, model.VitalSubtract, finalDamage)

	tokens := message.Tokens{
		"attacker": message.EntityToken(a.attacker),
		"target":   message.EntityToken(a.target),
		"weapon":   message.EntityToken(weaponEntity),
		"part":     message.StringToken(part.String()),
	}
	tmpl := fallbackOrTemplate(messages.Hit, fmtHit)

	var out []Outgoing
	out = append(out, toSelfFmt(a.attacker, tmpl, tokens, model.CategoryInternalAction))
	out = append(out, toRoom(w, room, a.attacker, tmpl, tokens, model.CategorySurroundingsAction)...)

	return Result{Complete: true, ShouldTick: true, Success: true, Messages: out}
}

type haymakerParser struct{}

func (haymakerParser) Parse(w *World, entity world.EntityID, in parser.Input) (any, error) {
	if in.Verb != "haymaker" {
		return nil, &parser.Error{Kind: parser.UnknownCommand}
	}
	rest := in.Rest
	if rest == "" {
		return nil, &parser.Error{Kind: parser.MissingTarget}
	}

	room := CurrentRoom(w.Store, entity)
	candidates := roomAndInventoryCandidates(w, entity, room)
	target, err := parser.ResolveTarget(w.Store, entity, rest, room, candidates)
	if err != nil {
		return nil, err
	}
	return NewHaymakerAction(entity, target), nil
}

func (haymakerParser) HelpFormats(w *World, entity, observer world.EntityID) []string {
	if !world.Has[model.FistActions](w.Store, entity) {
		return nil
	}
	return []string{"haymaker <>"}
}

// HaymakerParser is the standard parser for haymaker.
var HaymakerParser parser.Parser[*World] = haymakerParser{}
