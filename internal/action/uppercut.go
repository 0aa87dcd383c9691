package action

import (
	"github.com/udisondev/la2go/internal/check"
	"github.com/udisondev/la2go/internal/combat"
	"github.com/udisondev/la2go/internal/message"
	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/notify"
	"github.com/udisondev/la2go/internal/parser"
	"github.com/udisondev/la2go/internal/world"
)

// uppercutToHitModifier is subtracted from the to-hit roll: uppercuts
// are harder to land than a plain punch.
const uppercutToHitModifier = -2.0

// uppercutDamageMultiplier scales damage on a landed uppercut.
const uppercutDamageMultiplier = 1.1

// UppercutEnd is dispatched after an uppercut completes or is abandoned.
type UppercutEnd struct {
	Attacker, Target world.EntityID
}

// UppercutAction is a special unarmed attack aimed at the target's head,
// available only to entities with FistActions. Riskier to land than a
// plain punch but hits harder.
type UppercutAction struct {
	attacker world.EntityID
	target   world.EntityID
}

// NewUppercutAction builds an uppercut of target by attacker.
func NewUppercutAction(attacker, target world.EntityID) *UppercutAction {
	return &UppercutAction{attacker: attacker, target: target}
}

func (a *UppercutAction) Actor() world.EntityID { return a.attacker }
func (a *UppercutAction) Tags() []Tag           { return []Tag{TagCombat} }
func (a *UppercutAction) MayRequireTick() bool  { return true }
func (a *UppercutAction) SendBefore(w *World)   {}
func (a *UppercutAction) SendVerify(w *World) Verdict {
	return Verdict{Valid: true}
}
func (a *UppercutAction) SendAfterPerform(w *World) {
	notifyDispatch(w, notify.AfterPerform, UppercutEnd{Attacker: a.attacker, Target: a.target})
}
func (a *UppercutAction) SendEnd(w *World) {
	notifyDispatch(w, notify.End, UppercutEnd{Attacker: a.attacker, Target: a.target})
}
func (a *UppercutAction) Interrupt(w *World) InterruptResult {
	return InterruptResult{Messages: []Outgoing{toSelf(a.attacker, "You stop uppercutting.", model.CategoryInternalAction)}}
}

// fistWeapon resolves attacker's innate fists, requiring FistActions, and
// returns the weapon dressed with the given special message set.
func fistWeapon(w *World, attacker world.EntityID, messages model.WeaponMessages) (world.EntityID, model.Weapon, bool) {
	if !world.Has[model.FistActions](w.Store, attacker) {
		return world.Invalid, model.Weapon{}, false
	}
	inn, ok := world.Get[model.InnateWeapon](w.Store, attacker)
	if !ok {
		return world.Invalid, model.Weapon{}, false
	}
	weapon := inn.Entity
	weapon.Messages = map[string]model.WeaponMessages{"default": messages, "self": messages}
	return attacker, weapon, true
}

func (a *UppercutAction) Perform(w *World) Result {
	fist, ok := world.Get[model.FistActions](w.Store, a.attacker)
	if !ok {
		return Result{Complete: true, Success: false, Messages: []Outgoing{
			toSelf(a.attacker, "You don't know how to uppercut.", model.CategoryInternalMisc),
		}}
	}
	weaponEntity, weapon, ok := fistWeapon(w, a.attacker, fist.UppercutMessages)
	if !ok {
		return Result{Complete: true, Success: false, Messages: []Outgoing{
			toSelf(a.attacker, "You have nothing to uppercut with.", model.CategoryInternalMisc),
		}}
	}

	rng, alreadyFighting := combat.EntitiesInCombatWith(w.Store, a.attacker)[a.target]
	if !alreadyFighting {
		rng = weapon.LongestUsableRange()
	}
	w.SetInCombat(a.attacker, a.target, rng)

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

	toHit := float64(attackerStats.StatTotal(weapon.PrimaryStat)) - float64(steps*weapon.ToHitPenaltyPerStep) + uppercutToHitModifier
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
	damage = int(float64(damage)*uppercutDamageMultiplier + 0.5)
	if damage < 1 {
		damage = 1
	}

	// An uppercut always goes for the head, self-target or not.
	part := model.BodyHead
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

type uppercutParser struct{}

func (uppercutParser) Parse(w *World, entity world.EntityID, in parser.Input) (any, error) {
	if in.Verb != "uppercut" {
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
	return NewUppercutAction(entity, target), nil
}

func (uppercutParser) HelpFormats(w *World, entity, observer world.EntityID) []string {
	if !world.Has[model.FistActions](w.Store, entity) {
		return nil
	}
	return []string{"uppercut <>"}
}

// UppercutParser is the standard parser for uppercut.
var UppercutParser parser.Parser[*World] = uppercutParser{}
