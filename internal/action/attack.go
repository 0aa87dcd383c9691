package action

import (
	"fmt"
	"strings"

	"github.com/udisondev/la2go/internal/check"
	"github.com/udisondev/la2go/internal/combat"
	"github.com/udisondev/la2go/internal/message"
	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/notify"
	"github.com/udisondev/la2go/internal/parser"
	"github.com/udisondev/la2go/internal/world"
)

// AttackEnd is dispatched after an attack completes or is abandoned.
type AttackEnd struct {
	Attacker, Target world.EntityID
}

// AttackBefore is dispatched before an attack is verified, letting
// auto-equip-the-weapon-before-attack queue an equip of the resolved weapon
// ahead of it. Weapon is world.Invalid when the attacker named none
// explicitly.
type AttackBefore struct {
	Attacker, Target, Weapon world.EntityID
}

var fmtMiss = message.MustParse("${attacker.name} attacks ${target.name} and misses.")
var fmtHit = message.MustParse("${attacker.name} hits ${target.name} in the ${part} with ${weapon.name}.")
var fmtCriticalHit = message.MustParse("${attacker.name} lands a critical hit on ${target.name}'s ${part} with ${weapon.name}!")
var fmtTargetOutOfRange = message.MustParse("${target.name} is too far away to attack with ${weapon.name}.")

// selfAttackDamageMultiplier scales damage when an attacker targets
// themself, on top of (not instead of) the body-part multiplier, which is
// forced to the head for self-attacks.
const selfAttackDamageMultiplier = 3.0

// AttackAction makes the attacker swing a weapon (explicit, else primary
// equipped, else innate, else the first weapon found loose in their own
// inventory) at target. Entering combat for the first swing seeds the
// pair's combat range at the weapon's longest usable range.
type AttackAction struct {
	attacker world.EntityID
	target   world.EntityID
	weapon   world.EntityID // world.Invalid means "resolve automatically"
}

// NewAttackAction builds an attack of target by attacker, using weapon if
// given or the attacker's primary equipped/innate weapon otherwise.
func NewAttackAction(attacker, target, weapon world.EntityID) *AttackAction {
	return &AttackAction{attacker: attacker, target: target, weapon: weapon}
}

func (a *AttackAction) Actor() world.EntityID { return a.attacker }
func (a *AttackAction) Tags() []Tag           { return []Tag{TagCombat} }
func (a *AttackAction) MayRequireTick() bool  { return true }
func (a *AttackAction) SendBefore(w *World) {
	notifyDispatch(w, notify.Before, AttackBefore{Attacker: a.attacker, Target: a.target, Weapon: a.weapon})
}
func (a *AttackAction) SendVerify(w *World) Verdict {
	return Verdict{Valid: true}
}
func (a *AttackAction) SendAfterPerform(w *World) {
	notifyDispatch(w, notify.AfterPerform, AttackEnd{Attacker: a.attacker, Target: a.target})
}
func (a *AttackAction) SendEnd(w *World) {
	notifyDispatch(w, notify.End, AttackEnd{Attacker: a.attacker, Target: a.target})
}
func (a *AttackAction) Interrupt(w *World) InterruptResult {
	return InterruptResult{Messages: []Outgoing{toSelf(a.attacker, "You stop attacking.", model.CategoryInternalAction)}}
}

// resolveWeapon picks the explicit weapon, the attacker's primary equipped
// item, their innate weapon, or the first weapon carried loose in their
// inventory, in that order.
func resolveWeapon(w *World, attacker, explicit world.EntityID) (world.EntityID, model.Weapon, bool) {
	if explicit != world.Invalid {
		if wpn, ok := world.Get[model.Weapon](w.Store, explicit); ok {
			return explicit, wpn, true
		}
		return world.Invalid, model.Weapon{}, false
	}
	if primary, ok := model.PrimaryEquipped(w.Store, attacker); ok {
		if wpn, ok := world.Get[model.Weapon](w.Store, primary); ok {
			return primary, wpn, true
		}
	}
	if inn, ok := world.Get[model.InnateWeapon](w.Store, attacker); ok {
		return attacker, inn.Entity, true
	}
	if container, ok := world.Get[model.Container](w.Store, attacker); ok {
		for _, item := range container.Contents {
			if wpn, ok := world.Get[model.Weapon](w.Store, item); ok {
				return item, wpn, true
			}
		}
	}
	return world.Invalid, model.Weapon{}, false
}

// resolveBodyPart picks the body part a hit against target lands on: a
// self-attack always lands on the head, otherwise it's a weighted-random
// pick off target's BodyPartProfile (or the default humanoid profile if it
// has none).
func resolveBodyPart(w *World, attacker, target world.EntityID) model.BodyPart {
	if attacker == target {
		return model.BodyHead
	}
	profile, ok := world.Get[model.BodyPartProfile](w.Store, target)
	if !ok {
		profile = model.DefaultBodyPartProfile()
	}
	return profile.RollPart(w.Uniform)
}

func (a *AttackAction) Perform(w *World) Result {
	weaponEntity, weapon, ok := resolveWeapon(w, a.attacker, a.weapon)
	if !ok {
		return Result{Complete: true, Success: false, Messages: []Outgoing{toSelf(a.attacker, "You have nothing to attack with.", model.CategoryInternalMisc)}}
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

	toHit := float64(attackerStats.StatTotal(weapon.PrimaryStat)) - float64(steps*weapon.ToHitPenaltyPerStep)
	dodge := float64(defenderStats.SkillTotal(model.SkillDodge))

	attackerWins, _, _ := check.Opposed(toHit, dodge, w.Config.CheckStandardDeviation, check.Moderate, check.TieFavorsDefender, w.Uniform)

	room := CurrentRoom(w.Store, a.attacker)
	category := "default"
	if a.attacker == a.target {
		category = "self"
	}
	messages := weapon.MessagesFor(category)

	if !attackerWins {
		var out []Outgoing
		out = append(out, toSelfFmt(a.attacker, fallbackOrTemplate(messages.Miss, fmtMiss), message.Tokens{
			"attacker": message.EntityToken(a.attacker),
			"target":   message.EntityToken(a.target),
		}, model.CategoryInternalAction))
		out = append(out, toRoom(w, room, a.attacker, fallbackOrTemplate(messages.Miss, fmtMiss), message.Tokens{
			"attacker": message.EntityToken(a.attacker),
			"target":   message.EntityToken(a.target),
		}, model.CategorySurroundingsAction)...)
		return Result{Complete: true, ShouldTick: true, Success: false, Messages: out}
	}

	damage := weapon.DamageMin
	if weapon.DamageMax > weapon.DamageMin {
		damage += int(w.Uniform() * float64(weapon.DamageMax-weapon.DamageMin+1))
	}
	damage -= steps * weapon.DamagePenaltyPerStep
	if damage < 1 {
		damage = 1
	}

	critical := false
	if weapon.CriticalOnExtremeSuccess {
		_, result := check.Roll(toHit, w.Config.CheckStandardDeviation, check.Moderate, w.Uniform)
		if result == check.ExtremeSuccess {
			critical = true
			damage *= 2
		}
	}

	part := resolveBodyPart(w, a.attacker, a.target)
	finalDamage := float64(damage) * part.DamageMultiplier()
	if a.attacker == a.target {
		finalDamage *= selfAttackDamageMultiplier
	}

	model.ApplyVital(w.Store, a.target, model.Health, model.VitalSubtract, finalDamage)

	tmpl := fallbackOrTemplate(messages.Hit, fmtHit)
	if critical {
		tmpl = fallbackOrTemplate(messages.Critical, fmtCriticalHit)
	}
	tokens := message.Tokens{
		"attacker": message.EntityToken(a.attacker),
		"target":   message.EntityToken(a.target),
		"weapon":   message.EntityToken(weaponEntity),
		"part":     message.StringToken(part.String()),
	}

	var out []Outgoing
	out = append(out, toSelfFmt(a.attacker, tmpl, tokens, model.CategoryInternalAction))
	out = append(out, toRoom(w, room, a.attacker, tmpl, tokens, model.CategorySurroundingsAction)...)

	return Result{Complete: true, ShouldTick: true, Success: true, Messages: out}
}

func fallbackOrTemplate(custom string, fallback *message.Format) *message.Format {
	if custom == "" {
		return fallback
	}
	return message.MustParse(custom)
}

var attackVerbs = []string{"attack", "kill", "k"}

type attackParser struct{}

func (attackParser) Parse(w *World, entity world.EntityID, in parser.Input) (any, error) {
	matched := false
	for _, v := range attackVerbs {
		if in.Verb == v {
			matched = true
			break
		}
	}
	if !matched {
		return nil, &parser.Error{Kind: parser.UnknownCommand}
	}

	rest := in.Rest
	var weaponName string
	if idx := strings.Index(rest, " with "); idx >= 0 {
		weaponName = strings.TrimSpace(rest[idx+len(" with "):])
		rest = rest[:idx]
	} else if idx := strings.Index(rest, " using "); idx >= 0 {
		weaponName = strings.TrimSpace(rest[idx+len(" using "):])
		rest = rest[:idx]
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return nil, &parser.Error{Kind: parser.MissingTarget}
	}

	room := CurrentRoom(w.Store, entity)
	candidates := roomAndInventoryCandidates(w, entity, room)
	target, err := parser.ResolveTarget(w.Store, entity, rest, room, candidates)
	if err != nil {
		return nil, err
	}

	weapon := world.Invalid
	if weaponName != "" {
		weapon, err = parser.ResolveTarget(w.Store, entity, weaponName, room, candidates)
		if err != nil {
			return nil, err
		}
		if _, ok := world.Get[model.Weapon](w.Store, weapon); !ok {
			return nil, &parser.Error{Kind: parser.Other, Detail: fmt.Sprintf("You can't attack with %s.", Name(w.Store, weapon))}
		}
	}

	return NewAttackAction(entity, target, weapon), nil
}

func (attackParser) HelpFormats(w *World, entity, observer world.EntityID) []string {
	return []string{"attack <>", "attack <> with <>"}
}

// AttackParser is the standard parser for attack/kill/k.
var AttackParser parser.Parser[*World] = attackParser{}
