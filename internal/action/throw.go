package action

import (
	"fmt"
	"strings"

	"github.com/udisondev/la2go/internal/check"
	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/notify"
	"github.com/udisondev/la2go/internal/parser"
	"github.com/udisondev/la2go/internal/world"
)

// kgCanThrowPerStrength is how many kilograms a point of Strength lets an
// entity throw.
const kgCanThrowPerStrength = 2.0

// hitDamagePerKg is the damage a thrown item does per kilogram it weighs
// when it connects.
const hitDamagePerKg = 3.0

// directHitDamageMult is a damage multiplier for an extreme-success throw.
// Perform does not apply it: every hit deals weight times hitDamagePerKg.
const directHitDamageMult = 2.0

// weightPenaltyPerKg is subtracted from the throw check per kilogram the
// item weighs.
const weightPenaltyPerKg = 0.5

// ThrowEnd is dispatched after a throw completes or is abandoned.
type ThrowEnd struct {
	Thrower, Item, Target world.EntityID
}

// ThrowBefore is dispatched before a throw is verified, letting
// auto-equip-the-thrown-item-before-throw queue an equip of item ahead of
// it, so the thrower is holding what they're about to hurl.
type ThrowBefore struct {
	Thrower, Item, Target world.EntityID
}

// ThrowAction makes thrower hurl item at target. Throwing at a living
// entity starts combat at long range and is resisted by the target's
// dodge; throwing at an inanimate object is a plain strength check
// scaled by the target's volume. Either way the item ends up unequipped,
// on the floor of the thrower's room.
type ThrowAction struct {
	thrower world.EntityID
	item    world.EntityID
	target  world.EntityID
}

// NewThrowAction builds a throw of item at target by thrower.
func NewThrowAction(thrower, item, target world.EntityID) *ThrowAction {
	return &ThrowAction{thrower: thrower, item: item, target: target}
}

func (a *ThrowAction) Actor() world.EntityID { return a.thrower }
func (a *ThrowAction) Tags() []Tag           { return []Tag{TagCombat} }
func (a *ThrowAction) MayRequireTick() bool  { return true }
func (a *ThrowAction) SendBefore(w *World) {
	notifyDispatch(w, notify.Before, ThrowBefore{Thrower: a.thrower, Item: a.item, Target: a.target})
}
func (a *ThrowAction) SendVerify(w *World) Verdict {
	return Verdict{Valid: true}
}
func (a *ThrowAction) SendAfterPerform(w *World) {
	notifyDispatch(w, notify.AfterPerform, ThrowEnd{Thrower: a.thrower, Item: a.item, Target: a.target})
}
func (a *ThrowAction) SendEnd(w *World) {
	notifyDispatch(w, notify.End, ThrowEnd{Thrower: a.thrower, Item: a.item, Target: a.target})
}
func (a *ThrowAction) Interrupt(w *World) InterruptResult {
	return InterruptResult{Messages: []Outgoing{toSelf(a.thrower, "You stop winding up to throw.", model.CategoryInternalAction)}}
}

func (a *ThrowAction) Perform(w *World) Result {
	room := CurrentRoom(w.Store, a.thrower)
	weight := model.EntityWeight(w.Store, a.item)
	_, targetIsLiving := world.Get[model.Vitals](w.Store, a.target)

	penalty := weight * weightPenaltyPerKg

	var hit bool
	if targetIsLiving {
		w.SetInCombat(a.thrower, a.target, model.RangeLong)

		stats, _ := world.Get[model.Stats](w.Store, a.thrower)
		targetStats, _ := world.Get[model.Stats](w.Store, a.target)
		strength := stats.StatTotal(model.StatStrength) - int(penalty)
		dodge := targetStats.SkillTotal(model.SkillDodge)
		hit, _, _ = check.Opposed(float64(strength), float64(dodge), w.Config.CheckStandardDeviation, check.Moderate, check.TieFavorsDefender, w.Uniform)
	} else {
		stats, _ := world.Get[model.Stats](w.Store, a.thrower)
		strength := float64(stats.StatTotal(model.StatStrength)) - penalty
		_, result := check.Roll(strength, w.Config.CheckStandardDeviation, inanimateThrowDifficulty(w, a.target), w.Uniform)
		hit = result.Succeeded()
	}

	itemName := Name(w.Store, a.item)
	targetName := Name(w.Store, a.target)

	var messages []Outgoing
	if hit && targetIsLiving {
		damage := weight * hitDamagePerKg
		model.ApplyVital(w.Store, a.target, model.Health, model.VitalSubtract, damage)
		messages = append(messages, toSelf(a.thrower, fmt.Sprintf("You throw %s at %s and hit!", itemName, targetName), model.CategoryInternalAction))
		messages = append(messages, toSelf(a.target, fmt.Sprintf("Ow, you got hit with %s!", itemName), model.CategoryInternalMisc))
	} else if hit {
		messages = append(messages, toSelf(a.thrower, fmt.Sprintf("You throw %s at %s and hit it.", itemName, targetName), model.CategoryInternalAction))
	} else if targetIsLiving {
		messages = append(messages, toSelf(a.thrower, fmt.Sprintf("You throw %s at %s, who dodges out of the way.", itemName, targetName), model.CategoryInternalAction))
	} else {
		messages = append(messages, toSelf(a.thrower, fmt.Sprintf("You throw %s at %s and miss.", itemName, targetName), model.CategoryInternalAction))
	}

	itemID := a.item

	return Result{
		Complete:   true,
		ShouldTick: true,
		Success:    hit,
		Messages:   messages,
		PostEffects: []PostEffect{
			func(w *World) {
				_ = model.Unequip(w.Store, a.thrower, itemID)
				if room != world.Invalid {
					_ = model.MoveToContainer(w.Store, itemID, room)
				}
			},
		},
	}
}

// inanimateThrowDifficulty scales a plain Moderate difficulty by the
// target's volume: small targets are harder to hit, large ones easier.
func inanimateThrowDifficulty(w *World, target world.EntityID) check.Difficulty {
	volume := model.EntityVolume(w.Store, target)
	mult := 1.0
	switch {
	case volume <= 0:
		mult = 3.0
	case volume < 1:
		mult = 1 + (1-volume)*2
	case volume > 1:
		mult = 0.5
	}
	d := check.Moderate
	d.Target = int(float64(d.Target) * mult)
	d.ExtremeFailureThreshold = int(float64(d.ExtremeFailureThreshold) * mult)
	d.ExtremeSuccessThreshold = int(float64(d.ExtremeSuccessThreshold) * mult)
	return d
}

// cannotThrowReason explains why item can't be thrown by thrower, or
// returns "" if it can.
func cannotThrowReason(w *World, thrower, item world.EntityID) string {
	if _, ok := world.Get[model.Item](w.Store, item); !ok {
		return fmt.Sprintf("You can't throw %s.", Name(w.Store, item))
	}

	weight := model.EntityWeight(w.Store, item)
	stats, ok := world.Get[model.Stats](w.Store, thrower)
	maxWeight := 0.0
	if ok {
		maxWeight = float64(stats.StatTotal(model.StatStrength)) * kgCanThrowPerStrength
	}
	if weight > maxWeight {
		return fmt.Sprintf("You aren't strong enough to throw %s.", Name(w.Store, item))
	}
	return ""
}

type throwParser struct{}

func (throwParser) Parse(w *World, entity world.EntityID, in parser.Input) (any, error) {
	if in.Verb != "throw" {
		return nil, &parser.Error{Kind: parser.UnknownCommand}
	}

	idx := strings.Index(in.Rest, " at ")
	if idx < 0 {
		return nil, &parser.Error{Kind: parser.MissingTarget}
	}
	itemName := strings.TrimSpace(strings.TrimPrefix(in.Rest[:idx], "the "))
	targetName := strings.TrimSpace(strings.TrimPrefix(in.Rest[idx+len(" at "):], "the "))
	if itemName == "" {
		return nil, &parser.Error{Kind: parser.MissingTarget}
	}

	room := CurrentRoom(w.Store, entity)
	candidates := roomAndInventoryCandidates(w, entity, room)

	item, err := parser.ResolveTarget(w.Store, entity, itemName, room, candidates)
	if err != nil {
		return nil, err
	}
	target, err := parser.ResolveTarget(w.Store, entity, targetName, room, candidates)
	if err != nil {
		return nil, err
	}

	if item == target {
		return nil, &parser.Error{Kind: parser.Other, Detail: fmt.Sprintf("You can't throw %s at itself.", Name(w.Store, item))}
	}
	if target == entity {
		return nil, &parser.Error{Kind: parser.Other, Detail: "You can't throw things at yourself."}
	}
	if reason := cannotThrowReason(w, entity, item); reason != "" {
		return nil, &parser.Error{Kind: parser.Other, Detail: reason}
	}

	_, isItem := world.Get[model.Item](w.Store, target)
	_, isLiving := world.Get[model.Vitals](w.Store, target)
	if !isItem && !isLiving {
		return nil, &parser.Error{Kind: parser.Other, Detail: fmt.Sprintf("You can't throw anything at %s.", Name(w.Store, target))}
	}

	return NewThrowAction(entity, item, target), nil
}

func (throwParser) HelpFormats(w *World, entity, observer world.EntityID) []string {
	return []string{"throw <> at <>"}
}

// ThrowParser is the standard parser for throw <> at <>.
var ThrowParser parser.Parser[*World] = throwParser{}
