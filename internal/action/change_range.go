package action

import (
	"fmt"
	"strings"

	"github.com/udisondev/la2go/internal/combat"
	"github.com/udisondev/la2go/internal/message"
	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/notify"
	"github.com/udisondev/la2go/internal/parser"
	"github.com/udisondev/la2go/internal/world"
)

// ChangeRangeEnd is dispatched after a range change completes or is
// abandoned.
type ChangeRangeEnd struct {
	Actor, Target world.EntityID
}

var fmtAdvance = message.MustParse("You advance toward ${target.name}.")
var fmtRetreat = message.MustParse("You retreat from ${target.name}.")
var fmtAdvanceRoom = message.MustParse("${actor.name} advances toward ${target.name}.")
var fmtRetreatRoom = message.MustParse("${actor.name} retreats from ${target.name}.")

// ChangeRangeAction moves the actor one step closer to or farther from a
// combat opponent: Perform calls combat.ChangeRange with a delta of -1
// (advance) or +1 (retreat), which clamps the result to the range scale.
type ChangeRangeAction struct {
	actor    world.EntityID
	target   world.EntityID
	increase bool
}

// NewAdvanceAction builds an advance-toward-target action.
func NewAdvanceAction(actor, target world.EntityID) *ChangeRangeAction {
	return &ChangeRangeAction{actor: actor, target: target, increase: false}
}

// NewRetreatAction builds a retreat-from-target action.
func NewRetreatAction(actor, target world.EntityID) *ChangeRangeAction {
	return &ChangeRangeAction{actor: actor, target: target, increase: true}
}

func (a *ChangeRangeAction) Actor() world.EntityID { return a.actor }
func (a *ChangeRangeAction) Tags() []Tag           { return []Tag{TagCombat} }
func (a *ChangeRangeAction) MayRequireTick() bool  { return true }
func (a *ChangeRangeAction) SendBefore(w *World)   {}
func (a *ChangeRangeAction) SendVerify(w *World) Verdict {
	return Verdict{Valid: true}
}
func (a *ChangeRangeAction) SendAfterPerform(w *World) {
	notifyDispatch(w, notify.AfterPerform, ChangeRangeEnd{Actor: a.actor, Target: a.target})
}
func (a *ChangeRangeAction) SendEnd(w *World) {
	notifyDispatch(w, notify.End, ChangeRangeEnd{Actor: a.actor, Target: a.target})
}
func (a *ChangeRangeAction) Interrupt(w *World) InterruptResult {
	return InterruptResult{Messages: []Outgoing{toSelf(a.actor, "You stop moving.", model.CategoryInternalAction)}}
}

func (a *ChangeRangeAction) Perform(w *World) Result {
	if _, fighting := combat.EntitiesInCombatWith(w.Store, a.actor)[a.target]; !fighting {
		return Result{Complete: true, Success: false, Messages: []Outgoing{toSelf(a.actor, fmt.Sprintf("You're not in combat with %s.", Name(w.Store, a.target)), model.CategoryInternalMisc)}}
	}

	delta := -1
	selfTmpl, roomTmpl := fmtAdvance, fmtAdvanceRoom
	if a.increase {
		delta = 1
		selfTmpl, roomTmpl = fmtRetreat, fmtRetreatRoom
	}
	combat.ChangeRange(w.Store, a.actor, a.target, delta)

	room := CurrentRoom(w.Store, a.actor)
	var messages []Outgoing
	messages = append(messages, toSelfFmt(a.actor, selfTmpl, message.Tokens{"target": message.EntityToken(a.target)}, model.CategoryInternalAction))
	messages = append(messages, toRoom(w, room, a.actor, roomTmpl, message.Tokens{
		"actor":  message.EntityToken(a.actor),
		"target": message.EntityToken(a.target),
	}, model.CategorySurroundingsAction)...)

	return Result{Complete: true, ShouldTick: true, Success: true, Messages: messages}
}

var advanceVerbs = []string{"advance toward", "advance", "charge toward", "charge", "decrease range to", "dr", "move toward"}
var retreatVerbs = []string{"retreat from", "retreat", "fall back from", "fall back", "increase range to", "ir", "move away from"}

type changeRangeParser struct{}

func (changeRangeParser) Parse(w *World, entity world.EntityID, in parser.Input) (any, error) {
	full := in.Verb
	if in.Rest != "" {
		full = in.Verb + " " + in.Rest
	}

	var name string
	var increase bool
	var matched bool
	if rest, ok := matchVerb(full, advanceVerbs); ok {
		name, increase, matched = rest, false, true
	} else if rest, ok := matchVerb(full, retreatVerbs); ok {
		name, increase, matched = rest, true, true
	}
	if !matched {
		return nil, &parser.Error{Kind: parser.UnknownCommand}
	}

	opponents := combat.EntitiesInCombatWith(w.Store, entity)
	if len(opponents) == 0 {
		return nil, &parser.Error{Kind: parser.Other, Detail: "You're not in combat with anyone."}
	}

	name = strings.TrimSpace(name)
	room := CurrentRoom(w.Store, entity)
	var candidates []world.EntityID
	for opp := range opponents {
		candidates = append(candidates, opp)
	}
	target, err := parser.ResolveTarget(w.Store, entity, name, room, candidates)
	if err != nil {
		return nil, err
	}
	if _, ok := opponents[target]; !ok {
		return nil, &parser.Error{Kind: parser.Other, Detail: fmt.Sprintf("You're not in combat with %s.", Name(w.Store, target))}
	}

	if increase {
		return NewRetreatAction(entity, target), nil
	}
	return NewAdvanceAction(entity, target), nil
}

func (changeRangeParser) HelpFormats(w *World, entity, observer world.EntityID) []string {
	return []string{"advance toward <>", "retreat from <>"}
}

// ChangeRangeParser is the standard parser for advance/retreat and their
// synonyms.
var ChangeRangeParser parser.Parser[*World] = changeRangeParser{}
