package action

import (
	"fmt"
	"strings"

	"github.com/udisondev/la2go/internal/message"
	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/notify"
	"github.com/udisondev/la2go/internal/parser"
	"github.com/udisondev/la2go/internal/world"
)

// EatEnd is dispatched after an eat completes or is abandoned.
type EatEnd struct {
	Actor, Food world.EntityID
}

var fmtEatSelf = message.MustParse("You eat ${food.name}.")
var fmtEatRoom = message.MustParse("${actor.name} eats ${food.name}.")

// EatAction entirely consumes an edible item, raising the actor's
// satiety vital.
type EatAction struct {
	actor world.EntityID
	food  world.EntityID
}

// NewEatAction builds an eat of food by actor.
func NewEatAction(actor, food world.EntityID) *EatAction {
	return &EatAction{actor: actor, food: food}
}

func (a *EatAction) Actor() world.EntityID { return a.actor }
func (a *EatAction) Tags() []Tag           { return nil }
func (a *EatAction) MayRequireTick() bool  { return true }
func (a *EatAction) SendBefore(w *World)   {}
func (a *EatAction) SendVerify(w *World) Verdict {
	return Verdict{Valid: true}
}
func (a *EatAction) SendAfterPerform(w *World) {
	notifyDispatch(w, notify.AfterPerform, EatEnd{Actor: a.actor, Food: a.food})
}
func (a *EatAction) SendEnd(w *World) {
	notifyDispatch(w, notify.End, EatEnd{Actor: a.actor, Food: a.food})
}
func (a *EatAction) Interrupt(w *World) InterruptResult {
	return InterruptResult{Messages: []Outgoing{toSelf(a.actor, "You stop eating.", model.CategoryInternalAction)}}
}

func (a *EatAction) Perform(w *World) Result {
	edible, ok := world.Get[model.Edible](w.Store, a.food)
	if !ok {
		return Result{Complete: true, Success: false, Messages: []Outgoing{toSelf(a.actor, fmt.Sprintf("You can't eat %s.", Name(w.Store, a.food)), model.CategoryInternalMisc)}}
	}

	room := CurrentRoom(w.Store, a.actor)
	var messages []Outgoing
	messages = append(messages, toSelfFmt(a.actor, fmtEatSelf, message.Tokens{"food": message.EntityToken(a.food)}, model.CategoryInternalAction))
	messages = append(messages, toRoom(w, room, a.actor, fmtEatRoom, message.Tokens{
		"actor": message.EntityToken(a.actor),
		"food":  message.EntityToken(a.food),
	}, model.CategorySurroundingsAction)...)

	food := a.food
	actor := a.actor
	post := func(w *World) {
		model.ApplyVital(w.Store, actor, model.Satiety, model.VitalAdd, edible.SatiationFactor)
		w.Store.Despawn(food)
	}

	return Result{Complete: true, ShouldTick: true, Success: true, Messages: messages, PostEffects: []PostEffect{post}}
}

type eatParser struct{}

func (eatParser) Parse(w *World, entity world.EntityID, in parser.Input) (any, error) {
	if in.Verb != "eat" {
		return nil, &parser.Error{Kind: parser.UnknownCommand}
	}
	name := strings.TrimSpace(strings.TrimPrefix(in.Rest, "the "))
	room := CurrentRoom(w.Store, entity)
	candidates := roomAndInventoryCandidates(w, entity, room)
	target, err := parser.ResolveTarget(w.Store, entity, name, room, candidates)
	if err != nil {
		return nil, err
	}
	if _, ok := world.Get[model.Edible](w.Store, target); !ok {
		return nil, &parser.Error{Kind: parser.Other, Detail: fmt.Sprintf("You can't eat %s.", Name(w.Store, target))}
	}
	return NewEatAction(entity, target), nil
}

func (eatParser) HelpFormats(w *World, entity, observer world.EntityID) []string {
	return []string{"eat <>"}
}

// EatParser is the standard parser for eat.
var EatParser parser.Parser[*World] = eatParser{}
