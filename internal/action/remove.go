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

// RemoveVerify is the payload Verify handlers vote on before an item is
// taken off.
type RemoveVerify struct {
	Actor, Item world.EntityID
}

// RemoveEnd is dispatched after a remove completes or is abandoned.
type RemoveEnd struct {
	Actor, Item world.EntityID
}

var fmtRemoveSelf = message.MustParse("You take off ${item.name}.")
var fmtRemoveRoom = message.MustParse("${actor.name} takes off ${item.name}.")

// RemoveAction takes a worn item off the actor's body and back into their
// inventory. Used both by the "remove" command and by the auto-remove
// handler reacting to a drop or put of a worn item.
type RemoveAction struct {
	actor world.EntityID
	item  world.EntityID
}

// NewRemoveAction builds a remove of item from actor.
func NewRemoveAction(actor, item world.EntityID) *RemoveAction {
	return &RemoveAction{actor: actor, item: item}
}

func (a *RemoveAction) Actor() world.EntityID { return a.actor }
func (a *RemoveAction) Tags() []Tag           { return nil }
func (a *RemoveAction) MayRequireTick() bool  { return true }
func (a *RemoveAction) SendBefore(w *World)   {}

func (a *RemoveAction) SendVerify(w *World) Verdict {
	if !model.IsWearing(w.Store, a.actor, a.item) {
		return Verdict{Valid: false, Messages: []Outgoing{toSelf(a.actor, fmt.Sprintf("You're not wearing %s.", Name(w.Store, a.item)), model.CategoryInternalMisc)}}
	}
	return translateVerdict(notifyVerify(w, notify.Verify, RemoveVerify{Actor: a.actor, Item: a.item}))
}

func (a *RemoveAction) SendAfterPerform(w *World) {
	notifyDispatch(w, notify.AfterPerform, RemoveEnd{Actor: a.actor, Item: a.item})
}
func (a *RemoveAction) SendEnd(w *World) {
	notifyDispatch(w, notify.End, RemoveEnd{Actor: a.actor, Item: a.item})
}

func (a *RemoveAction) Interrupt(w *World) InterruptResult {
	return InterruptResult{Messages: []Outgoing{toSelf(a.actor, "You stop taking things off.", model.CategoryInternalAction)}}
}

func (a *RemoveAction) Perform(w *World) Result {
	itemName := Name(w.Store, a.item)

	if err := model.RemoveWorn(w.Store, a.actor, a.item); err != nil {
		return Result{Complete: true, Success: false, Messages: []Outgoing{toSelf(a.actor, fmt.Sprintf("You're not wearing %s.", itemName), model.CategoryInternalMisc)}}
	}
	if err := model.MoveToContainer(w.Store, a.item, a.actor); err != nil {
		return Result{Complete: true, Success: false, Messages: []Outgoing{toSelf(a.actor, fmt.Sprintf("You have nowhere to put %s.", itemName), model.CategoryInternalMisc)}}
	}

	room := CurrentRoom(w.Store, a.actor)
	var messages []Outgoing
	messages = append(messages, toSelfFmt(a.actor, fmtRemoveSelf, message.Tokens{"item": message.EntityToken(a.item)}, model.CategoryInternalAction))
	messages = append(messages, toRoom(w, room, a.actor, fmtRemoveRoom, message.Tokens{
		"actor": message.EntityToken(a.actor),
		"item":  message.EntityToken(a.item),
	}, model.CategorySurroundingsAction)...)

	return Result{Complete: true, ShouldTick: true, Success: true, Messages: messages}
}

type removeParser struct{}

func (removeParser) Parse(w *World, entity world.EntityID, in parser.Input) (any, error) {
	rest := in.Rest
	switch {
	case in.Verb == "remove":
	case in.Verb == "take" && strings.HasPrefix(rest, "off "):
		rest = strings.TrimPrefix(rest, "off ")
	default:
		return nil, &parser.Error{Kind: parser.UnknownCommand}
	}
	name := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rest), "the "))
	room := CurrentRoom(w.Store, entity)
	candidates := roomAndInventoryCandidates(w, entity, room)
	target, err := parser.ResolveTarget(w.Store, entity, name, room, candidates)
	if err != nil {
		return nil, err
	}
	if !model.IsWearing(w.Store, entity, target) {
		return nil, &parser.Error{Kind: parser.Other, Detail: fmt.Sprintf("You're not wearing %s, and you couldn't if you tried.", Name(w.Store, target))}
	}
	return NewRemoveAction(entity, target), nil
}

func (removeParser) HelpFormats(w *World, entity, observer world.EntityID) []string {
	return []string{"remove <>"}
}

// RemoveParser is the standard parser for remove/take off.
var RemoveParser parser.Parser[*World] = removeParser{}
