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

// WearVerify is the payload Verify handlers vote on before an item is put on.
type WearVerify struct {
	Actor, Item world.EntityID
}

// WearEnd is dispatched after a wear completes or is abandoned.
type WearEnd struct {
	Actor, Item world.EntityID
}

var fmtWearSelf = message.MustParse("You put on ${item.name}.")
var fmtWearRoom = message.MustParse("${actor.name} puts on ${item.name}.")

// WearAction puts a wearable item from the actor's inventory onto their
// body. No standard handler takes off or unequips anything to free the
// covered body parts first; Perform fails when CanWear rejects the item.
type WearAction struct {
	actor world.EntityID
	item  world.EntityID
}

// NewWearAction builds a wear of item by actor.
func NewWearAction(actor, item world.EntityID) *WearAction {
	return &WearAction{actor: actor, item: item}
}

func (a *WearAction) Actor() world.EntityID { return a.actor }
func (a *WearAction) Tags() []Tag           { return nil }
func (a *WearAction) MayRequireTick() bool  { return true }
func (a *WearAction) SendBefore(w *World)   {}

func (a *WearAction) SendVerify(w *World) Verdict {
	if loc, ok := model.GetLocation(w.Store, a.item); !ok || loc.Owner != a.actor || loc.Kind != model.LocationContainer {
		return Verdict{Valid: false, Messages: []Outgoing{toSelf(a.actor, fmt.Sprintf("You don't have %s.", Name(w.Store, a.item)), model.CategoryInternalMisc)}}
	}
	return translateVerdict(notifyVerify(w, notify.Verify, WearVerify{Actor: a.actor, Item: a.item}))
}

func (a *WearAction) SendAfterPerform(w *World) {
	notifyDispatch(w, notify.AfterPerform, WearEnd{Actor: a.actor, Item: a.item})
}
func (a *WearAction) SendEnd(w *World) {
	notifyDispatch(w, notify.End, WearEnd{Actor: a.actor, Item: a.item})
}

func (a *WearAction) Interrupt(w *World) InterruptResult {
	return InterruptResult{Messages: []Outgoing{toSelf(a.actor, "You stop putting things on.", model.CategoryInternalAction)}}
}

func (a *WearAction) Perform(w *World) Result {
	itemName := Name(w.Store, a.item)

	if ok, reason := model.CanWear(w.Store, a.actor, a.item); !ok {
		return Result{Complete: true, Success: false, Messages: []Outgoing{toSelf(a.actor, capitalize(reason)+".", model.CategoryInternalMisc)}}
	}
	if err := model.Wear(w.Store, a.actor, a.item); err != nil {
		return Result{Complete: true, Success: false, Messages: []Outgoing{toSelf(a.actor, fmt.Sprintf("You can't wear %s.", itemName), model.CategoryInternalMisc)}}
	}

	room := CurrentRoom(w.Store, a.actor)
	var messages []Outgoing
	messages = append(messages, toSelfFmt(a.actor, fmtWearSelf, message.Tokens{"item": message.EntityToken(a.item)}, model.CategoryInternalAction))
	messages = append(messages, toRoom(w, room, a.actor, fmtWearRoom, message.Tokens{
		"actor": message.EntityToken(a.actor),
		"item":  message.EntityToken(a.item),
	}, model.CategorySurroundingsAction)...)

	return Result{Complete: true, ShouldTick: true, Success: true, Messages: messages}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

type wearParser struct{}

func (wearParser) Parse(w *World, entity world.EntityID, in parser.Input) (any, error) {
	rest := in.Rest
	switch {
	case in.Verb == "wear":
	case in.Verb == "put" && strings.HasPrefix(rest, "on "):
		rest = strings.TrimPrefix(rest, "on ")
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
	if _, ok := world.Get[model.Wearable](w.Store, target); !ok {
		return nil, &parser.Error{Kind: parser.Other, Detail: fmt.Sprintf("You can't wear %s.", Name(w.Store, target))}
	}
	return NewWearAction(entity, target), nil
}

func (wearParser) HelpFormats(w *World, entity, observer world.EntityID) []string {
	return []string{"wear <>"}
}

// WearParser is the standard parser for wear/put on.
var WearParser parser.Parser[*World] = wearParser{}
