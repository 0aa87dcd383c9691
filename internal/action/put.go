package action

import (
	"fmt"
	"regexp"

	"github.com/udisondev/la2go/internal/message"
	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/notify"
	"github.com/udisondev/la2go/internal/parser"
	"github.com/udisondev/la2go/internal/world"
)

// PutBefore is dispatched before a put/get/drop is verified, letting
// auto-remove handlers queue a RemoveAction ahead of it when item is
// currently worn.
type PutBefore struct {
	Actor, Item, Source, Destination world.EntityID
}

// PutVerify is the payload Verify handlers vote on before an item moves
// between containers.
type PutVerify struct {
	Actor, Item, Destination world.EntityID
}

// PutEnd is dispatched after a put/get/drop completes or is abandoned.
type PutEnd struct {
	Actor, Item, Destination world.EntityID
}

var fmtPickUp = message.MustParse("${entity.name} picks up ${item.name}.")
var fmtGetFrom = message.MustParse("${entity.name} gets ${item.name} from ${source.name}.")
var fmtDrop = message.MustParse("${entity.name} drops ${item.name}.")
var fmtPutInto = message.MustParse("${entity.name} puts ${item.name} into ${destination.name}.")

// PutAction moves item from wherever it is into destination. get/drop/put
// are all this same action with destination/source resolved differently
// by the parser, matching the common core they share (move into a
// container, render the message per which endpoint is the actor).
type PutAction struct {
	actor       world.EntityID
	item        world.EntityID
	source      world.EntityID
	destination world.EntityID
}

// NewPutAction builds a move of item from source into destination.
func NewPutAction(actor, item, source, destination world.EntityID) *PutAction {
	return &PutAction{actor: actor, item: item, source: source, destination: destination}
}

func (a *PutAction) Actor() world.EntityID { return a.actor }
func (a *PutAction) Tags() []Tag           { return nil }
func (a *PutAction) MayRequireTick() bool  { return true }
func (a *PutAction) SendBefore(w *World) {
	notifyDispatch(w, notify.Before, PutBefore{Actor: a.actor, Item: a.item, Source: a.source, Destination: a.destination})
}
func (a *PutAction) SendVerify(w *World) Verdict {
	return translateVerdict(notifyVerify(w, notify.Verify, PutVerify{Actor: a.actor, Item: a.item, Destination: a.destination}))
}
func (a *PutAction) SendAfterPerform(w *World) {
	notifyDispatch(w, notify.AfterPerform, PutEnd{Actor: a.actor, Item: a.item, Destination: a.destination})
}
func (a *PutAction) SendEnd(w *World) {
	notifyDispatch(w, notify.End, PutEnd{Actor: a.actor, Item: a.item, Destination: a.destination})
}
func (a *PutAction) Interrupt(w *World) InterruptResult {
	return InterruptResult{Messages: []Outgoing{toSelf(a.actor, "You stop moving items.", model.CategoryInternalAction)}}
}

func (a *PutAction) Perform(w *World) Result {
	room := CurrentRoom(w.Store, a.actor)

	var tmpl *message.Format
	tokens := message.Tokens{
		"entity":      message.EntityToken(a.actor),
		"item":        message.EntityToken(a.item),
		"source":      message.EntityToken(a.source),
		"destination": message.EntityToken(a.destination),
	}
	switch {
	case a.destination == a.actor && a.source == room:
		tmpl = fmtPickUp
	case a.destination == a.actor:
		tmpl = fmtGetFrom
	case a.destination == room:
		tmpl = fmtDrop
	default:
		tmpl = fmtPutInto
	}

	var messages []Outgoing
	messages = append(messages, toSelfFmt(a.actor, tmpl, tokens, model.CategoryInternalAction))
	messages = append(messages, toRoom(w, room, a.actor, tmpl, tokens, model.CategorySurroundingsAction)...)

	if err := model.MoveToContainer(w.Store, a.item, a.destination); err != nil {
		return Result{Complete: true, Success: false, Messages: []Outgoing{toSelf(a.actor, fmt.Sprintf("You can't put %s there.", Name(w.Store, a.item)), model.CategoryInternalMisc)}}
	}

	return Result{Complete: true, ShouldTick: true, Success: true, Messages: messages}
}

var getFromPattern = regexp.MustCompile(`^(get|take) (the )?(?P<item>.+) (from|out of) (the )?(?P<container>.+)$`)
var getPattern = regexp.MustCompile(`^(get|take|pick up) (the )?(?P<item>.+)$`)
var putPattern = regexp.MustCompile(`^put (the )?(?P<item>.+) (in|into) (the )?(?P<container>.+)$`)
var dropPattern = regexp.MustCompile(`^drop (the )?(?P<item>.+)$`)

type putParser struct{}

func (putParser) Parse(w *World, entity world.EntityID, in parser.Input) (any, error) {
	full := in.Verb
	if in.Rest != "" {
		full = in.Verb + " " + in.Rest
	}
	room := CurrentRoom(w.Store, entity)
	candidates := roomAndInventoryCandidates(w, entity, room)

	switch {
	case getFromPattern.MatchString(full):
		m := getFromPattern.FindStringSubmatch(full)
		itemName, containerName := m[3], m[6]
		container, err := parser.ResolveTarget(w.Store, entity, containerName, room, candidates)
		if err != nil {
			return nil, err
		}
		item, err := parser.ResolveTarget(w.Store, entity, itemName, room, containerContents(w, container))
		if err != nil {
			return nil, err
		}
		return NewPutAction(entity, item, container, entity), nil

	case getPattern.MatchString(full):
		m := getPattern.FindStringSubmatch(full)
		item, err := parser.ResolveTarget(w.Store, entity, m[3], room, candidates)
		if err != nil {
			return nil, err
		}
		source := room
		if loc, ok := model.GetLocation(w.Store, item); ok {
			source = loc.Owner
		}
		return NewPutAction(entity, item, source, entity), nil

	case putPattern.MatchString(full):
		m := putPattern.FindStringSubmatch(full)
		itemName, containerName := m[2], m[5]
		item, err := parser.ResolveTarget(w.Store, entity, itemName, room, candidates)
		if err != nil {
			return nil, err
		}
		container, err := parser.ResolveTarget(w.Store, entity, containerName, room, candidates)
		if err != nil {
			return nil, err
		}
		source := room
		if loc, ok := model.GetLocation(w.Store, item); ok {
			source = loc.Owner
		}
		return NewPutAction(entity, item, source, container), nil

	case dropPattern.MatchString(full):
		m := dropPattern.FindStringSubmatch(full)
		item, err := parser.ResolveTarget(w.Store, entity, m[2], room, candidates)
		if err != nil {
			return nil, err
		}
		return NewPutAction(entity, item, entity, room), nil

	default:
		return nil, &parser.Error{Kind: parser.UnknownCommand}
	}
}

func (putParser) HelpFormats(w *World, entity, observer world.EntityID) []string {
	return []string{"get <>", "get <> from <>", "put <> in <>", "drop <>"}
}

// PutParser is the standard parser for get/take/pick up/put/drop.
var PutParser parser.Parser[*World] = putParser{}

func containerContents(w *World, container world.EntityID) []world.EntityID {
	if c, ok := world.Get[model.Container](w.Store, container); ok {
		return c.Contents
	}
	return nil
}
