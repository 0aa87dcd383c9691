package action

import (
	"strings"

	"github.com/udisondev/la2go/internal/message"
	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/notify"
	"github.com/udisondev/la2go/internal/parser"
	"github.com/udisondev/la2go/internal/world"
)

// LookEnd is fired after a look completes.
type LookEnd struct {
	Actor, Target world.EntityID
}

var fmtLookRoom = message.MustParse("${target.name}\n${description}")
var fmtLookEntity = message.MustParse("${target.name}: ${description}")

// LookAction renders the target's description to the actor: the room
// itself (no explicit target), or a named entity. A move and a respawn
// queue one as their follow-up; a wait does not.
type LookAction struct {
	actor  world.EntityID
	target world.EntityID
}

// NewLookAction builds a look at the actor's current room.
func NewLookAction(actor world.EntityID) *LookAction {
	return &LookAction{actor: actor, target: world.Invalid}
}

// NewLookAtAction builds a look at a specific target entity.
func NewLookAtAction(actor, target world.EntityID) *LookAction {
	return &LookAction{actor: actor, target: target}
}

func (a *LookAction) Actor() world.EntityID { return a.actor }
func (a *LookAction) Tags() []Tag           { return nil }
func (a *LookAction) MayRequireTick() bool  { return false }
func (a *LookAction) SendBefore(w *World)   {}
func (a *LookAction) SendVerify(w *World) Verdict { return Verdict{Valid: true} }
func (a *LookAction) SendAfterPerform(w *World) {
	notifyDispatch(w, notify.AfterPerform, LookEnd{Actor: a.actor, Target: a.target})
}
func (a *LookAction) SendEnd(w *World) {
	notifyDispatch(w, notify.End, LookEnd{Actor: a.actor, Target: a.target})
}
func (a *LookAction) Interrupt(w *World) InterruptResult { return InterruptResult{} }

func (a *LookAction) Perform(w *World) Result {
	target := a.target
	if target == world.Invalid {
		target = CurrentRoom(w.Store, a.actor)
	}
	if target == world.Invalid {
		return Result{Complete: true, Success: false, Messages: []Outgoing{toSelf(a.actor, "You don't see anything.", model.CategoryInternalMisc)}}
	}

	desc, _ := world.Get[model.Description](w.Store, target)
	var b strings.Builder
	b.WriteString(desc.Long)

	if room, ok := world.Get[model.Room](w.Store, target); ok {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(room.Description)
		b.WriteString(a.listContents(w, target))
	}

	text := b.String()
	if text == "" {
		text = "You see nothing remarkable."
	}

	msg := toSelfFmt(a.actor, fmtLookEntity, message.Tokens{
		"target":      message.EntityToken(target),
		"description": message.StringToken(text),
	}, model.CategoryInternalMisc)

	return Result{Complete: true, Success: true, Messages: []Outgoing{msg}}
}

// listContents appends every visible occupant and item directly present
// in room, excluding the looker.
func (a *LookAction) listContents(w *World, room world.EntityID) string {
	c, ok := world.Get[model.Container](w.Store, room)
	if !ok {
		return ""
	}
	var names []string
	for _, e := range c.Contents {
		if e == a.actor {
			continue
		}
		if !model.IsVisibleTo(w.Store, e, a.actor) {
			continue
		}
		names = append(names, Name(w.Store, e))
	}
	if len(names) == 0 {
		return ""
	}
	return "\nAlso here: " + strings.Join(names, ", ")
}

type lookParser struct{}

func (lookParser) Parse(w *World, entity world.EntityID, in parser.Input) (any, error) {
	if in.Verb != "look" && in.Verb != "examine" {
		return nil, &parser.Error{Kind: parser.UnknownCommand}
	}
	target := strings.TrimSpace(strings.TrimPrefix(in.Rest, "at "))
	if target == "" {
		return NewLookAction(entity), nil
	}

	room := CurrentRoom(w.Store, entity)
	candidates := roomAndInventoryCandidates(w, entity, room)
	resolved, err := parser.ResolveTarget(w.Store, entity, target, room, candidates)
	if err != nil {
		return nil, err
	}
	return NewLookAtAction(entity, resolved), nil
}

func (lookParser) HelpFormats(w *World, entity, observer world.EntityID) []string {
	return []string{"look <target>", "examine <target>"}
}

// LookParser is the standard parser for look/examine.
var LookParser parser.Parser[*World] = lookParser{}

// roomAndInventoryCandidates is every entity visible to entity from its
// current room, plus entity's own worn/equipped/inventory items — the
// addressable universe most target-taking parsers resolve against.
func roomAndInventoryCandidates(w *World, entity, room world.EntityID) []world.EntityID {
	var out []world.EntityID
	if c, ok := world.Get[model.Container](w.Store, room); ok {
		out = append(out, c.Contents...)
	}
	if c, ok := world.Get[model.Container](w.Store, entity); ok {
		out = append(out, c.Contents...)
	}
	if worn, ok := world.Get[model.WornItems](w.Store, entity); ok {
		for _, stack := range worn.ByPart {
			out = append(out, stack...)
		}
	}
	if eq, ok := world.Get[model.EquippedItems](w.Store, entity); ok {
		out = append(out, eq.Items...)
	}
	return out
}
