package action

import (
	"github.com/udisondev/la2go/internal/message"
	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/notify"
	"github.com/udisondev/la2go/internal/parser"
	"github.com/udisondev/la2go/internal/world"
)

var fmtAppears = message.MustParse("${entity.name} appears.")

// RespawnEnd is dispatched after a respawn completes or is abandoned.
type RespawnEnd struct {
	Actor world.EntityID
}

// RespawnAction brings a dead entity back to life at its Respawner's
// spawn room, restoring every vital to full and looking around so the
// player sees where they ended up.
type RespawnAction struct {
	actor world.EntityID
}

// NewRespawnAction builds a respawn for actor.
func NewRespawnAction(actor world.EntityID) *RespawnAction {
	return &RespawnAction{actor: actor}
}

func (a *RespawnAction) Actor() world.EntityID { return a.actor }
func (a *RespawnAction) Tags() []Tag           { return nil }
func (a *RespawnAction) MayRequireTick() bool  { return true }
func (a *RespawnAction) SendBefore(w *World)   {}
func (a *RespawnAction) SendVerify(w *World) Verdict {
	return Verdict{Valid: true}
}
func (a *RespawnAction) SendAfterPerform(w *World) {
	notifyDispatch(w, notify.AfterPerform, RespawnEnd{Actor: a.actor})
	if world.Has[model.Respawner](w.Store, a.actor) {
		w.EnqueueFirst(a.actor, NewLookAction(a.actor))
	}
}
func (a *RespawnAction) SendEnd(w *World) {
	notifyDispatch(w, notify.End, RespawnEnd{Actor: a.actor})
}
func (a *RespawnAction) Interrupt(w *World) InterruptResult {
	return InterruptResult{Messages: []Outgoing{toSelf(a.actor, "You stop respawning.", model.CategoryInternalAction)}}
}

func (a *RespawnAction) Perform(w *World) Result {
	respawner, ok := world.Get[model.Respawner](w.Store, a.actor)
	if !ok {
		return Result{Complete: true, Success: false, Messages: []Outgoing{
			toSelf(a.actor, "You can't respawn.", model.CategoryInternalMisc),
		}}
	}

	if vitals, ok := world.Get[model.Vitals](w.Store, a.actor); ok {
		for kind, v := range vitals.Values {
			model.ApplyVital(w.Store, a.actor, kind, model.VitalSet, v.Max)
		}
	}

	room := respawner.SpawnRoom
	var messages []Outgoing
	if room != world.Invalid {
		_ = model.MoveToContainer(w.Store, a.actor, room)
		tokens := message.Tokens{"entity": message.EntityToken(a.actor)}
		messages = append(messages, toRoom(w, room, a.actor, fmtAppears, tokens, model.CategorySurroundingsMovement)...)
	}
	messages = append(messages, toSelf(a.actor, "You start to feel more corporeal...", model.CategoryInternalAction))

	return Result{Complete: true, ShouldTick: true, Success: true, Messages: messages}
}

type respawnParser struct{}

func (respawnParser) Parse(w *World, entity world.EntityID, in parser.Input) (any, error) {
	if (in.Verb != "respawn" && in.Verb != "live") || in.Rest != "" {
		return nil, &parser.Error{Kind: parser.UnknownCommand}
	}
	return NewRespawnAction(entity), nil
}

func (respawnParser) HelpFormats(w *World, entity, observer world.EntityID) []string {
	if _, ok := world.Get[model.Respawner](w.Store, entity); !ok {
		return nil
	}
	return []string{"respawn"}
}

// RespawnParser is the standard parser for respawn/live.
var RespawnParser parser.Parser[*World] = respawnParser{}
