package action

import (
	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/notify"
	"github.com/udisondev/la2go/internal/parser"
	"github.com/udisondev/la2go/internal/world"
)

// StopEnd is dispatched after a stop completes.
type StopEnd struct {
	Actor world.EntityID
}

// StopAction cancels everything the actor currently has queued. Unlike
// most actions it never costs a tick either way.
type StopAction struct {
	actor world.EntityID
}

// NewStopAction builds a stop for actor.
func NewStopAction(actor world.EntityID) *StopAction {
	return &StopAction{actor: actor}
}

func (a *StopAction) Actor() world.EntityID { return a.actor }
func (a *StopAction) Tags() []Tag           { return nil }
func (a *StopAction) MayRequireTick() bool  { return false }
func (a *StopAction) SendBefore(w *World)   {}
func (a *StopAction) SendVerify(w *World) Verdict {
	return Verdict{Valid: true}
}
func (a *StopAction) SendAfterPerform(w *World) {
	notifyDispatch(w, notify.AfterPerform, StopEnd{Actor: a.actor})
}
func (a *StopAction) SendEnd(w *World) {
	notifyDispatch(w, notify.End, StopEnd{Actor: a.actor})
}
func (a *StopAction) Interrupt(w *World) InterruptResult { return InterruptResult{} }

func (a *StopAction) Perform(w *World) Result {
	hadQueued := !w.QueueFor(a.actor).Empty()
	w.Interrupt(a.actor, func(Action) bool { return true })

	if !hadQueued {
		return Result{Complete: true, ShouldTick: false, Success: false, Messages: []Outgoing{
			toSelf(a.actor, "You aren't doing anything.", model.CategoryInternalMisc),
		}}
	}
	return Result{Complete: true, ShouldTick: false, Success: true, Messages: []Outgoing{
		toSelf(a.actor, "You stop what you were doing.", model.CategoryInternalMisc),
	}}
}

type stopParser struct{}

func (stopParser) Parse(w *World, entity world.EntityID, in parser.Input) (any, error) {
	if (in.Verb != "stop" && in.Verb != "cancel") || in.Rest != "" {
		return nil, &parser.Error{Kind: parser.UnknownCommand}
	}
	return NewStopAction(entity), nil
}

func (stopParser) HelpFormats(w *World, entity, observer world.EntityID) []string {
	return []string{"stop"}
}

// StopParser is the standard parser for stop/cancel.
var StopParser parser.Parser[*World] = stopParser{}
