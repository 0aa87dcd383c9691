package action

import (
	"github.com/udisondev/la2go/internal/message"
	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/notify"
	"github.com/udisondev/la2go/internal/parser"
	"github.com/udisondev/la2go/internal/world"
)

// wakeThreshold is the Energy fraction above which a sleeping entity has
// a chance to wake each tick.
const wakeThreshold = 0.8

// wakeChancePerTick is rolled once per tick once energy is above
// wakeThreshold.
const wakeChancePerTick = 0.01

// SleepEnd is dispatched after sleep completes or is abandoned.
type SleepEnd struct {
	Actor world.EntityID
}

var fmtFallAsleep = message.MustParse("You close your eyes and drift off to sleep.")
var fmtWakeUp = message.MustParse("You open your eyes.")
var fmtWokenWithStart = message.MustParse("You wake with a start.")

// SleepAction puts the actor to sleep. Each tick, once their energy is at
// or above wakeThreshold, they have a wakeChancePerTick chance of waking.
// Sleeping does not itself restore energy, so an actor below the
// threshold sleeps until interrupted.
type SleepAction struct {
	actor       world.EntityID
	ticksAsleep int
}

// NewSleepAction builds a sleep for actor.
func NewSleepAction(actor world.EntityID) *SleepAction {
	return &SleepAction{actor: actor}
}

func (a *SleepAction) Actor() world.EntityID { return a.actor }
func (a *SleepAction) Tags() []Tag           { return nil }
func (a *SleepAction) MayRequireTick() bool  { return true }
func (a *SleepAction) SendBefore(w *World)   {}
func (a *SleepAction) SendVerify(w *World) Verdict {
	return Verdict{Valid: true}
}
func (a *SleepAction) SendAfterPerform(w *World) {
	notifyDispatch(w, notify.AfterPerform, SleepEnd{Actor: a.actor})
}
func (a *SleepAction) SendEnd(w *World) {
	notifyDispatch(w, notify.End, SleepEnd{Actor: a.actor})
}

func (a *SleepAction) Interrupt(w *World) InterruptResult {
	world.Attach(w.Store, a.actor, model.SleepState{Asleep: false})
	return InterruptResult{Messages: []Outgoing{toSelfFmt(a.actor, fmtWokenWithStart, nil, model.CategoryInternalMisc)}}
}

func (a *SleepAction) Perform(w *World) Result {
	var messages []Outgoing

	if a.ticksAsleep == 0 {
		world.Attach(w.Store, a.actor, model.SleepState{Asleep: true})
		messages = append(messages, toSelfFmt(a.actor, fmtFallAsleep, nil, model.CategoryInternalAction))
	}
	a.ticksAsleep++

	vitals, ok := world.Get[model.Vitals](w.Store, a.actor)
	if !ok {
		return Result{Complete: true, ShouldTick: true, Success: true, Messages: messages}
	}
	energy := vitals.Values[model.Energy]
	fraction := 0.0
	if energy.Max > 0 {
		fraction = energy.Current / energy.Max
	}

	if fraction >= wakeThreshold && w.Uniform() <= wakeChancePerTick {
		world.Attach(w.Store, a.actor, model.SleepState{Asleep: false})
		messages = append(messages, toSelfFmt(a.actor, fmtWakeUp, nil, model.CategoryInternalAction))
		return Result{Complete: true, ShouldTick: true, Success: true, Messages: messages}
	}

	return Result{Complete: false, ShouldTick: true, Messages: messages}
}

type sleepParser struct{}

func (sleepParser) Parse(w *World, entity world.EntityID, in parser.Input) (any, error) {
	if in.Verb != "sleep" || in.Rest != "" {
		return nil, &parser.Error{Kind: parser.UnknownCommand}
	}
	return NewSleepAction(entity), nil
}

func (sleepParser) HelpFormats(w *World, entity, observer world.EntityID) []string {
	return []string{"sleep"}
}

// SleepParser is the standard parser for sleep.
var SleepParser parser.Parser[*World] = sleepParser{}
