package action

import (
	"regexp"
	"strconv"

	"github.com/udisondev/la2go/internal/message"
	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/notify"
	"github.com/udisondev/la2go/internal/parser"
	"github.com/udisondev/la2go/internal/world"
)

// WaitEnd is dispatched after a wait completes or is abandoned.
type WaitEnd struct {
	Actor world.EntityID
}

var fmtWaitDone = message.MustParse("You finish waiting.")

// WaitAction passes a fixed number of ticks doing nothing; "wait N
// minutes" is N times the whole ticks per minute (60 divided by the tick
// quantum, rounded down, at least 1).
type WaitAction struct {
	actor       world.EntityID
	totalTicks  int
	waitedTicks int
}

// NewWaitAction builds a wait of totalTicks ticks (minimum 1) for actor.
func NewWaitAction(actor world.EntityID, totalTicks int) *WaitAction {
	if totalTicks < 1 {
		totalTicks = 1
	}
	return &WaitAction{actor: actor, totalTicks: totalTicks}
}

func (a *WaitAction) Actor() world.EntityID { return a.actor }
func (a *WaitAction) Tags() []Tag           { return nil }
func (a *WaitAction) MayRequireTick() bool  { return true }
func (a *WaitAction) SendBefore(w *World)   {}
func (a *WaitAction) SendVerify(w *World) Verdict {
	return Verdict{Valid: true}
}
func (a *WaitAction) SendAfterPerform(w *World) {
	notifyDispatch(w, notify.AfterPerform, WaitEnd{Actor: a.actor})
}
func (a *WaitAction) SendEnd(w *World) {
	notifyDispatch(w, notify.End, WaitEnd{Actor: a.actor})
}
func (a *WaitAction) Interrupt(w *World) InterruptResult {
	return InterruptResult{Messages: []Outgoing{toSelf(a.actor, "You stop waiting.", model.CategoryInternalAction)}}
}

func (a *WaitAction) Perform(w *World) Result {
	a.waitedTicks++
	if a.waitedTicks < a.totalTicks {
		return Result{Complete: false, ShouldTick: true}
	}
	msg := toSelfFmt(a.actor, fmtWaitDone, nil, model.CategoryInternalAction)
	return Result{Complete: true, ShouldTick: true, Success: true, Messages: []Outgoing{msg}}
}

var waitPattern = regexp.MustCompile(`^wait(?: (?P<time>.+))?$`)
var minutesPattern = regexp.MustCompile(`^(\d+) ?(m|min|mins|minute|minutes)$`)
var hoursPattern = regexp.MustCompile(`^(\d+) ?(h|hr|hrs|hour|hours)$`)
var daysPattern = regexp.MustCompile(`^(\d+) ?(d|day|days)$`)

type waitParser struct{}

func (waitParser) Parse(w *World, entity world.EntityID, in parser.Input) (any, error) {
	full := in.Verb
	if in.Rest != "" {
		full = in.Verb + " " + in.Rest
	}
	m := waitPattern.FindStringSubmatch(full)
	if m == nil {
		return nil, &parser.Error{Kind: parser.UnknownCommand}
	}
	if m[1] == "" {
		return NewWaitAction(entity, 1), nil
	}

	ticksPerMinute := 60 / w.Clock.Quantum()
	if ticksPerMinute < 1 {
		ticksPerMinute = 1
	}

	var amountStr string
	var ticksPerUnit int
	switch {
	case minutesPattern.MatchString(m[1]):
		amountStr, ticksPerUnit = minutesPattern.FindStringSubmatch(m[1])[1], ticksPerMinute
	case hoursPattern.MatchString(m[1]):
		amountStr, ticksPerUnit = hoursPattern.FindStringSubmatch(m[1])[1], ticksPerMinute*60
	case daysPattern.MatchString(m[1]):
		amountStr, ticksPerUnit = daysPattern.FindStringSubmatch(m[1])[1], ticksPerMinute*60*24
	default:
		return nil, &parser.Error{Kind: parser.Other, Detail: "You can only wait for some amount of minutes, hours, or days."}
	}

	amount, err := strconv.Atoi(amountStr)
	if err != nil || amount <= 0 {
		return nil, &parser.Error{Kind: parser.Other, Detail: "That is an invalid amount of time to wait."}
	}

	return NewWaitAction(entity, amount*ticksPerUnit), nil
}

func (waitParser) HelpFormats(w *World, entity, observer world.EntityID) []string {
	return []string{"wait <>"}
}

// WaitParser is the standard parser for wait.
var WaitParser parser.Parser[*World] = waitParser{}
