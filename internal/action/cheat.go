package action

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/udisondev/la2go/internal/check"
	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/notify"
	"github.com/udisondev/la2go/internal/parser"
	"github.com/udisondev/la2go/internal/world"
)

var cheatPattern = regexp.MustCompile(`^%(?P<command>[^%]*)%(?: (?P<args>.*))?$`)

// CheatEnd is dispatched after a cheat completes.
type CheatEnd struct {
	Actor world.EntityID
}

// CheatAction lets an entity do something it wouldn't normally be
// allowed to, via %command% arg1 arg2 ... syntax — admin tooling, not a
// normal player verb. Never requires a tick.
type CheatAction struct {
	actor   world.EntityID
	command string
	args    []string
}

// NewCheatAction builds a cheat invocation for actor.
func NewCheatAction(actor world.EntityID, command string, args []string) *CheatAction {
	return &CheatAction{actor: actor, command: command, args: args}
}

func (a *CheatAction) Actor() world.EntityID { return a.actor }
func (a *CheatAction) Tags() []Tag           { return nil }
func (a *CheatAction) MayRequireTick() bool  { return false }
func (a *CheatAction) SendBefore(w *World)   {}
func (a *CheatAction) SendVerify(w *World) Verdict {
	return Verdict{Valid: true}
}
func (a *CheatAction) SendAfterPerform(w *World) {
	notifyDispatch(w, notify.AfterPerform, CheatEnd{Actor: a.actor})
}
func (a *CheatAction) SendEnd(w *World) {
	notifyDispatch(w, notify.End, CheatEnd{Actor: a.actor})
}
func (a *CheatAction) Interrupt(w *World) InterruptResult { return InterruptResult{} }

func (a *CheatAction) Perform(w *World) Result {
	switch a.command {
	case "give_xp":
		return a.giveXP(w)
	case "set_hp":
		return a.setHP(w)
	default:
		return Result{Complete: true, Success: false, Messages: []Outgoing{
			toSelf(a.actor, fmt.Sprintf("Unknown cheat command: %s", a.command), model.CategorySystem),
		}}
	}
}

func (a *CheatAction) giveXP(w *World) Result {
	if len(a.args) != 1 {
		return Result{Complete: true, Success: false, Messages: []Outgoing{
			toSelf(a.actor, "give_xp requires 1 number", model.CategorySystem),
		}}
	}
	amount, err := strconv.ParseFloat(a.args[0], 64)
	if err != nil {
		return Result{Complete: true, Success: false, Messages: []Outgoing{
			toSelf(a.actor, fmt.Sprintf("Error: %v", err), model.CategorySystem),
		}}
	}
	check.CreditXP(w.Store, a.actor, amount, w.Config)
	return Result{Complete: true, Success: true, Messages: []Outgoing{
		toSelf(a.actor, fmt.Sprintf("Awarded you %v XP.", amount), model.CategorySystem),
	}}
}

func (a *CheatAction) setHP(w *World) Result {
	var target world.EntityID
	var amountArg string

	switch len(a.args) {
	case 1:
		target = a.actor
		amountArg = a.args[0]
	case 2:
		room := CurrentRoom(w.Store, a.actor)
		candidates := roomAndInventoryCandidates(w, a.actor, room)
		resolved, err := parser.ResolveTarget(w.Store, a.actor, a.args[0], room, candidates)
		if err != nil {
			return Result{Complete: true, Success: false, Messages: []Outgoing{
				toSelf(a.actor, fmt.Sprintf("Invalid target name: %s", a.args[0]), model.CategorySystem),
			}}
		}
		target = resolved
		amountArg = a.args[1]
	default:
		return Result{Complete: true, Success: false, Messages: []Outgoing{
			toSelf(a.actor, "set_hp requires 1 number or 1 target name and 1 number", model.CategorySystem),
		}}
	}

	amount, err := strconv.ParseFloat(amountArg, 64)
	if err != nil {
		return Result{Complete: true, Success: false, Messages: []Outgoing{
			toSelf(a.actor, fmt.Sprintf("Error: %v", err), model.CategorySystem),
		}}
	}

	model.ApplyVital(w.Store, target, model.Health, model.VitalSet, amount)
	return Result{Complete: true, Success: true, Messages: []Outgoing{
		toSelf(a.actor, fmt.Sprintf("Set %s's HP to %v.", Name(w.Store, target), amount), model.CategorySystem),
	}}
}

type cheatParser struct{}

func (cheatParser) Parse(w *World, entity world.EntityID, in parser.Input) (any, error) {
	full := in.Verb
	if in.Rest != "" {
		full = in.Verb + " " + in.Rest
	}
	m := cheatPattern.FindStringSubmatch(full)
	if m == nil {
		return nil, &parser.Error{Kind: parser.UnknownCommand}
	}
	command := m[1]
	var args []string
	if m[2] != "" {
		args = strings.Split(m[2], " ")
	}
	return NewCheatAction(entity, command, args), nil
}

func (cheatParser) HelpFormats(w *World, entity, observer world.EntityID) []string {
	return []string{"%<>% <>"}
}

// CheatParser is the standard parser for %command% args.
var CheatParser parser.Parser[*World] = cheatParser{}
