package action

import (
	"strings"

	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/notify"
	"github.com/udisondev/la2go/internal/parser"
	"github.com/udisondev/la2go/internal/world"
)

// PlayersEnd is fired after a players listing completes.
type PlayersEnd struct {
	Actor world.EntityID
}

// PlayersAction lists every connected player. Never requires a tick.
type PlayersAction struct {
	actor world.EntityID
}

// NewPlayersAction builds a players listing for actor.
func NewPlayersAction(actor world.EntityID) *PlayersAction {
	return &PlayersAction{actor: actor}
}

func (a *PlayersAction) Actor() world.EntityID { return a.actor }
func (a *PlayersAction) Tags() []Tag           { return nil }
func (a *PlayersAction) MayRequireTick() bool  { return false }
func (a *PlayersAction) SendBefore(w *World)   {}
func (a *PlayersAction) SendVerify(w *World) Verdict {
	return Verdict{Valid: true}
}
func (a *PlayersAction) SendAfterPerform(w *World) {
	notifyDispatch(w, notify.AfterPerform, PlayersEnd{Actor: a.actor})
}
func (a *PlayersAction) SendEnd(w *World) {
	notifyDispatch(w, notify.End, PlayersEnd{Actor: a.actor})
}
func (a *PlayersAction) Interrupt(w *World) InterruptResult { return InterruptResult{} }

func (a *PlayersAction) Perform(w *World) Result {
	var names []string
	for _, e := range world.Query[model.Player](w.Store) {
		names = append(names, Name(w.Store, e))
	}
	if len(names) == 0 {
		return Result{Complete: true, Success: true, Messages: []Outgoing{
			toSelf(a.actor, "No one is online.", model.CategoryInternalMisc),
		}}
	}
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j-1] > names[j]; j-- {
			names[j-1], names[j] = names[j], names[j-1]
		}
	}

	text := "Players online:\n" + strings.Join(names, "\n")
	return Result{Complete: true, Success: true, Messages: []Outgoing{
		toSelf(a.actor, text, model.CategoryInternalMisc),
	}}
}

type playersParser struct{}

func (playersParser) Parse(w *World, entity world.EntityID, in parser.Input) (any, error) {
	if (in.Verb != "pl" && in.Verb != "players") || in.Rest != "" {
		return nil, &parser.Error{Kind: parser.UnknownCommand}
	}
	return NewPlayersAction(entity), nil
}

func (playersParser) HelpFormats(w *World, entity, observer world.EntityID) []string {
	return []string{"players"}
}

// PlayersParser is the standard parser for pl/players.
var PlayersParser parser.Parser[*World] = playersParser{}
