package action

import (
	"github.com/udisondev/la2go/internal/message"
	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/notify"
	"github.com/udisondev/la2go/internal/parser"
	"github.com/udisondev/la2go/internal/world"
)

// SayEnd is dispatched after a say completes.
type SayEnd struct {
	Actor world.EntityID
	Text  string
}

var fmtSaySelf = message.MustParse("You say, \"${text}\"")
var fmtSayRoom = message.MustParse("${actor.name} says, \"${text}\"")

// SayAction makes the actor speak text to their room. Like stop and the
// informational commands it never requires a tick, matching a MUD's
// expectation that chatting doesn't cost game time.
type SayAction struct {
	actor world.EntityID
	text  string
}

// NewSayAction builds a say of text by actor.
func NewSayAction(actor world.EntityID, text string) *SayAction {
	return &SayAction{actor: actor, text: text}
}

func (a *SayAction) Actor() world.EntityID { return a.actor }
func (a *SayAction) Tags() []Tag           { return nil }
func (a *SayAction) MayRequireTick() bool  { return false }
func (a *SayAction) SendBefore(w *World)   {}
func (a *SayAction) SendVerify(w *World) Verdict {
	return Verdict{Valid: true}
}
func (a *SayAction) SendAfterPerform(w *World) {
	notifyDispatch(w, notify.AfterPerform, SayEnd{Actor: a.actor, Text: a.text})
}
func (a *SayAction) SendEnd(w *World) {
	notifyDispatch(w, notify.End, SayEnd{Actor: a.actor, Text: a.text})
}
func (a *SayAction) Interrupt(w *World) InterruptResult { return InterruptResult{} }

func (a *SayAction) Perform(w *World) Result {
	room := CurrentRoom(w.Store, a.actor)
	var messages []Outgoing
	messages = append(messages, toSelfFmt(a.actor, fmtSaySelf, message.Tokens{"text": message.StringToken(a.text)}, model.CategoryInternalSpeech))
	messages = append(messages, toRoom(w, room, a.actor, fmtSayRoom, message.Tokens{
		"actor": message.EntityToken(a.actor),
		"text":  message.StringToken(a.text),
	}, model.CategorySurroundingsSpeech)...)
	return Result{Complete: true, ShouldTick: false, Success: true, Messages: messages}
}

type sayParser struct{}

func (sayParser) Parse(w *World, entity world.EntityID, in parser.Input) (any, error) {
	if in.Verb != "say" {
		return nil, &parser.Error{Kind: parser.UnknownCommand}
	}
	if in.Rest == "" {
		return nil, &parser.Error{Kind: parser.MissingTarget}
	}
	return NewSayAction(entity, in.Rest), nil
}

func (sayParser) HelpFormats(w *World, entity, observer world.EntityID) []string {
	return []string{"say <>"}
}

// SayParser is the standard parser for say (and the `"` shorthand,
// handled upstream by parser.Tokenize).
var SayParser parser.Parser[*World] = sayParser{}
