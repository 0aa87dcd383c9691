package action

import (
	"strings"

	"github.com/udisondev/la2go/internal/check"
	"github.com/udisondev/la2go/internal/combat"
	"github.com/udisondev/la2go/internal/message"
	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/notify"
	"github.com/udisondev/la2go/internal/parser"
	"github.com/udisondev/la2go/internal/world"
)

// FindConnection looks through room's Container contents for an entity
// carrying a Connection attribute in the given direction — an exit is
// modeled as its own entity (the door, or a bare connection with no
// door) present in the room, since a room is also a Container entity for
// what is present.
func FindConnection(s *world.Store, room world.EntityID, dir model.Direction) (world.EntityID, model.Connection, bool) {
	c, ok := world.Get[model.Container](s, room)
	if !ok {
		return world.Invalid, model.Connection{}, false
	}
	for _, e := range c.Contents {
		if conn, ok := world.Get[model.Connection](s, e); ok && conn.Direction == dir {
			return e, conn, true
		}
	}
	return world.Invalid, model.Connection{}, false
}

// MoveBefore is dispatched before a move is verified, letting auto-open
// and auto-unlock handlers queue their own prequel actions ahead of the
// move.
type MoveBefore struct {
	Actor      world.EntityID
	Connection world.EntityID
	Direction  model.Direction
}

// MoveVerify is the payload Verify handlers vote on.
type MoveVerify struct {
	Actor      world.EntityID
	Connection world.EntityID
}

// MoveEnd is dispatched after a move completes or is abandoned.
type MoveEnd struct {
	Actor world.EntityID
}

var fmtWalkSelf = message.MustParse("You walk ${direction}.")
var fmtWalkAway = message.MustParse("${actor.name} walks ${direction}.")
var fmtWalkIn = message.MustParse("${actor.name} walks in from the ${from}.")
var fmtEscapeFailed = message.MustParse("You try to escape, but ${opponent.name} won't let you!")

// MoveAction moves the actor through a connection in a given direction.
type MoveAction struct {
	actor     world.EntityID
	direction model.Direction
}

// NewMoveAction builds a move in the given direction.
func NewMoveAction(actor world.EntityID, dir model.Direction) *MoveAction {
	return &MoveAction{actor: actor, direction: dir}
}

func (a *MoveAction) Actor() world.EntityID { return a.actor }
func (a *MoveAction) Tags() []Tag           { return nil }
func (a *MoveAction) MayRequireTick() bool  { return true }

func (a *MoveAction) connection(w *World) (world.EntityID, bool) {
	room := CurrentRoom(w.Store, a.actor)
	conn, _, ok := FindConnection(w.Store, room, a.direction)
	return conn, ok
}

func (a *MoveAction) SendBefore(w *World) {
	conn, ok := a.connection(w)
	if !ok {
		return
	}
	notifyDispatch(w, notify.Before, MoveBefore{Actor: a.actor, Connection: conn, Direction: a.direction})
}

func (a *MoveAction) SendVerify(w *World) Verdict {
	conn, ok := a.connection(w)
	if !ok {
		return Verdict{Valid: false, Messages: []Outgoing{toSelf(a.actor, "There's nothing in that direction.", model.CategoryInternalMisc)}}
	}
	return translateVerdict(notifyVerify(w, notify.Verify, MoveVerify{Actor: a.actor, Connection: conn}))
}

func (a *MoveAction) SendAfterPerform(w *World) {
	notifyDispatch(w, notify.AfterPerform, MoveEnd{Actor: a.actor})
}

func (a *MoveAction) SendEnd(w *World) {
	notifyDispatch(w, notify.End, MoveEnd{Actor: a.actor})
}

func (a *MoveAction) Interrupt(w *World) InterruptResult {
	return InterruptResult{Messages: []Outgoing{toSelf(a.actor, "You stop moving.", model.CategoryInternalAction)}}
}

func (a *MoveAction) Perform(w *World) Result {
	fromRoom := CurrentRoom(w.Store, a.actor)
	_, conn, ok := FindConnection(w.Store, fromRoom, a.direction)
	if !ok {
		return Result{Complete: true, Success: false, Messages: []Outgoing{toSelf(a.actor, "There's nothing in that direction.", model.CategoryInternalMisc)}}
	}
	toRoomID := conn.Destination

	var messages []Outgoing

	if model.InCombat(w.Store, a.actor) {
		escaped, msgs := a.tryEscapeCombat(w)
		messages = append(messages, msgs...)
		if !escaped {
			return Result{Complete: true, ShouldTick: true, Success: false, Messages: messages}
		}
	}

	if err := model.MoveToContainer(w.Store, a.actor, toRoomID); err != nil {
		return Result{Complete: true, Success: false, Messages: []Outgoing{toSelf(a.actor, "You can't go that way.", model.CategoryInternalMisc)}}
	}

	dirStr := strings.ToLower(a.direction.String())
	messages = append(messages, toSelfFmt(a.actor, fmtWalkSelf, message.Tokens{"direction": message.StringToken(dirStr)}, model.CategoryInternalAction))
	messages = append(messages, toRoom(w, fromRoom, a.actor, fmtWalkAway, message.Tokens{
		"actor":     message.EntityToken(a.actor),
		"direction": message.StringToken(dirStr),
	}, model.CategorySurroundingsMovement)...)
	messages = append(messages, toRoom(w, toRoomID, a.actor, fmtWalkIn, message.Tokens{
		"actor": message.EntityToken(a.actor),
		"from":  message.StringToken(strings.ToLower(a.direction.Opposite().String())),
	}, model.CategorySurroundingsMovement)...)

	post := func(w *World) {
		w.Enqueue(a.actor, NewLookAction(a.actor))
	}

	return Result{Complete: true, ShouldTick: true, Success: true, Messages: messages, PostEffects: []PostEffect{post}}
}

// tryEscapeCombat runs an opposed Agility-vs-Agility check against every
// current opponent (the second participant wins ties); any single
// failure cancels the move. Success leaves all combat.
func (a *MoveAction) tryEscapeCombat(w *World) (bool, []Outgoing) {
	opponents := combat.EntitiesInCombatWith(w.Store, a.actor)
	actorStats, _ := world.Get[model.Stats](w.Store, a.actor)
	for opponent := range opponents {
		opponentStats, _ := world.Get[model.Stats](w.Store, opponent)
		firstWins, _, _ := check.Opposed(
			float64(actorStats.StatTotal(model.StatAgility)),
			float64(opponentStats.StatTotal(model.StatAgility)),
			w.Config.CheckStandardDeviation,
			check.Moderate,
			check.TieFavorsDefender,
			w.Uniform,
		)
		if !firstWins {
			return false, []Outgoing{toSelfFmt(a.actor, fmtEscapeFailed, message.Tokens{"opponent": message.EntityToken(opponent)}, model.CategoryInternalAction)}
		}
	}
	w.LeaveAllCombat(a.actor)
	return true, nil
}

// moveParser recognizes "go <direction>", "move <direction>", bare
// direction words, and short forms (n/s/e/w/...).
type moveParser struct{}

func (moveParser) Parse(w *World, entity world.EntityID, in parser.Input) (any, error) {
	rest := in.Rest
	switch in.Verb {
	case "go", "move":
		rest = strings.TrimSpace(in.Rest)
	case "north", "south", "east", "west", "northeast", "northwest", "southeast", "southwest", "up", "down",
		"n", "s", "e", "w", "ne", "nw", "se", "sw", "u", "d":
		rest = in.Verb
	default:
		return nil, &parser.Error{Kind: parser.UnknownCommand}
	}

	pd, ok := parser.ParseDirection(rest)
	if !ok {
		return nil, &parser.Error{Kind: parser.UnknownCommand}
	}
	return NewMoveAction(entity, model.Direction(pd)), nil
}

func (moveParser) HelpFormats(w *World, entity, observer world.EntityID) []string {
	return []string{"go <direction>"}
}

// MoveParser is the standard parser for the move action, registered once
// at world setup.
var MoveParser parser.Parser[*World] = moveParser{}
