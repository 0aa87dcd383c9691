package action

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/udisondev/la2go/internal/message"
	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/notify"
	"github.com/udisondev/la2go/internal/parser"
	"github.com/udisondev/la2go/internal/world"
)

// PourEnd is dispatched after a pour or fill completes or is abandoned.
type PourEnd struct {
	Actor, Source, Dest world.EntityID
}

// PourVerify is the payload Verify handlers vote on before a pour or fill.
// Amount is 0 for a fill (transfer as much as fits), which never rejects on
// capacity or supply.
type PourVerify struct {
	Actor, Source, Dest world.EntityID
	Amount              float64
}

var fmtPourSelf = message.MustParse("You pour ${amount}L from ${source.name} into ${dest.name}.")
var fmtPourRoom = message.MustParse("${actor.name} pours from ${source.name} into ${dest.name}.")

// PourAction transfers fluid from source into dest. A zero amount means
// "as much as fits" (fill).
type PourAction struct {
	actor  world.EntityID
	source world.EntityID
	dest   world.EntityID
	amount float64
}

// NewPourAction builds a pour of amount liters from source into dest.
func NewPourAction(actor, source, dest world.EntityID, amount float64) *PourAction {
	return &PourAction{actor: actor, source: source, dest: dest, amount: amount}
}

// NewFillAction builds a fill of dest from source, up to dest's capacity.
func NewFillAction(actor, source, dest world.EntityID) *PourAction {
	return &PourAction{actor: actor, source: source, dest: dest, amount: 0}
}

func (a *PourAction) Actor() world.EntityID { return a.actor }
func (a *PourAction) Tags() []Tag           { return nil }
func (a *PourAction) MayRequireTick() bool  { return true }
func (a *PourAction) SendBefore(w *World) {}
func (a *PourAction) SendVerify(w *World) Verdict {
	return translateVerdict(notifyVerify(w, notify.Verify, PourVerify{
		Actor: a.actor, Source: a.source, Dest: a.dest, Amount: a.amount,
	}))
}
func (a *PourAction) SendAfterPerform(w *World) {
	notifyDispatch(w, notify.AfterPerform, PourEnd{Actor: a.actor, Source: a.source, Dest: a.dest})
}
func (a *PourAction) SendEnd(w *World) {
	notifyDispatch(w, notify.End, PourEnd{Actor: a.actor, Source: a.source, Dest: a.dest})
}
func (a *PourAction) Interrupt(w *World) InterruptResult {
	return InterruptResult{Messages: []Outgoing{toSelf(a.actor, "You stop pouring.", model.CategoryInternalAction)}}
}

func (a *PourAction) Perform(w *World) Result {
	var transferred float64
	var err error
	if a.amount <= 0 {
		transferred, err = model.Fill(w.Store, a.source, a.dest)
	} else {
		transferred, err = model.Pour(w.Store, a.source, a.dest, a.amount)
	}
	if err != nil {
		return Result{Complete: true, Success: false, Messages: []Outgoing{toSelf(a.actor, "You can't pour that.", model.CategoryInternalMisc)}}
	}
	if transferred <= 0 {
		return Result{Complete: true, Success: false, Messages: []Outgoing{toSelf(a.actor, fmt.Sprintf("There's nothing left to pour from %s, or %s is already full.", Name(w.Store, a.source), Name(w.Store, a.dest)), model.CategoryInternalMisc)}}
	}

	room := CurrentRoom(w.Store, a.actor)
	var messages []Outgoing
	messages = append(messages, toSelfFmt(a.actor, fmtPourSelf, message.Tokens{
		"amount": message.StringToken(strconv.FormatFloat(transferred, 'f', 2, 64)),
		"source": message.EntityToken(a.source),
		"dest":   message.EntityToken(a.dest),
	}, model.CategoryInternalAction))
	messages = append(messages, toRoom(w, room, a.actor, fmtPourRoom, message.Tokens{
		"actor":  message.EntityToken(a.actor),
		"source": message.EntityToken(a.source),
		"dest":   message.EntityToken(a.dest),
	}, model.CategorySurroundingsAction)...)

	return Result{Complete: true, ShouldTick: true, Success: true, Messages: messages}
}

var pourFillPattern = regexp.MustCompile(`^fill (the )?(?P<target>.+) from (the )?(?P<source>.+)$`)
var pourFullPattern = regexp.MustCompile(`^pour (?P<amount>[^ ]+) from (the )?(?P<source>.+) into (the )?(?P<target>.+)$`)
var pourAllPattern = regexp.MustCompile(`^pour( all( of)?)? (the )?(?P<source>.+) into (the )?(?P<target>.+)$`)

type pourParser struct{}

func (pourParser) Parse(w *World, entity world.EntityID, in parser.Input) (any, error) {
	full := in.Verb
	if in.Rest != "" {
		full = in.Verb + " " + in.Rest
	}

	var sourceName, targetName string
	var amount float64
	switch {
	case pourFillPattern.MatchString(full):
		m := pourFillPattern.FindStringSubmatch(full)
		targetName, sourceName = m[2], m[4]
	case pourFullPattern.MatchString(full):
		m := pourFullPattern.FindStringSubmatch(full)
		amt, err := strconv.ParseFloat(strings.TrimSuffix(m[1], "L"), 64)
		if err != nil {
			return nil, &parser.Error{Kind: parser.Other, Detail: "that's not a valid amount"}
		}
		amount, sourceName, targetName = amt, m[3], m[5]
	case pourAllPattern.MatchString(full):
		m := pourAllPattern.FindStringSubmatch(full)
		sourceName, targetName = m[4], m[6]
	default:
		return nil, &parser.Error{Kind: parser.UnknownCommand}
	}

	room := CurrentRoom(w.Store, entity)
	candidates := roomAndInventoryCandidates(w, entity, room)

	source, err := parser.ResolveTarget(w.Store, entity, sourceName, room, candidates)
	if err != nil {
		return nil, err
	}
	if _, ok := world.Get[model.FluidContainer](w.Store, source); !ok {
		return nil, &parser.Error{Kind: parser.Other, Detail: fmt.Sprintf("%s is not a fluid container.", Name(w.Store, source))}
	}

	target, err := parser.ResolveTarget(w.Store, entity, targetName, room, candidates)
	if err != nil {
		return nil, err
	}
	if target == source {
		return nil, &parser.Error{Kind: parser.Other, Detail: fmt.Sprintf("You can't pour %s into itself.", Name(w.Store, target))}
	}
	if _, ok := world.Get[model.FluidContainer](w.Store, target); !ok {
		return nil, &parser.Error{Kind: parser.Other, Detail: fmt.Sprintf("%s is not a fluid container.", Name(w.Store, target))}
	}

	if amount <= 0 {
		return NewFillAction(entity, source, target), nil
	}
	return NewPourAction(entity, source, target, amount), nil
}

func (pourParser) HelpFormats(w *World, entity, observer world.EntityID) []string {
	return []string{"fill <> from <>", "pour <> into <>", "pour <amount> from <> into <>"}
}

// PourParser is the standard parser for pour/fill.
var PourParser parser.Parser[*World] = pourParser{}
