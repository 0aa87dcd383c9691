package action

import (
	"fmt"
	"strings"

	"github.com/udisondev/la2go/internal/message"
	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/notify"
	"github.com/udisondev/la2go/internal/parser"
	"github.com/udisondev/la2go/internal/world"
)

// OpenBefore is dispatched before an open/close is verified, letting
// auto-unlock handlers queue their own prequel actions ahead of it.
type OpenBefore struct {
	Actor, Target world.EntityID
	ShouldBeOpen  bool
}

// OpenVerify is the payload Verify handlers vote on.
type OpenVerify struct {
	Actor, Target world.EntityID
	ShouldBeOpen  bool
}

// OpenEnd is dispatched after an open/close/slam completes or is abandoned.
type OpenEnd struct {
	Actor, Target world.EntityID
	ShouldBeOpen  bool
}

var fmtOpen = message.MustParse("${actor.name} opens ${target.name}.")
var fmtClose = message.MustParse("${actor.name} closes ${target.name}.")

// OpenAction sets a door-like entity's OpenState.
type OpenAction struct {
	actor        world.EntityID
	target       world.EntityID
	shouldBeOpen bool
}

// NewOpenAction builds an open of target by actor.
func NewOpenAction(actor, target world.EntityID) *OpenAction {
	return &OpenAction{actor: actor, target: target, shouldBeOpen: true}
}

// NewCloseAction builds a close of target by actor.
func NewCloseAction(actor, target world.EntityID) *OpenAction {
	return &OpenAction{actor: actor, target: target, shouldBeOpen: false}
}

func (a *OpenAction) Actor() world.EntityID { return a.actor }
func (a *OpenAction) Tags() []Tag           { return nil }
func (a *OpenAction) MayRequireTick() bool  { return true }
func (a *OpenAction) SendBefore(w *World) {
	notifyDispatch(w, notify.Before, OpenBefore{Actor: a.actor, Target: a.target, ShouldBeOpen: a.shouldBeOpen})
}
func (a *OpenAction) SendVerify(w *World) Verdict {
	return translateVerdict(notifyVerify(w, notify.Verify, OpenVerify{Actor: a.actor, Target: a.target, ShouldBeOpen: a.shouldBeOpen}))
}
func (a *OpenAction) SendAfterPerform(w *World) {
	notifyDispatch(w, notify.AfterPerform, OpenEnd{Actor: a.actor, Target: a.target, ShouldBeOpen: a.shouldBeOpen})
}
func (a *OpenAction) SendEnd(w *World) {
	notifyDispatch(w, notify.End, OpenEnd{Actor: a.actor, Target: a.target, ShouldBeOpen: a.shouldBeOpen})
}
func (a *OpenAction) Interrupt(w *World) InterruptResult {
	return InterruptResult{Messages: []Outgoing{toSelf(a.actor, "You stop opening.", model.CategoryInternalAction)}}
}

func (a *OpenAction) Perform(w *World) Result {
	state, ok := world.Get[model.OpenState](w.Store, a.target)
	if !ok {
		verb := "open"
		if !a.shouldBeOpen {
			verb = "close"
		}
		return Result{Complete: true, Success: false, Messages: []Outgoing{toSelf(a.actor, fmt.Sprintf("You can't %s that.", verb), model.CategoryInternalMisc)}}
	}

	if state.Open == a.shouldBeOpen {
		text := "It's already closed."
		if state.Open {
			text = "It's already open."
		}
		return Result{Complete: true, Success: false, Messages: []Outgoing{toSelf(a.actor, text, model.CategoryInternalMisc)}}
	}

	if err := model.SetOpen(w.Store, a.target, a.shouldBeOpen); err != nil {
		return Result{Complete: true, Success: false, Messages: []Outgoing{toSelf(a.actor, "You can't do that.", model.CategoryInternalMisc)}}
	}

	tmpl := fmtOpen
	if !a.shouldBeOpen {
		tmpl = fmtClose
	}
	room := CurrentRoom(w.Store, a.actor)
	tokens := message.Tokens{"actor": message.EntityToken(a.actor), "target": message.EntityToken(a.target)}
	var messages []Outgoing
	messages = append(messages, toSelfFmt(a.actor, tmpl, tokens, model.CategoryInternalAction))
	messages = append(messages, toRoom(w, room, a.actor, tmpl, tokens, model.CategorySurroundingsAction)...)

	return Result{Complete: true, ShouldTick: true, Success: true, Messages: messages}
}

type openParser struct{}

func (openParser) Parse(w *World, entity world.EntityID, in parser.Input) (any, error) {
	var shouldBeOpen bool
	switch in.Verb {
	case "open":
		shouldBeOpen = true
	case "close":
		shouldBeOpen = false
	default:
		return nil, &parser.Error{Kind: parser.UnknownCommand}
	}

	name := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(in.Rest), "the "))
	if name == "" {
		return nil, &parser.Error{Kind: parser.MissingTarget}
	}
	room := CurrentRoom(w.Store, entity)
	candidates := roomAndInventoryCandidates(w, entity, room)
	target, err := parser.ResolveTarget(w.Store, entity, name, room, candidates)
	if err != nil {
		return nil, err
	}
	if shouldBeOpen {
		return NewOpenAction(entity, target), nil
	}
	return NewCloseAction(entity, target), nil
}

func (openParser) HelpFormats(w *World, entity, observer world.EntityID) []string {
	return []string{"open <>", "close <>"}
}

// OpenParser is the standard parser for open/close.
var OpenParser parser.Parser[*World] = openParser{}

// SlamAction forces a target closed with extra flourish, even if
// something would otherwise contest the close.
type SlamAction struct {
	actor  world.EntityID
	target world.EntityID
}

// NewSlamAction builds a slam of target by actor.
func NewSlamAction(actor, target world.EntityID) *SlamAction {
	return &SlamAction{actor: actor, target: target}
}

func (a *SlamAction) Actor() world.EntityID { return a.actor }
func (a *SlamAction) Tags() []Tag           { return nil }
func (a *SlamAction) MayRequireTick() bool  { return true }
func (a *SlamAction) SendBefore(w *World)   {}
func (a *SlamAction) SendVerify(w *World) Verdict {
	return Verdict{Valid: true}
}
func (a *SlamAction) SendAfterPerform(w *World) {
	notifyDispatch(w, notify.AfterPerform, OpenEnd{Actor: a.actor, Target: a.target, ShouldBeOpen: false})
}
func (a *SlamAction) SendEnd(w *World) {
	notifyDispatch(w, notify.End, OpenEnd{Actor: a.actor, Target: a.target, ShouldBeOpen: false})
}
func (a *SlamAction) Interrupt(w *World) InterruptResult {
	return InterruptResult{Messages: []Outgoing{toSelf(a.actor, "You stop slamming.", model.CategoryInternalAction)}}
}

func (a *SlamAction) Perform(w *World) Result {
	state, ok := world.Get[model.OpenState](w.Store, a.target)
	if !ok {
		return Result{Complete: true, Success: false, Messages: []Outgoing{toSelf(a.actor, "You can't slam that.", model.CategoryInternalMisc)}}
	}
	if !state.Open {
		return Result{Complete: true, Success: false, Messages: []Outgoing{toSelf(a.actor, "It's already closed.", model.CategoryInternalMisc)}}
	}

	_ = model.SetOpen(w.Store, a.target, false)
	text := fmt.Sprintf("You SLAM %s with a loud bang. You hope you didn't wake up the neighbors.", Name(w.Store, a.target))
	return Result{Complete: true, ShouldTick: true, Success: true, Messages: []Outgoing{toSelf(a.actor, text, model.CategoryInternalAction)}}
}

type slamParser struct{}

func (slamParser) Parse(w *World, entity world.EntityID, in parser.Input) (any, error) {
	if in.Verb != "slam" {
		return nil, &parser.Error{Kind: parser.UnknownCommand}
	}
	name := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(in.Rest), "the "))
	if name == "" {
		return nil, &parser.Error{Kind: parser.MissingTarget}
	}
	room := CurrentRoom(w.Store, entity)
	candidates := roomAndInventoryCandidates(w, entity, room)
	target, err := parser.ResolveTarget(w.Store, entity, name, room, candidates)
	if err != nil {
		return nil, err
	}
	return NewSlamAction(entity, target), nil
}

func (slamParser) HelpFormats(w *World, entity, observer world.EntityID) []string {
	return []string{"slam <>"}
}

// SlamParser is the standard parser for slam.
var SlamParser parser.Parser[*World] = slamParser{}

// LockVerify is the payload Verify handlers vote on before a lock/unlock.
type LockVerify struct {
	Actor, Target  world.EntityID
	ShouldBeLocked bool
}

// LockEnd is dispatched after a lock/unlock completes or is abandoned.
type LockEnd struct {
	Actor, Target  world.EntityID
	ShouldBeLocked bool
}

var fmtLock = message.MustParse("${actor.name} locks ${target.name}.")
var fmtUnlock = message.MustParse("${actor.name} unlocks ${target.name}.")
var fmtLockWithKey = message.MustParse("${actor.name} uses ${key.name} to lock ${target.name}.")
var fmtUnlockWithKey = message.MustParse("${actor.name} uses ${key.name} to unlock ${target.name}.")

// LockAction sets a KeyedLock's engaged state, requiring a matching Key
// among the actor's belongings when the lock has a KeyID; the key is not
// used up.
type LockAction struct {
	actor          world.EntityID
	target         world.EntityID
	shouldBeLocked bool
}

// NewLockAction builds a lock of target by actor.
func NewLockAction(actor, target world.EntityID) *LockAction {
	return &LockAction{actor: actor, target: target, shouldBeLocked: true}
}

// NewUnlockAction builds an unlock of target by actor.
func NewUnlockAction(actor, target world.EntityID) *LockAction {
	return &LockAction{actor: actor, target: target, shouldBeLocked: false}
}

func (a *LockAction) Actor() world.EntityID { return a.actor }
func (a *LockAction) Tags() []Tag           { return nil }
func (a *LockAction) MayRequireTick() bool  { return true }
func (a *LockAction) SendBefore(w *World) {}
func (a *LockAction) SendVerify(w *World) Verdict {
	return translateVerdict(notifyVerify(w, notify.Verify, LockVerify{Actor: a.actor, Target: a.target, ShouldBeLocked: a.shouldBeLocked}))
}
func (a *LockAction) SendAfterPerform(w *World) {
	notifyDispatch(w, notify.AfterPerform, LockEnd{Actor: a.actor, Target: a.target, ShouldBeLocked: a.shouldBeLocked})
}
func (a *LockAction) SendEnd(w *World) {
	notifyDispatch(w, notify.End, LockEnd{Actor: a.actor, Target: a.target, ShouldBeLocked: a.shouldBeLocked})
}
func (a *LockAction) Interrupt(w *World) InterruptResult {
	verb := "locking"
	if !a.shouldBeLocked {
		verb = "unlocking"
	}
	return InterruptResult{Messages: []Outgoing{toSelf(a.actor, fmt.Sprintf("You stop %s.", verb), model.CategoryInternalAction)}}
}

func (a *LockAction) Perform(w *World) Result {
	lock, ok := world.Get[model.KeyedLock](w.Store, a.target)
	if !ok {
		verb := "lock"
		if !a.shouldBeLocked {
			verb = "unlock"
		}
		return Result{Complete: true, Success: false, Messages: []Outgoing{toSelf(a.actor, fmt.Sprintf("You can't %s that.", verb), model.CategoryInternalMisc)}}
	}

	if lock.Locked == a.shouldBeLocked {
		text := "It's already unlocked."
		if lock.Locked {
			text = "It's already locked."
		}
		return Result{Complete: true, Success: false, Messages: []Outgoing{toSelf(a.actor, text, model.CategoryInternalMisc)}}
	}

	var key world.EntityID = world.Invalid
	if lock.KeyID != "" {
		found, ok := model.FindKey(w.Store, a.actor, lock.KeyID)
		if !ok {
			return Result{Complete: true, Success: false, Messages: []Outgoing{
				toSelf(a.actor, fmt.Sprintf("You don't have the key to %s.", Name(w.Store, a.target)), model.CategoryInternalMisc),
			}}
		}
		key = found
	}

	if err := model.SetLocked(w.Store, a.target, a.shouldBeLocked); err != nil {
		return Result{Complete: true, Success: false, Messages: []Outgoing{toSelf(a.actor, "You can't do that.", model.CategoryInternalMisc)}}
	}

	var tmpl *message.Format
	tokens := message.Tokens{"actor": message.EntityToken(a.actor), "target": message.EntityToken(a.target)}
	switch {
	case key != world.Invalid && a.shouldBeLocked:
		tmpl, tokens["key"] = fmtLockWithKey, message.EntityToken(key)
	case key != world.Invalid:
		tmpl, tokens["key"] = fmtUnlockWithKey, message.EntityToken(key)
	case a.shouldBeLocked:
		tmpl = fmtLock
	default:
		tmpl = fmtUnlock
	}

	room := CurrentRoom(w.Store, a.actor)
	var messages []Outgoing
	messages = append(messages, toSelfFmt(a.actor, tmpl, tokens, model.CategoryInternalAction))
	messages = append(messages, toRoom(w, room, a.actor, tmpl, tokens, model.CategorySurroundingsAction)...)

	return Result{Complete: true, ShouldTick: true, Success: true, Messages: messages}
}

type lockParser struct{}

func (lockParser) Parse(w *World, entity world.EntityID, in parser.Input) (any, error) {
	var shouldBeLocked bool
	switch in.Verb {
	case "lock":
		shouldBeLocked = true
	case "unlock":
		shouldBeLocked = false
	default:
		return nil, &parser.Error{Kind: parser.UnknownCommand}
	}

	name := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(in.Rest), "the "))
	if name == "" {
		return nil, &parser.Error{Kind: parser.MissingTarget}
	}
	room := CurrentRoom(w.Store, entity)
	candidates := roomAndInventoryCandidates(w, entity, room)
	target, err := parser.ResolveTarget(w.Store, entity, name, room, candidates)
	if err != nil {
		return nil, err
	}
	if shouldBeLocked {
		return NewLockAction(entity, target), nil
	}
	return NewUnlockAction(entity, target), nil
}

func (lockParser) HelpFormats(w *World, entity, observer world.EntityID) []string {
	return []string{"lock <>", "unlock <>"}
}

// LockParser is the standard parser for lock/unlock.
var LockParser parser.Parser[*World] = lockParser{}
