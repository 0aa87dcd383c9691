// Package action implements the action trait, per-entity queue, and the
// lifecycle driver that glues parsing, notification dispatch, tick
// coordination and message fan-out into one deterministic loop.
package action

import (
	"github.com/udisondev/la2go/internal/message"
	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/world"
)

// Tag marks a cross-cutting property of an action, used e.g. by combat
// exit to cancel queued combat-tagged actions for both participants.
type Tag string

const (
	TagCombat Tag = "combat"
)

// PostEffect is a deferred mutation applied after a round's messages have
// been rendered, so message text can refer to pre-mutation state.
type PostEffect func(w *World)

// Outgoing is one rendered message bound for one recipient, collected
// during Perform and sent together once the round's tick (if any) has
// been applied.
type Outgoing struct {
	Recipient world.EntityID
	Tokens    message.Tokens
	Format    *message.Format
	Category  model.MessageCategory
	Delay     model.MessageDelay
}

// Result is what Perform returns: whether the action is done, whether a
// tick should occur this round, whether it succeeded, the messages to
// send, and post-effects to apply after those messages are rendered.
type Result struct {
	Complete     bool
	ShouldTick   bool
	Success      bool
	Messages     []Outgoing
	PostEffects  []PostEffect
}

// InterruptResult is what Interrupt returns when an action is forced to
// stop between ticks (death, exit-combat, explicit stop): the messages to
// show for the early termination.
type InterruptResult struct {
	Messages []Outgoing
}

// Action is a polymorphic unit of work driven through the four-phase
// lifecycle. Concrete actions hold their own mutable state (e.g. a
// haymaker's charge counter) directly as struct fields, since multi-tick
// actions are represented by an incomplete Result rather than any
// runtime suspension mechanism.
type Action interface {
	// Actor is the entity performing this action.
	Actor() world.EntityID
	// Tags reports this action's cross-cutting properties.
	Tags() []Tag
	// MayRequireTick reports whether this action could ever need a tick,
	// used only as a fast-path hint; the authoritative signal is
	// Result.ShouldTick from Perform.
	MayRequireTick() bool

	// SendBefore, SendVerify, SendAfterPerform and SendEnd dispatch this
	// action's notification at the named phase. SendVerify returns
	// whether the action may proceed.
	SendBefore(w *World)
	SendVerify(w *World) Verdict
	SendAfterPerform(w *World)
	SendEnd(w *World)

	// Perform executes one step of the action against the world.
	Perform(w *World) Result
	// Interrupt is called when the action is forcibly cancelled between
	// ticks (death, exit-combat, explicit stop).
	Interrupt(w *World) InterruptResult
}

// Verdict is the outcome of an action's Verify phase.
type Verdict struct {
	Valid    bool
	Messages []Outgoing
}
