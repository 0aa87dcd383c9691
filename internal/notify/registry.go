// Package notify implements the notification registry: ordered handler
// lists keyed by (notification kind, payload type), dispatching
// notifications and collecting verify verdicts.
package notify

import (
	"reflect"
	"sync/atomic"

	"github.com/udisondev/la2go/internal/world"
)

// Kind names a notification. Action lifecycle phases (Before, Verify,
// AfterPerform, End) are Kinds, as are arbitrary world events (Death,
// EnterCombat, ExitCombat, XpAward, VitalChanged, Despawn...).
type Kind string

const (
	Before       Kind = "before"
	Verify       Kind = "verify"
	AfterPerform Kind = "after_perform"
	End          Kind = "end"
)

// HandlerID is an opaque token returned by registration, used to remove a
// handler later.
type HandlerID uint64

// Verdict is the result a Verify handler votes with. A registry
// dispatch short-circuits on the first Invalid verdict encountered.
type Verdict struct {
	Valid    bool
	Messages map[world.EntityID][]string
}

// Valid constructs an affirmative verdict.
func Valid() Verdict { return Verdict{Valid: true} }

// Invalid constructs a negative verdict carrying the messages to relay to
// each addressed entity.
func Invalid(messages map[world.EntityID][]string) Verdict {
	return Verdict{Valid: false, Messages: messages}
}

// InvalidFor is a convenience constructor for the common single-recipient
// case.
func InvalidFor(entity world.EntityID, message string) Verdict {
	return Invalid(map[world.EntityID][]string{entity: {message}})
}

// SideEffectHandler handles a Before/AfterPerform/End/event notification.
// W is the mutable world type threaded through every handler; results are
// discarded.
type SideEffectHandler[W any] func(w W, payload any)

// VerifyHandler handles a Verify notification, voting on whether the
// action may proceed.
type VerifyHandler[W any] func(w W, payload any) Verdict

type registeredSideEffect[W any] struct {
	id      HandlerID
	payload reflect.Type
	fn      SideEffectHandler[W]
}

type registeredVerify[W any] struct {
	id      HandlerID
	payload reflect.Type
	fn      VerifyHandler[W]
}

// key identifies a handler list: (Kind, payload type).
type key struct {
	kind    Kind
	payload reflect.Type
}

// Registry holds every registered handler, keyed by (kind, payload type),
// preserving insertion order within each key — the order in which
// handlers fire is part of the contract, and is what allows e.g.
// auto-open door to run before verify can move.
type Registry[W any] struct {
	nextID       atomic.Uint64
	sideEffects  map[key][]registeredSideEffect[W]
	verifies     map[key][]registeredVerify[W]
}

// NewRegistry creates an empty notification registry.
func NewRegistry[W any]() *Registry[W] {
	return &Registry[W]{
		sideEffects: make(map[key][]registeredSideEffect[W]),
		verifies:    make(map[key][]registeredVerify[W]),
	}
}

func payloadType[P any]() reflect.Type {
	var zero P
	return reflect.TypeOf(zero)
}

// On registers a side-effecting handler for (kind, P) and returns an id
// usable with Remove.
func On[P any, W any](r *Registry[W], kind Kind, fn SideEffectHandler[W]) HandlerID {
	id := HandlerID(r.nextID.Add(1))
	k := key{kind: kind, payload: payloadType[P]()}
	r.sideEffects[k] = append(r.sideEffects[k], registeredSideEffect[W]{id: id, payload: k.payload, fn: fn})
	return id
}

// OnVerify registers a voting handler for (kind, P).
func OnVerify[P any, W any](r *Registry[W], kind Kind, fn VerifyHandler[W]) HandlerID {
	id := HandlerID(r.nextID.Add(1))
	k := key{kind: kind, payload: payloadType[P]()}
	r.verifies[k] = append(r.verifies[k], registeredVerify[W]{id: id, payload: k.payload, fn: fn})
	return id
}

// Remove unregisters a previously-registered handler by id, searching
// both handler tables. A no-op if id is unknown.
func (r *Registry[W]) Remove(id HandlerID) {
	for k, list := range r.sideEffects {
		for i, h := range list {
			if h.id == id {
				r.sideEffects[k] = append(list[:i], list[i+1:]...)
				return
			}
		}
	}
	for k, list := range r.verifies {
		for i, h := range list {
			if h.id == id {
				r.verifies[k] = append(list[:i], list[i+1:]...)
				return
			}
		}
	}
}

// Dispatch runs every side-effecting handler registered for (kind,
// payload's dynamic type), in registration order.
func Dispatch[P any, W any](r *Registry[W], kind Kind, w W, payload P) {
	k := key{kind: kind, payload: payloadType[P]()}
	for _, h := range r.sideEffects[k] {
		h.fn(w, payload)
	}
}

// DispatchVerify runs every verify handler registered for (kind,
// payload's dynamic type), in registration order, stopping at the first
// Invalid verdict.
func DispatchVerify[P any, W any](r *Registry[W], kind Kind, w W, payload P) Verdict {
	k := key{kind: kind, payload: payloadType[P]()}
	for _, h := range r.verifies[k] {
		v := h.fn(w, payload)
		if !v.Valid {
			return v
		}
	}
	return Valid()
}
