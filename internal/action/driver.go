package action

import (
	"log/slog"
	"math/rand/v2"

	"github.com/udisondev/la2go/internal/clock"
	"github.com/udisondev/la2go/internal/combat"
	"github.com/udisondev/la2go/internal/config"
	"github.com/udisondev/la2go/internal/message"
	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/notify"
	"github.com/udisondev/la2go/internal/parser"
	"github.com/udisondev/la2go/internal/world"
)

// World is the lifecycle driver's concrete world type: the entity store
// plus every supporting system an action can reach. A single goroutine
// owns World for the life of a round; nothing here is safe to touch
// concurrently from elsewhere — the driver loop is the only writer of
// the world during a round.
type World struct {
	Store      *world.Store
	Clock      *clock.Clock
	Config     config.Simulation
	Notify     *notify.Registry[*World]
	Dispatcher *message.Dispatcher
	Parsers    *parser.Registry[*World]
	Log        *slog.Logger

	// Uniform is the source of uniform [0,1) randomness used by stat/skill
	// checks (internal/check.Roll) and anything else that needs it.
	// Defaulting to math/rand/v2's package-level generator, same as the
	// combat manager this driver is descended from; overridden in tests
	// for determinism.
	Uniform func() float64

	queues map[world.EntityID]*Queue
}

// NewWorld builds a driver world over the given store, clock and config,
// with empty notification, dispatch and parser registries ready for
// actions and supporting packages to register against.
func NewWorld(s *world.Store, c *clock.Clock, cfg config.Simulation, log *slog.Logger) *World {
	if log == nil {
		log = slog.Default()
	}
	return &World{
		Store:      s,
		Clock:      c,
		Config:     cfg,
		Notify:     notify.NewRegistry[*World](),
		Dispatcher: message.NewDispatcher(s, c, log),
		Parsers:    parser.NewRegistry[*World](),
		Log:        log,
		Uniform:    rand.Float64,
		queues:     make(map[world.EntityID]*Queue),
	}
}

// QueueFor returns entity's action queue, creating an empty one on first
// use.
func (w *World) QueueFor(entity world.EntityID) *Queue {
	q, ok := w.queues[entity]
	if !ok {
		q = NewQueue()
		w.queues[entity] = q
	}
	return q
}

// Enqueue queues action to run after whatever entity already has queued.
func (w *World) Enqueue(entity world.EntityID, a Action) {
	w.QueueFor(entity).Push(a)
}

// EnqueueFirst queues action to run before whatever entity already has
// queued.
func (w *World) EnqueueFirst(entity world.EntityID, a Action) {
	w.QueueFor(entity).PushFirst(a)
}

// SetInCombat, LeaveCombat and LeaveAllCombat adapt the
// combat package's generic functions to this driver's World type, so
// callers elsewhere in this package don't have to thread Store/Notify
// through by hand.

func (w *World) SetInCombat(entity1, entity2 world.EntityID, rng model.CombatRange) {
	combat.SetInCombat(w.Store, w.Notify, w, entity1, entity2, rng)
}

func (w *World) LeaveCombat(entity1, entity2 world.EntityID) {
	combat.LeaveCombat(w.Store, w.Notify, w, entity1, entity2)
}

func (w *World) LeaveAllCombat(entity world.EntityID) {
	combat.LeaveAllCombat(w.Store, w.Notify, w, entity)
}

// RoundReport summarizes one call to RunRound, mainly for tests and
// server-side logging.
type RoundReport struct {
	Performed int
	Ticked    bool
}

// RunRound performs at most one queued action for every entity that has
// one ready, ticking the clock at most once if any of them required it,
// then sends every resulting message and requeues whatever didn't
// complete. It stops as soon as some ready entity has nothing queued:
// everybody has to have an action queued before any of them run, which
// keeps actions synchronized in lockstep across entities rather than
// letting one player's character race ahead of another's.
//
// entities is the fixed set of entities whose queues participate in this
// round (typically every live player character); RunRound returns
// immediately, performing nothing, if any of them has an empty queue.
func (w *World) RunRound(entities []world.EntityID) RoundReport {
	var ready []world.EntityID
	for _, e := range entities {
		q := w.QueueFor(e)
		q.Normalize()
		if q.Empty() {
			return RoundReport{}
		}
		ready = append(ready, e)
	}
	if len(ready) == 0 {
		return RoundReport{}
	}

	type pending struct {
		entity world.EntityID
		act    Action
		result Result
	}
	var results []pending

	for _, e := range ready {
		a := w.determineActionToPerform(e)
		if a == nil {
			continue
		}
		verdict := a.SendVerify(w)
		if !verdict.Valid {
			w.deliver(verdict.Messages)
			a.SendEnd(w)
			continue
		}
		res := a.Perform(w)
		results = append(results, pending{entity: e, act: a, result: res})
	}

	shouldTick := false
	for _, p := range results {
		if p.result.ShouldTick {
			shouldTick = true
			break
		}
	}
	if shouldTick {
		w.Clock.Tick()
	}

	for _, p := range results {
		w.deliver(p.result.Messages)
		for _, effect := range p.result.PostEffects {
			effect(w)
		}

		if p.result.Complete {
			a := p.act
			a.SendAfterPerform(w)
			a.SendEnd(w)
		} else {
			w.QueueFor(p.entity).PushFrontImmediate(p.act)
		}
	}

	return RoundReport{Performed: len(results), Ticked: shouldTick}
}

// determineActionToPerform pops the next action off entity's queue and
// dispatches its Before notification, restarting the selection if a
// Before handler queued something new — mirroring
// determine_action_to_perform's "put it back, re-normalize, try again"
// loop.
func (w *World) determineActionToPerform(entity world.EntityID) Action {
	q := w.QueueFor(entity)
	for {
		a, ok := q.PopFront()
		if !ok {
			return nil
		}

		a.SendBefore(w)

		if q.NeedsUpdate() {
			q.PushFrontImmediate(a)
			q.Normalize()
			continue
		}
		return a
	}
}

func (w *World) deliver(messages []Outgoing) {
	for _, m := range messages {
		w.Dispatcher.SendTo(m.Recipient, m.Tokens, m.Format, m.Category, m.Delay)
	}
}

// Interrupt forcibly stops every queued action matching predicate for
// entity (e.g. every TagCombat action, when entity leaves combat), firing
// each one's Interrupt and End in turn.
func (w *World) Interrupt(entity world.EntityID, predicate func(Action) bool) {
	for _, a := range w.QueueFor(entity).Drain(predicate) {
		res := a.Interrupt(w)
		w.deliver(res.Messages)
		a.SendEnd(w)
	}
}

// HasTag reports whether any of an action's tags equals t.
func HasTag(a Action, t Tag) bool {
	for _, tag := range a.Tags() {
		if tag == t {
			return true
		}
	}
	return false
}
