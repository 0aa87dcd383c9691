// Package session attaches live player connections to the action
// driver's world: it turns raw input lines into parsed actions queued
// against the submitting entity, fans rendered messages back out to
// each connection's own channel, and drives the round loop on a fixed
// real-time tick.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/udisondev/la2go/internal/action"
	"github.com/udisondev/la2go/internal/message"
	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/parser"
	"github.com/udisondev/la2go/internal/world"
)

// Session is one connected player: a line-oriented input channel and the
// outbox the world's Dispatcher pushes rendered message.Envelope values
// into (typed chan<- any to match model.Player.Outbox, which can't name
// message.Envelope directly without an import cycle). Transport (telnet,
// websocket, whatever) lives above this package and is responsible for
// reading In from the wire and writing Out back to it.
type Session struct {
	ID     string
	Entity world.EntityID
	In     <-chan string
	Out    chan<- any
}

// command is one line submitted by a live session, queued for the
// manager's own goroutine to parse and enqueue — parsing touches the
// store, which only the round-loop goroutine is allowed to do.
type command struct {
	entity world.EntityID
	line   string
}

// Manager owns the set of currently-attached sessions and drives the
// action driver's round loop. A single Manager serves every connection
// for one world.
type Manager struct {
	world *action.World
	log   *slog.Logger

	mu       sync.Mutex
	sessions map[world.EntityID]*Session

	commands chan command
}

// NewManager builds a Manager over w.
func NewManager(w *action.World, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{
		world:    w,
		log:      log,
		sessions: make(map[world.EntityID]*Session),
		commands: make(chan command, 256),
	}
}

// Attach registers sess, points its entity's Player.Outbox at sess.Out,
// and starts forwarding lines from sess.In into the manager's command
// queue. The forwarding goroutine exits, detaching the session, when ctx
// is canceled or sess.In is closed.
func (m *Manager) Attach(ctx context.Context, sess *Session) {
	m.mu.Lock()
	m.sessions[sess.Entity] = sess
	m.mu.Unlock()

	if player, ok := world.Get[model.Player](m.world.Store, sess.Entity); ok {
		player.Outbox = sess.Out
		world.Attach(m.world.Store, sess.Entity, player)
	}

	go m.pump(ctx, sess)
}

func (m *Manager) pump(ctx context.Context, sess *Session) {
	defer m.Detach(sess.Entity)
	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-sess.In:
			if !ok {
				return
			}
			select {
			case m.commands <- command{entity: sess.Entity, line: line}:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Detach removes entity's session, if any. Its queued actions and world
// state are left alone — a disconnect is not a despawn.
func (m *Manager) Detach(entity world.EntityID) {
	m.mu.Lock()
	delete(m.sessions, entity)
	m.mu.Unlock()
}

func (m *Manager) liveEntities() []world.EntityID {
	m.mu.Lock()
	defer m.mu.Unlock()
	entities := make([]world.EntityID, 0, len(m.sessions))
	for e := range m.sessions {
		entities = append(entities, e)
	}
	return entities
}

// Run drains submitted command lines into the driver's per-entity queues
// and advances the round loop every tickEvery, until ctx is canceled.
func (m *Manager) Run(ctx context.Context, tickEvery time.Duration) error {
	ticker := time.NewTicker(tickEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-m.commands:
			m.submit(cmd.entity, cmd.line)
		case <-ticker.C:
			m.advance()
		}
	}
}

// submit parses line as entity and enqueues the resulting action, or
// reports a parse error back to entity alone — parse errors are never
// broadcast to the room or to other players.
func (m *Manager) submit(entity world.EntityID, line string) {
	in, ok := parser.Tokenize(line)
	if !ok {
		return
	}

	parsed, err := m.world.Parsers.Dispatch(m.world, entity, in)
	if err != nil {
		m.reportParseError(entity, err)
		return
	}

	act, ok := parsed.(action.Action)
	if !ok {
		m.log.Error("parser returned non-action value", "entity", entity)
		return
	}
	m.world.Enqueue(entity, act)
}

func (m *Manager) reportParseError(entity world.EntityID, err error) {
	m.world.Dispatcher.SendTo(entity, nil, message.MustParse(err.Error()), model.CategorySystem, model.DelayNone)
}

// advance fills any live entity with an empty queue with a one-tick wait
// — RunRound only performs work once every entity it's given has
// something queued, and a slow typist shouldn't stall everyone else's
// round — then runs one round over every attached entity.
func (m *Manager) advance() {
	entities := m.liveEntities()
	if len(entities) == 0 {
		return
	}
	for _, e := range entities {
		q := m.world.QueueFor(e)
		q.Normalize()
		if q.Empty() {
			m.world.Enqueue(e, action.NewWaitAction(e, 1))
		}
	}
	m.world.RunRound(entities)
}
