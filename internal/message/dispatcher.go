package message

import (
	"log/slog"

	"github.com/udisondev/la2go/internal/clock"
	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/world"
)

// Envelope is what lands in a Player's Outbox: a fully rendered line plus
// enough metadata for the transport to decide how to present it.
type Envelope struct {
	Text     string
	Category model.MessageCategory
	Delay    model.MessageDelay
	At       clock.Time
}

// Dispatcher renders and fans out messages to observer sets, applying
// each observer's MessageFilter before delivery.
type Dispatcher struct {
	store *world.Store
	clock *clock.Clock
	log   *slog.Logger
}

// NewDispatcher builds a Dispatcher over the given store and clock.
func NewDispatcher(s *world.Store, c *clock.Clock, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{store: s, clock: c, log: log}
}

// RoomOccupants returns every Player-bearing entity directly contained in
// room, i.e. every observer whose Location names room as their Container
// owner.
func (d *Dispatcher) RoomOccupants(room world.EntityID) []world.EntityID {
	container, ok := world.Get[model.Container](d.store, room)
	if !ok {
		return nil
	}
	var occupants []world.EntityID
	for _, e := range container.Contents {
		if world.Has[model.Player](d.store, e) {
			occupants = append(occupants, e)
		}
	}
	return occupants
}

// SendTo renders format for tokens from recipient's point of view and
// pushes the result into recipient's Outbox, honoring its MessageFilter.
// A recipient with no live Outbox, or whose filter blocks the category,
// is silently skipped — this is not an error.
func (d *Dispatcher) SendTo(recipient world.EntityID, tokens Tokens, f *Format, category model.MessageCategory, delay model.MessageDelay) {
	player, ok := world.Get[model.Player](d.store, recipient)
	if !ok || !player.CanReceiveMessages() {
		return
	}
	if !player.Filter.Allows(category) {
		return
	}

	text, err := Interpolate(d.store, recipient, tokens, f)
	if err != nil {
		d.log.Error("message interpolation failed", "recipient", recipient, "error", err)
		return
	}

	env := Envelope{Text: text, Category: category, Delay: delay, At: d.clock.Now()}
	select {
	case player.Outbox <- env:
	default:
		d.log.Warn("dropping message: recipient outbox full", "recipient", recipient)
	}
}

// Broadcast renders and sends to every entity in recipients except those
// named in exclude.
func (d *Dispatcher) Broadcast(recipients []world.EntityID, exclude map[world.EntityID]bool, tokens Tokens, f *Format, category model.MessageCategory, delay model.MessageDelay) {
	for _, r := range recipients {
		if exclude[r] {
			continue
		}
		d.SendTo(r, tokens, f, category, delay)
	}
}

// BroadcastToRoom is the common case: render once and send to every
// Player in room other than the excluded entities (typically the actor,
// who gets their own first-person rendering via a separate SendTo call).
func (d *Dispatcher) BroadcastToRoom(room world.EntityID, exclude map[world.EntityID]bool, tokens Tokens, f *Format, category model.MessageCategory, delay model.MessageDelay) {
	d.Broadcast(d.RoomOccupants(room), exclude, tokens, f, category, delay)
}
