package model

import "github.com/udisondev/la2go/internal/clock"

// Player is the attribute that makes an entity a human player: it names
// their player id, the channel their rendered messages are pushed into,
// when they last submitted a command, and their per-category message
// filter. The core never blocks on the channel: internal/message.Dispatcher
// sends without waiting and drops the message when the outbox is full.
type Player struct {
	ID              string
	Outbox          chan<- any // receives message.Envelope values
	LastCommandAt   clock.Time
	Filter          MessageFilter
}

// CanReceiveMessages reports whether the player entity has a live sink to
// push messages into.
func (p Player) CanReceiveMessages() bool {
	return p.Outbox != nil
}
