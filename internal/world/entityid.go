package world

import "sync/atomic"

// EntityID is a stable, opaque handle to a simulated object. It carries no
// type information — whether it names a room, a door, a character or a key
// is determined entirely by which attributes are attached to it in the
// Store.
type EntityID uint64

// Invalid is the zero EntityID; no entity is ever created with this value.
const Invalid EntityID = 0

// idGenerator hands out monotonically increasing EntityIDs.
type idGenerator struct {
	next atomic.Uint64
}

// newIDGenerator returns a generator whose first Next() call yields 1, so
// the zero value of EntityID can be used as a not-present sentinel.
func newIDGenerator() *idGenerator {
	g := &idGenerator{}
	g.next.Store(0)
	return g
}

// Next generates the next unique EntityID. Safe for concurrent use, though
// in practice only the driver goroutine ever creates entities.
func (g *idGenerator) Next() EntityID {
	return EntityID(g.next.Add(1))
}
