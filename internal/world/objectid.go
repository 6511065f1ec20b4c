package world

import (
	"sync/atomic"

	"github.com/udisondev/fragbots/internal/model"
)

// EntityIDGenerator hands out entity ids for everything the arena tracks.
//
// ID ranges (convention):
//
//	0x000000:            reserved (model.NoEntity)
//	0x000001 - 0x000FFF: clients (players and bots)
//	0x001000 - 0x0FFFFF: items placed by the layout
//	0x100000 - ...:      dropped items
type EntityIDGenerator struct {
	nextClient  atomic.Int32
	nextItem    atomic.Int32
	nextDropped atomic.Int32
}

const (
	clientIDBase  = 0x000000
	itemIDBase    = 0x000FFF
	droppedIDBase = 0x0FFFFF
)

// NewEntityIDGenerator creates a new ID generator.
func NewEntityIDGenerator() *EntityIDGenerator {
	gen := &EntityIDGenerator{}
	gen.nextClient.Store(clientIDBase)
	gen.nextItem.Store(itemIDBase)
	gen.nextDropped.Store(droppedIDBase)
	return gen
}

// NextClientID generates next client entity id.
func (g *EntityIDGenerator) NextClientID() model.EntityID {
	return model.EntityID(g.nextClient.Add(1))
}

// NextItemID generates next placed item entity id.
func (g *EntityIDGenerator) NextItemID() model.EntityID {
	return model.EntityID(g.nextItem.Add(1))
}

// NextDroppedID generates next dropped item entity id.
func (g *EntityIDGenerator) NextDroppedID() model.EntityID {
	return model.EntityID(g.nextDropped.Add(1))
}

// IsClientID reports whether id is in the client range.
func IsClientID(id model.EntityID) bool {
	return id > clientIDBase && id <= itemIDBase
}
