package world

import (
	"sync/atomic"

	"github.com/udisondev/portalgate/internal/constants"
)

// ObjectIDGenerator generates unique object IDs for all world entities.
// Ranges are defined in constants (players, NPC units, doodads).
type ObjectIDGenerator struct {
	nextPlayerID atomic.Uint32
	nextNpcID    atomic.Uint32
	nextDoodadID atomic.Uint32
	nextItemID   atomic.Uint32
}

// NewObjectIDGenerator creates a new ID generator.
func NewObjectIDGenerator() *ObjectIDGenerator {
	gen := &ObjectIDGenerator{}
	gen.nextPlayerID.Store(constants.ObjectIDPlayerStart)
	gen.nextNpcID.Store(constants.ObjectIDNpcStart)
	gen.nextDoodadID.Store(constants.ObjectIDDoodadStart)
	gen.nextItemID.Store(constants.ObjectIDItemStart)
	return gen
}

// NextPlayerID generates next unique player object ID.
// Thread-safe via atomic increment.
func (g *ObjectIDGenerator) NextPlayerID() uint32 {
	return g.nextPlayerID.Add(1)
}

// NextNpcID generates next unique NPC unit object ID (portals included).
// Thread-safe via atomic increment.
func (g *ObjectIDGenerator) NextNpcID() uint32 {
	return g.nextNpcID.Add(1)
}

// NextDoodadID generates next unique doodad object ID.
// Thread-safe via atomic increment.
func (g *ObjectIDGenerator) NextDoodadID() uint32 {
	return g.nextDoodadID.Add(1)
}

// NextItemID generates next unique inventory item object ID.
func (g *ObjectIDGenerator) NextItemID() uint32 {
	return g.nextItemID.Add(1)
}
