package world

import "sync/atomic"

// ObjectIDGenerator hands out unique object IDs for simulated entities.
//
// ID ranges:
//
//	0x00000000 - 0x0FFFFFFF: reserved (0 = no entity)
//	0x10000000 - 0x1FFFFFFF: player-owned creatures
//	0x20000000 - 0x2FFFFFFF: wild creatures
//	0x30000000 - 0x3FFFFFFF: items
type ObjectIDGenerator struct {
	nextColonist atomic.Uint32
	nextWild     atomic.Uint32
	nextItem     atomic.Uint32
}

// NewObjectIDGenerator creates a generator at the start of each range.
func NewObjectIDGenerator() *ObjectIDGenerator {
	gen := &ObjectIDGenerator{}
	gen.nextColonist.Store(0x10000000)
	gen.nextWild.Store(0x20000000)
	gen.nextItem.Store(0x30000000)
	return gen
}

// NextCreatureID returns the next ID in the player-owned or wild range.
func (g *ObjectIDGenerator) NextCreatureID(playerOwned bool) uint32 {
	if playerOwned {
		return g.nextColonist.Add(1)
	}
	return g.nextWild.Add(1)
}

// NextItemID returns the next item ID.
func (g *ObjectIDGenerator) NextItemID() uint32 {
	return g.nextItem.Add(1)
}

// IsPlayerOwnedID reports whether id was allocated for a player-owned creature.
func IsPlayerOwnedID(id uint32) bool {
	return id >= 0x10000000 && id < 0x20000000
}
