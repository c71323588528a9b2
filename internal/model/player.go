package model

import (
	"sync"
	"sync/atomic"
)

// Player — игровой персонаж.
//
// actionMu serializes portal/inventory actions of one character; callers take
// it with Lock/Unlock around a whole request.
type Player struct {
	*WorldObject // embedded

	characterID int64
	factionID   uint32

	inventory *Inventory
	portals   *PortalBook

	// disabledSetPosition is raised while a teleport is in flight; the movement
	// collaborator clears it once the client confirms arrival.
	disabledSetPosition atomic.Bool

	actionMu sync.Mutex
}

// NewPlayer создаёт нового игрока с пустым инвентарём и книгой порталов.
func NewPlayer(objectID uint32, characterID int64, name string, loc Location, factionID uint32) *Player {
	return &Player{
		WorldObject: NewWorldObject(objectID, name, loc),
		characterID: characterID,
		factionID:   factionID,
		inventory:   NewInventory(characterID),
		portals:     NewPortalBook(),
	}
}

// CharacterID returns the persistent character ID.
func (p *Player) CharacterID() int64 {
	return p.characterID
}

// FactionID returns the player's faction.
func (p *Player) FactionID() uint32 {
	return p.factionID
}

// Inventory returns the player's inventory.
func (p *Player) Inventory() *Inventory {
	return p.inventory
}

// Portals returns the player's portal book.
func (p *Player) Portals() *PortalBook {
	return p.portals
}

// DisabledSetPosition reports whether client position updates are suppressed.
func (p *Player) DisabledSetPosition() bool {
	return p.disabledSetPosition.Load()
}

// SetDisabledSetPosition toggles suppression of client position updates.
func (p *Player) SetDisabledSetPosition(v bool) {
	p.disabledSetPosition.Store(v)
}

// Lock acquires the character's action lock.
func (p *Player) Lock() {
	p.actionMu.Lock()
}

// Unlock releases the character's action lock.
func (p *Player) Unlock() {
	p.actionMu.Unlock()
}
