package world

import (
	"fmt"
	"sync"

	"github.com/udisondev/portalgate/internal/model"
)

// World — registry of live world objects.
//
// A single RWMutex guards all maps, so a portal pair is published and removed
// in one critical section and lookups never see half of a pair.
type World struct {
	mu      sync.RWMutex
	objects map[uint32]model.Actor   // objectID → object
	players map[uint32]*model.Player // objectID → player
	portals map[uint32]*model.Portal // objectID → portal
	doodads map[uint32]*model.Doodad // objectID → doodad
	owned   map[uint32][]uint32      // owner objectID → portal objectIDs
}

// New creates an empty world registry.
func New() *World {
	return &World{
		objects: make(map[uint32]model.Actor, 1024),
		players: make(map[uint32]*model.Player, 256),
		portals: make(map[uint32]*model.Portal, 64),
		doodads: make(map[uint32]*model.Doodad, 256),
		owned:   make(map[uint32][]uint32, 64),
	}
}

func (w *World) addLocked(obj model.Actor) error {
	if _, exists := w.objects[obj.ObjectID()]; exists {
		return fmt.Errorf("object %d already in world", obj.ObjectID())
	}
	w.objects[obj.ObjectID()] = obj
	return nil
}

// AddPlayer registers a player.
func (w *World) AddPlayer(p *model.Player) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.addLocked(p); err != nil {
		return fmt.Errorf("adding player: %w", err)
	}
	w.players[p.ObjectID()] = p
	return nil
}

// AddDoodad registers a doodad.
func (w *World) AddDoodad(d *model.Doodad) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.addLocked(d); err != nil {
		return fmt.Errorf("adding doodad: %w", err)
	}
	w.doodads[d.ObjectID()] = d
	return nil
}

// AddPortalPair publishes both halves of a portal pair atomically.
func (w *World) AddPortalPair(exit, entrance *model.Portal) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, p := range []*model.Portal{exit, entrance} {
		if _, exists := w.objects[p.ObjectID()]; exists {
			return fmt.Errorf("adding portal pair: object %d already in world", p.ObjectID())
		}
	}
	if exit.ObjectID() == entrance.ObjectID() {
		return fmt.Errorf("adding portal pair: exit and entrance share object %d", exit.ObjectID())
	}

	for _, p := range []*model.Portal{exit, entrance} {
		w.objects[p.ObjectID()] = p
		w.portals[p.ObjectID()] = p
		w.owned[p.OwnerObjectID()] = append(w.owned[p.OwnerObjectID()], p.ObjectID())
	}
	return nil
}

// RemoveObject removes an object of any kind. Removing a portal removes only that portal.
func (w *World) RemoveObject(objectID uint32) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.removeLocked(objectID)
}

func (w *World) removeLocked(objectID uint32) bool {
	if _, ok := w.objects[objectID]; !ok {
		return false
	}
	delete(w.objects, objectID)
	delete(w.players, objectID)
	delete(w.doodads, objectID)

	if p, ok := w.portals[objectID]; ok {
		delete(w.portals, objectID)
		owner := p.OwnerObjectID()
		ids := w.owned[owner]
		for i, id := range ids {
			if id == objectID {
				ids = append(ids[:i], ids[i+1:]...)
				break
			}
		}
		if len(ids) == 0 {
			delete(w.owned, owner)
		} else {
			w.owned[owner] = ids
		}
	}
	return true
}

// RemovePortalsOwnedBy despawns every portal of an owner in one critical section.
// Returns the removed portals.
func (w *World) RemovePortalsOwnedBy(ownerObjectID uint32) []*model.Portal {
	w.mu.Lock()
	defer w.mu.Unlock()

	ids := w.owned[ownerObjectID]
	removed := make([]*model.Portal, 0, len(ids))
	for _, id := range ids {
		removed = append(removed, w.portals[id])
		delete(w.objects, id)
		delete(w.portals, id)
	}
	delete(w.owned, ownerObjectID)
	return removed
}

// GetObject returns object by ID
func (w *World) GetObject(objectID uint32) (model.Actor, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	obj, ok := w.objects[objectID]
	return obj, ok
}

// GetPortal returns a live portal by object ID.
func (w *World) GetPortal(objectID uint32) (*model.Portal, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, ok := w.portals[objectID]
	return p, ok
}

// GetPlayer returns a player by object ID.
func (w *World) GetPlayer(objectID uint32) (*model.Player, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, ok := w.players[objectID]
	return p, ok
}

// GetDoodad returns a doodad by object ID.
func (w *World) GetDoodad(objectID uint32) (*model.Doodad, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	d, ok := w.doodads[objectID]
	return d, ok
}

// PortalsOwnedBy returns live portals of an owner.
func (w *World) PortalsOwnedBy(ownerObjectID uint32) []*model.Portal {
	w.mu.RLock()
	defer w.mu.RUnlock()
	ids := w.owned[ownerObjectID]
	out := make([]*model.Portal, 0, len(ids))
	for _, id := range ids {
		out = append(out, w.portals[id])
	}
	return out
}

// ObjectCount returns total number of objects in world.
func (w *World) ObjectCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.objects)
}

// PlayersInZone returns players currently in the given zone.
func (w *World) PlayersInZone(zoneID uint32) []*model.Player {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*model.Player, 0, 16)
	for _, p := range w.players {
		if p.Location().ZoneID == zoneID {
			out = append(out, p)
		}
	}
	return out
}
