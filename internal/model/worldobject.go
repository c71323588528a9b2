package model

import "sync"

// Actor is anything that can interact with doodads or cast skills.
// Implemented by *Player, *Portal and *Doodad through the embedded WorldObject.
type Actor interface {
	ObjectID() uint32
	Name() string
	Location() Location
}

// WorldObject — общая часть всех объектов мира: id и имя неизменны,
// позиция меняется под mu.
type WorldObject struct {
	objectID uint32
	name     string

	mu       sync.RWMutex
	location Location
}

// NewWorldObject создаёт объект мира.
func NewWorldObject(objectID uint32, name string, loc Location) *WorldObject {
	return &WorldObject{objectID: objectID, name: name, location: loc}
}

func (w *WorldObject) ObjectID() uint32 { return w.objectID }
func (w *WorldObject) Name() string     { return w.name }

// Location returns a copy of the current position.
func (w *WorldObject) Location() Location {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.location
}

// SetLocation moves the object.
func (w *WorldObject) SetLocation(loc Location) {
	w.mu.Lock()
	w.location = loc
	w.mu.Unlock()
}

// WithinRange reports whether b is in a's zone and at most r away from a.
// r <= 0 accepts the whole zone.
func WithinRange(a, b Actor, r float64) bool {
	la, lb := a.Location(), b.Location()
	if la.ZoneID != lb.ZoneID {
		return false
	}
	return r <= 0 || la.DistanceSquared(lb) <= r*r
}
