package model

import (
	"cmp"
	"slices"
	"sync"
)

// BookedPortal — сохранённая игроком точка портала.
type BookedPortal struct {
	ID        uint32 // interaction ID used by open/delete requests
	Name      string
	ZoneID    uint32
	SubZoneID uint32
	X, Y, Z   float32
	ZRot      float32 // catalog rotation units
}

// PortalBook holds a character's private and public portal bookmarks.
type PortalBook struct {
	mu      sync.RWMutex
	private map[uint32]BookedPortal
	public  map[uint32]BookedPortal
}

// NewPortalBook создаёт пустую книгу порталов.
func NewPortalBook() *PortalBook {
	return &PortalBook{
		private: make(map[uint32]BookedPortal),
		public:  make(map[uint32]BookedPortal),
	}
}

// Add records a portal in the private or public book, replacing any entry with the same ID.
func (b *PortalBook) Add(p BookedPortal, isPrivate bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if isPrivate {
		b.private[p.ID] = p
		return
	}
	b.public[p.ID] = p
}

// GetPortalInfo looks the ID up in the private book first, then the public one.
func (b *PortalBook) GetPortalInfo(id uint32) (BookedPortal, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if p, ok := b.private[id]; ok {
		return p, true
	}
	p, ok := b.public[id]
	return p, ok
}

// Remove deletes the portal from the selected book.
// Returns false if the book had no such entry.
func (b *PortalBook) Remove(id uint32, isPrivate bool) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	book := b.public
	if isPrivate {
		book = b.private
	}
	if _, ok := book[id]; !ok {
		return false
	}
	delete(book, id)
	return true
}

// Private returns private entries sorted by ID.
func (b *PortalBook) Private() []BookedPortal {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return sortedPortals(b.private)
}

// Public returns public entries sorted by ID.
func (b *PortalBook) Public() []BookedPortal {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return sortedPortals(b.public)
}

// NextID returns an ID not used by either book: one above the highest
// recorded ID.
func (b *PortalBook) NextID() uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var maxID uint32
	for id := range b.private {
		maxID = max(maxID, id)
	}
	for id := range b.public {
		maxID = max(maxID, id)
	}
	return maxID + 1
}

// Len returns total number of bookmarks.
func (b *PortalBook) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.private) + len(b.public)
}

func sortedPortals(m map[uint32]BookedPortal) []BookedPortal {
	out := make([]BookedPortal, 0, len(m))
	for _, p := range m {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b BookedPortal) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}
