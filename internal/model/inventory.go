package model

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
)

// Inventory — хранилище предметов персонажа.
//
// All mutating methods hold mu, so Consume is atomic with respect to any other
// inventory operation of the same character.
type Inventory struct {
	ownerID int64 // Character ID владельца

	items map[uint32]*Item // objectID → Item

	mu sync.RWMutex
}

// ItemRemoval describes how many units were taken from one stack.
// Item.Count() == 0 means the stack was removed from the inventory.
type ItemRemoval struct {
	Item  *Item
	Count int32
}

// NewInventory создаёт новый инвентарь для персонажа.
func NewInventory(ownerID int64) *Inventory {
	return &Inventory{
		ownerID: ownerID,
		items:   make(map[uint32]*Item),
	}
}

// OwnerID возвращает character ID владельца.
func (inv *Inventory) OwnerID() int64 {
	return inv.ownerID
}

// AddItem добавляет item в inventory.
// Returns error если item с таким objectID уже есть.
func (inv *Inventory) AddItem(item *Item) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	if _, exists := inv.items[item.ObjectID()]; exists {
		return fmt.Errorf("item %d already in inventory", item.ObjectID())
	}
	inv.items[item.ObjectID()] = item
	item.attached.Store(true)
	return nil
}

// RemoveItem удаляет item из inventory по objectID.
// Returns nil если не найден.
func (inv *Inventory) RemoveItem(objectID uint32) *Item {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	item, exists := inv.items[objectID]
	if !exists {
		return nil
	}
	delete(inv.items, objectID)
	item.attached.Store(false)
	return item
}

// GetItem возвращает item по objectID (может быть nil).
func (inv *Inventory) GetItem(objectID uint32) *Item {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.items[objectID]
}

// GetItems возвращает копию списка items, отсортированную по objectID.
func (inv *Inventory) GetItems() []*Item {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	items := make([]*Item, 0, len(inv.items))
	for _, item := range inv.items {
		items = append(items, item)
	}
	sortByObjectID(items)
	return items
}

// Count возвращает количество стеков в inventory.
func (inv *Inventory) Count() int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return len(inv.items)
}

// CountItems returns total units of the given template across all stacks.
func (inv *Inventory) CountItems(itemID uint32) int64 {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.countLocked(itemID)
}

// HasItems reports whether at least amount units of itemID are present.
func (inv *Inventory) HasItems(itemID uint32, amount int32) bool {
	if amount <= 0 {
		return false
	}
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.countLocked(itemID) >= int64(amount)
}

// RemoveItems takes amount units of itemID, draining stacks in objectID order.
// Returns nil and changes nothing if there are not enough units.
func (inv *Inventory) RemoveItems(itemID uint32, amount int32) []ItemRemoval {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.removeLocked(itemID, amount)
}

// Consume checks and removes amount units of itemID under a single lock.
// ok is false (and nothing is removed) when the inventory cannot cover amount.
func (inv *Inventory) Consume(itemID uint32, amount int32) (removed []ItemRemoval, ok bool) {
	if amount <= 0 {
		return nil, false
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	if inv.countLocked(itemID) < int64(amount) {
		return nil, false
	}
	return inv.removeLocked(itemID, amount), true
}

func (inv *Inventory) countLocked(itemID uint32) int64 {
	var total int64
	for _, item := range inv.items {
		if item.itemID == itemID {
			total += int64(item.Count())
		}
	}
	return total
}

func (inv *Inventory) removeLocked(itemID uint32, amount int32) []ItemRemoval {
	if amount <= 0 || inv.countLocked(itemID) < int64(amount) {
		return nil
	}

	stacks := make([]*Item, 0, 2)
	for _, item := range inv.items {
		if item.itemID == itemID {
			stacks = append(stacks, item)
		}
	}
	sortByObjectID(stacks)

	removed := make([]ItemRemoval, 0, len(stacks))
	left := amount
	for _, item := range stacks {
		if left == 0 {
			break
		}
		take := min(item.Count(), left)
		if item.count.Add(-take) == 0 {
			delete(inv.items, item.ObjectID())
			item.attached.Store(false)
		}
		removed = append(removed, ItemRemoval{Item: item, Count: take})
		left -= take
	}
	return removed
}

func sortByObjectID(items []*Item) {
	slices.SortFunc(items, func(a, b *Item) int {
		return cmp.Compare(a.objectID, b.objectID)
	})
}
