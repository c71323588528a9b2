package model

import (
	"fmt"
	"sync/atomic"
)

// Item — стек предметов в инвентаре персонажа.
// Reagents are plain stackable items identified by template ID; the
// inventory mutex orders count changes, the atomics only make reads safe.
type Item struct {
	objectID uint32 // instance
	itemID   uint32 // template
	ownerID  int64  // character ID

	count    atomic.Int32
	attached atomic.Bool // held by an inventory
}

// NewItem создаёт стек; count должен быть > 0.
func NewItem(objectID, itemID uint32, ownerID int64, count int32) (*Item, error) {
	if count <= 0 {
		return nil, fmt.Errorf("item %d: count must be > 0, got %d", itemID, count)
	}

	it := &Item{objectID: objectID, itemID: itemID, ownerID: ownerID}
	it.count.Store(count)
	return it, nil
}

func (i *Item) ObjectID() uint32 { return i.objectID }
func (i *Item) ItemID() uint32   { return i.itemID }
func (i *Item) OwnerID() int64   { return i.ownerID }
func (i *Item) Count() int32     { return i.count.Load() }

// InInventory reports whether the stack is still held by an inventory.
// Consumed stacks are detached.
func (i *Item) InInventory() bool { return i.attached.Load() }

// SetCount overwrites the stack size.
func (i *Item) SetCount(count int32) error {
	if count < 0 {
		return fmt.Errorf("item %d: count cannot be negative, got %d", i.itemID, count)
	}
	i.count.Store(count)
	return nil
}
