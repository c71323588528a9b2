package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInventory(t *testing.T, stacks ...[3]int64) *Inventory {
	t.Helper()
	inv := NewInventory(100)
	for _, s := range stacks {
		item, err := NewItem(uint32(s[0]), uint32(s[1]), 100, int32(s[2]))
		require.NoError(t, err)
		require.NoError(t, inv.AddItem(item))
	}
	return inv
}

func TestInventory_AddRemove(t *testing.T) {
	inv := newTestInventory(t, [3]int64{1, 8000, 3})

	dup, err := NewItem(1, 8000, 100, 1)
	require.NoError(t, err)
	assert.Error(t, inv.AddItem(dup), "duplicate objectID must be rejected")
	assert.Error(t, inv.AddItem(nil))

	removed := inv.RemoveItem(1)
	require.NotNil(t, removed)
	assert.False(t, removed.InInventory())
	assert.Nil(t, inv.RemoveItem(1))
	assert.Equal(t, 0, inv.Count())
}

func TestInventory_HasItems(t *testing.T) {
	inv := newTestInventory(t,
		[3]int64{1, 8000, 3},
		[3]int64{2, 8000, 2},
		[3]int64{3, 8001, 1},
	)

	assert.True(t, inv.HasItems(8000, 5))
	assert.False(t, inv.HasItems(8000, 6))
	assert.True(t, inv.HasItems(8001, 1))
	assert.False(t, inv.HasItems(9999, 1))
	assert.False(t, inv.HasItems(8000, 0), "non-positive amount is never satisfiable")
	assert.Equal(t, int64(5), inv.CountItems(8000))
}

func TestInventory_RemoveItems_AcrossStacks(t *testing.T) {
	inv := newTestInventory(t,
		[3]int64{2, 8000, 2},
		[3]int64{1, 8000, 3},
	)

	removed := inv.RemoveItems(8000, 4)
	require.Len(t, removed, 2)

	// stacks drained in objectID order
	assert.Equal(t, uint32(1), removed[0].Item.ObjectID())
	assert.Equal(t, int32(3), removed[0].Count)
	assert.Equal(t, int32(0), removed[0].Item.Count())
	assert.Equal(t, uint32(2), removed[1].Item.ObjectID())
	assert.Equal(t, int32(1), removed[1].Count)
	assert.Equal(t, int32(1), removed[1].Item.Count())

	assert.Nil(t, inv.GetItem(1), "emptied stack must leave the inventory")
	assert.NotNil(t, inv.GetItem(2))
	assert.Equal(t, int64(1), inv.CountItems(8000))
}

func TestInventory_RemoveItems_NotEnough(t *testing.T) {
	inv := newTestInventory(t, [3]int64{1, 8000, 2})

	assert.Nil(t, inv.RemoveItems(8000, 3))
	assert.Equal(t, int64(2), inv.CountItems(8000), "failed removal must not touch inventory")
}

func TestInventory_Consume(t *testing.T) {
	inv := newTestInventory(t, [3]int64{1, 8000, 2})

	removed, ok := inv.Consume(8000, 5)
	assert.False(t, ok)
	assert.Nil(t, removed)
	assert.Equal(t, int64(2), inv.CountItems(8000))

	removed, ok = inv.Consume(8000, 2)
	require.True(t, ok)
	require.Len(t, removed, 1)
	assert.Equal(t, int32(2), removed[0].Count)
	assert.Equal(t, 0, inv.Count())

	_, ok = inv.Consume(8000, 0)
	assert.False(t, ok)
}

func TestInventory_Consume_Concurrent(t *testing.T) {
	inv := newTestInventory(t, [3]int64{1, 8000, 10})

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := inv.Consume(8000, 1); ok {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, success, "exactly the available units can be consumed")
	assert.Equal(t, int64(0), inv.CountItems(8000))
}
