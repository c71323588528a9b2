package world

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/portalgate/internal/constants"
	"github.com/udisondev/portalgate/internal/model"
)

func newPair(exitID, entranceID, owner uint32) (*model.Portal, *model.Portal) {
	exit := model.NewPortal(exitID, model.PortalParams{Role: constants.PortalExit, OwnerObjectID: owner})
	entrance := model.NewPortal(entranceID, model.PortalParams{Role: constants.PortalEntrance, OwnerObjectID: owner})
	entrance.SetTeleportPosition(exit.Location())
	return exit, entrance
}

func TestWorld_AddRemovePlayer(t *testing.T) {
	w := New()
	p := model.NewPlayer(0x10000001, 1, "a", model.NewLocation(0, 0, 0, 104), 1)

	require.NoError(t, w.AddPlayer(p))
	assert.Error(t, w.AddPlayer(p), "duplicate object id")

	got, ok := w.GetPlayer(p.ObjectID())
	require.True(t, ok)
	assert.Same(t, p, got)

	obj, ok := w.GetObject(p.ObjectID())
	require.True(t, ok)
	assert.Equal(t, p.ObjectID(), obj.ObjectID())

	assert.Len(t, w.PlayersInZone(104), 1)
	assert.Empty(t, w.PlayersInZone(105))

	assert.True(t, w.RemoveObject(p.ObjectID()))
	assert.False(t, w.RemoveObject(p.ObjectID()))
	_, ok = w.GetPlayer(p.ObjectID())
	assert.False(t, ok)
}

func TestWorld_AddPortalPair(t *testing.T) {
	w := New()
	exit, entrance := newPair(0x20000001, 0x20000002, 0x10000001)

	require.NoError(t, w.AddPortalPair(exit, entrance))
	assert.Equal(t, 2, w.ObjectCount())

	got, ok := w.GetPortal(entrance.ObjectID())
	require.True(t, ok)
	assert.Same(t, entrance, got)

	assert.Len(t, w.PortalsOwnedBy(0x10000001), 2)
	assert.Empty(t, w.PortalsOwnedBy(0x10000002))
}

func TestWorld_AddPortalPair_Conflict(t *testing.T) {
	w := New()
	exit, entrance := newPair(0x20000001, 0x20000002, 1)
	require.NoError(t, w.AddPortalPair(exit, entrance))

	exit2, entrance2 := newPair(0x20000003, 0x20000002, 1)
	assert.Error(t, w.AddPortalPair(exit2, entrance2))

	_, ok := w.GetPortal(0x20000003)
	assert.False(t, ok, "failed pair must not be half-published")

	same, _ := newPair(0x20000009, 0, 1)
	assert.Error(t, w.AddPortalPair(same, same))
}

func TestWorld_RemoveObject_Portal(t *testing.T) {
	w := New()
	exit, entrance := newPair(0x20000001, 0x20000002, 7)
	require.NoError(t, w.AddPortalPair(exit, entrance))

	assert.True(t, w.RemoveObject(exit.ObjectID()))
	owned := w.PortalsOwnedBy(7)
	require.Len(t, owned, 1)
	assert.Same(t, entrance, owned[0])

	assert.True(t, w.RemoveObject(entrance.ObjectID()))
	assert.Empty(t, w.PortalsOwnedBy(7))
}

func TestWorld_RemovePortalsOwnedBy(t *testing.T) {
	w := New()
	exit, entrance := newPair(0x20000001, 0x20000002, 7)
	require.NoError(t, w.AddPortalPair(exit, entrance))

	removed := w.RemovePortalsOwnedBy(7)
	assert.Len(t, removed, 2)
	assert.Zero(t, w.ObjectCount())
	assert.Empty(t, w.RemovePortalsOwnedBy(7))
}

func TestWorld_PairVisibility_Concurrent(t *testing.T) {
	w := New()
	gen := NewObjectIDGenerator()

	var wg sync.WaitGroup
	pairs := make(chan [2]uint32, 100)
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			exit, entrance := newPair(gen.NextNpcID(), gen.NextNpcID(), 1)
			if err := w.AddPortalPair(exit, entrance); err != nil {
				t.Error(err)
				return
			}
			pairs <- [2]uint32{exit.ObjectID(), entrance.ObjectID()}
		}()
	}
	wg.Wait()
	close(pairs)

	for ids := range pairs {
		_, exitOK := w.GetPortal(ids[0])
		_, entranceOK := w.GetPortal(ids[1])
		assert.True(t, exitOK && entranceOK)
	}
	assert.Equal(t, 200, w.ObjectCount())
}

func TestWorld_Doodad(t *testing.T) {
	w := New()
	d := model.NewDoodad(0x30000001, 1, "Telescope", model.Location{}, 0)

	require.NoError(t, w.AddDoodad(d))
	got, ok := w.GetDoodad(d.ObjectID())
	require.True(t, ok)
	assert.Same(t, d, got)
}
