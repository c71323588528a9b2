package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPlayer(t *testing.T) {
	loc := NewLocation(100, 200, 10, 179)
	p := NewPlayer(0x10000001, 5001, "Aranzeb", loc, 101)

	assert.Equal(t, uint32(0x10000001), p.ObjectID())
	assert.Equal(t, int64(5001), p.CharacterID())
	assert.Equal(t, uint32(101), p.FactionID())
	assert.Equal(t, loc, p.Location())
	assert.NotNil(t, p.Inventory())
	assert.Equal(t, int64(5001), p.Inventory().OwnerID())
	assert.NotNil(t, p.Portals())
	assert.False(t, p.DisabledSetPosition())

	p.SetDisabledSetPosition(true)
	assert.True(t, p.DisabledSetPosition())
}

func TestPlayer_ImplementsActor(t *testing.T) {
	var _ Actor = NewPlayer(1, 1, "a", Location{}, 0)
	var _ Actor = NewDoodad(2, 3, "b", Location{}, 0)
	var _ Actor = NewPortal(3, PortalParams{})
}
