package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortalBook_AddGet(t *testing.T) {
	book := NewPortalBook()
	book.Add(BookedPortal{ID: 7, Name: "Marianople", ZoneID: 179}, true)
	book.Add(BookedPortal{ID: 9, Name: "Two Crowns", ZoneID: 102}, false)

	p, ok := book.GetPortalInfo(7)
	require.True(t, ok)
	assert.Equal(t, "Marianople", p.Name)

	p, ok = book.GetPortalInfo(9)
	require.True(t, ok)
	assert.Equal(t, uint32(102), p.ZoneID)

	_, ok = book.GetPortalInfo(100)
	assert.False(t, ok)
	assert.Equal(t, 2, book.Len())
}

func TestPortalBook_PrivateShadowsPublic(t *testing.T) {
	book := NewPortalBook()
	book.Add(BookedPortal{ID: 1, Name: "public"}, false)
	book.Add(BookedPortal{ID: 1, Name: "private"}, true)

	p, ok := book.GetPortalInfo(1)
	require.True(t, ok)
	assert.Equal(t, "private", p.Name)
}

func TestPortalBook_Remove(t *testing.T) {
	book := NewPortalBook()
	book.Add(BookedPortal{ID: 1}, true)
	book.Add(BookedPortal{ID: 2}, false)

	assert.False(t, book.Remove(1, false), "ID 1 is not in the public book")
	assert.True(t, book.Remove(1, true))
	assert.True(t, book.Remove(2, false))
	assert.Equal(t, 0, book.Len())
}

func TestPortalBook_Sorted(t *testing.T) {
	book := NewPortalBook()
	for _, id := range []uint32{5, 1, 3} {
		book.Add(BookedPortal{ID: id}, true)
	}

	got := book.Private()
	require.Len(t, got, 3)
	assert.Equal(t, []uint32{1, 3, 5}, []uint32{got[0].ID, got[1].ID, got[2].ID})
	assert.Empty(t, book.Public())
}

func TestPortalBook_NextID(t *testing.T) {
	book := NewPortalBook()
	assert.Equal(t, uint32(1), book.NextID())

	book.Add(BookedPortal{ID: 4}, true)
	book.Add(BookedPortal{ID: 9}, false)
	assert.Equal(t, uint32(10), book.NextID(), "public IDs count too")

	book.Remove(9, false)
	assert.Equal(t, uint32(5), book.NextID())
}
