package gameserver

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/udisondev/portalgate/internal/config"
	"github.com/udisondev/portalgate/internal/gameserver/clientpackets"
	"github.com/udisondev/portalgate/internal/gameserver/packet"
	"github.com/udisondev/portalgate/internal/gameserver/serverpackets"
	"github.com/udisondev/portalgate/internal/model"
	"github.com/udisondev/portalgate/internal/world"
)

var errNoCharacter = errors.New("no such character")

type fakeCharacters struct {
	ids *world.ObjectIDGenerator

	mu    sync.Mutex
	saved map[int64]int64 // charID → reagent count at save
}

func (c *fakeCharacters) LoadPlayer(_ context.Context, charID int64) (*model.Player, error) {
	if charID != 1 {
		return nil, errNoCharacter
	}
	p := model.NewPlayer(c.ids.NextPlayerID(), charID, "Traveler", model.NewLocation(100, 100, 0, 102), 0)
	item, err := model.NewItem(c.ids.NextItemID(), reagentItem, charID, 5)
	if err != nil {
		return nil, err
	}
	return p, p.Inventory().AddItem(item)
}

func (c *fakeCharacters) Save(_ context.Context, p *model.Player) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.saved == nil {
		c.saved = make(map[int64]int64)
	}
	c.saved[p.CharacterID()] = p.Inventory().CountItems(reagentItem)
	return nil
}

func (c *fakeCharacters) savedCount(charID int64) (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.saved[charID]
	return n, ok
}

// startServer serves the stack on a loopback listener until the test ends.
func startServer(t *testing.T, s *stack) (*fakeCharacters, string) {
	t.Helper()

	chars := &fakeCharacters{ids: s.ids}
	srv := NewServer(config.GameServerConfig{
		ReadTimeout:  5 * time.Second,
		WriteTimeout: time.Second,
	}, s.handler, chars)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("server did not stop")
		}
	})
	return chars, ln.Addr().String()
}

func dial(t *testing.T, addr string) net.Conn {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, conn.SetDeadline(time.Now().Add(5*time.Second)))
	return conn
}

func send(t *testing.T, conn net.Conn, payload []byte) {
	t.Helper()
	frame, err := appendFrame(nil, payload)
	require.NoError(t, err)
	_, err = conn.Write(frame)
	require.NoError(t, err)
}

func receive(t *testing.T, conn net.Conn) uint16 {
	t.Helper()
	payload, err := readFrame(conn, make([]byte, maxFrameSize))
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(payload), 2)
	return binary.LittleEndian.Uint16(payload)
}

func enterWorld(charID int64) []byte {
	return request(clientpackets.OpcodeRequestEnterWorld, func(w *packet.Writer) {
		w.WriteLong(charID)
	})
}

func TestFrame_RoundTrip(t *testing.T) {
	frame, err := appendFrame(nil, []byte{0x61, 0x00, 7, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, []byte{8, 0, 0x61, 0x00, 7, 0, 0, 0}, frame)

	frame, err = appendFrame(frame, nil)
	require.NoError(t, err)

	r := &sliceReader{data: frame}
	buf := make([]byte, maxFrameSize)
	payload, err := readFrame(r, buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x61, 0x00, 7, 0, 0, 0}, payload)

	payload, err = readFrame(r, buf)
	require.NoError(t, err)
	assert.Empty(t, payload)

	_, err = readFrame(&sliceReader{data: []byte{1, 0}}, buf)
	assert.ErrorContains(t, err, "invalid frame length")

	_, err = appendFrame(nil, make([]byte, maxFrameSize))
	assert.ErrorContains(t, err, "too large")
}

type sliceReader struct {
	data []byte
}

func (r *sliceReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestServer_SessionLifecycle(t *testing.T) {
	// registered first, so it runs after the server has stopped
	ignore := goleak.IgnoreCurrent()
	t.Cleanup(func() { goleak.VerifyNone(t, ignore) })

	s := newStack(t)
	chars, addr := startServer(t, s)
	conn := dial(t, addr)

	send(t, conn, enterWorld(1))
	send(t, conn, request(clientpackets.OpcodeRequestOpenPortal, func(w *packet.Writer) {
		w.WriteUInt(7)
	}))
	assert.Equal(t, serverpackets.OpcodeItemTaskSuccess, receive(t, conn))

	var owner uint32
	require.Eventually(t, func() bool {
		for _, p := range s.world.PlayersInZone(102) {
			owner = p.ObjectID()
		}
		return owner != 0 && len(s.world.PortalsOwnedBy(owner)) == 2
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, s.clients.Count())

	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool {
		_, ok := chars.savedCount(1)
		return ok
	}, 2*time.Second, 5*time.Millisecond)
	n, _ := chars.savedCount(1)
	assert.Equal(t, int64(4), n, "spent reagent is saved")
	assert.Empty(t, s.world.PortalsOwnedBy(owner), "portals despawn with the owner")
	assert.Zero(t, s.clients.Count())
}

func TestServer_RejectsDuplicateCharacter(t *testing.T) {
	s := newStack(t)
	_, addr := startServer(t, s)

	first := dial(t, addr)
	send(t, first, enterWorld(1))
	require.Eventually(t, func() bool { return s.clients.Count() == 1 }, time.Second, 5*time.Millisecond)

	second := dial(t, addr)
	send(t, second, enterWorld(1))
	_, err := readFrame(second, make([]byte, maxFrameSize))
	assert.Error(t, err, "second session is closed")
	assert.Equal(t, 1, s.clients.Count())
}

func TestServer_FirstPacketMustEnterWorld(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
	}{
		{"other opcode", request(clientpackets.OpcodeRequestUsePortal, func(w *packet.Writer) { w.WriteUInt(1) })},
		{"unknown character", enterWorld(2)},
		{"too short", []byte{0x60}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStack(t)
			_, addr := startServer(t, s)
			conn := dial(t, addr)

			send(t, conn, tt.payload)
			_, err := readFrame(conn, make([]byte, maxFrameSize))
			assert.Error(t, err)
			assert.Zero(t, s.clients.Count())
		})
	}
}
