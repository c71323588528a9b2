package gameserver

import (
	"log/slog"
	"sync"

	"github.com/udisondev/portalgate/internal/gameserver/serverpackets"
	"github.com/udisondev/portalgate/internal/model"
)

// Conn is the transport side of a session: one encoded packet per call.
type Conn interface {
	Send(data []byte) error
}

// ZonePlayers lists players by zone.
type ZonePlayers interface {
	PlayersInZone(zoneID uint32) []*model.Player
}

// Session binds an in-game player to its connection.
type Session struct {
	player *model.Player
	conn   Conn
}

// Player returns the session's character.
func (s *Session) Player() *model.Player {
	return s.player
}

// ClientManager is the registry of in-game sessions keyed by player object id.
// Thread-safe for concurrent access.
type ClientManager struct {
	mu       sync.RWMutex
	sessions map[uint32]*Session

	players        ZonePlayers
	broadcastRange float64 // 0 = whole zone
}

// NewClientManager creates a client manager. broadcastRange limits
// BroadcastAround to players within that distance of the source.
func NewClientManager(players ZonePlayers, broadcastRange float32) *ClientManager {
	return &ClientManager{
		sessions:       make(map[uint32]*Session, 256),
		players:        players,
		broadcastRange: float64(broadcastRange),
	}
}

// Register binds player to conn, replacing any previous session of that player.
func (cm *ClientManager) Register(player *model.Player, conn Conn) *Session {
	s := &Session{player: player, conn: conn}

	cm.mu.Lock()
	cm.sessions[player.ObjectID()] = s
	n := len(cm.sessions)
	cm.mu.Unlock()

	sessionsActive.Set(float64(n))
	return s
}

// Unregister removes the player's session.
func (cm *ClientManager) Unregister(objectID uint32) bool {
	cm.mu.Lock()
	_, ok := cm.sessions[objectID]
	delete(cm.sessions, objectID)
	n := len(cm.sessions)
	cm.mu.Unlock()

	sessionsActive.Set(float64(n))
	return ok
}

// Session returns the session of an in-game player.
func (cm *ClientManager) Session(objectID uint32) (*Session, bool) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	s, ok := cm.sessions[objectID]
	return s, ok
}

// Count returns number of registered sessions.
func (cm *ClientManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.sessions)
}

// SendPacket encodes pkt and delivers it to one player. Offline players
// and encode/send failures are logged and dropped.
func (cm *ClientManager) SendPacket(objectID uint32, pkt serverpackets.Packet) {
	s, ok := cm.Session(objectID)
	if !ok {
		slog.Debug("send packet: no session", "objectID", objectID)
		return
	}

	data, err := pkt.Write()
	if err != nil {
		slog.Error("failed to write packet", "packet", packetName(pkt), "error", err)
		packetsDropped.WithLabelValues(dropEncode).Inc()
		return
	}
	cm.deliver(s, data, pkt)
}

// BroadcastAround delivers pkt to players in the source's zone within the
// broadcast range. The packet is encoded once.
func (cm *ClientManager) BroadcastAround(source model.Actor, pkt serverpackets.Packet, includeSelf bool) {
	data, err := pkt.Write()
	if err != nil {
		slog.Error("failed to write packet", "packet", packetName(pkt), "error", err)
		packetsDropped.WithLabelValues(dropEncode).Inc()
		return
	}

	for _, p := range cm.players.PlayersInZone(source.Location().ZoneID) {
		if p.ObjectID() == source.ObjectID() && !includeSelf {
			continue
		}
		if !model.WithinRange(source, p, cm.broadcastRange) {
			continue
		}
		if s, ok := cm.Session(p.ObjectID()); ok {
			cm.deliver(s, data, pkt)
		}
	}
}

func (cm *ClientManager) deliver(s *Session, data []byte, pkt serverpackets.Packet) {
	if err := s.conn.Send(data); err != nil {
		slog.Warn("failed to send packet to client",
			"character", s.player.Name(),
			"packet", packetName(pkt),
			"error", err)
		packetsDropped.WithLabelValues(dropSend).Inc()
		return
	}
	packetsSent.Inc()
}
