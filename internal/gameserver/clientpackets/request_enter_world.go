package clientpackets

import (
	"fmt"

	"github.com/udisondev/portalgate/internal/gameserver/packet"
)

// RequestEnterWorld is the first packet of a connection: it selects the
// character the session plays.
//
// Packet structure:
//   - characterID (int64)
type RequestEnterWorld struct {
	CharacterID int64
}

// ParseRequestEnterWorld parses RequestEnterWorld. Opcode already stripped.
func ParseRequestEnterWorld(data []byte) (*RequestEnterWorld, error) {
	r := packet.NewReader(data)

	charID, err := r.ReadLong()
	if err != nil {
		return nil, fmt.Errorf("reading character id: %w", err)
	}
	if charID <= 0 {
		return nil, fmt.Errorf("invalid character id %d", charID)
	}
	return &RequestEnterWorld{CharacterID: charID}, nil
}
