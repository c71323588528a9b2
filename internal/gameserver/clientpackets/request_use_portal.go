package clientpackets

import (
	"fmt"

	"github.com/udisondev/portalgate/internal/gameserver/packet"
)

// RequestUsePortal — игрок активирует живой портал (вход).
//
// Packet structure:
//   - objectID (uint32) — portal unit object id
type RequestUsePortal struct {
	ObjectID uint32
}

// ParseRequestUsePortal parses RequestUsePortal. Opcode already stripped.
func ParseRequestUsePortal(data []byte) (*RequestUsePortal, error) {
	r := packet.NewReader(data)

	objID, err := r.ReadUInt()
	if err != nil {
		return nil, fmt.Errorf("reading object id: %w", err)
	}

	return &RequestUsePortal{ObjectID: objID}, nil
}
