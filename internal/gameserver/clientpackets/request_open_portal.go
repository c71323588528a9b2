package clientpackets

import (
	"fmt"

	"github.com/udisondev/portalgate/internal/gameserver/packet"
)

// RequestOpenPortal is sent when a player casts the open-portal effect on one
// of their booked portals.
//
// Packet structure:
//   - interactionID (uint32) — booked portal id
type RequestOpenPortal struct {
	InteractionID uint32
}

// ParseRequestOpenPortal parses RequestOpenPortal. Opcode already stripped.
func ParseRequestOpenPortal(data []byte) (*RequestOpenPortal, error) {
	r := packet.NewReader(data)

	id, err := r.ReadUInt()
	if err != nil {
		return nil, fmt.Errorf("reading interaction id: %w", err)
	}

	return &RequestOpenPortal{InteractionID: id}, nil
}
