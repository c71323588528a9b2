package clientpackets

import (
	"fmt"

	"github.com/udisondev/portalgate/internal/gameserver/packet"
)

// RequestDeletePortal removes a booked portal from the private or public book.
//
// Packet structure:
//   - kind (byte) — 1 = public book, anything else = private
//   - id (uint32) — booked portal id
type RequestDeletePortal struct {
	Kind byte
	ID   uint32
}

// ParseRequestDeletePortal parses RequestDeletePortal. Opcode already stripped.
func ParseRequestDeletePortal(data []byte) (*RequestDeletePortal, error) {
	r := packet.NewReader(data)

	kind, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("reading book kind: %w", err)
	}

	id, err := r.ReadUInt()
	if err != nil {
		return nil, fmt.Errorf("reading portal id: %w", err)
	}

	return &RequestDeletePortal{Kind: kind, ID: id}, nil
}
