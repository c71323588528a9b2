package clientpackets

import (
	"fmt"

	"github.com/udisondev/portalgate/internal/gameserver/packet"
)

// RequestBookPortal records the character's current position in a portal book.
//
// Packet structure:
//   - kind (byte) — 1 = public book, anything else = private
//   - subZoneID (uint32) — sub-zone the client reports for its position, 0 if none
//   - name (string) — UTF-16LE, null-terminated
type RequestBookPortal struct {
	Kind      byte
	SubZoneID uint32
	Name      string
}

// ParseRequestBookPortal parses RequestBookPortal. Opcode already stripped.
func ParseRequestBookPortal(data []byte) (*RequestBookPortal, error) {
	r := packet.NewReader(data)

	kind, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("reading book kind: %w", err)
	}

	subZoneID, err := r.ReadUInt()
	if err != nil {
		return nil, fmt.Errorf("reading sub-zone id: %w", err)
	}

	name, err := r.ReadString()
	if err != nil {
		return nil, fmt.Errorf("reading portal name: %w", err)
	}

	return &RequestBookPortal{Kind: kind, SubZoneID: subZoneID, Name: name}, nil
}
