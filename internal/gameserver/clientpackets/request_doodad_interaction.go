package clientpackets

import (
	"fmt"

	"github.com/udisondev/portalgate/internal/gameserver/packet"
)

// RequestDoodadInteraction — игрок использует doodad.
//
// Packet structure:
//   - objectID (uint32) — doodad object id
//   - skillID (uint32) — skill that triggered the use, 0 for a plain use
type RequestDoodadInteraction struct {
	ObjectID uint32
	SkillID  uint32
}

// ParseRequestDoodadInteraction parses RequestDoodadInteraction. Opcode already stripped.
func ParseRequestDoodadInteraction(data []byte) (*RequestDoodadInteraction, error) {
	r := packet.NewReader(data)

	objID, err := r.ReadUInt()
	if err != nil {
		return nil, fmt.Errorf("reading object id: %w", err)
	}
	skillID, err := r.ReadUInt()
	if err != nil {
		return nil, fmt.Errorf("reading skill id: %w", err)
	}

	return &RequestDoodadInteraction{ObjectID: objID, SkillID: skillID}, nil
}
