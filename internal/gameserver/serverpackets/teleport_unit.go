package serverpackets

import "github.com/udisondev/portalgate/internal/gameserver/packet"

// TeleportUnit moves a unit to a new position. Broadcast to the unit and
// everyone around it when a portal is used.
//
// Layout: opcode(u16) reason(u8) errorMessage(u16) x y z(f32) rotZ(i8)
type TeleportUnit struct {
	Reason       byte
	ErrorMessage uint16
	X, Y, Z      float32
	RotZ         int8
}

// Write serializes the TeleportUnit packet.
func (p *TeleportUnit) Write() ([]byte, error) {
	w := packet.NewWriter(18)
	w.WriteShort(int16(OpcodeTeleportUnit))
	if err := w.WriteByte(p.Reason); err != nil {
		return nil, err
	}
	w.WriteShort(int16(p.ErrorMessage))
	w.WriteFloat(p.X)
	w.WriteFloat(p.Y)
	w.WriteFloat(p.Z)
	if err := w.WriteByte(byte(p.RotZ)); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}
