package serverpackets

import "github.com/udisondev/portalgate/internal/gameserver/packet"

// TransferTelescopeToggled switches the transfer-telescope view on the client.
type TransferTelescopeToggled struct {
	Enabled bool
	Range   float32
}

// Write serializes the TransferTelescopeToggled packet.
func (p *TransferTelescopeToggled) Write() ([]byte, error) {
	w := packet.NewWriter(7)
	w.WriteShort(int16(OpcodeTransferTelescopeToggled))
	w.WriteBool(p.Enabled)
	w.WriteFloat(p.Range)
	return w.Bytes(), nil
}
