package serverpackets

// S2C opcodes of the portal/doodad packets. Two bytes, LE, precede every body.
const (
	OpcodeItemTaskSuccess          uint16 = 0x0050
	OpcodeTeleportUnit             uint16 = 0x00C4
	OpcodeTransferTelescopeToggled uint16 = 0x01A2
)

// Packet is anything that can be serialised for the client.
type Packet interface {
	Write() ([]byte, error)
}
