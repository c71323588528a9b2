package clientpackets

// C2S opcodes. Two bytes, LE, stripped before Parse*.
const (
	OpcodeRequestEnterWorld        uint16 = 0x0060
	OpcodeRequestOpenPortal        uint16 = 0x0061
	OpcodeRequestUsePortal         uint16 = 0x0062
	OpcodeRequestDeletePortal      uint16 = 0x0063
	OpcodeRequestDoodadInteraction uint16 = 0x0064
	OpcodeRequestStopTelescope     uint16 = 0x0065
	OpcodeRequestBookPortal        uint16 = 0x0066
)
