package cpu

// Command is an assembler instruction or directive.
type Command int

//go:generate go tool stringer -linecomment -type=Command
const (
	CMD_SUBLEQ = Command(1) // subleq
	CMD_DATA   = Command(2) // .data
)

// Memory geometry and reserved addresses.
const (
	ADDRESS_MIN    = 0
	ADDRESS_MAX    = 255
	ADDRESS_COUNT  = ADDRESS_MAX + 1
	ADDRESS_INPUT  = 253 // Reads consume a value from the input port.
	ADDRESS_OUTPUT = 254 // Writes produce a value on the output port.
	ADDRESS_HALT   = 255 // Jumping here stops execution.

	VALUE_MIN = -128
	VALUE_MAX = 127

	SUBLEQ_SIZE = 3 // Bytes per subleq instruction.
	DATA_SIZE   = 1 // Bytes per .data directive.
)

// commandMap maps source names to commands.
var commandMap = map[string]Command{
	CMD_SUBLEQ.String(): CMD_SUBLEQ,
	CMD_DATA.String():   CMD_DATA,
}

// Size returns the number of bytes the command emits.
func (cmd Command) Size() int {
	switch cmd {
	case CMD_SUBLEQ:
		return SUBLEQ_SIZE
	case CMD_DATA:
		return DATA_SIZE
	}
	return 0
}

// Operands returns the minimum and maximum operand count for the command.
func (cmd Command) Operands() (least, most int) {
	switch cmd {
	case CMD_SUBLEQ:
		return 2, 3
	case CMD_DATA:
		return 1, 1
	}
	return
}

// SignedToUnsigned encodes a signed value as its two's-complement byte.
func SignedToUnsigned(value int) uint8 {
	return uint8(value & 0xff)
}

// UnsignedToSigned decodes a two's-complement byte.
func UnsignedToSigned(value uint8) int8 {
	signed := int(value & 0x7f)
	if value&0x80 != 0 {
		signed -= 128
	}
	return int8(signed)
}
