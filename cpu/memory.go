package cpu

const (
	MEMORY_SIZE    = 256  // Bytes of addressable memory.
	REGISTER_COUNT = 8    // General purpose registers.
	REG_SP         = 7    // Register index of the stack pointer.
	REG_INDEX_MASK = 0x7  // Mask of the register index in an operand byte.
	SP_INIT        = 0xf4 // Stack pointer value for an empty stack.
)

// Memory is the flat, byte addressable memory. Addresses are 8 bits, so
// every access is in range and address arithmetic wraps modulo 256.
type Memory [MEMORY_SIZE]byte

// Read returns the byte at an address.
func (mem *Memory) Read(addr uint8) byte {
	return mem[addr]
}

// Write stores a byte at an address.
func (mem *Memory) Write(addr uint8, value byte) {
	mem[addr] = value
}

// Clear zeros all of memory.
func (mem *Memory) Clear() {
	clear(mem[:])
}

// Load copies a program image into memory, starting at address 0.
func (mem *Memory) Load(data []byte) (err error) {
	if len(data) > len(mem) {
		err = ErrProgramTooLarge
		return
	}

	copy(mem[:], data)

	return
}

// Registers is the general purpose register bank.
type Registers [REGISTER_COUNT]byte

// Reset zeros the registers, and sets the stack pointer to an empty stack.
func (reg *Registers) Reset() {
	clear(reg[:])
	reg[REG_SP] = SP_INIT
}
