package cpu

// The stack lives in memory, growing downward from SP_INIT. The stack
// pointer always addresses the most recently pushed value.

// Push decrements the stack pointer, then stores the value at it.
func (cpu *Cpu) Push(value byte) {
	cpu.Register[REG_SP]--
	cpu.Memory.Write(cpu.Register[REG_SP], value)
}

// Pop loads the value at the stack pointer, then increments it.
func (cpu *Cpu) Pop() (value byte) {
	value = cpu.Memory.Read(cpu.Register[REG_SP])
	cpu.Register[REG_SP]++
	return
}

// Peek returns the value on top of the stack, if any.
func (cpu *Cpu) Peek() (value byte, ok bool) {
	if cpu.StackEmpty() {
		return
	}

	return cpu.Memory.Read(cpu.Register[REG_SP]), true
}

// StackEmpty returns true when nothing has been pushed.
func (cpu *Cpu) StackEmpty() bool {
	return cpu.Register[REG_SP] == SP_INIT
}

// StackDepth returns the number of bytes on the stack.
func (cpu *Cpu) StackDepth() int {
	return int(uint8(SP_INIT - cpu.Register[REG_SP]))
}
