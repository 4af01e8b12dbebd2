package cpu

// Alu performs reg[a] = reg[a] <op> reg[b]. Results are truncated to
// 8 bits, so all arithmetic is modulo 256.
func (cpu *Cpu) Alu(op CodeAluOp, reg_a, reg_b byte) (err error) {
	a := &cpu.Register[reg_a&REG_INDEX_MASK]
	b := cpu.Register[reg_b&REG_INDEX_MASK]

	switch op {
	case ALU_OP_ADD:
		*a += b
	case ALU_OP_SUB:
		*a -= b
	case ALU_OP_MUL:
		*a *= b
	default:
		err = ErrAluUnsupported
	}

	return
}
