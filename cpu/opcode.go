package cpu

import (
	"fmt"
	"strings"
)

// CodeOp is an instruction opcode byte.
type CodeOp uint8

const (
	OP_HLT  = CodeOp(0b00000001) // HLT
	OP_RET  = CodeOp(0b00010001) // RET
	OP_PUSH = CodeOp(0b01000101) // PUSH
	OP_POP  = CodeOp(0b01000110) // POP
	OP_PRN  = CodeOp(0b01000111) // PRN
	OP_CALL = CodeOp(0b01010000) // CALL
	OP_LDI  = CodeOp(0b10000010) // LDI
	OP_ADD  = CodeOp(0b10100000) // ADD
	OP_SUB  = CodeOp(0b10100001) // SUB
	OP_MUL  = CodeOp(0b10100010) // MUL
)

// Opcode bit fields.
const (
	OP_LENGTH_SHIFT = 6              // Instruction length minus one, in bits 7-6.
	OP_FLAG_ALU     = CodeOp(1 << 5) // Instruction is performed by the ALU.
	OP_FLAG_SETS_PC = CodeOp(1 << 4) // Instruction sets the PC itself.
	OP_ALU_OP_MASK  = CodeOp(0b1111) // ALU operation selector.
	OPERANDS_MAX    = 2              // Most operand bytes of any instruction.
)

// Length returns the total instruction length in bytes, including the opcode.
func (op CodeOp) Length() int {
	return int(op>>OP_LENGTH_SHIFT) + 1
}

// SelfAdvancing returns true if the instruction sets the PC, instead of
// the PC being advanced past the instruction.
func (op CodeOp) SelfAdvancing() bool {
	return (op & OP_FLAG_SETS_PC) != 0
}

// IsAlu returns true if the instruction is an ALU operation.
func (op CodeOp) IsAlu() bool {
	return (op & OP_FLAG_ALU) != 0
}

// AluOp returns the ALU operation selected by an ALU instruction.
func (op CodeOp) AluOp() CodeAluOp {
	return CodeAluOp(op & OP_ALU_OP_MASK)
}

// Valid returns true if the opcode is in the instruction set.
func (op CodeOp) Valid() bool {
	switch op {
	case OP_HLT, OP_RET, OP_PUSH, OP_POP, OP_PRN, OP_CALL, OP_LDI, OP_ADD, OP_SUB, OP_MUL:
		return true
	}
	return false
}

// CodeArg is the kind of an operand byte.
type CodeArg int

const (
	ARG_REG = CodeArg(0) // Register index.
	ARG_IMM = CodeArg(1) // Immediate value.
)

// Args returns the operand kinds of the instruction.
func (op CodeOp) Args() []CodeArg {
	switch op {
	case OP_HLT, OP_RET:
		return nil
	case OP_PUSH, OP_POP, OP_PRN, OP_CALL:
		return []CodeArg{ARG_REG}
	case OP_LDI:
		return []CodeArg{ARG_REG, ARG_IMM}
	case OP_ADD, OP_SUB, OP_MUL:
		return []CodeArg{ARG_REG, ARG_REG}
	}
	return nil
}

// String returns the mnemonic of the opcode.
func (op CodeOp) String() string {
	switch op {
	case OP_HLT:
		return "HLT"
	case OP_RET:
		return "RET"
	case OP_PUSH:
		return "PUSH"
	case OP_POP:
		return "POP"
	case OP_PRN:
		return "PRN"
	case OP_CALL:
		return "CALL"
	case OP_LDI:
		return "LDI"
	case OP_ADD:
		return "ADD"
	case OP_SUB:
		return "SUB"
	case OP_MUL:
		return "MUL"
	}
	return fmt.Sprintf("CodeOp(0b%08b)", uint8(op))
}

// CodeAluOp is an ALU operation type.
type CodeAluOp int

//go:generate go tool stringer -linecomment -type=CodeAluOp
const (
	ALU_OP_ADD = CodeAluOp(0) // add
	ALU_OP_SUB = CodeAluOp(1) // sub
	ALU_OP_MUL = CodeAluOp(2) // mul
)

// Code is a single decoded instruction. Operand bytes beyond the
// instruction length are ignored.
type Code struct {
	Op       CodeOp
	Operands [OPERANDS_MAX]byte
}

// MakeCode creates an instruction from an opcode and its operands.
func MakeCode(op CodeOp, operands ...byte) (code Code) {
	code.Op = op
	copy(code.Operands[:], operands)
	return
}

// Args returns the operand bytes used by the instruction.
func (code Code) Args() []byte {
	n := min(code.Op.Length()-1, OPERANDS_MAX)
	return code.Operands[:n]
}

// Bytes returns the encoded instruction.
func (code Code) Bytes() []byte {
	return append([]byte{byte(code.Op)}, code.Args()...)
}

// String returns the assembly language representation of this instruction.
func (code Code) String() string {
	if !code.Op.Valid() {
		return code.Op.String()
	}

	var args []string
	for n, kind := range code.Op.Args() {
		switch kind {
		case ARG_REG:
			args = append(args, fmt.Sprintf("R%d", code.Operands[n]&REG_INDEX_MASK))
		case ARG_IMM:
			args = append(args, fmt.Sprintf("%d", code.Operands[n]))
		}
	}

	if len(args) == 0 {
		return code.Op.String()
	}

	return fmt.Sprintf("%v %v", code.Op.String(), strings.Join(args, ","))
}
