// Package cpu implements the processor and assembler for the LS-8 system.
//
// The CPU consists of a program counter (PC), a 256 byte flat memory, eight
// 8-bit general-purpose registers (r0-r7, with r7 reserved as the stack
// pointer), and an ALU. Instructions are one opcode byte followed by up to
// two operand bytes; the two high bits of the opcode encode the instruction
// length, and bit 4 marks instructions that set the PC themselves.
//
// Programs are loaded either from the .ls8 binary text format, or assembled
// from mnemonic source supporting labels, equates, and compile-time
// expression evaluation.
package cpu
