package cpu

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
)

// Opcode represents a line of program source with its location and the
// bytes it generated.
type Opcode struct {
	LineNo    int
	Addr      int
	Words     []string
	Bytes     []byte
	LinkLabel string // Label to resolve into Bytes[LinkIndex].
	LinkIndex int
}

type Program struct {
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
	Index int
}

// Size returns the size of the program image in bytes.
func (prog *Program) Size() (size int) {
	for _, op := range prog.Opcodes {
		size += len(op.Bytes)
	}

	return
}

func (prog *Program) Debug(addr uint8) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if int(addr) >= op.Addr && int(addr) < op.Addr+len(op.Bytes) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  int(addr) - op.Addr,
			}
			break
		}
	}

	return
}

// Binary returns the memory image of the program.
func (prog *Program) Binary() (bins []byte) {
	for _, data := range prog.Bytes() {
		bins = append(bins, data)
	}

	return
}

// Bytes iterates over every byte of the program with its address.
func (prog *Program) Bytes() iter.Seq2[uint8, byte] {
	return func(yield func(addr uint8, data byte) bool) {
		for _, op := range prog.Opcodes {
			for n, data := range op.Bytes {
				if !yield(uint8(op.Addr+n), data) {
					return
				}
			}
		}
	}
}

// Listing writes the program in the .ls8 text format, one binary byte per
// line, annotated with the source of each opcode.
func (prog *Program) Listing(out io.Writer) (err error) {
	for _, op := range prog.Opcodes {
		for n, data := range op.Bytes {
			line := fmt.Sprintf("%08b", data)
			if n == 0 && len(op.Words) > 0 {
				line += " # " + strings.Join(op.Words, " ")
			}
			_, err = fmt.Fprintln(out, line)
			if err != nil {
				return
			}
		}
	}

	return
}

// Load parses the .ls8 text format into a Program.
//
// Each line holds one byte as a binary literal, optionally followed by a
// '#' comment. Blank and comment-only lines are skipped.
func Load(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			prog = nil
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	prog = &Program{}
	addr := 0

	for scanner.Scan() {
		line = scanner.Text()
		lineno += 1

		command := strings.TrimSpace(strings.Split(line, "#")[0])
		if len(command) == 0 {
			continue
		}

		var value uint64
		value, err = strconv.ParseUint(strings.TrimPrefix(command, "0b"), 2, 8)
		if err != nil {
			err = ErrParseBinary(command)
			return
		}

		if addr >= MEMORY_SIZE {
			err = ErrProgramTooLarge
			return
		}

		prog.Opcodes = append(prog.Opcodes, Opcode{
			LineNo: lineno,
			Addr:   addr,
			Bytes:  []byte{byte(value)},
		})
		addr += 1
	}

	err = scanner.Err()

	return
}
