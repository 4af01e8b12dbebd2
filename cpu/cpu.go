package cpu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"maps"
	"os"
	"strings"

	"go.uber.org/zap"
)

var _cpu_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("%v", MEMORY_SIZE),
	"SP_INIT":     fmt.Sprintf("0x%x", SP_INIT),
	"REG_SP":      fmt.Sprintf("%v", REG_SP),
}

// Cpu is the simulation context for the LS-8 processor.
type Cpu struct {
	SkipInvalid bool // If set, invalid opcodes are skipped instead of faulting.

	Memory   Memory    // Program and stack memory.
	Register Registers // Register bank.
	Pc       uint8     // Current program counter.
	Running  bool      // Cleared by HLT, or by a fault.

	Output io.Writer // Destination of PRN.

	Ticks int // Instructions executed since reset.

	logger *zap.Logger
}

// CpuOpt configures a Cpu.
type CpuOpt func(*Cpu) *Cpu

// LoggerOpt sets the logger used for CPU diagnostics.
func LoggerOpt(l *zap.Logger) CpuOpt {
	return func(cpu *Cpu) *Cpu {
		cpu.logger = l
		return cpu
	}
}

// OutputOpt sets the writer PRN prints to.
func OutputOpt(w io.Writer) CpuOpt {
	return func(cpu *Cpu) *Cpu {
		cpu.Output = w
		return cpu
	}
}

// SkipInvalidOpt selects skipping, rather than faulting on, invalid opcodes.
func SkipInvalidOpt(skip bool) CpuOpt {
	return func(cpu *Cpu) *Cpu {
		cpu.SkipInvalid = skip
		return cpu
	}
}

// NewCpu creates a new CPU in its power-on state.
func NewCpu(opts ...CpuOpt) (cpu *Cpu) {
	cpu = &Cpu{
		Output: os.Stdout,
		logger: zap.L(),
	}

	for _, opt := range opts {
		cpu = opt(cpu)
	}

	cpu.logger = cpu.logger.Named("cpu")

	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Clears memory.
// - Clears the registers, and empties the stack.
// - Zeros the tick counter.
// - Sets the PC to 0, and starts running.
func (cpu *Cpu) Reset() {
	cpu.logger.Debug("reset")

	cpu.Memory.Clear()
	cpu.Register.Reset()
	cpu.Pc = 0
	cpu.Running = true
	cpu.Ticks = 0
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 5s: %02X\n", "pc", cpu.Pc)
	text += fmt.Sprintf("% 5s: %v\n", "run", cpu.Running)
	for n, val := range cpu.Register {
		name := fmt.Sprintf("r%d", n)
		if n == REG_SP {
			name = "sp"
		}
		text += fmt.Sprintf("% 5s: %02X\n", name, val)
	}

	stack := "--"
	if val, ok := cpu.Peek(); ok {
		stack = fmt.Sprintf("%02X", val)
	}
	text += fmt.Sprintf("% 5s: %v\n", "stack", stack)

	return
}

// Trace returns a single line summary of the CPU: the PC, the three bytes
// at the PC, and all registers.
func (cpu *Cpu) Trace() string {
	var sb strings.Builder

	pc := cpu.Pc
	fmt.Fprintf(&sb, "TRACE: %02X | %02X %02X %02X |", pc,
		cpu.Memory.Read(pc), cpu.Memory.Read(pc+1), cpu.Memory.Read(pc+2))
	for _, val := range cpu.Register {
		fmt.Fprintf(&sb, " %02X", val)
	}

	return sb.String()
}

// FetchCode fetches the instruction at the PC. Both operand bytes are
// always read, whether the instruction uses them or not.
func (cpu *Cpu) FetchCode() (code Code, err error) {
	if !cpu.Running {
		err = ErrHalted
		return
	}

	code.Op = CodeOp(cpu.Memory.Read(cpu.Pc))
	for n := range code.Operands {
		code.Operands[n] = cpu.Memory.Read(cpu.Pc + uint8(n+1))
	}

	return
}

// Tick executes a single CPU instruction cycle.
func (cpu *Cpu) Tick() (err error) {
	code, err := cpu.FetchCode()
	if err != nil {
		return
	}

	err = cpu.Execute(code)

	return
}

// Run ticks the CPU until it halts, faults, or the context is done.
func (cpu *Cpu) Run(ctx context.Context) (err error) {
	for cpu.Running {
		err = ctx.Err()
		if err != nil {
			return
		}

		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// Execute executes a single decoded instruction at the current PC.
// Any error is fatal: the CPU stops running.
func (cpu *Cpu) Execute(code Code) (err error) {
	defer func() {
		if err != nil {
			cpu.Running = false
			err = errors.Join(ErrOpcode(code), err)
		}
	}()

	cpu.logger.Debug("execute",
		zap.Uint8("pc", cpu.Pc),
		zap.Stringer("code", code),
	)

	// Implicit advance past the instruction. Self advancing
	// instructions replace this with their own target.
	next_pc := cpu.Pc + uint8(code.Op.Length())

	a := code.Operands[0]
	b := code.Operands[1]

	switch code.Op {
	case OP_HLT:
		cpu.Running = false
		next_pc = cpu.Pc
		cpu.logger.Info("halt", zap.Uint8("pc", cpu.Pc), zap.Int("ticks", cpu.Ticks+1))
	case OP_LDI:
		cpu.Register[a&REG_INDEX_MASK] = b
	case OP_PRN:
		_, err = fmt.Fprintf(cpu.Output, "%d\n", cpu.Register[a&REG_INDEX_MASK])
	case OP_ADD, OP_SUB, OP_MUL:
		err = cpu.Alu(code.Op.AluOp(), a, b)
	case OP_PUSH:
		// SP moves before the operand is read, so PUSH SP stores the new SP.
		cpu.Register[REG_SP]--
		cpu.Memory.Write(cpu.Register[REG_SP], cpu.Register[a&REG_INDEX_MASK])
	case OP_POP:
		// The operand is written before SP moves, so POP SP yields mem[SP]+1.
		cpu.Register[a&REG_INDEX_MASK] = cpu.Memory.Read(cpu.Register[REG_SP])
		cpu.Register[REG_SP]++
	case OP_CALL:
		cpu.Push(next_pc)
		next_pc = cpu.Register[a&REG_INDEX_MASK]
	case OP_RET:
		next_pc = cpu.Pop()
	default:
		if !cpu.SkipInvalid {
			err = ErrOpcodeInvalid
			return
		}
		cpu.logger.Warn("skipping invalid opcode",
			zap.Uint8("pc", cpu.Pc),
			zap.Uint8("opcode", uint8(code.Op)),
		)
		next_pc = cpu.Pc + 1
	}

	if err != nil {
		return
	}

	cpu.Pc = next_pc
	cpu.Ticks += 1

	return
}
