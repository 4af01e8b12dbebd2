package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlu(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()

	for x := range 256 {
		for _, y := range []int{0, 1, 2, 3, 0x10, 0x7f, 0x80, 0xfe, 0xff} {
			for _, op := range []CodeAluOp{ALU_OP_ADD, ALU_OP_SUB, ALU_OP_MUL} {
				cpu.Register[0] = byte(x)
				cpu.Register[1] = byte(y)
				assert.NoError(cpu.Alu(op, 0, 1))

				var expected int
				switch op {
				case ALU_OP_ADD:
					expected = (x + y) % 256
				case ALU_OP_SUB:
					expected = (x - y + 256) % 256
				case ALU_OP_MUL:
					expected = (x * y) % 256
				}
				assert.Equal(byte(expected), cpu.Register[0], "%v %d %d", op, x, y)
				assert.Equal(byte(y), cpu.Register[1])
			}
		}
	}
}

func TestAluSameRegister(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Register[4] = 12

	assert.NoError(cpu.Alu(ALU_OP_MUL, 4, 4))
	assert.Equal(byte(144), cpu.Register[4])
}

func TestAluUnsupported(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Register[0] = 3
	cpu.Register[1] = 4

	err := cpu.Alu(CodeAluOp(7), 0, 1)
	assert.ErrorIs(err, ErrAluUnsupported)
	assert.Equal(byte(3), cpu.Register[0])
}

func TestAluOpString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("add", ALU_OP_ADD.String())
	assert.Equal("sub", ALU_OP_SUB.String())
	assert.Equal("mul", ALU_OP_MUL.String())
	assert.Equal("CodeAluOp(9)", CodeAluOp(9).String())
}
