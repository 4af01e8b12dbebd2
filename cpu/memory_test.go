package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	for n := range MEMORY_SIZE {
		assert.Equal(byte(0), mem.Read(uint8(n)))
	}

	mem.Write(0, 0x11)
	mem.Write(0xff, 0x22)
	assert.Equal(byte(0x11), mem.Read(0))
	assert.Equal(byte(0x22), mem.Read(0xff))

	mem.Clear()
	assert.Equal(byte(0), mem.Read(0))
	assert.Equal(byte(0), mem.Read(0xff))
}

func TestMemoryLoad(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	mem.Write(3, 0x33)

	assert.NoError(mem.Load([]byte{1, 2}))
	assert.Equal(byte(1), mem.Read(0))
	assert.Equal(byte(2), mem.Read(1))
	assert.Equal(byte(0x33), mem.Read(3))

	assert.NoError(mem.Load(make([]byte, MEMORY_SIZE)))
	assert.ErrorIs(mem.Load(make([]byte, MEMORY_SIZE+1)), ErrProgramTooLarge)
}

func TestRegistersReset(t *testing.T) {
	assert := assert.New(t)

	reg := &Registers{1, 2, 3, 4, 5, 6, 7, 8}
	reg.Reset()

	assert.Equal(Registers{0, 0, 0, 0, 0, 0, 0, SP_INIT}, *reg)
}
