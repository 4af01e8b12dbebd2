package cpu

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const multLs8 = `# mult.ls8
10000010 # LDI R0,8
00000000
00001000
10000010 # LDI R1,9
00000001
00001001
10100010 # MUL R0,R1
00000000
00000001

01000111 # PRN R0
00000000
00000001 # HLT
`

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	prog, err := Load(strings.NewReader(multLs8))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(12, prog.Size())
	assert.Equal([]byte{
		0x82, 0, 8,
		0x82, 1, 9,
		0xa2, 0, 1,
		0x47, 0,
		0x01,
	}, prog.Binary())

	// Line numbers skip the comment and blank lines.
	assert.Equal(2, prog.Opcodes[0].LineNo)
	assert.Equal(12, prog.Opcodes[9].LineNo)
	assert.Equal(9, prog.Opcodes[9].Addr)
}

func TestLoad_Empty(t *testing.T) {
	assert := assert.New(t)

	prog, err := Load(strings.NewReader("\n# nothing here\n   \n"))
	assert.NoError(err)
	assert.Equal(0, prog.Size())
	assert.Empty(prog.Binary())
}

func TestLoad_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		text   string
		lineno int
		err    error
	}){
		{"decimal", "00000001\n12345678\n", 2, ErrParseBinary("12345678")},
		{"too_wide", "100000000 # 9 bits\n", 1, ErrParseBinary("100000000")},
		{"word", "# ok\nLDI\n", 2, ErrParseBinary("LDI")},
		{"too_large", strings.Repeat("00000000\n", MEMORY_SIZE+1), MEMORY_SIZE + 1, ErrProgramTooLarge},
	}

	for _, entry := range table {
		prog, err := Load(strings.NewReader(entry.text))
		assert.Nil(prog, entry.name)
		assert.ErrorIs(err, entry.err, entry.name)

		var syntax *ErrSyntax
		if assert.True(errors.As(err, &syntax), entry.name) {
			assert.Equal(entry.lineno, syntax.LineNo, entry.name)
		}
	}
}

func TestLoad_Prefix(t *testing.T) {
	assert := assert.New(t)

	prog, err := Load(strings.NewReader("0b1010\n  11 \t# three\n"))
	assert.NoError(err)
	assert.Equal([]byte{10, 3}, prog.Binary())
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Addr: 0, Words: []string{"LDI", "R0", "8"}, Bytes: MakeCode(OP_LDI, 0, 8).Bytes()},
			{LineNo: 2, Addr: 3, Words: []string{"PRN", "R0"}, Bytes: MakeCode(OP_PRN, 0).Bytes()},
			{LineNo: 4, Addr: 5, Words: []string{"HLT"}, Bytes: MakeCode(OP_HLT).Bytes()},
		},
	}

	dbg := prog.Debug(0)
	assert.NotNil(dbg.Opcode)
	assert.Equal(1, dbg.Opcode.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(2)
	assert.NotNil(dbg.Opcode)
	assert.Equal(1, dbg.Opcode.LineNo)
	assert.Equal(2, dbg.Index)

	dbg = prog.Debug(4)
	assert.NotNil(dbg.Opcode)
	assert.Equal(2, dbg.Opcode.LineNo)
	assert.Equal(1, dbg.Index)

	dbg = prog.Debug(5)
	assert.NotNil(dbg.Opcode)
	assert.Equal(4, dbg.Opcode.LineNo)

	dbg = prog.Debug(6)
	assert.Nil(dbg.Opcode)
	assert.Equal(0, dbg.Index)
}

func TestProgram_Bytes(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Addr: 0, Bytes: MakeCode(OP_LDI, 0, 8).Bytes()},
			{LineNo: 2, Addr: 3, Bytes: MakeCode(OP_HLT).Bytes()},
		},
	}

	count := 0
	for addr := range prog.Bytes() {
		assert.Equal(uint8(count), addr)
		count++
	}

	assert.Equal(4, count)
}

func TestProgram_Listing(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader("LDI R0,8\nPRN R0\nHLT\n"))
	assert.NoError(err)

	out := &bytes.Buffer{}
	assert.NoError(prog.Listing(out))

	assert.Equal(strings.Join([]string{
		"10000010 # LDI R0 8",
		"00000000",
		"00001000",
		"01000111 # PRN R0",
		"00000000",
		"00000001 # HLT",
		"",
	}, "\n"), out.String())

	// The listing loads back to the same image.
	loaded, err := Load(out)
	assert.NoError(err)
	assert.Equal(prog.Binary(), loaded.Binary())
}
