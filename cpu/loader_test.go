package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoader(t *testing.T) {
	assert := assert.New(t)

	ld := &Loader{}

	prog, err := ld.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Lines))

	assert.Equal("0b10000010", ld.Equate["LDI"])
	assert.Equal("7", ld.Equate["SP"])
}

func TestLoader_Print8(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"# print8.ls8: Print the number 8 on the screen",
		"",
		"10000010 # LDI R0,8",
		"00000000",
		"00001000",
		"01000111 # PRN R0",
		"00000000",
		"00000001 # HLT",
	}

	ld := &Loader{}
	prog, err := ld.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)

	assert.Equal([]uint8{0b10000010, 0, 8, 0b01000111, 0, 1}, prog.Binary())

	expected := []Line{
		{3, 0, "10000010", 0b10000010},
		{4, 1, "00000000", 0},
		{5, 2, "00001000", 8},
		{6, 3, "01000111", 0b01000111},
		{7, 4, "00000000", 0},
		{8, 5, "00000001", 1},
	}
	assert.Equal(expected, prog.Lines)

	m, output := loadProgram(t, MEMORY_SIZE)
	assert.NoError(m.Load(prog.Codes()))
	assert.NoError(m.Run())
	assert.Equal("8\n", output.String())
}

func TestLoader_Literals(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		text  string
		value uint8
	}){
		{"1", 1},
		{"  00000001  ", 1},
		{"0b1010_0010", 0b10100010},
		{"0B11", 3},
		{"1_0000_0001", 1}, // wider than 8 bits is masked
		{"11111111 # ones", 0xff},
		{"\t01000111\t#\tPRN", 0b01000111},
	}

	for _, entry := range table {
		ld := &Loader{Strict: true}
		prog, err := ld.Parse(strings.NewReader(entry.text))
		assert.NoError(err, entry.text)
		assert.Equal([]uint8{entry.value}, prog.Binary(), entry.text)
	}
}

func TestLoader_Skip(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"10000010",
		"not a number",
		"00000002",
		"# only a comment",
		"   ",
		"0000 0001",
		"00000001",
	}

	ld := &Loader{}
	prog, err := ld.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	assert.Equal([]uint8{0b10000010, 1}, prog.Binary())
	assert.Equal(7, prog.Lines[1].LineNo)
	assert.Equal(1, prog.Lines[1].Address)
}

func TestLoader_Strict(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"10000010",
		"00000000",
		"00000002",
	}

	ld := &Loader{Strict: true}
	_, err := ld.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.ErrorIs(err, ErrParseNumber("00000002"))

	var syntax ErrSyntax
	if assert.ErrorAs(err, &syntax) {
		assert.Equal(3, syntax.LineNo)
		assert.Equal("00000002", syntax.Line)
	}
}

func TestLoader_Expression(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"$(LDI)",
		"$(R0)",
		"$(6 * 7)",
		"$(PRN) # print it",
		"$(R0)",
		"$(HLT)",
		"$(COUNT + 1)",
	}

	ld := &Loader{Strict: true}
	ld.Predefine("COUNT", "0x0f")
	prog, err := ld.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	assert.Equal([]uint8{uint8(OP_LDI), 0, 42, uint8(OP_PRN), 0, uint8(OP_HLT), 16}, prog.Binary())
	assert.Equal("$(6 * 7)", prog.Lines[2].Text)

	m, output := loadProgram(t, MEMORY_SIZE)
	assert.NoError(m.Load(prog.Codes()))
	assert.NoError(m.Run())
	assert.Equal("42\n", output.String())
}

func TestLoader_ExpressionError(t *testing.T) {
	assert := assert.New(t)

	table := []string{
		"$(UNDEFINED)",
		"$('text')",
		"$(1 +)",
	}

	for _, text := range table {
		ld := &Loader{Strict: true}
		_, err := ld.Parse(strings.NewReader(text))
		assert.Error(err, text)
		var syntax ErrSyntax
		if assert.ErrorAs(err, &syntax, text) {
			assert.Equal(1, syntax.LineNo)
		}

		ld = &Loader{}
		prog, err := ld.Parse(strings.NewReader(text))
		assert.NoError(err, text)
		assert.Equal(0, len(prog.Lines))
	}

	ld := &Loader{Strict: true}
	_, err := ld.Parse(strings.NewReader("$('text')"))
	assert.ErrorIs(err, ErrParseExpression("'text'"))
}
