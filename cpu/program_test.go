package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgram(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Lines: []Line{
			{LineNo: 3, Address: 0, Text: "10000010", Value: 0b10000010},
			{LineNo: 4, Address: 1, Text: "00000000", Value: 0},
			{LineNo: 5, Address: 2, Text: "00001000", Value: 8},
			{LineNo: 9, Address: 4, Text: "00000001", Value: 1},
		},
	}

	assert.Equal([]uint8{0b10000010, 0, 8, 0, 1}, prog.Binary())

	var addrs []int
	for address := range prog.Codes() {
		addrs = append(addrs, address)
		if address == 2 {
			break
		}
	}
	assert.Equal([]int{0, 1, 2}, addrs)

	line := prog.Debug(4)
	if assert.NotNil(line) {
		assert.Equal(9, line.LineNo)
		assert.Equal("00000001", line.Text)
	}
	assert.Nil(prog.Debug(3))

	empty := &Program{}
	assert.Nil(empty.Binary())
	assert.Nil(empty.Debug(0))
}
