package io

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTape_Print(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	tape := &Tape{Output: out}

	for _, value := range []uint8{72, 0, 255} {
		err := tape.Print(value)
		assert.NoError(err)
	}

	assert.Equal("72\n0\n255\n", out.String())
	assert.Equal(3, tape.Printed)

	tape.Rewind()
	assert.Equal(0, tape.Printed)
	assert.Equal("72\n0\n255\n", out.String())
}

func TestTape_Missing(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{}
	err := tape.Print(1)
	assert.ErrorIs(err, ErrTapeMissing)
	assert.Equal(0, tape.Printed)
}

type failWriter struct{}

var errWrite = errors.New("write failed")

func (failWriter) Write(p []byte) (int, error) {
	return 0, errWrite
}

func TestTape_WriteError(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Output: failWriter{}}
	err := tape.Print(1)
	assert.ErrorIs(err, errWrite)
	assert.Equal(0, tape.Printed)
}
