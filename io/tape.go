package io

import (
	"fmt"
	"io"
)

// Tape writes each printed value as a decimal line to Output.
type Tape struct {
	Output io.Writer

	Printed int // Count of values printed since the last rewind.
}

var _ Channel = (*Tape)(nil)

// Rewind resets the tape counters. Output is left as is.
func (tc *Tape) Rewind() {
	tc.Printed = 0
}

// Print writes the decimal value followed by a newline.
func (tc *Tape) Print(value uint8) (err error) {
	if tc.Output == nil {
		err = ErrTapeMissing
		return
	}

	_, err = fmt.Fprintf(tc.Output, "%d\n", value)
	if err != nil {
		return
	}

	tc.Printed++
	return
}
