package cpu

import (
	"iter"
)

// Line is a single loaded value, and where it came from.
type Line struct {
	LineNo  int    // Source line number, starting at 1.
	Address int    // Memory address of the value.
	Text    string // Source text, without comments.
	Value   uint8  // Value to store.
}

// Program is a loaded program listing.
type Program struct {
	Lines []Line
}

// Debug returns the source line that loaded an address.
func (prog *Program) Debug(address int) (line *Line) {
	for n, ln := range prog.Lines {
		if ln.Address == address {
			line = &prog.Lines[n]
			break
		}
	}

	return
}

// Binary returns the program as a contiguous image starting at address 0.
func (prog *Program) Binary() (bins []uint8) {
	for address, value := range prog.Codes() {
		for len(bins) <= address {
			bins = append(bins, 0)
		}
		bins[address] = value
	}

	return
}

// Codes iterates over the (address, value) pairs of the program.
func (prog *Program) Codes() iter.Seq2[int, uint8] {
	return func(yield func(address int, value uint8) bool) {
		for _, ln := range prog.Lines {
			if !yield(ln.Address, ln.Value) {
				return
			}
		}
	}
}
