// Package io provides output channels for the LS-8 machine.
// The machine emits values with PRN; a channel decides where they go.
package io

// Channel defines the interface for all machine output channels.
type Channel interface {
	// Print emits a single value.
	Print(value uint8) error
}
