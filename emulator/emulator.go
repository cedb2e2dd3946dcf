// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	stdio "io"
	"iter"
	"maps"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/internal"
	"github.com/ezrec/ls8/io"
)

// Emulator state. Machine + program listing + output tape.
type Emulator struct {
	Verbose      bool         // If set, enables verbose logging.
	StepLimit    int          // Maximum instructions per Run(), 0 for no limit.
	*cpu.Machine              // Reference to the machine simulation.
	Program      *cpu.Program // Reference to the currently loaded program listing.

	Tape io.Tape // PRN output.

	predefine map[string]string
}

// NewEmulator creates a new emulator with the given memory size.
func NewEmulator(size uint) (emu *Emulator, err error) {
	machine, err := cpu.NewMachine(size)
	if err != nil {
		return
	}

	emu = &Emulator{
		Machine:   machine,
		Program:   &cpu.Program{},
		predefine: map[string]string{},
	}

	emu.Machine.Output = &emu.Tape

	return
}

// Predefine adds an equate visible to programs parsed by LoadProgram.
func (emu *Emulator) Predefine(equ string, value string) {
	emu.predefine[equ] = value
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(
		emu.Machine.Defines(),
		maps.All(emu.predefine),
	)
}

// LoadProgram parses program text into the emulator's program listing.
// Strict mode of the machine also makes the parse strict.
func (emu *Emulator) LoadProgram(input stdio.Reader) (err error) {
	ld := &cpu.Loader{
		Verbose: emu.Verbose,
		Strict:  emu.Machine.Strict,
	}
	for equ, value := range emu.Defines() {
		ld.Predefine(equ, value)
	}

	prog, err := ld.Parse(input)
	if err != nil {
		return
	}

	emu.Program = prog
	return
}

// Reset the machine, and load the program into memory.
func (emu *Emulator) Reset() (err error) {
	emu.Machine.Verbose = emu.Verbose

	emu.Machine.Reset()
	emu.Tape.Rewind()

	err = emu.Machine.Load(emu.Program.Codes())
	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Machine.Ticks
}

// Pc returns the current program counter.
func (emu *Emulator) Pc() int {
	return emu.Machine.Pc
}

// LineNo returns the source line number for the current PC, or 0 if
// the PC is not at a loaded value.
func (emu *Emulator) LineNo() int {
	line := emu.Program.Debug(emu.Machine.Pc)
	if line == nil {
		return 0
	}

	return line.LineNo
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set machine verbosity
	emu.Machine.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	err = emu.Machine.Tick()
	if errors.Is(err, cpu.ErrHalted) {
		err = nil
		done = true
		return
	}
	if err != nil {
		return
	}

	done = emu.Machine.Halted
	return
}

// Run ticks the emulator until the machine halts, or StepLimit
// instructions have executed.
func (emu *Emulator) Run() (err error) {
	for steps := 0; ; steps++ {
		if emu.StepLimit > 0 && steps >= emu.StepLimit {
			err = &ErrRuntime{LineNo: emu.LineNo(), Err: cpu.ErrStepLimit}
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}
