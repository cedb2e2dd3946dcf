// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/ls8/io"
)

// Channel is an output channel interface.
type Channel io.Channel

// Machine geometry.
const (
	MEMORY_SIZE     = 256  // Default memory size, in bytes.
	MEMORY_SIZE_MIN = 16   // Smallest memory that leaves room for a stack.
	MEMORY_SIZE_MAX = 256  // Largest memory addressable by an 8-bit register.
	STACK_RESERVED  = 0x0C // Bytes reserved above the initial stack pointer.
	REGISTER_COUNT  = 8    // Number of general purpose registers.
	REG_SP          = 7    // Register used as the stack pointer.
)

// Flags register bits, set by CMP.
const (
	FLAG_E = 0b001 // Equal
	FLAG_G = 0b010 // Greater than
	FLAG_L = 0b100 // Less than
)

var _cpu_defines = cpuDefines()

// Machine is the simulation context for an LS-8 machine.
type Machine struct {
	Verbose   bool // Set to log a trace line for every instruction fetch.
	Strict    bool // Set to fault on unknown opcodes instead of skipping them.
	StepLimit int  // Maximum instructions executed by Run(), 0 for no limit.

	Output Channel // Channel that receives PRN values.

	Memory   []uint8               // Main memory.
	Register [REGISTER_COUNT]uint8 // Register bank, REG_SP is the stack pointer.
	Pc       int                   // Address of the next instruction.
	Flags    uint8                 // Result of the last CMP.
	Halted   bool                  // Set by HLT, or by a fatal fault.

	Ticks int // Instructions executed since reset.
}

// NewMachine creates a new machine with a specifically sized memory.
func NewMachine(size uint) (m *Machine, err error) {
	if size < MEMORY_SIZE_MIN || size > MEMORY_SIZE_MAX {
		err = errors.Join(ErrMemorySize, errors.New(f("%d not in %d..%d", size, MEMORY_SIZE_MIN, MEMORY_SIZE_MAX)))
		return
	}

	m = &Machine{
		Memory: make([]uint8, size),
	}

	m.Reset()

	return
}

// Defines for the machine.
func (m *Machine) Defines() iter.Seq2[string, string] {
	defines := maps.Clone(_cpu_defines)
	defines["MEMORY_SIZE"] = fmt.Sprintf("%d", len(m.Memory))
	return maps.All(defines)
}

// Reset the machine state.
// - Clears memory, registers and flags.
// - Sets the stack pointer STACK_RESERVED bytes below the top of memory.
// - Sets PC to 0 and clears the halted state.
func (m *Machine) Reset() {
	if m.Verbose {
		log.Printf("ls8: reset")
	}

	clear(m.Memory)
	clear(m.Register[:])
	m.Register[REG_SP] = uint8(len(m.Memory) - STACK_RESERVED)
	m.Pc = 0
	m.Flags = 0
	m.Halted = false
	m.Ticks = 0
}

// String returns the current machine state as a string.
func (m *Machine) String() (text string) {
	regs := []string{
		"pc",
		"fl",
		"r0", "r1", "r2", "r3", "r4", "r5", "r6", "sp",
		"stack",
		"halt",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%02X", m.Pc)
		case "fl":
			strval = fmt.Sprintf("%03b", m.Flags)
		case "r0", "r1", "r2", "r3", "r4", "r5", "r6":
			strval = fmt.Sprintf("%02X", m.Register[reg[1]-'0'])
		case "sp":
			strval = fmt.Sprintf("%02X", m.Register[REG_SP])
		case "stack":
			val, ok := m.Peek()
			if ok {
				strval = fmt.Sprintf("%02X", val)
			} else {
				strval = "--"
			}
		case "halt":
			strval = fmt.Sprintf("%v", m.Halted)
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

// Trace returns a single line with the PC, the three bytes at PC, and
// every register. Bytes outside of memory are shown as '--'.
func (m *Machine) Trace() (text string) {
	text = fmt.Sprintf("TRACE: %02X |", m.Pc)
	for n := range 3 {
		addr := m.Pc + n
		if addr >= 0 && addr < len(m.Memory) {
			text += fmt.Sprintf(" %02X", m.Memory[addr])
		} else {
			text += " --"
		}
	}
	text += " |"
	for _, val := range m.Register {
		text += fmt.Sprintf(" %02X", val)
	}

	return
}

// Read returns the byte at an address, for loaders and debuggers.
func (m *Machine) Read(address int) (value uint8, err error) {
	if address < 0 || address >= len(m.Memory) {
		err = ErrLoad{Address: address}
		return
	}

	value = m.Memory[address]
	return
}

// Write stores the low 8 bits of value at an address.
// Neither PC nor the registers are changed.
func (m *Machine) Write(address int, value int) (err error) {
	if address < 0 || address >= len(m.Memory) {
		err = ErrLoad{Address: address}
		return
	}

	m.Memory[address] = uint8(value & 0xff)
	return
}

// Load writes a sequence of (address, value) pairs into memory.
// If any address is out of range, memory is left unchanged.
func (m *Machine) Load(codes iter.Seq2[int, uint8]) (err error) {
	type cell struct {
		address int
		value   uint8
	}

	var cells []cell
	for address, value := range codes {
		if address < 0 || address >= len(m.Memory) {
			err = ErrLoad{Address: address}
			return
		}
		cells = append(cells, cell{address: address, value: value})
	}

	for _, c := range cells {
		m.Memory[c.address] = c.value
	}

	if m.Verbose {
		log.Printf("ls8: loaded %d bytes", len(cells))
	}

	return
}

// ramRead reads memory during execution.
func (m *Machine) ramRead(address int) (value uint8, err error) {
	if address < 0 || address >= len(m.Memory) {
		err = errors.Join(ErrMemoryFault, ErrAddress(address))
		return
	}

	value = m.Memory[address]
	return
}

// ramWrite writes memory during execution.
func (m *Machine) ramWrite(address int, value uint8) (err error) {
	if address < 0 || address >= len(m.Memory) {
		err = errors.Join(ErrMemoryFault, ErrAddress(address))
		return
	}

	m.Memory[address] = value
	return
}

// register returns a reference to the register named by an operand.
func (m *Machine) register(index uint8) (reg *uint8, err error) {
	if int(index) >= len(m.Register) {
		err = ErrInvalidRegister
		return
	}

	reg = &m.Register[index]
	return
}

// Tick executes a single instruction.
//
// The instruction length comes from the opcode, and only that many bytes
// are fetched. Unless the instruction jumped, PC advances past it.
// A fatal error halts the machine and is returned as an *ErrFault.
func (m *Machine) Tick() (err error) {
	if m.Halted {
		err = ErrHalted
		return
	}

	pc := m.Pc
	var op Opcode

	defer func() {
		if err != nil {
			m.Halted = true
			err = &ErrFault{Pc: pc, Opcode: op, Err: err}
		}
	}()

	if m.Verbose {
		log.Printf("%v", m.Trace())
	}

	value, err := m.ramRead(pc)
	if err != nil {
		return
	}
	op = Opcode(value)

	if !op.Known() {
		if m.Strict {
			err = ErrUnknownInstruction
			return
		}
		log.Printf("ls8: %v", f("0x%02x: unsupported instruction %v", pc, op))
		m.Pc = pc + 1
		m.Ticks++
		return
	}

	var operand [3]uint8
	operands := operand[:op.Operands()]
	for n := range operands {
		operands[n], err = m.ramRead(pc + 1 + n)
		if err != nil {
			return
		}
	}

	var jump bool
	if op.IsAlu() {
		err = m.alu(op, operands[0], operands[1])
	} else {
		jump, err = dispatch[op](m, operands)
	}
	if err != nil {
		return
	}

	if !jump {
		m.Pc = pc + op.Length()
	}
	m.Ticks++

	return
}

// Run executes instructions until the machine halts.
// If StepLimit is set, Run stops with ErrStepLimit after that many
// instructions without a halt.
func (m *Machine) Run() (err error) {
	for steps := 0; !m.Halted; steps++ {
		if m.StepLimit > 0 && steps >= m.StepLimit {
			err = ErrStepLimit
			return
		}
		err = m.Tick()
		if err != nil {
			return
		}
	}

	return
}

// alu performs an arithmetic or logic operation between two registers.
func (m *Machine) alu(op Opcode, reg_a, reg_b uint8) (err error) {
	if op != OP_MUL && op != OP_CMP {
		err = errors.Join(ErrUnsupportedOperation, errors.New(op.String()))
		return
	}

	a, err := m.register(reg_a)
	if err != nil {
		err = errors.Join(ErrOpcodeArg1, err)
		return
	}
	b, err := m.register(reg_b)
	if err != nil {
		err = errors.Join(ErrOpcodeArg2, err)
		return
	}

	switch op {
	case OP_MUL:
		*a = *a * *b
	case OP_CMP:
		switch {
		case *a < *b:
			m.Flags = FLAG_L
		case *a > *b:
			m.Flags = FLAG_G
		default:
			m.Flags = FLAG_E
		}
	}

	return
}
