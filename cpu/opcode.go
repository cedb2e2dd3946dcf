package cpu

import (
	"fmt"
)

// Opcode is the first byte of an instruction.
type Opcode uint8

// Instruction set.
const (
	OP_HLT  = Opcode(0b00000001) // Halt
	OP_LDI  = Opcode(0b10000010) // Load immediate
	OP_PRN  = Opcode(0b01000111) // Print register
	OP_MUL  = Opcode(0b10100010) // Multiply registers
	OP_PUSH = Opcode(0b01000101) // Push register
	OP_POP  = Opcode(0b01000110) // Pop register
	OP_CALL = Opcode(0b01010000) // Call subroutine at register
	OP_RET  = Opcode(0b00010001) // Return from subroutine
	OP_CMP  = Opcode(0b10100111) // Compare registers
	OP_JMP  = Opcode(0b01010100) // Jump to register
	OP_JEQ  = Opcode(0b01010101) // Jump to register if equal
	OP_JNE  = Opcode(0b01010110) // Jump to register if not equal
)

// Opcode field layout.
const (
	OPCODE_OPERANDS_SHIFT = 6           // Operand count is in bits 7..6
	OPCODE_ALU            = 0b0010_0000 // Operation is handled by the ALU
)

var mnemonic = map[Opcode]string{
	OP_HLT:  "HLT",
	OP_LDI:  "LDI",
	OP_PRN:  "PRN",
	OP_MUL:  "MUL",
	OP_PUSH: "PUSH",
	OP_POP:  "POP",
	OP_CALL: "CALL",
	OP_RET:  "RET",
	OP_CMP:  "CMP",
	OP_JMP:  "JMP",
	OP_JEQ:  "JEQ",
	OP_JNE:  "JNE",
}

// Operands returns the number of operand bytes that follow the opcode.
func (op Opcode) Operands() int {
	return int(op >> OPCODE_OPERANDS_SHIFT)
}

// Length returns the instruction length in bytes, opcode included.
func (op Opcode) Length() int {
	return op.Operands() + 1
}

// IsAlu returns true if the opcode is an ALU operation.
func (op Opcode) IsAlu() bool {
	return (op & OPCODE_ALU) != 0
}

// Known returns true if the opcode is part of the instruction set.
func (op Opcode) Known() bool {
	_, ok := mnemonic[op]
	return ok
}

// String returns the mnemonic of the opcode, or its value if unknown.
func (op Opcode) String() string {
	name, ok := mnemonic[op]
	if !ok {
		return fmt.Sprintf("0x%02X", uint8(op))
	}
	return name
}

// cpuDefines are the equates every program can refer to.
func cpuDefines() (defines map[string]string) {
	defines = map[string]string{
		"SP":             fmt.Sprintf("%v", REG_SP),
		"FLAG_E":         fmt.Sprintf("0b%08b", FLAG_E),
		"FLAG_G":         fmt.Sprintf("0b%08b", FLAG_G),
		"FLAG_L":         fmt.Sprintf("0b%08b", FLAG_L),
		"STACK_RESERVED": fmt.Sprintf("%#x", STACK_RESERVED),
	}
	for op, name := range mnemonic {
		defines[name] = fmt.Sprintf("0b%08b", uint8(op))
	}
	for n := range REGISTER_COUNT {
		defines[fmt.Sprintf("R%d", n)] = fmt.Sprintf("%d", n)
	}

	return
}
