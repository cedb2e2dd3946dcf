package cpu

import (
	"errors"
)

// handler executes a decoded instruction. If it returns jump, the handler
// has set PC itself; otherwise PC advances by the opcode length.
type handler func(m *Machine, operand []uint8) (jump bool, err error)

// dispatch maps each non-ALU opcode of the instruction set to its handler.
// ALU opcodes go through Machine.alu.
var dispatch = map[Opcode]handler{
	OP_HLT:  (*Machine).opHlt,
	OP_LDI:  (*Machine).opLdi,
	OP_PRN:  (*Machine).opPrn,
	OP_PUSH: (*Machine).opPush,
	OP_POP:  (*Machine).opPop,
	OP_CALL: (*Machine).opCall,
	OP_RET:  (*Machine).opRet,
	OP_JMP:  (*Machine).opJmp,
	OP_JEQ:  (*Machine).opJeq,
	OP_JNE:  (*Machine).opJne,
}

func (m *Machine) opHlt(operand []uint8) (jump bool, err error) {
	m.Halted = true
	return
}

func (m *Machine) opLdi(operand []uint8) (jump bool, err error) {
	reg, err := m.register(operand[0])
	if err != nil {
		return
	}

	*reg = operand[1]
	return
}

func (m *Machine) opPrn(operand []uint8) (jump bool, err error) {
	reg, err := m.register(operand[0])
	if err != nil {
		return
	}

	if m.Output == nil {
		err = ErrChannelInvalid
		return
	}

	err = m.Output.Print(*reg)
	return
}

func (m *Machine) opPush(operand []uint8) (jump bool, err error) {
	reg, err := m.register(operand[0])
	if err != nil {
		return
	}

	// The register is read after SP moves, so PUSH SP stores the new SP.
	address, err := m.stackDown()
	if err != nil {
		return
	}

	err = m.ramWrite(address, *reg)
	return
}

func (m *Machine) opPop(operand []uint8) (jump bool, err error) {
	reg, err := m.register(operand[0])
	if err != nil {
		return
	}

	value, err := m.ramRead(int(m.Register[REG_SP]))
	if err != nil {
		return
	}

	// SP moves after the store, so POP SP leaves SP one above the value.
	*reg = value
	m.Register[REG_SP]++
	return
}

func (m *Machine) opCall(operand []uint8) (jump bool, err error) {
	reg, err := m.register(operand[0])
	if err != nil {
		return
	}

	// The return address must fit in a byte and stay inside memory.
	next := m.Pc + OP_CALL.Length()
	if next >= len(m.Memory) {
		err = errors.Join(ErrMemoryFault, ErrAddress(next))
		return
	}

	err = m.push(uint8(next))
	if err != nil {
		return
	}

	m.Pc = int(*reg)
	jump = true
	return
}

func (m *Machine) opRet(operand []uint8) (jump bool, err error) {
	address, err := m.pop()
	if err != nil {
		return
	}

	m.Pc = int(address)
	jump = true
	return
}

// jumpIf sets PC to the register operand if cond holds.
// The register operand is checked even when the branch is not taken.
func (m *Machine) jumpIf(cond bool, operand []uint8) (jump bool, err error) {
	reg, err := m.register(operand[0])
	if err != nil {
		return
	}

	if cond {
		m.Pc = int(*reg)
		jump = true
	}
	return
}

func (m *Machine) opJmp(operand []uint8) (jump bool, err error) {
	return m.jumpIf(true, operand)
}

func (m *Machine) opJeq(operand []uint8) (jump bool, err error) {
	return m.jumpIf((m.Flags&FLAG_E) != 0, operand)
}

func (m *Machine) opJne(operand []uint8) (jump bool, err error) {
	return m.jumpIf((m.Flags&FLAG_E) == 0, operand)
}
