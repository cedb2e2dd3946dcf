package cpu

// The stack lives in main memory and grows down from the initial SP.

// stackDown moves SP down one cell, and returns the new top of stack.
// SP wraps at 8 bits; a top of stack outside of memory is a fault.
func (m *Machine) stackDown() (address int, err error) {
	sp := m.Register[REG_SP] - 1
	address = int(sp)
	_, err = m.ramRead(address)
	if err != nil {
		return
	}

	m.Register[REG_SP] = sp
	return
}

// push stores a value on top of the stack.
func (m *Machine) push(value uint8) (err error) {
	address, err := m.stackDown()
	if err != nil {
		return
	}

	err = m.ramWrite(address, value)
	return
}

// pop removes and returns the value on top of the stack.
func (m *Machine) pop() (value uint8, err error) {
	value, err = m.ramRead(int(m.Register[REG_SP]))
	if err != nil {
		return
	}

	m.Register[REG_SP]++
	return
}

// Peek returns the value on top of the stack, if SP is inside memory.
func (m *Machine) Peek() (value uint8, ok bool) {
	sp := int(m.Register[REG_SP])
	if sp >= len(m.Memory) {
		return
	}

	return m.Memory[sp], true
}
