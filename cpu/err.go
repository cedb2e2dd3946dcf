package cpu

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Machine errors
	ErrMemoryFault          = errors.New(f("memory fault"))
	ErrMemorySize           = errors.New(f("memory size invalid"))
	ErrInvalidRegister      = errors.New(f("register invalid"))
	ErrUnsupportedOperation = errors.New(f("unsupported alu operation"))
	ErrUnknownInstruction   = errors.New(f("unsupported instruction"))
	ErrChannelInvalid       = errors.New(f("channel invalid"))
	ErrHalted               = errors.New(f("halted"))
	ErrStepLimit            = errors.New(f("step limit reached"))

	// Operand decode errors
	ErrOpcodeArg1 = errors.New(f("arg1"))
	ErrOpcodeArg2 = errors.New(f("arg2"))
)

// ErrAddress is the memory address involved in a fault.
type ErrAddress int

func (ea ErrAddress) Error() string {
	return f("address 0x%02x", int(ea))
}

// ErrLoad is an out of range address while loading a program.
type ErrLoad struct {
	Address int
}

func (el ErrLoad) Error() string {
	return f("load address 0x%02x out of range", el.Address)
}

func (el ErrLoad) Is(err error) (ok bool) {
	_, ok = err.(ErrLoad)
	return
}

// ErrFault is a fatal runtime error, with the location it occurred at.
type ErrFault struct {
	Pc     int
	Opcode Opcode
	Err    error
}

func (err *ErrFault) Error() string {
	return f("pc 0x%02x opcode %v: %v", err.Pc, err.Opcode, err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}

// ErrSyntax is a program text line that could not be loaded.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a binary number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
