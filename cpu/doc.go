// Package cpu implements the LS-8 byte-code machine and its program loader.
//
// The machine has a byte addressed memory, eight 8-bit registers (R7 is the
// stack pointer), a program counter and a flags register written by CMP.
// Instructions are one to three bytes long; the two high bits of the opcode
// give the operand count, and bit 5 marks operations handled by the ALU.
//
// The loader reads one value per line as a binary literal, with '#'
// comments and $(...) compile-time expressions.
package cpu
