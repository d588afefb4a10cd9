package emu

import (
	"errors"
	"fmt"
)

var (
	// ErrStackOverflow is returned when CALL is executed with a full stack.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrStackUnderflow is returned when RET is executed with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrAddressOutOfRange is returned when an instruction fetch runs off
	// the end of memory.
	ErrAddressOutOfRange = errors.New("address out of range")

	// ErrROMTooLarge is returned when a ROM does not fit in program space.
	ErrROMTooLarge = errors.New("rom does not fit in program memory")

	// ErrInvalidConfig is returned for unusable machine configurations.
	ErrInvalidConfig = errors.New("invalid machine configuration")
)

// StepError describes a failed step. The machine state is left as it was
// before the failing instruction.
type StepError struct {
	PC     uint16 // Address of the failing instruction
	Opcode uint16 // Raw opcode, zero when the fetch itself failed
	Err    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step at $%03X (opcode %04X): %v", e.PC, e.Opcode, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
