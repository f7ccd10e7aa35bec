package cpu

import (
	"errors"
	"fmt"
)

// ErrUndefinedInstruction is matched by every decode miss.
var ErrUndefinedInstruction = errors.New("undefined instruction")

// InstructionSet names the decoder an instruction went through.
type InstructionSet uint8

const (
	SetARM InstructionSet = iota
	SetThumb
)

func (s InstructionSet) String() string {
	if s == SetThumb {
		return "Thumb"
	}
	return "ARM"
}

// DecodeError is returned when fetched bits decode to no supported
// instruction.
type DecodeError struct {
	Addr uint32
	Raw  uint32
	Set  InstructionSet
}

func (e *DecodeError) Error() string {
	if e.Set == SetThumb {
		return fmt.Sprintf("cpu: cannot decode Thumb instruction %04X at %08X", e.Raw, e.Addr)
	}
	return fmt.Sprintf("cpu: cannot decode ARM instruction %08X at %08X", e.Raw, e.Addr)
}

func (e *DecodeError) Unwrap() error {
	return ErrUndefinedInstruction
}
