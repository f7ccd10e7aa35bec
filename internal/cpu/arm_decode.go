package cpu

import "math/bits"

// DecodeARM decodes a 32-bit ARM instruction word. The second result is
// false when the word belongs to no supported family; the decoder never
// fails any other way.
func DecodeARM(word uint32) (ARMInstruction, bool) {
	base := ARMInstructionBase{Cond: Condition(word >> 28)}

	switch {
	case word&0x0FBF0FFF == 0x010F0000: // MRS
		return ARMMRSInstruction{
			ARMInstructionBase: base,
			SPSR:               word&(1<<22) != 0,
			Rd:                 uint8(word>>12) & 0xF,
		}, true

	case word&0x0FB0FFF0 == 0x0120F000: // MSR register
		return ARMMSRInstruction{
			ARMInstructionBase: base,
			SPSR:               word&(1<<22) != 0,
			Fields:             uint8(word>>16) & 0xF,
			Rm:                 uint8(word) & 0xF,
		}, true

	case word&0x0FB0F000 == 0x0320F000: // MSR immediate
		rotate := uint8(word>>8) & 0xF
		return ARMMSRInstruction{
			ARMInstructionBase: base,
			SPSR:               word&(1<<22) != 0,
			Fields:             uint8(word>>16) & 0xF,
			I:                  true,
			Imm:                bits.RotateLeft32(word&0xFF, -int(rotate)*2),
		}, true

	case word&0x0FFFFFF0 == 0x012FFF10: // BX
		return ARMBranchExchangeInstruction{
			ARMInstructionBase: base,
			Rm:                 uint8(word) & 0xF,
		}, true

	case word&0x0FC000F0 == 0x00000090: // MUL, MLA
		return ARMMultiplyInstruction{
			ARMInstructionBase: base,
			A:                  word&(1<<21) != 0,
			S:                  word&(1<<20) != 0,
			Rd:                 uint8(word>>16) & 0xF,
			Rn:                 uint8(word>>12) & 0xF,
			Rs:                 uint8(word>>8) & 0xF,
			Rm:                 uint8(word) & 0xF,
		}, true

	case word&0x0C000000 == 0x00000000:
		return decodeARMDataProcessing(base, word)

	case word&0x0C000000 == 0x04000000:
		return decodeARMLoadStore(base, word)

	case word&0x0E000000 == 0x08000000:
		return decodeARMBlockDataTransfer(base, word)

	case word&0x0E000000 == 0x0A000000:
		return ARMBranchInstruction{
			ARMInstructionBase: base,
			Link:               word&(1<<24) != 0,
			// bit 23 moved to the sign, then back down leaving a *4
			Offset: int32(word<<8) >> 6,
		}, true

	case word&0x0F000000 == 0x0F000000:
		return ARMSWIInstruction{
			ARMInstructionBase: base,
			Comment:            word & 0x00FFFFFF,
		}, true
	}

	return nil, false
}

func decodeARMDataProcessing(base ARMInstructionBase, word uint32) (ARMInstruction, bool) {
	immediate := word&(1<<25) != 0
	// halfword transfers, swaps and long multiplies live here
	if !immediate && word&0x90 == 0x90 {
		return nil, false
	}

	inst := ARMDataProcessingInstruction{
		ARMInstructionBase: base,
		I:                  immediate,
		Opcode:             ARMDataProcessingOperation(word>>21) & 0xF,
		S:                  word&(1<<20) != 0,
		Rn:                 uint8(word>>16) & 0xF,
		Rd:                 uint8(word>>12) & 0xF,
	}
	// test operations without S are PSR transfers, matched earlier or unsupported
	if inst.Opcode.IsTest() && !inst.S {
		return nil, false
	}

	if immediate {
		inst.Rotate = uint8(word>>8) & 0xF
		inst.Imm = bits.RotateLeft32(word&0xFF, -int(inst.Rotate)*2)
		return inst, true
	}

	inst.ShiftType = ARMShiftType(word>>5) & 0x3
	inst.R = word&(1<<4) != 0
	inst.Rm = uint8(word) & 0xF
	if inst.R {
		inst.Rs = uint8(word>>8) & 0xF
	} else {
		inst.ShiftImm = uint8(word>>7) & 0x1F
	}
	return inst, true
}

func decodeARMLoadStore(base ARMInstructionBase, word uint32) (ARMInstruction, bool) {
	inst := ARMLoadStoreInstruction{
		ARMInstructionBase: base,
		I:                  word&(1<<25) != 0,
		P:                  word&(1<<24) != 0,
		U:                  word&(1<<23) != 0,
		B:                  word&(1<<22) != 0,
		W:                  word&(1<<21) != 0,
		L:                  word&(1<<20) != 0,
		Rn:                 uint8(word>>16) & 0xF,
		Rd:                 uint8(word>>12) & 0xF,
	}
	if !inst.I {
		inst.Offset = word & 0xFFF
		return inst, true
	}
	// register offset with bit 4 set is the undefined instruction space
	if word&(1<<4) != 0 {
		return nil, false
	}
	inst.ShiftType = ARMShiftType(word>>5) & 0x3
	inst.ShiftImm = uint8(word>>7) & 0x1F
	inst.Rm = uint8(word) & 0xF
	return inst, true
}

func decodeARMBlockDataTransfer(base ARMInstructionBase, word uint32) (ARMInstruction, bool) {
	// user bank transfers and empty lists are not supported
	if word&(1<<22) != 0 || word&0xFFFF == 0 {
		return nil, false
	}
	return ARMBlockDataTransferInstruction{
		ARMInstructionBase: base,
		P:                  word&(1<<24) != 0,
		U:                  word&(1<<23) != 0,
		W:                  word&(1<<21) != 0,
		L:                  word&(1<<20) != 0,
		Rn:                 uint8(word>>16) & 0xF,
		RegisterList:       uint16(word),
	}, true
}
