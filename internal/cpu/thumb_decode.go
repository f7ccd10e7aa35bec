package cpu

// DecodeThumb decodes a 16-bit Thumb instruction. The second result is false
// for formats that are not supported.
func DecodeThumb(half uint16) (ThumbInstruction, bool) {
	switch {
	case half&0xF800 == 0x1800:
		return ThumbAddSubInstruction{
			Immediate: half&(1<<10) != 0,
			Sub:       half&(1<<9) != 0,
			Rn:        uint8(half>>6) & 0x7,
			Rs:        uint8(half>>3) & 0x7,
			Rd:        uint8(half) & 0x7,
		}, true

	case half&0xE000 == 0x0000:
		return ThumbMoveShiftedInstruction{
			Op:     ARMShiftType(half>>11) & 0x3,
			Offset: uint8(half>>6) & 0x1F,
			Rs:     uint8(half>>3) & 0x7,
			Rd:     uint8(half) & 0x7,
		}, true

	case half&0xE000 == 0x2000:
		return ThumbImmediateInstruction{
			Op:  ThumbImmediateOp(half>>11) & 0x3,
			Rd:  uint8(half>>8) & 0x7,
			Imm: uint8(half),
		}, true

	case half&0xFC00 == 0x4400:
		h1 := uint8(half>>7) & 0x1
		h2 := uint8(half>>6) & 0x1
		return ThumbHiRegisterInstruction{
			Op: ThumbHiRegisterOp(half>>8) & 0x3,
			Rs: uint8(half>>3)&0x7 | h2<<3,
			Rd: uint8(half)&0x7 | h1<<3,
		}, true

	case half&0xFF00 == 0xDF00:
		return ThumbSWIInstruction{Comment: uint8(half)}, true

	case half&0xF000 == 0xD000:
		cond := Condition(half>>8) & 0xF
		if cond == AL { // 0xF is SWI, matched above
			return nil, false
		}
		return ThumbConditionalBranchInstruction{
			Cond:   cond,
			Offset: int32(int8(half)) * 2,
		}, true

	case half&0xF800 == 0xE000:
		return ThumbBranchInstruction{
			Offset: int32(int16(half<<5)) >> 4,
		}, true

	case half&0xF000 == 0xF000:
		return ThumbLongBranchInstruction{
			High:   half&(1<<11) != 0,
			Offset: uint32(half) & 0x7FF,
		}, true
	}

	return nil, false
}
