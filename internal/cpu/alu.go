package cpu

import (
	"math/bits"

	"gbacore/util/convert"
)

// addWithCarry returns a + b + carryIn with the resulting carry and signed
// overflow. Subtraction is a + ^b + 1.
func addWithCarry(a, b uint32, carryIn bool) (result uint32, carry, overflow bool) {
	sum, c := bits.Add32(a, b, convert.BoolToInt[uint32](carryIn))
	overflow = (a^sum)&(b^sum)&0x80000000 != 0
	return sum, c != 0, overflow
}

// shiftByImmediate applies a barrel shift whose amount comes from a 5-bit
// instruction field. Amount 0 encodes LSR #32, ASR #32 and RRX for the
// right shifts, and no shift at all for LSL.
func shiftByImmediate(kind ARMShiftType, value uint32, amount uint8, carry bool) (uint32, bool) {
	switch kind {
	case LSL:
		if amount == 0 {
			return value, carry
		}
		return value << amount, value>>(32-amount)&1 != 0
	case LSR:
		if amount == 0 {
			return 0, value>>31 != 0
		}
		return value >> amount, value>>(amount-1)&1 != 0
	case ASR:
		if amount == 0 {
			if value>>31 != 0 {
				return 0xFFFFFFFF, true
			}
			return 0, false
		}
		return uint32(int32(value) >> amount), value>>(amount-1)&1 != 0
	default: // ROR
		if amount == 0 { // RRX
			return convert.BoolToInt[uint32](carry)<<31 | value>>1, value&1 != 0
		}
		return bits.RotateLeft32(value, -int(amount)), value>>(amount-1)&1 != 0
	}
}

// shiftByRegister applies a barrel shift whose amount is the bottom byte of
// a register. Amount 0 leaves both value and carry untouched.
func shiftByRegister(kind ARMShiftType, value uint32, amount uint32, carry bool) (uint32, bool) {
	amount &= 0xFF
	if amount == 0 {
		return value, carry
	}

	switch kind {
	case LSL:
		switch {
		case amount < 32:
			return value << amount, value>>(32-amount)&1 != 0
		case amount == 32:
			return 0, value&1 != 0
		}
		return 0, false
	case LSR:
		switch {
		case amount < 32:
			return value >> amount, value>>(amount-1)&1 != 0
		case amount == 32:
			return 0, value>>31 != 0
		}
		return 0, false
	case ASR:
		if amount < 32 {
			return uint32(int32(value) >> amount), value>>(amount-1)&1 != 0
		}
		if value>>31 != 0 {
			return 0xFFFFFFFF, true
		}
		return 0, false
	default: // ROR
		amount &= 31
		if amount == 0 {
			return value, value>>31 != 0
		}
		return bits.RotateLeft32(value, -int(amount)), value>>(amount-1)&1 != 0
	}
}

// multiplyCycles is the number of internal cycles the multiplier array
// spends on Rs, determined by how many of its top bytes are all zeros or
// all ones.
func multiplyCycles(rs uint32) int {
	for m, mask := range []uint32{0xFFFFFF00, 0xFFFF0000, 0xFF000000} {
		if top := rs & mask; top == 0 || top == mask {
			return m + 1
		}
	}
	return 4
}
