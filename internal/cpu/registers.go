package cpu

import (
	"fmt"
	"strings"
)

// Mode is an ARM7TDMI operating mode, the low five bits of CPSR.
type Mode uint8

// ARM7TDMI CPU operating modes
const (
	USRMode Mode = 0b10000 // User mode
	FIQMode Mode = 0b10001 // FIQ mode (Fast Interrupt Request)
	IRQMode Mode = 0b10010 // IRQ mode (Interrupt Request)
	SVCMode Mode = 0b10011 // Supervisor mode
	ABTMode Mode = 0b10111 // Abort mode
	UNDMode Mode = 0b11011 // Undefined instruction mode
	SYSMode Mode = 0b11111 // System mode (shares User mode registers)
)

func (m Mode) String() string {
	switch m {
	case USRMode:
		return "USR"
	case FIQMode:
		return "FIQ"
	case IRQMode:
		return "IRQ"
	case SVCMode:
		return "SVC"
	case ABTMode:
		return "ABT"
	case UNDMode:
		return "UND"
	case SYSMode:
		return "SYS"
	}
	return fmt.Sprintf("mode(%05b)", uint8(m))
}

// CPSR bits
const (
	FlagN    = 1 << 31
	FlagZ    = 1 << 30
	FlagC    = 1 << 29
	FlagV    = 1 << 28
	FlagI    = 1 << 7 // IRQ disable
	FlagF    = 1 << 6 // FIQ disable
	FlagT    = 1 << 5 // Thumb state
	ModeMask = 0x1F
)

// Register aliases
const (
	SP = 13
	LR = 14
	PC = 15
)

// Register banks. USR and SYS share bankUSR.
const (
	bankUSR = iota
	bankFIQ
	bankIRQ
	bankSVC
	bankABT
	bankUND
	bankCount
)

func bankOf(m Mode) int {
	switch m {
	case FIQMode:
		return bankFIQ
	case IRQMode:
		return bankIRQ
	case SVCMode:
		return bankSVC
	case ABTMode:
		return bankABT
	case UNDMode:
		return bankUND
	}
	return bankUSR
}

// highOf selects the r8-r12 bank: FIQ has its own, every other mode shares.
func highOf(bank int) int {
	if bank == bankFIQ {
		return 1
	}
	return 0
}

// Registers holds the state of the ARM7TDMI CPU registers.
//
// R always holds the registers visible in the current mode. The banked
// arrays hold the copies belonging to the modes that are not active; a mode
// change swaps the outgoing copies out and the incoming copies in.
type Registers struct {
	R    [16]uint32
	CPSR uint32

	high [2][5]uint32      // r8-r12, [0] shared, [1] FIQ
	sp   [bankCount]uint32 // r13 per bank
	lr   [bankCount]uint32 // r14 per bank
	spsr [bankCount]uint32 // unused for bankUSR
}

// NewRegisters returns the reset state: Supervisor mode, IRQ and FIQ
// disabled, ARM state, PC at the BIOS entry point.
func NewRegisters() *Registers {
	return &Registers{
		CPSR: uint32(SVCMode) | FlagI | FlagF,
	}
}

// GetMode returns the current CPU operating mode from CPSR.
func (r *Registers) GetMode() Mode {
	return Mode(r.CPSR & ModeMask)
}

// switchBank moves the banked registers of from out of R and those of to in.
func (r *Registers) switchBank(from, to Mode) {
	fb, tb := bankOf(from), bankOf(to)
	if fb == tb {
		return
	}
	if fh, th := highOf(fb), highOf(tb); fh != th {
		copy(r.high[fh][:], r.R[8:13])
		copy(r.R[8:13], r.high[th][:])
	}
	r.sp[fb], r.lr[fb] = r.R[SP], r.R[LR]
	r.R[SP], r.R[LR] = r.sp[tb], r.lr[tb]
}

// SetMode switches the CPU operating mode, swapping banked registers.
func (r *Registers) SetMode(mode Mode) {
	r.switchBank(r.GetMode(), mode)
	r.CPSR = (r.CPSR &^ ModeMask) | uint32(mode)
}

// EnterMode switches to an exception mode and saves the previous CPSR in
// that mode's SPSR.
func (r *Registers) EnterMode(mode Mode) {
	saved := r.CPSR
	r.SetMode(mode)
	r.spsr[bankOf(mode)] = saved
}

// HasSPSR reports whether the current mode has a saved status register.
func (r *Registers) HasSPSR() bool {
	return bankOf(r.GetMode()) != bankUSR
}

// RestoreCPSR copies SPSR back into CPSR, returning from an exception.
// It does nothing in User and System mode.
func (r *Registers) RestoreCPSR() {
	if r.HasSPSR() {
		r.SetCPSR(r.GetSPSR())
	}
}

func (r *Registers) GetCPSR() uint32 {
	return r.CPSR
}

// SetCPSR writes the whole status register, swapping banks when the mode
// bits change.
func (r *Registers) SetCPSR(value uint32) {
	r.switchBank(r.GetMode(), Mode(value&ModeMask))
	r.CPSR = value
}

// GetSPSR returns the SPSR for the current mode. User and System mode have
// none, so CPSR is returned instead.
func (r *Registers) GetSPSR() uint32 {
	if !r.HasSPSR() {
		return r.CPSR
	}
	return r.spsr[bankOf(r.GetMode())]
}

// SetSPSR sets the SPSR for the current mode. Does nothing for USR/SYS.
func (r *Registers) SetSPSR(value uint32) {
	if r.HasSPSR() {
		r.spsr[bankOf(r.GetMode())] = value
	}
}

// GetReg returns the value of R0-R15 as seen by the current mode.
func (r *Registers) GetReg(n uint8) uint32 {
	return r.R[n&0xF]
}

// SetReg sets R0-R15 as seen by the current mode.
func (r *Registers) SetReg(n uint8, value uint32) {
	r.R[n&0xF] = value
}

func (r *Registers) GetPC() uint32 {
	return r.R[PC]
}

func (r *Registers) SetPC(value uint32) {
	r.R[PC] = value
}

// BankedReg returns register n as the given mode would see it, without
// switching modes.
func (r *Registers) BankedReg(mode Mode, n uint8) uint32 {
	n &= 0xF
	cur, b := bankOf(r.GetMode()), bankOf(mode)
	switch {
	case n < 8 || n == PC:
		return r.R[n]
	case n < SP:
		if highOf(b) == highOf(cur) {
			return r.R[n]
		}
		return r.high[highOf(b)][n-8]
	case b == cur:
		return r.R[n]
	case n == SP:
		return r.sp[b]
	default:
		return r.lr[b]
	}
}

// --- CPSR Flag getters/setters ---

func (r *Registers) setBit(bit uint32, on bool) {
	if on {
		r.CPSR |= bit
	} else {
		r.CPSR &^= bit
	}
}

// IsThumb returns true if T flag in CPSR is set (Thumb state).
func (r *Registers) IsThumb() bool { return r.CPSR&FlagT != 0 }

// SetThumbState sets or clears the T flag in CPSR.
func (r *Registers) SetThumbState(thumb bool) { r.setBit(FlagT, thumb) }

// IsFIQDisabled returns true if F flag in CPSR is set (FIQ disabled).
func (r *Registers) IsFIQDisabled() bool { return r.CPSR&FlagF != 0 }

// IsIRQDisabled returns true if I flag in CPSR is set (IRQ disabled).
func (r *Registers) IsIRQDisabled() bool { return r.CPSR&FlagI != 0 }

// SetIRQDisabled sets or clears the I flag in CPSR.
func (r *Registers) SetIRQDisabled(disabled bool) { r.setBit(FlagI, disabled) }

func (r *Registers) GetFlagN() bool { return r.CPSR&FlagN != 0 }
func (r *Registers) GetFlagZ() bool { return r.CPSR&FlagZ != 0 }
func (r *Registers) GetFlagC() bool { return r.CPSR&FlagC != 0 }
func (r *Registers) GetFlagV() bool { return r.CPSR&FlagV != 0 }

func (r *Registers) SetFlagN(on bool) { r.setBit(FlagN, on) }
func (r *Registers) SetFlagZ(on bool) { r.setBit(FlagZ, on) }
func (r *Registers) SetFlagC(on bool) { r.setBit(FlagC, on) }
func (r *Registers) SetFlagV(on bool) { r.setBit(FlagV, on) }

// setNZ sets N and Z from a result.
func (r *Registers) setNZ(result uint32) {
	r.SetFlagN(result&0x80000000 != 0)
	r.SetFlagZ(result == 0)
}

func (r *Registers) String() string {
	var sb strings.Builder
	for i := 0; i < 16; i++ {
		fmt.Fprintf(&sb, "R%-2d=%08X", i, r.R[i])
		if i%4 == 3 {
			sb.WriteByte('\n')
		} else {
			sb.WriteByte(' ')
		}
	}
	flags := []byte("nzcvift")
	for i, bit := range []uint32{FlagN, FlagZ, FlagC, FlagV, FlagI, FlagF, FlagT} {
		if r.CPSR&bit != 0 {
			flags[i] -= 'a' - 'A'
		}
	}
	fmt.Fprintf(&sb, "CPSR=%08X [%s] %s", r.CPSR, flags, r.GetMode())
	return sb.String()
}
