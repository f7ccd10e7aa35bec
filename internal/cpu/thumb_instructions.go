package cpu

// ThumbInstruction is a decoded 16-bit Thumb instruction.
type ThumbInstruction interface {
	// Format returns the Thumb instruction format number (1-19).
	Format() int
}

// Format 1: LSL/LSR/ASR Rd, Rs, #Offset5
type ThumbMoveShiftedInstruction struct {
	Op     ARMShiftType // bits 12-11, never ROR
	Offset uint8        // bits 10-6
	Rs     uint8        // bits 5-3
	Rd     uint8        // bits 2-0
}

// Format 2: ADD/SUB Rd, Rs, Rn|#Offset3
type ThumbAddSubInstruction struct {
	Immediate bool  // bit 10
	Sub       bool  // bit 9
	Rn        uint8 // bits 8-6, register or 3-bit immediate
	Rs        uint8 // bits 5-3
	Rd        uint8 // bits 2-0
}

type ThumbImmediateOp uint8

const (
	ThumbMOV ThumbImmediateOp = 0x0
	ThumbCMP ThumbImmediateOp = 0x1
	ThumbADD ThumbImmediateOp = 0x2
	ThumbSUB ThumbImmediateOp = 0x3
)

// Format 3: MOV/CMP/ADD/SUB Rd, #Offset8
type ThumbImmediateInstruction struct {
	Op  ThumbImmediateOp // bits 12-11
	Rd  uint8            // bits 10-8
	Imm uint8            // bits 7-0
}

type ThumbHiRegisterOp uint8

const (
	ThumbHiADD ThumbHiRegisterOp = 0x0
	ThumbHiCMP ThumbHiRegisterOp = 0x1
	ThumbHiMOV ThumbHiRegisterOp = 0x2
	ThumbHiBX  ThumbHiRegisterOp = 0x3
)

// Format 5: ADD/CMP/MOV on the full register file, and BX
type ThumbHiRegisterInstruction struct {
	Op ThumbHiRegisterOp // bits 9-8
	Rs uint8             // bits 5-3 with H2 (bit 6) as bit 3
	Rd uint8             // bits 2-0 with H1 (bit 7) as bit 3
}

// Format 16: B<cond> label
type ThumbConditionalBranchInstruction struct {
	Cond   Condition // bits 11-8
	Offset int32     // sign-extended 8-bit offset, times 2
}

// Format 17: SWI Value8
type ThumbSWIInstruction struct {
	Comment uint8
}

// Format 18: B label
type ThumbBranchInstruction struct {
	Offset int32 // sign-extended 11-bit offset, times 2
}

// Format 19: one half of BL label
type ThumbLongBranchInstruction struct {
	High   bool   // bit 11: 0 = first half (offset high), 1 = second half (offset low)
	Offset uint32 // bits 10-0
}

func (ThumbMoveShiftedInstruction) Format() int       { return 1 }
func (ThumbAddSubInstruction) Format() int            { return 2 }
func (ThumbImmediateInstruction) Format() int         { return 3 }
func (ThumbHiRegisterInstruction) Format() int        { return 5 }
func (ThumbConditionalBranchInstruction) Format() int { return 16 }
func (ThumbSWIInstruction) Format() int               { return 17 }
func (ThumbBranchInstruction) Format() int            { return 18 }
func (ThumbLongBranchInstruction) Format() int        { return 19 }
