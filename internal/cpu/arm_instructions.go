package cpu

// ARMInstruction is a decoded 32-bit ARM instruction.
type ARMInstruction interface {
	Condition() Condition
}

// Base structure for all ARM instructions
type ARMInstructionBase struct {
	Cond Condition // Condition field (4 bits) bits 31-28
}

func (b ARMInstructionBase) Condition() Condition {
	return b.Cond
}

// Data Processing Instruction Structure
type ARMDataProcessingInstruction struct {
	// bits 31-28
	ARMInstructionBase
	// bit 25, Immediate 2nd Operand Flag (0=Register, 1=Immediate)
	I bool
	// bits 24-21, Operation Code (4 bits)
	Opcode ARMDataProcessingOperation
	// bit 20, Set Condition Codes (1 bit)
	S bool
	// bits 19-16, First operand register (4 bits)
	Rn uint8
	// bits 15-12, Destination register (4 bits)
	Rd uint8

	// when I == 1: bits 11-8, rotate applied to the 8-bit immediate (in
	// steps of 2). Imm holds the already rotated value.
	Rotate uint8
	Imm    uint32

	// when I == 0: bits 6-5, shift type; bit 4, shift by register flag
	ShiftType ARMShiftType
	R         bool
	// when R == 0: bits 11-7, shift amount
	ShiftImm uint8
	// when R == 1: bits 11-8, register holding the shift amount
	Rs uint8
	// bits 3-0, Second operand register
	Rm uint8
}

// Load/Store Instruction Structure (LDR, STR, LDRB, STRB)
type ARMLoadStoreInstruction struct {
	ARMInstructionBase
	I      bool   // I flag (bit 25): 0 for immediate offset, 1 for shifted register offset
	P      bool   // P flag: 0 for post-indexing, 1 for pre-indexing
	U      bool   // U flag: 0 for negative offset, 1 for positive offset
	B      bool   // B flag: Byte or Word transfer
	W      bool   // W flag: Writeback to the base register
	L      bool   // L flag: 0 for store, 1 for load
	Rn     uint8  // Base register (4 bits)
	Rd     uint8  // Source/Destination register (4 bits)
	Offset uint32 // Immediate offset (12 bits), I == 0

	ShiftType ARMShiftType // I == 1, bits 6-5
	ShiftImm  uint8        // I == 1, bits 11-7
	Rm        uint8        // I == 1, bits 3-0
}

// Branch Instruction Structure (B, BL, and BLX immediate when Cond == NV)
type ARMBranchInstruction struct {
	ARMInstructionBase
	Link   bool  // bit 24: BL, or the extra half-word of BLX
	Offset int32 // sign-extended 24-bit offset, times 4
}

// ARMBranchExchangeInstruction represents BX Rm.
type ARMBranchExchangeInstruction struct {
	ARMInstructionBase
	Rm uint8
}

// ARMMultiplyInstruction represents a Multiply or Multiply-Accumulate instruction.
type ARMMultiplyInstruction struct {
	ARMInstructionBase
	A  bool  // Accumulate bit (1=MLA, 0=MUL)
	S  bool  // Set Condition Codes
	Rd uint8 // Destination register
	Rn uint8 // Accumulate register (for MLA)
	Rs uint8 // Source register 1
	Rm uint8 // Source register 2
}

// ARMSWIInstruction represents a Software Interrupt instruction.
type ARMSWIInstruction struct {
	ARMInstructionBase
	Comment uint32 // 24-bit immediate value, ignored by the processor
}

// ARMBlockDataTransferInstruction represents LDM (Load Multiple) or STM (Store Multiple) instructions.
type ARMBlockDataTransferInstruction struct {
	ARMInstructionBase
	P            bool   // Pre/Post-indexing (1=Pre, 0=Post)
	U            bool   // Up/Down (1=Add offset, 0=Subtract offset)
	W            bool   // Write-back (1=Write base register back, 0=No write-back)
	L            bool   // Load/Store (1=Load, 0=Store)
	Rn           uint8  // Base register
	RegisterList uint16 // 16-bit register list mask
}

// ARMMRSInstruction moves CPSR or SPSR into a register.
type ARMMRSInstruction struct {
	ARMInstructionBase
	SPSR bool // bit 22
	Rd   uint8
}

// ARMMSRInstruction writes selected fields of CPSR or SPSR.
type ARMMSRInstruction struct {
	ARMInstructionBase
	SPSR   bool  // bit 22
	Fields uint8 // bits 19-16: f s x c
	I      bool  // bit 25: immediate operand
	Imm    uint32
	Rm     uint8
}

type ARMDataProcessingOperation uint8

// ARM Data Processing OpCodes
const (
	AND ARMDataProcessingOperation = 0x0 // AND logical AND
	EOR ARMDataProcessingOperation = 0x1 // EOR logical exclusive OR
	SUB ARMDataProcessingOperation = 0x2 // SUB subtract
	RSB ARMDataProcessingOperation = 0x3 // RSB reverse subtract
	ADD ARMDataProcessingOperation = 0x4 // ADD add
	ADC ARMDataProcessingOperation = 0x5 // ADC add with carry
	SBC ARMDataProcessingOperation = 0x6 // SBC subtract with carry
	RSC ARMDataProcessingOperation = 0x7 // RSC reverse subtract with carry
	TST ARMDataProcessingOperation = 0x8 // TST test bits
	TEQ ARMDataProcessingOperation = 0x9 // TEQ test equality
	CMP ARMDataProcessingOperation = 0xA // CMP compare
	CMN ARMDataProcessingOperation = 0xB // CMN compare negative
	ORR ARMDataProcessingOperation = 0xC // ORR logical OR
	MOV ARMDataProcessingOperation = 0xD // MOV move
	BIC ARMDataProcessingOperation = 0xE // BIC bit clear
	MVN ARMDataProcessingOperation = 0xF // MVN move not
)

// IsTest reports whether the operation only sets flags (TST, TEQ, CMP, CMN).
func (op ARMDataProcessingOperation) IsTest() bool {
	return op >= TST && op <= CMN
}

// ARM Shift Type
type ARMShiftType uint8

const (
	LSL ARMShiftType = 0x0 // Logical Shift Left
	LSR ARMShiftType = 0x1 // Logical Shift Right
	ASR ARMShiftType = 0x2 // Arithmetic Shift Right
	ROR ARMShiftType = 0x3 // Rotate Right
)
