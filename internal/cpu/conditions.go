package cpu

// Condition is the 4-bit condition field carried by every ARM instruction
// and by Thumb conditional branches.
type Condition uint8

const (
	EQ Condition = 0x0 // Equal                (Z=1)
	NE Condition = 0x1 // Not Equal            (Z=0)
	CS Condition = 0x2 // Carry Set            (C=1)
	CC Condition = 0x3 // Carry Clear          (C=0)
	MI Condition = 0x4 // Minus, Negative      (N=1)
	PL Condition = 0x5 // Plus, Positive or Zero (N=0)
	VS Condition = 0x6 // Overflow Set         (V=1)
	VC Condition = 0x7 // Overflow Clear       (V=0)
	HI Condition = 0x8 // Unsigned Higher      (C=1 and Z=0)
	LS Condition = 0x9 // Unsigned Lower or Same (C=0 or Z=1)
	GE Condition = 0xA // Signed Greater Than or Equal (N=V)
	LT Condition = 0xB // Signed Less Than     (N!=V)
	GT Condition = 0xC // Signed Greater Than  (Z=0 and N=V)
	LE Condition = 0xD // Signed Less Than or Equal (Z=1 or N!=V)
	AL Condition = 0xE // Always               (No condition)
	NV Condition = 0xF // Never
)

var conditionNames = [16]string{
	"EQ", "NE", "CS", "CC", "MI", "PL", "VS", "VC",
	"HI", "LS", "GE", "LT", "GT", "LE", "AL", "NV",
}

func (c Condition) String() string {
	return conditionNames[c&0xF]
}

// ConditionPasses evaluates cond against the current N, Z, C and V flags.
func (r *Registers) ConditionPasses(cond Condition) bool {
	n, z, c, v := r.GetFlagN(), r.GetFlagZ(), r.GetFlagC(), r.GetFlagV()

	switch cond & 0xF {
	case EQ:
		return z
	case NE:
		return !z
	case CS:
		return c
	case CC:
		return !c
	case MI:
		return n
	case PL:
		return !n
	case VS:
		return v
	case VC:
		return !v
	case HI:
		return c && !z
	case LS:
		return !c || z
	case GE:
		return n == v
	case LT:
		return n != v
	case GT:
		return !z && n == v
	case LE:
		return z || n != v
	case AL:
		return true
	}
	return false
}
