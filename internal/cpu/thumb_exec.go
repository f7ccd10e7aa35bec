package cpu

import "fmt"

// executeThumb runs a decoded Thumb instruction and returns the cycles it
// cost, including any pipeline refill.
func (c *CPU) executeThumb(instruction ThumbInstruction) (int, error) {
	switch inst := instruction.(type) {
	case ThumbMoveShiftedInstruction:
		return c.execThumbMoveShifted(inst), nil
	case ThumbAddSubInstruction:
		return c.execThumbAddSub(inst), nil
	case ThumbImmediateInstruction:
		return c.execThumbImmediate(inst), nil
	case ThumbHiRegisterInstruction:
		return c.execThumbHiRegister(inst)
	case ThumbConditionalBranchInstruction:
		if !c.registers.ConditionPasses(inst.Cond) {
			return 1, nil
		}
		return c.execThumbBranch(inst.Offset)
	case ThumbBranchInstruction:
		return c.execThumbBranch(inst.Offset)
	case ThumbLongBranchInstruction:
		return c.execThumbLongBranch(inst)
	case ThumbSWIInstruction:
		return c.softwareInterrupt(c.registers.GetPC() - 2)
	}
	return 0, fmt.Errorf("cpu: no Thumb executor for %T", instruction)
}

// Executes LSL, LSR and ASR by an immediate.
func (c *CPU) execThumbMoveShifted(inst ThumbMoveShiftedInstruction) int {
	r := c.registers
	result, carry := shiftByImmediate(inst.Op, r.GetReg(inst.Rs), inst.Offset, r.GetFlagC())
	r.SetReg(inst.Rd, result)
	r.setNZ(result)
	r.SetFlagC(carry)
	return 1
}

func (c *CPU) execThumbAddSub(inst ThumbAddSubInstruction) int {
	r := c.registers
	operand := uint32(inst.Rn)
	if !inst.Immediate {
		operand = r.GetReg(inst.Rn)
	}

	rs := r.GetReg(inst.Rs)
	var result uint32
	var carry, overflow bool
	if inst.Sub {
		result, carry, overflow = addWithCarry(rs, ^operand, true)
	} else {
		result, carry, overflow = addWithCarry(rs, operand, false)
	}
	r.SetReg(inst.Rd, result)
	c.setArithmeticFlags(result, carry, overflow)
	return 1
}

func (c *CPU) execThumbImmediate(inst ThumbImmediateInstruction) int {
	r := c.registers
	rd := r.GetReg(inst.Rd)
	imm := uint32(inst.Imm)

	switch inst.Op {
	case ThumbMOV:
		r.SetReg(inst.Rd, imm)
		r.setNZ(imm)
	case ThumbCMP:
		result, carry, overflow := addWithCarry(rd, ^imm, true)
		c.setArithmeticFlags(result, carry, overflow)
	case ThumbADD:
		result, carry, overflow := addWithCarry(rd, imm, false)
		r.SetReg(inst.Rd, result)
		c.setArithmeticFlags(result, carry, overflow)
	case ThumbSUB:
		result, carry, overflow := addWithCarry(rd, ^imm, true)
		r.SetReg(inst.Rd, result)
		c.setArithmeticFlags(result, carry, overflow)
	}
	return 1
}

// Executes ADD, CMP and MOV on any of R0-R15, and BX. Only CMP sets flags.
func (c *CPU) execThumbHiRegister(inst ThumbHiRegisterInstruction) (int, error) {
	r := c.registers
	rs := r.GetReg(inst.Rs)

	switch inst.Op {
	case ThumbHiADD:
		return c.writeThumbHi(inst.Rd, r.GetReg(inst.Rd)+rs)
	case ThumbHiCMP:
		result, carry, overflow := addWithCarry(r.GetReg(inst.Rd), ^rs, true)
		c.setArithmeticFlags(result, carry, overflow)
		return 1, nil
	case ThumbHiMOV:
		return c.writeThumbHi(inst.Rd, rs)
	default: // BX
		r.SetThumbState(rs&1 != 0)
		n, err := c.branchTo(rs)
		return 1 + n, err
	}
}

func (c *CPU) writeThumbHi(rd uint8, value uint32) (int, error) {
	if rd == PC {
		n, err := c.branchTo(value)
		return 1 + n, err
	}
	c.registers.SetReg(rd, value)
	return 1, nil
}

func (c *CPU) execThumbBranch(offset int32) (int, error) {
	n, err := c.branchTo(uint32(int32(c.registers.GetPC()) + offset))
	return 1 + n, err
}

// Executes one half of BL. The first half parks the upper offset in LR,
// the second branches and leaves the return address in LR.
func (c *CPU) execThumbLongBranch(inst ThumbLongBranchInstruction) (int, error) {
	r := c.registers
	pc := r.GetPC()

	if !inst.High {
		hi := int32(inst.Offset<<21) >> 9 // sign-extended, shifted left 12
		r.SetReg(LR, uint32(int32(pc)+hi))
		return 1, nil
	}

	target := r.GetReg(LR) + inst.Offset<<1
	r.SetReg(LR, (pc-2)|1)
	n, err := c.branchTo(target)
	return 1 + n, err
}

func (c *CPU) setArithmeticFlags(result uint32, carry, overflow bool) {
	r := c.registers
	r.setNZ(result)
	r.SetFlagC(carry)
	r.SetFlagV(overflow)
}
