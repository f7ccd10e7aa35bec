package cpu

import (
	"fmt"
	"math/bits"

	"gbacore/internal/memory"
)

const vectorSWI = 0x08

// executeARM runs a decoded ARM instruction and returns the cycles it cost,
// including any bus accesses and pipeline refill.
func (c *CPU) executeARM(instruction ARMInstruction) (int, error) {
	// BLX immediate is encoded in the NV condition space
	if inst, ok := instruction.(ARMBranchInstruction); ok && inst.Cond == NV {
		return c.execArmBranchLinkExchange(inst)
	}

	if !c.registers.ConditionPasses(instruction.Condition()) {
		return 1, nil
	}

	switch inst := instruction.(type) {
	case ARMBranchInstruction:
		return c.execArmBranch(inst)
	case ARMBranchExchangeInstruction:
		return c.execArmBranchExchange(inst)
	case ARMDataProcessingInstruction:
		return c.execArmDataProcessing(inst)
	case ARMMultiplyInstruction:
		return c.execArmMultiply(inst), nil
	case ARMLoadStoreInstruction:
		return c.execArmLoadStore(inst)
	case ARMBlockDataTransferInstruction:
		return c.execArmBlockDataTransfer(inst)
	case ARMMRSInstruction:
		return c.execArmMRS(inst), nil
	case ARMMSRInstruction:
		return c.execArmMSR(inst), nil
	case ARMSWIInstruction:
		return c.softwareInterrupt(c.registers.GetPC() - 4)
	}
	return 0, fmt.Errorf("cpu: no ARM executor for %T", instruction)
}

// Executes ARM B and BL. LR receives the current PC.
func (c *CPU) execArmBranch(inst ARMBranchInstruction) (int, error) {
	r := c.registers
	pc := r.GetPC()
	if inst.Link {
		r.SetReg(LR, pc)
	}
	n, err := c.branchTo(uint32(int32(pc) + inst.Offset))
	return 1 + n, err
}

// Executes BLX label: branch with link and switch to Thumb state.
func (c *CPU) execArmBranchLinkExchange(inst ARMBranchInstruction) (int, error) {
	r := c.registers
	pc := r.GetPC()
	r.SetThumbState(true)
	r.SetReg(LR, pc)
	target := uint32(int32(pc) + inst.Offset)
	if inst.Link {
		target += 2
	}
	n, err := c.branchTo(target)
	return 1 + n, err
}

// Executes BX Rm. Bit 0 of Rm selects the new state.
func (c *CPU) execArmBranchExchange(inst ARMBranchExchangeInstruction) (int, error) {
	target := c.registers.GetReg(inst.Rm)
	c.registers.SetThumbState(target&1 != 0)
	n, err := c.branchTo(target)
	return 1 + n, err
}

// operand2 evaluates the second operand of a data processing instruction
// and the carry out of the barrel shifter.
func (c *CPU) operand2(inst ARMDataProcessingInstruction) (uint32, bool) {
	r := c.registers
	carry := r.GetFlagC()

	if inst.I {
		if inst.Rotate == 0 {
			return inst.Imm, carry
		}
		return inst.Imm, inst.Imm>>31 != 0
	}

	rm := r.GetReg(inst.Rm)
	if inst.R {
		// the extra shift cycle moves PC on by another word
		if inst.Rm == PC {
			rm += 4
		}
		return shiftByRegister(inst.ShiftType, rm, r.GetReg(inst.Rs), carry)
	}
	return shiftByImmediate(inst.ShiftType, rm, inst.ShiftImm, carry)
}

func (c *CPU) execArmDataProcessing(inst ARMDataProcessingInstruction) (int, error) {
	r := c.registers
	cycles := 1

	op2, shiftCarry := c.operand2(inst)
	rn := r.GetReg(inst.Rn)
	if inst.R {
		cycles++
		if inst.Rn == PC {
			rn += 4
		}
	}

	var result uint32
	carry, overflow := shiftCarry, r.GetFlagV()
	switch inst.Opcode {
	case AND, TST:
		result = rn & op2
	case EOR, TEQ:
		result = rn ^ op2
	case SUB, CMP:
		result, carry, overflow = addWithCarry(rn, ^op2, true)
	case RSB:
		result, carry, overflow = addWithCarry(op2, ^rn, true)
	case ADD, CMN:
		result, carry, overflow = addWithCarry(rn, op2, false)
	case ADC:
		result, carry, overflow = addWithCarry(rn, op2, r.GetFlagC())
	case SBC:
		result, carry, overflow = addWithCarry(rn, ^op2, r.GetFlagC())
	case RSC:
		result, carry, overflow = addWithCarry(op2, ^rn, r.GetFlagC())
	case ORR:
		result = rn | op2
	case MOV:
		result = op2
	case BIC:
		result = rn &^ op2
	case MVN:
		result = ^op2
	}

	if inst.S {
		if inst.Rd == PC && !inst.Opcode.IsTest() {
			// exception return
			r.RestoreCPSR()
		} else {
			r.setNZ(result)
			r.SetFlagC(carry)
			r.SetFlagV(overflow)
		}
	}

	if inst.Opcode.IsTest() {
		return cycles, nil
	}
	if inst.Rd == PC {
		n, err := c.branchTo(result)
		return cycles + n, err
	}
	r.SetReg(inst.Rd, result)
	return cycles, nil
}

func (c *CPU) execArmMultiply(inst ARMMultiplyInstruction) int {
	r := c.registers
	rs := r.GetReg(inst.Rs)
	result := r.GetReg(inst.Rm) * rs
	cycles := 1 + multiplyCycles(rs)

	if inst.A {
		result += r.GetReg(inst.Rn)
		cycles++
	}
	r.SetReg(inst.Rd, result)
	if inst.S {
		r.setNZ(result)
	}
	return cycles
}

// Executes LDR, STR, LDRB and STRB.
func (c *CPU) execArmLoadStore(inst ARMLoadStoreInstruction) (int, error) {
	r := c.registers
	base := r.GetReg(inst.Rn)

	offset := inst.Offset
	if inst.I {
		offset, _ = shiftByImmediate(inst.ShiftType, r.GetReg(inst.Rm), inst.ShiftImm, r.GetFlagC())
	}
	target := base - offset
	if inst.U {
		target = base + offset
	}
	addr := base
	if inst.P {
		addr = target
	}
	writeback := !inst.P || inst.W

	width := memory.Width32
	if inst.B {
		width = memory.Width8
	}
	cycles := 1 + c.bus.CyclesFor(addr, width)

	if !inst.L {
		value := r.GetReg(inst.Rd)
		if inst.Rd == PC {
			value += 4
		}
		var err error
		if inst.B {
			err = memory.Write8(c.bus, addr, uint8(value))
		} else {
			err = memory.Write32(c.bus, addr&^3, value)
		}
		if err != nil {
			return cycles, err
		}
		if writeback {
			r.SetReg(inst.Rn, target)
		}
		return cycles, nil
	}

	var value uint32
	if inst.B {
		b, err := memory.Read8(c.bus, addr)
		if err != nil {
			return cycles, err
		}
		value = uint32(b)
	} else {
		w, err := memory.Read32(c.bus, addr&^3)
		if err != nil {
			return cycles, err
		}
		// unaligned loads rotate the addressed byte into the bottom
		value = bits.RotateLeft32(w, -int(addr&3)*8)
	}
	cycles++

	// a loaded base register wins over write-back
	if writeback {
		r.SetReg(inst.Rn, target)
	}
	if inst.Rd == PC {
		n, err := c.branchTo(value)
		return cycles + n, err
	}
	r.SetReg(inst.Rd, value)
	return cycles, nil
}

// Executes LDM and STM. Registers transfer lowest first to the lowest
// address whatever the direction.
func (c *CPU) execArmBlockDataTransfer(inst ARMBlockDataTransferInstruction) (int, error) {
	r := c.registers
	base := r.GetReg(inst.Rn)
	size := uint32(bits.OnesCount16(inst.RegisterList)) * 4

	var addr, final uint32
	if inst.U {
		addr, final = base, base+size
		if inst.P {
			addr += 4
		}
	} else {
		addr, final = base-size, base-size
		if !inst.P {
			addr += 4
		}
	}

	cycles := 1
	if inst.L {
		cycles++
		if inst.W {
			r.SetReg(inst.Rn, final)
		}
	}

	// STM writes back after the first transfer, so a base that is not the
	// lowest listed register is stored already updated.
	loadedPC, first := false, true
	var pc uint32
	for i := uint8(0); i < 16; i++ {
		if inst.RegisterList&(1<<i) == 0 {
			continue
		}
		cycles += c.bus.CyclesFor(addr, memory.Width32)

		if inst.L {
			v, err := memory.Read32(c.bus, addr&^3)
			if err != nil {
				return cycles, err
			}
			if i == PC {
				loadedPC, pc = true, v
			} else {
				r.SetReg(i, v)
			}
		} else {
			v := r.GetReg(i)
			if i == PC {
				v += 4
			}
			if err := memory.Write32(c.bus, addr&^3, v); err != nil {
				return cycles, err
			}
			if first && inst.W {
				r.SetReg(inst.Rn, final)
			}
		}
		first = false
		addr += 4
	}

	if loadedPC {
		n, err := c.branchTo(pc)
		return cycles + n, err
	}
	return cycles, nil
}

func (c *CPU) execArmMRS(inst ARMMRSInstruction) int {
	r := c.registers
	if inst.SPSR {
		r.SetReg(inst.Rd, r.GetSPSR())
	} else {
		r.SetReg(inst.Rd, r.GetCPSR())
	}
	return 1
}

func (c *CPU) execArmMSR(inst ARMMSRInstruction) int {
	r := c.registers
	value := inst.Imm
	if !inst.I {
		value = r.GetReg(inst.Rm)
	}

	var mask uint32
	if inst.Fields&0x8 != 0 {
		mask |= 0xFF000000
	}
	if inst.Fields&0x1 != 0 && (inst.SPSR || r.GetMode() != USRMode) {
		mask |= 0x000000FF
	}

	if inst.SPSR {
		r.SetSPSR(r.GetSPSR()&^mask | value&mask)
		return 1
	}
	// the T bit is never written through MSR
	mask &^= FlagT
	r.SetCPSR(r.GetCPSR()&^mask | value&mask)
	return 1
}

// softwareInterrupt enters Supervisor mode at the SWI vector with LR set to
// ret. Shared by the ARM and Thumb SWI instructions.
func (c *CPU) softwareInterrupt(ret uint32) (int, error) {
	r := c.registers
	r.EnterMode(SVCMode)
	r.SetReg(LR, ret)
	r.SetIRQDisabled(true)
	r.SetThumbState(false)
	n, err := c.branchTo(vectorSWI)
	return 1 + n, err
}
