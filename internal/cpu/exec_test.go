package cpu

import (
	"testing"

	"gbacore/internal/test"
)

// runARM loads program at address zero and executes its instructions in order.
func runARM(t *testing.T, program ...uint32) (*CPU, *flatBus) {
	t.Helper()
	bus := newFlatBus(0x1000)
	bus.putARM(0, program...)
	c := primed(t, bus, false)
	steps(t, c, len(program))
	return c, bus
}

func runThumb(t *testing.T, program ...uint16) (*CPU, *flatBus) {
	t.Helper()
	bus := newFlatBus(0x1000)
	bus.putThumb(0, program...)
	c := primed(t, bus, true)
	steps(t, c, len(program))
	return c, bus
}

func TestARMDataProcessing(t *testing.T) {
	tests := []struct {
		name    string
		program []uint32
		reg     uint8
		want    uint32
		nzcv    uint32
	}{
		{"MOV imm", []uint32{0xE3A00001}, 0, 1, 0},
		{"MVN", []uint32{0xE3E00000}, 0, 0xFFFFFFFF, 0},
		{"MOVS zero", []uint32{0xE3B00000}, 0, 0, 0b0100},
		{"ADDS carry out", []uint32{
			0xE3E00000, // MVN r0, #0
			0xE3A01001, // MOV r1, #1
			0xE0902001, // ADDS r2, r0, r1
		}, 2, 0, 0b0110},
		{"ADDS overflow", []uint32{
			0xE3E00102, // MVN r0, #0x80000000 -> 0x7FFFFFFF
			0xE3A01001, // MOV r1, #1
			0xE0902001, // ADDS r2, r0, r1
		}, 2, 0x80000000, 0b1001},
		{"SUBS borrow", []uint32{
			0xE3A00001, // MOV r0, #1
			0xE3A01002, // MOV r1, #2
			0xE0502001, // SUBS r2, r0, r1
		}, 2, 0xFFFFFFFF, 0b1000},
		{"SUBS no borrow", []uint32{
			0xE3A00002, // MOV r0, #2
			0xE3A01001, // MOV r1, #1
			0xE0502001, // SUBS r2, r0, r1
		}, 2, 1, 0b0010},
		{"RSB", []uint32{
			0xE3A00003, // MOV r0, #3
			0xE260100A, // RSB r1, r0, #10
		}, 1, 7, 0},
		{"BIC", []uint32{
			0xE3A000FF, // MOV r0, #0xFF
			0xE3C0100F, // BIC r1, r0, #0x0F
		}, 1, 0xF0, 0},
		{"ORR EOR", []uint32{
			0xE3A000F0, // MOV r0, #0xF0
			0xE380100F, // ORR r1, r0, #0x0F
			0xE22120FF, // EOR r2, r1, #0xFF
		}, 2, 0, 0},
		{"ADC uses carry", []uint32{
			0xE3E00000, // MVN r0, #0
			0xE2900001, // ADDS r0, r0, #1  sets C
			0xE2A01005, // ADC r1, r0, #5
		}, 1, 6, 0b0110},
		{"CMP sets flags only", []uint32{
			0xE3A00005, // MOV r0, #5
			0xE3500005, // CMP r0, #5
		}, 0, 5, 0b0110},
		{"LSR #32", []uint32{
			0xE3E00000, // MVN r0, #0
			0xE1B01020, // MOVS r1, r0, LSR #32
		}, 1, 0, 0b0110},
		{"ASR #32", []uint32{
			0xE3A00102, // MOV r0, #0x80000000
			0xE1B01040, // MOVS r1, r0, ASR #32
		}, 1, 0xFFFFFFFF, 0b1010},
		{"RRX", []uint32{
			0xE3A00003, // MOV r0, #3
			0xE1B01060, // MOVS r1, r0, RRX
		}, 1, 1, 0b0010},
		{"LSL by register", []uint32{
			0xE3A00001, // MOV r0, #1
			0xE3A02004, // MOV r2, #4
			0xE1A01210, // MOV r1, r0, LSL r2
		}, 1, 0x10, 0},
		{"LSL by register 32", []uint32{
			0xE3A00001, // MOV r0, #1
			0xE3A02020, // MOV r2, #32
			0xE1B01210, // MOVS r1, r0, LSL r2
		}, 1, 0, 0b0110},
		{"ROR immediate carry", []uint32{
			0xE3A000FF, // MOV r0, #0xFF
			0xE1B01460, // MOVS r1, r0, ROR #8
		}, 1, 0xFF000000, 0b1010},
		{"MUL", []uint32{
			0xE3A01006, // MOV r1, #6
			0xE3A02007, // MOV r2, #7
			0xE0000291, // MUL r0, r1, r2
		}, 0, 42, 0},
		{"MLA", []uint32{
			0xE3A01006, // MOV r1, #6
			0xE3A02007, // MOV r2, #7
			0xE3A04008, // MOV r4, #8
			0xE0234291, // MLA r3, r1, r2, r4
		}, 3, 50, 0},
		{"condition skipped", []uint32{
			0xE3A00001, // MOV r0, #1
			0x03A00002, // MOVEQ r0, #2
		}, 0, 1, 0},
		{"read PC", []uint32{
			0xE1A0000F, // MOV r0, pc
		}, 0, 8, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := runARM(t, tt.program...)
			r := c.Registers()
			test.Equate(t, r.GetReg(tt.reg), tt.want)
			test.Equate(t, r.GetCPSR()>>28, tt.nzcv)
		})
	}
}

func TestARMExecuteCycles(t *testing.T) {
	bus := newFlatBus(0x100)
	bus.putARM(0,
		0xE3A00001, // MOV r0, #1
		0xE1A01210, // MOV r1, r0, LSL r2
		0xE0000291, // MUL r0, r1, r2
		0xE0234291, // MLA r3, r1, r2, r4
	)
	c := primed(t, bus, false)

	// immediate 1, register shift 1+1, multiply 1+m, accumulate +1
	for _, want := range []int{1, 2, 2, 3} {
		n, err := c.execute()
		test.ExpectedSuccess(t, err)
		test.Equate(t, n, want)

		test.ExpectedSuccess(t, c.decode())
		_, err = c.fetch()
		test.ExpectedSuccess(t, err)
	}
}

func TestMultiplyCycles(t *testing.T) {
	tests := []struct {
		rs   uint32
		want int
	}{
		{0x00000000, 1},
		{0x000000FF, 1},
		{0xFFFFFF80, 1},
		{0x00000100, 2},
		{0xFFFF0000, 2},
		{0x00FF0000, 3},
		{0x01000000, 4},
		{0x80000000, 4},
	}
	for _, tt := range tests {
		test.Equate(t, multiplyCycles(tt.rs), tt.want)
	}
}

func TestARMExceptionReturn(t *testing.T) {
	bus := newFlatBus(0x1000)
	bus.putARM(0x100, 0xE1B0F00E) // MOVS pc, lr
	c := NewCPU(bus)
	r := c.Registers()
	r.SetMode(USRMode)
	r.SetFlagC(true)
	user := r.GetCPSR()
	r.EnterMode(IRQMode)
	r.SetReg(LR, 0x200)
	r.SetPC(0x100)

	_, err := c.Fetch()
	test.ExpectedSuccess(t, err)
	steps(t, c, 2)

	test.Equate(t, r.GetCPSR(), user)
	test.Equate(t, r.GetMode(), USRMode)
	test.Equate(t, c.fetcher.last, uint32(0x204))
}

func TestARMLoadStore(t *testing.T) {
	c, bus := runARM(t,
		0xE3A01C01, // MOV r1, #0x100
		0xE3A000AB, // MOV r0, #0xAB
		0xE5810000, // STR r0, [r1]
		0xE5C10005, // STRB r0, [r1, #5]
		0xE5B12004, // LDR r2, [r1, #4]!
		0xE4913004, // LDR r3, [r1], #4
		0xE5D14001, // LDRB r4, [r1, #1]
	)
	r := c.Registers()

	test.Equate(t, bus.word(0x100), uint32(0xAB))
	test.Equate(t, bus.mem[0x105], byte(0xAB))
	test.Equate(t, r.GetReg(2), uint32(0xAB00))
	test.Equate(t, r.GetReg(3), uint32(0xAB00))
	test.Equate(t, r.GetReg(1), uint32(0x108))
	test.Equate(t, r.GetReg(4), uint32(0))
}

func TestARMUnalignedLoadRotates(t *testing.T) {
	bus := newFlatBus(0x1000)
	bus.putARM(0,
		0xE3A01C01, // MOV r1, #0x100
		0xE5912001, // LDR r2, [r1, #1]
	)
	bus.putARM(0x100, 0x44332211)
	c := primed(t, bus, false)
	steps(t, c, 2)
	test.Equate(t, c.Registers().GetReg(2), uint32(0x11443322))
}

func TestARMStorePC(t *testing.T) {
	_, bus := runARM(t,
		0xE3A01C01, // MOV r1, #0x100
		0xE581F000, // STR pc, [r1]
	)
	// the STR sits at 4, so PC is 12 and the stored value 16
	test.Equate(t, bus.word(0x100), uint32(16))
}

func TestARMLoadPCRefills(t *testing.T) {
	bus := newFlatBus(0x1000)
	bus.putARM(0,
		0xE3A01C01, // MOV r1, #0x100
		0xE591F000, // LDR pc, [r1]
	)
	bus.putARM(0x100, 0x00000040)
	c := primed(t, bus, false)
	steps(t, c, 1)

	n, err := c.execute()
	test.ExpectedSuccess(t, err)
	// 1 + bus 1 + internal 1 + refill 1
	test.Equate(t, n, 4)
	test.Equate(t, c.fetcher.last, uint32(0x40))
	test.Equate(t, c.Registers().GetPC(), uint32(0x44))
}

func TestARMBlockTransfer(t *testing.T) {
	c, bus := runARM(t,
		0xE3A00C01, // MOV r0, #0x100
		0xE3A01011, // MOV r1, #0x11
		0xE3A02022, // MOV r2, #0x22
		0xE8A00006, // STMIA r0!, {r1, r2}
		0xE9100018, // LDMDB r0, {r3, r4}
		0xE3A05C02, // MOV r5, #0x200
		0xE9250006, // STMDB r5!, {r1, r2}
		0xE8B50180, // LDMIA r5!, {r7, r8}
	)
	r := c.Registers()

	test.Equate(t, bus.word(0x100), uint32(0x11))
	test.Equate(t, bus.word(0x104), uint32(0x22))
	test.Equate(t, r.GetReg(0), uint32(0x108))
	test.Equate(t, r.GetReg(3), uint32(0x11))
	test.Equate(t, r.GetReg(4), uint32(0x22))

	test.Equate(t, bus.word(0x1F8), uint32(0x11))
	test.Equate(t, bus.word(0x1FC), uint32(0x22))
	test.Equate(t, r.GetReg(7), uint32(0x11))
	test.Equate(t, r.GetReg(8), uint32(0x22))
	test.Equate(t, r.GetReg(5), uint32(0x200))
}

func TestARMStoreMultipleWritebackBase(t *testing.T) {
	// base listed after another register: the updated base is stored
	_, bus := runARM(t,
		0xE3A01C01, // MOV r1, #0x100
		0xE3A00011, // MOV r0, #0x11
		0xE8A10003, // STMIA r1!, {r0, r1}
	)
	test.Equate(t, bus.word(0x100), uint32(0x11))
	test.Equate(t, bus.word(0x104), uint32(0x108))

	// base is the lowest listed register: the original base is stored
	c, bus := runARM(t,
		0xE3A00C02, // MOV r0, #0x200
		0xE3A01055, // MOV r1, #0x55
		0xE8A00003, // STMIA r0!, {r0, r1}
	)
	test.Equate(t, bus.word(0x200), uint32(0x200))
	test.Equate(t, bus.word(0x204), uint32(0x55))
	test.Equate(t, c.Registers().GetReg(0), uint32(0x208))
}

func TestARMBlockTransferIB(t *testing.T) {
	c, bus := runARM(t,
		0xE3A00C01, // MOV r0, #0x100
		0xE3A01011, // MOV r1, #0x11
		0xE9800002, // STMIB r0, {r1}
		0xE8100002, // LDMDA r0, {r1}
	)
	test.Equate(t, bus.word(0x104), uint32(0x11))
	test.Equate(t, bus.word(0x100), uint32(0))
	test.Equate(t, c.Registers().GetReg(1), uint32(0))
}

func TestARMPSRTransfer(t *testing.T) {
	c, _ := runARM(t,
		0xE321F01F, // MSR CPSR_c, #0x1F  (SYS)
		0xE3A00202, // MOV r0, #0x20000000
		0xE128F000, // MSR CPSR_f, r0
		0xE10F1000, // MRS r1, CPSR
	)
	r := c.Registers()
	test.Equate(t, r.GetMode(), SYSMode)
	test.Equate(t, r.GetFlagC(), true)
	test.Equate(t, r.GetReg(1), uint32(0x2000001F))
}

func TestARMMSRModeChangeSwapsBanks(t *testing.T) {
	bus := newFlatBus(0x1000)
	bus.putARM(0,
		0xE3A0DC01, // MOV sp, #0x100   (SVC)
		0xE321F012, // MSR CPSR_c, #0x12 (IRQ)
		0xE3A0DC02, // MOV sp, #0x200   (IRQ)
		0xE321F013, // MSR CPSR_c, #0x13 (SVC)
	)
	c := primed(t, bus, false)
	steps(t, c, 4)
	r := c.Registers()
	test.Equate(t, r.GetReg(SP), uint32(0x100))
	test.Equate(t, r.BankedReg(IRQMode, SP), uint32(0x200))
}

func TestARMMSRUserCannotWriteControl(t *testing.T) {
	bus := newFlatBus(0x1000)
	bus.putARM(0, 0xE321F013) // MSR CPSR_c, #0x13
	c := NewCPU(bus)
	c.Registers().SetMode(USRMode)
	_, err := c.Fetch()
	test.ExpectedSuccess(t, err)
	steps(t, c, 2)
	test.Equate(t, c.Registers().GetMode(), USRMode)
}

func TestARMSWI(t *testing.T) {
	bus := newFlatBus(0x1000)
	bus.putARM(0x100, 0xEF000000) // SWI 0
	c := NewCPU(bus)
	r := c.Registers()
	r.SetMode(USRMode)
	r.SetIRQDisabled(false)
	user := r.GetCPSR()
	r.SetPC(0x100)
	_, err := c.Fetch()
	test.ExpectedSuccess(t, err)
	steps(t, c, 2)

	test.Equate(t, r.GetMode(), SVCMode)
	test.Equate(t, r.GetSPSR(), user)
	test.Equate(t, r.GetReg(LR), uint32(0x104))
	test.Equate(t, r.IsIRQDisabled(), true)
	test.Equate(t, c.decoded.addr, uint32(vectorSWI))
}

func TestARMBranchExchange(t *testing.T) {
	bus := newFlatBus(0x1000)
	bus.putARM(0,
		0xE3A00041, // MOV r0, #0x41
		0xE12FFF10, // BX r0
	)
	bus.putThumb(0x40, 0x2007) // MOV r0, #7
	c := primed(t, bus, false)
	steps(t, c, 3)

	r := c.Registers()
	test.Equate(t, r.IsThumb(), true)
	test.Equate(t, r.GetReg(0), uint32(7))
}

func TestARMBranchLinkExchange(t *testing.T) {
	bus := newFlatBus(0x1000)
	bus.putARM(0, 0xFB000002) // BLX +8, H set
	c := primed(t, bus, false)

	n, err := c.execute()
	test.ExpectedSuccess(t, err)
	test.Equate(t, n, 2)
	r := c.Registers()
	test.Equate(t, r.IsThumb(), true)
	test.Equate(t, r.GetReg(LR), uint32(8))
	test.Equate(t, c.fetcher.last, uint32(18))
	test.Equate(t, r.GetPC(), uint32(20))
}

func TestThumbArithmetic(t *testing.T) {
	tests := []struct {
		name    string
		program []uint16
		reg     uint8
		want    uint32
		nzcv    uint32
	}{
		{"MOV", []uint16{0x2005}, 0, 5, 0},
		{"MOV zero", []uint16{0x2000}, 0, 0, 0b0100},
		{"ADD imm8", []uint16{0x2005, 0x3003}, 0, 8, 0},
		{"SUB imm8", []uint16{0x2005, 0x3806}, 0, 0xFFFFFFFF, 0b1000},
		{"CMP equal", []uint16{0x2005, 0x2805}, 0, 5, 0b0110},
		{"ADD reg", []uint16{0x2005, 0x2103, 0x1842}, 2, 8, 0},
		{"SUB imm3", []uint16{0x2005, 0x1EC2}, 2, 2, 0b0010},
		{"LSL", []uint16{0x2003, 0x0081}, 1, 12, 0},
		{"LSR carry", []uint16{0x2003, 0x0841}, 1, 1, 0b0010},
		{"ASR #32", []uint16{0x2080, 0x0600, 0x1001}, 1, 0xFFFFFFFF, 0b1010},
		{"MOV hi", []uint16{0x2009, 0x4680, 0x2000, 0x4440}, 0, 9, 0b0100},
		{"CMP hi", []uint16{0x2009, 0x4680, 0x4540}, 0, 9, 0b0110},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := runThumb(t, tt.program...)
			r := c.Registers()
			test.Equate(t, r.GetReg(tt.reg), tt.want)
			test.Equate(t, r.GetCPSR()>>28, tt.nzcv)
		})
	}
}

func TestThumbBranches(t *testing.T) {
	c, _ := runThumb(t,
		0x2000, // MOV r0, #0
		0xD001, // BEQ +2 -> 0x08
		0x2101, // MOV r1, #1 (skipped)
		0x2102, // MOV r1, #2 (skipped)
		0xE000, // B +0 -> 0x0C
		0x2103, // MOV r1, #3 (skipped)
		0x2204, // MOV r2, #4
	)
	r := c.Registers()
	test.Equate(t, r.GetReg(1), uint32(0))
	test.Equate(t, r.GetReg(2), uint32(4))
}

func TestThumbLongBranch(t *testing.T) {
	bus := newFlatBus(0x1000)
	bus.putThumb(0x10, 0xF000, 0xF808) // BL +0x10 -> 0x24
	bus.putThumb(0x24, 0x2007)         // MOV r0, #7
	c := NewCPU(bus)
	r := c.Registers()
	r.SetThumbState(true)
	r.SetPC(0x10)
	_, err := c.Fetch()
	test.ExpectedSuccess(t, err)
	steps(t, c, 4)

	test.Equate(t, r.GetReg(LR), uint32(0x15))
	test.Equate(t, r.GetReg(0), uint32(7))
}

func TestThumbBXToARM(t *testing.T) {
	bus := newFlatBus(0x1000)
	bus.putThumb(0, 0x2040, 0x4700) // MOV r0, #0x40; BX r0
	bus.putARM(0x40, 0xE3A01005)     // MOV r1, #5
	c := primed(t, bus, true)
	steps(t, c, 3)

	r := c.Registers()
	test.Equate(t, r.IsThumb(), false)
	test.Equate(t, r.GetReg(1), uint32(5))
}

func TestThumbSWI(t *testing.T) {
	bus := newFlatBus(0x1000)
	bus.putThumb(0x100, 0xDF01)
	c := NewCPU(bus)
	r := c.Registers()
	r.SetThumbState(true)
	r.SetPC(0x100)
	_, err := c.Fetch()
	test.ExpectedSuccess(t, err)
	steps(t, c, 2)

	test.Equate(t, r.IsThumb(), false)
	test.Equate(t, r.GetMode(), SVCMode)
	test.Equate(t, r.GetReg(LR), uint32(0x102))
	test.Equate(t, r.GetSPSR()&FlagT, uint32(FlagT))
}
