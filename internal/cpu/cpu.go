package cpu

import (
	"fmt"

	"gbacore/internal/interfaces"
	"gbacore/internal/memory"
	"gbacore/util/dbg"
)

type slotKind uint8

const (
	slotEmpty slotKind = iota
	slotARM
	slotThumb
)

// slot is the decoded instruction waiting for the execute stage.
type slot struct {
	kind   slotKind
	arm    ARMInstruction
	thumb  ThumbInstruction
	addr   uint32
	raw    uint32
	reason string // why the slot is empty
}

func emptySlot(reason string) slot {
	return slot{kind: slotEmpty, reason: reason}
}

// take returns the slot contents and leaves it empty.
func (s *slot) take() slot {
	taken := *s
	*s = emptySlot("taken")
	return taken
}

// CPU is an ARM7TDMI with a fetch, decode, execute pipeline. Each Step
// executes the instruction decoded by the previous Step, decodes the one
// fetched by the previous Step, and fetches the next.
//
// At execute time PC is the executing address plus 8 in ARM state and plus
// 4 in Thumb state.
type CPU struct {
	registers *Registers
	bus       interfaces.BusInterface
	fetcher   fetcher
	decoded   slot
	seeded    bool
	cycles    uint64
}

func NewCPU(bus interfaces.BusInterface) *CPU {
	c := &CPU{bus: bus}
	c.Reset()
	return c
}

func (c *CPU) Registers() *Registers {
	return c.registers
}

// Cycles returns the number of cycles run since Reset.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// Reset puts the CPU in its power-on state with an empty pipeline.
func (c *CPU) Reset() {
	c.registers = NewRegisters()
	c.registers.SetPC(memory.BIOSAddrStart)
	c.fetcher = fetcher{}
	c.decoded = emptySlot("init")
	c.seeded = false
	c.cycles = 0
}

// Seeded reports whether the first fetch after Reset has happened.
func (c *CPU) Seeded() bool {
	return c.seeded
}

// Fetch reads the instruction at PC and advances PC by one instruction.
// The returned cost is charged even when a Thumb fetch hits the cache.
func (c *CPU) Fetch() (int, error) {
	n, err := c.fetch()
	c.cycles += uint64(n)
	return n, err
}

func (c *CPU) fetch() (int, error) {
	r := c.registers
	pc := r.GetPC()
	thumb := r.IsThumb()

	c.bus.SetAccessContext(memory.ContextFor(pc))
	if _, err := c.fetcher.fetch(c.bus, pc, thumb); err != nil {
		return 0, fmt.Errorf("cpu: fetch at %08X: %w", pc, err)
	}
	c.seeded = true

	if thumb {
		r.SetPC(pc + 2)
	} else {
		r.SetPC(pc + 4)
	}
	return c.bus.CyclesFor(pc, memory.Width32), nil
}

// Step runs one pipeline tick and returns the cycles it cost. A decode
// error carries a *DecodeError; any other error comes from the bus and
// leaves the pipeline usable.
func (c *CPU) Step() (int, error) {
	if !c.seeded {
		return c.Fetch()
	}

	cycles, err := c.execute()
	if err == nil {
		err = c.decode()
	}
	if err == nil {
		var n int
		n, err = c.fetch()
		cycles += n
	}
	c.cycles += uint64(cycles)
	return cycles, err
}

func (c *CPU) decode() error {
	if !c.fetcher.pending {
		// the last fetch faulted, nothing new to decode
		c.decoded = emptySlot("fetch fault")
		return nil
	}
	c.fetcher.pending = false
	addr := c.fetcher.last

	if c.registers.IsThumb() {
		raw := c.fetcher.half()
		inst, ok := DecodeThumb(raw)
		if !ok {
			return &DecodeError{Addr: addr, Raw: uint32(raw), Set: SetThumb}
		}
		c.decoded = slot{kind: slotThumb, thumb: inst, addr: addr, raw: uint32(raw)}
		return nil
	}

	raw := c.fetcher.word()
	inst, ok := DecodeARM(raw)
	if !ok {
		return &DecodeError{Addr: addr, Raw: raw, Set: SetARM}
	}
	c.decoded = slot{kind: slotARM, arm: inst, addr: addr, raw: raw}
	return nil
}

func (c *CPU) execute() (int, error) {
	s := c.decoded.take()
	trace := dbg.Enabled()

	switch s.kind {
	case slotARM:
		if trace {
			dbg.Printf("%08X: %08X %T %+v\n", s.addr, s.raw, s.arm, s.arm)
		}
		return c.executeARM(s.arm)
	case slotThumb:
		if trace {
			dbg.Printf("%08X: %04X %T %+v\n", s.addr, s.raw, s.thumb, s.thumb)
		}
		return c.executeThumb(s.thumb)
	}
	if trace {
		dbg.Printf("cpu: empty slot (%s)\n", s.reason)
	}
	return 0, nil
}

// branchTo writes PC, aligned for the current state, and refills the
// pipeline with one fetch from the new address.
func (c *CPU) branchTo(addr uint32) (int, error) {
	if c.registers.IsThumb() {
		addr &^= 1
	} else {
		addr &^= 3
	}
	c.registers.SetPC(addr)
	c.fetcher.pending = false
	return c.fetch()
}
