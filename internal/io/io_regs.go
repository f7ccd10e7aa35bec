// Package io holds the memory-mapped I/O register block.
package io

import (
	"encoding/binary"

	"gbacore/internal/memory"
)

// Register offsets from the start of the I/O block.
const (
	DISPCNT  = 0x000 // LCD control
	DISPSTAT = 0x004 // general LCD status
	VCOUNT   = 0x006 // vertical counter
	KEYINPUT = 0x130 // key status, active low
	KEYCNT   = 0x132 // key interrupt control
	IE       = 0x200 // interrupt enable
	IF       = 0x202 // interrupt request flags
	WAITCNT  = 0x204 // game pak wait state control
	IME      = 0x208 // interrupt master enable
	POSTFLG  = 0x300 // post boot flag
	HALTCNT  = 0x301 // power down control
)

// keysReleased is KEYINPUT with all ten buttons up.
const keysReleased = 0x03FF

type IORegs struct {
	regs [memory.IOSize]byte
}

func NewIORegs() *IORegs {
	i := &IORegs{}
	i.Reset()
	return i
}

// Reset restores the power-on values.
func (i *IORegs) Reset() {
	clear(i.regs[:])
	i.Write16(KEYINPUT, keysReleased)
}

func (i *IORegs) GetReg(offset uint32) uint8 {
	return i.regs[offset]
}

func (i *IORegs) SetReg(offset uint32, value uint8) {
	i.regs[offset] = value
}

// Read16 returns the half-word register at offset.
func (i *IORegs) Read16(offset uint32) uint16 {
	return binary.LittleEndian.Uint16(i.regs[offset:])
}

// Write16 sets the half-word register at offset.
func (i *IORegs) Write16(offset uint32, value uint16) {
	binary.LittleEndian.PutUint16(i.regs[offset:], value)
}

func (i *IORegs) Size() uint32 {
	return uint32(len(i.regs))
}

// Region maps the register block into the bus. Accesses go straight to the
// backing array.
func (i *IORegs) Region() *memory.Region {
	return memory.NewRegion("IO", memory.IOAddrStart, i.regs[:], memory.Everyone(memory.ReadWrite), [3]int{1, 1, 1})
}
