package interfaces

import "gbacore/internal/memory"

// BusInterface is the CPU's view of the memory map.
type BusInterface interface {
	Read(addr uint32, buf []byte) error
	Write(addr uint32, data []byte) error
	SetAccessContext(ctx memory.AccessContext)
	CyclesFor(addr uint32, width memory.Width) int
}
