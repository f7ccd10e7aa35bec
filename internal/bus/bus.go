// Package bus routes CPU memory transactions to the region that owns the
// address, enforcing region permissions and reporting wait states.
package bus

import (
	"fmt"
	"sort"

	"gbacore/internal/cartridge"
	"gbacore/internal/interfaces"
	"gbacore/internal/io"
	"gbacore/internal/memory"
	"gbacore/internal/ppu"
)

var _ interfaces.BusInterface = (*Bus)(nil)

// Bus connects the CPU to the memory-mapped regions.
type Bus struct {
	// sorted by start address, never overlapping
	regions []*memory.Region
	context memory.AccessContext
}

// New builds a bus over the given regions. Membership is fixed from here on.
func New(regions ...*memory.Region) (*Bus, error) {
	sorted := make([]*memory.Region, len(regions))
	copy(sorted, regions)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if uint64(cur.Start) < prev.End() {
			return nil, fmt.Errorf("bus: region %s overlaps %s", cur, prev)
		}
	}
	return &Bus{regions: sorted, context: memory.ContextBIOS}, nil
}

// NewBus creates the GBA memory map from its backing components.
func NewBus(bios *memory.BIOS, ewram *memory.EWRAM, iwram *memory.IWRAM, ppu *ppu.PPU, cart *cartridge.Cartridge, ioRegs *io.IORegs) (*Bus, error) {
	if bios == nil || ewram == nil || iwram == nil || ppu == nil || cart == nil || ioRegs == nil {
		return nil, fmt.Errorf("bus: cannot initialize with nil components")
	}
	regions := []*memory.Region{
		bios.Region(),
		ewram.Region(),
		iwram.Region(),
		ioRegs.Region(),
	}
	regions = append(regions, ppu.Regions()...)
	regions = append(regions, cart.Regions()...)
	return New(regions...)
}

// Regions returns the mapped regions in address order.
func (b *Bus) Regions() []*memory.Region {
	return b.regions
}

// find returns the region containing addr, or nil.
func (b *Bus) find(addr uint32) *memory.Region {
	i := sort.Search(len(b.regions), func(i int) bool {
		return b.regions[i].End() > uint64(addr)
	})
	if i < len(b.regions) && b.regions[i].Contains(addr) {
		return b.regions[i]
	}
	return nil
}

// resolve finds the region for a span and checks it lies entirely inside.
// The returned offset is relative to the region start.
func (b *Bus) resolve(op string, addr uint32, n int) (*memory.Region, int, error) {
	r := b.find(addr)
	if r == nil {
		return nil, 0, &memory.AccessError{Op: op, Addr: addr, Len: n, Context: b.context, Err: memory.ErrNoMatchingRegion}
	}
	if uint64(addr)+uint64(n) > r.End() {
		return nil, 0, &memory.AccessError{Op: op, Addr: addr, Len: n, Region: r.Name, Context: b.context, Err: memory.ErrCrossRegionAccess}
	}
	return r, int(addr - r.Start), nil
}

// Read copies len(buf) bytes starting at addr into buf.
func (b *Bus) Read(addr uint32, buf []byte) error {
	r, off, err := b.resolve("read", addr, len(buf))
	if err != nil {
		return err
	}
	if !r.Permission(b.context).CanRead() {
		return &memory.AccessError{Op: "read", Addr: addr, Len: len(buf), Region: r.Name, Context: b.context, Err: memory.ErrReadDenied}
	}
	copy(buf, r.Data[off:])
	return nil
}

// Write copies data into memory starting at addr.
func (b *Bus) Write(addr uint32, data []byte) error {
	r, off, err := b.resolve("write", addr, len(data))
	if err != nil {
		return err
	}
	if !r.Permission(b.context).CanWrite() {
		return &memory.AccessError{Op: "write", Addr: addr, Len: len(data), Region: r.Name, Context: b.context, Err: memory.ErrWriteDenied}
	}
	copy(r.Data[off:], data)
	return nil
}

// SetAccessContext selects the permission row used by later accesses.
func (b *Bus) SetAccessContext(ctx memory.AccessContext) {
	b.context = ctx
}

func (b *Bus) AccessContext() memory.AccessContext {
	return b.context
}

// CyclesFor returns the wait-state cost of accessing addr at the given
// width. Unmapped addresses cost nothing.
func (b *Bus) CyclesFor(addr uint32, width memory.Width) int {
	r := b.find(addr)
	if r == nil {
		return 0
	}
	return r.CyclesFor(width)
}
