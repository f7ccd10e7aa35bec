package cpu

import (
	"encoding/binary"

	"gbacore/internal/interfaces"
)

// fetcher holds the last word read from the bus. Thumb fetches that fall
// inside the cached word are served from it without a bus access.
type fetcher struct {
	addr  uint32 // word-aligned base of bytes
	bytes [4]byte
	valid bool
	last  uint32 // address of the most recent fetch

	// set by a successful fetch, cleared once decoded
	pending bool
}

func (f *fetcher) covers(addr uint32) bool {
	return f.valid && addr >= f.addr && addr-f.addr < 4
}

// fetch loads the instruction at addr. It reports whether the bus was
// touched. On failure the cache is left as it was.
func (f *fetcher) fetch(bus interfaces.BusInterface, addr uint32, thumb bool) (bool, error) {
	if thumb && f.covers(addr) {
		f.last, f.pending = addr, true
		return false, nil
	}

	aligned := addr &^ 3
	var buf [4]byte
	if err := bus.Read(aligned, buf[:]); err != nil {
		return true, err
	}
	f.addr, f.bytes, f.valid, f.last, f.pending = aligned, buf, true, addr, true
	return true, nil
}

func (f *fetcher) word() uint32 {
	return binary.LittleEndian.Uint32(f.bytes[:])
}

// half returns the half-word of the last fetch: the low half when it started
// on the cached base, otherwise the high half.
func (f *fetcher) half() uint16 {
	if f.last == f.addr {
		return binary.LittleEndian.Uint16(f.bytes[0:2])
	}
	return binary.LittleEndian.Uint16(f.bytes[2:4])
}
