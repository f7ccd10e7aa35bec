package memory

// EWRAM is the 256KB on-board work RAM. It sits on a 16-bit bus, so word
// accesses pay twice.
type EWRAM struct {
	data []byte
}

func NewEWRAM() *EWRAM {
	return &EWRAM{
		data: make([]byte, EWRAMSize),
	}
}

func (e *EWRAM) Region() *Region {
	return NewRegion("EWRAM", EWRAMAddrStart, e.data, Everyone(ReadWrite), [3]int{3, 3, 6})
}
