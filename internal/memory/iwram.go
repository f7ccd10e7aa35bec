package memory

// IWRAM is the 32KB on-chip work RAM, single cycle at every width.
type IWRAM struct {
	data []byte
}

func NewIWRAM() *IWRAM {
	return &IWRAM{
		data: make([]byte, IWRAMSize),
	}
}

func (i *IWRAM) Region() *Region {
	return NewRegion("IWRAM", IWRAMAddrStart, i.data, Everyone(ReadWrite), [3]int{1, 1, 1})
}
