package memory

import "fmt"

// AccessContext selects which permission row of a region applies to an access.
type AccessContext uint8

const (
	ContextBIOS AccessContext = iota // executing from the system ROM
	ContextGame                      // executing from anywhere else
)

func (c AccessContext) String() string {
	switch c {
	case ContextBIOS:
		return "bios"
	case ContextGame:
		return "game"
	}
	return fmt.Sprintf("context(%d)", uint8(c))
}

// Permission is what an access context may do to a region.
type Permission uint8

const (
	NoAccess Permission = iota
	ReadOnly
	ReadWrite
)

func (p Permission) CanRead() bool  { return p == ReadOnly || p == ReadWrite }
func (p Permission) CanWrite() bool { return p == ReadWrite }

func (p Permission) String() string {
	switch p {
	case NoAccess:
		return "no-access"
	case ReadOnly:
		return "read-only"
	case ReadWrite:
		return "read-write"
	}
	return fmt.Sprintf("permission(%d)", uint8(p))
}

// Width is the size of a single bus transaction.
type Width uint8

const (
	Width8 Width = iota
	Width16
	Width32
)

// Bytes returns the number of bytes moved by an access of this width.
func (w Width) Bytes() int {
	return 1 << w
}

// Region is a contiguous, fixed-size span of the address space.
type Region struct {
	Name  string
	Start uint32
	Data  []byte
	// Contexts missing from Perms have no access.
	Perms map[AccessContext]Permission
	// Wait-state cost indexed by Width.
	Cycles [3]int
}

// NewRegion maps data at start. The slice is used directly as backing storage.
func NewRegion(name string, start uint32, data []byte, perms map[AccessContext]Permission, cycles [3]int) *Region {
	return &Region{
		Name:   name,
		Start:  start,
		Data:   data,
		Perms:  perms,
		Cycles: cycles,
	}
}

// Everyone returns a permission row granting p to every known context.
func Everyone(p Permission) map[AccessContext]Permission {
	return map[AccessContext]Permission{
		ContextBIOS: p,
		ContextGame: p,
	}
}

// End returns one past the last address of the region. It is 64 bits wide so
// a region ending at the top of the address space does not wrap.
func (r *Region) End() uint64 {
	return uint64(r.Start) + uint64(len(r.Data))
}

// Contains reports whether addr lies inside the region.
func (r *Region) Contains(addr uint32) bool {
	return addr >= r.Start && uint64(addr) < r.End()
}

// Permission returns the permission ctx has on this region.
func (r *Region) Permission(ctx AccessContext) Permission {
	if p, ok := r.Perms[ctx]; ok {
		return p
	}
	return NoAccess
}

// CyclesFor returns the wait-state cost of an access of width w.
func (r *Region) CyclesFor(w Width) int {
	if int(w) >= len(r.Cycles) {
		return 0
	}
	return r.Cycles[w]
}

func (r *Region) String() string {
	return fmt.Sprintf("%s[%08X-%08X]", r.Name, r.Start, r.End()-1)
}
