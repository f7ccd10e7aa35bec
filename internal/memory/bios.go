package memory

import (
	"errors"
	"fmt"
	"os"
)

// ErrBIOSSize is returned for a BIOS image that is not exactly BIOSSize bytes.
var ErrBIOSSize = errors.New("BIOS image must be exactly 16KB")

// BIOS represents the GBA's internal Boot ROM.
type BIOS struct {
	data []byte // The loaded BIOS ROM data
}

// NewBIOS wraps a BIOS image. The image is copied.
func NewBIOS(data []byte) (*BIOS, error) {
	if len(data) != BIOSSize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrBIOSSize, len(data))
	}
	b := &BIOS{data: make([]byte, BIOSSize)}
	copy(b.data, data)
	return b, nil
}

// LoadBIOS reads and checks the BIOS image at path.
func LoadBIOS(path string) (*BIOS, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewBIOS(data)
}

// Region maps the BIOS at address 0. It is readable only by code running
// from the BIOS itself.
func (b *BIOS) Region() *Region {
	return NewRegion("BIOS", BIOSAddrStart, b.data,
		map[AccessContext]Permission{
			ContextBIOS: ReadOnly,
		},
		[3]int{1, 1, 1})
}
