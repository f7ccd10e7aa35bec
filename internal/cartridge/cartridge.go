// Package cartridge maps a game pak into the address space: the ROM image
// behind three wait-state windows and the battery-backed SRAM.
package cartridge

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gbacore/internal/memory"
	"gbacore/util/dbg"
)

// ErrROMTooLarge is returned for images that do not fit a game pak window.
var ErrROMTooLarge = errors.New("ROM image larger than 32MB")

type Cartridge struct {
	// ROM is the image padded to the full window size. All three windows
	// map this one slice.
	ROM  []byte
	SRAM []byte

	romSize int
	// SRAM contents as last loaded from or written to the save file.
	persisted []byte
}

func NewCartridge(romData []byte) (*Cartridge, error) {
	if len(romData) > memory.GamePakWindowSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrROMTooLarge, len(romData))
	}
	c := &Cartridge{
		ROM:     make([]byte, memory.GamePakWindowSize),
		SRAM:    make([]byte, memory.GamePakSRAMSize),
		romSize: len(romData),
	}
	copy(c.ROM, romData)
	c.persisted = bytes.Clone(c.SRAM)
	return c, nil
}

// Size returns the length of the image before padding.
func (c *Cartridge) Size() int {
	return c.romSize
}

// Regions returns the three ROM windows followed by SRAM.
func (c *Cartridge) Regions() []*memory.Region {
	ro := memory.Everyone(memory.ReadOnly)
	rom := [3]int{5, 5, 8}
	return []*memory.Region{
		memory.NewRegion("WS0", memory.GamePakAddrStartWS0, c.ROM, ro, rom),
		memory.NewRegion("WS1", memory.GamePakAddrStartWS1, c.ROM, ro, rom),
		memory.NewRegion("WS2", memory.GamePakAddrStartWS2, c.ROM, ro, rom),
		memory.NewRegion("SRAM", memory.GamePakSRAMAddrStart, c.SRAM, memory.Everyone(memory.ReadWrite), [3]int{5, 5, 5}),
	}
}

// LoadSave fills SRAM from the save file at path. A missing file leaves SRAM
// cleared and is not an error.
func (c *Cartridge) LoadSave(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		dbg.Printf("cartridge: no save file at %s\n", path)
		return nil
	}
	if err != nil {
		return err
	}
	clear(c.SRAM)
	copy(c.SRAM, data)
	c.persisted = bytes.Clone(c.SRAM)
	return nil
}

// Dirty reports whether SRAM changed since it was last loaded or flushed.
func (c *Cartridge) Dirty() bool {
	return !bytes.Equal(c.SRAM, c.persisted)
}

// Flush writes SRAM to path if it changed. It reports whether a write
// happened.
func (c *Cartridge) Flush(path string) (bool, error) {
	if !c.Dirty() {
		return false, nil
	}
	if err := os.WriteFile(path, c.SRAM, 0o644); err != nil {
		return false, err
	}
	c.persisted = bytes.Clone(c.SRAM)
	return true, nil
}
