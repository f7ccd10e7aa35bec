// Package rom loads cartridge images from disk.
package rom

import (
	"fmt"
	"os"
	"path/filepath"

	"gbacore/internal/core"
	"gbacore/internal/memory"
)

// Extension is the file extension every GBA ROM must carry.
const Extension = ".gba"

// MaxSize is the largest image a game pak window can map.
const MaxSize = memory.GamePakWindowSize

type ROM struct {
	Path string
	Data []byte
}

// CheckPath rejects paths that do not name a GBA ROM. The extension is
// matched exactly, so GAME.GBA is rejected.
func CheckPath(path string) error {
	if filepath.Ext(path) != Extension {
		return fmt.Errorf("%w: %s does not have the %s extension", core.ErrIncompatibleRom, path, Extension)
	}
	return nil
}

// Load loads a GBA ROM file into memory. The size is checked before the
// file is read.
func Load(path string) (*ROM, error) {
	if err := CheckPath(path); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to stat ROM file: %w", core.ErrIO, err)
	}
	if info.Size() > MaxSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, the limit is %d", core.ErrIncompatibleRom, path, info.Size(), MaxSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read ROM file: %w", core.ErrIO, err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: ROM file %s is empty", core.ErrIncompatibleRom, path)
	}

	return &ROM{Path: path, Data: data}, nil
}
