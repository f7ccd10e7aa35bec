// Package settings holds the paths a GBA core is built from.
package settings

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gbacore/internal/core"
	"gbacore/rom"
)

// BIOSFileName is the file looked up in the BIOS directory.
const BIOSFileName = "GBA_BIOS.bin"

// SaveExtension is appended to the ROM stem to name its save file.
const SaveExtension = ".sav"

var (
	ErrMissingROMPath = errors.New("settings: there must be a ROM path for GBA")
	ErrMissingBIOSDir = errors.New("settings: there must be a BIOS dir for GBA")
)

// Settings is immutable once built.
type Settings struct {
	romPath string
	biosDir string
	saveDir string
}

func (s Settings) ROMPath() string { return s.romPath }
func (s Settings) BIOSDir() string { return s.biosDir }
func (s Settings) SaveDir() string { return s.saveDir }

// Builder collects the settings fields. The zero value is ready to use.
type Builder struct {
	romPath string
	biosDir string
	saveDir string
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) WithROMPath(path string) *Builder {
	b.romPath = path
	return b
}

func (b *Builder) WithBIOSDir(dir string) *Builder {
	b.biosDir = dir
	return b
}

func (b *Builder) WithSaveDir(dir string) *Builder {
	b.saveDir = dir
	return b
}

// Build checks the required fields. Without a save dir, saves go next to
// the ROM.
func (b *Builder) Build() (Settings, error) {
	if b.romPath == "" {
		return Settings{}, ErrMissingROMPath
	}
	if b.biosDir == "" {
		return Settings{}, ErrMissingBIOSDir
	}
	saveDir := b.saveDir
	if saveDir == "" {
		saveDir = filepath.Dir(b.romPath)
	}
	return Settings{romPath: b.romPath, biosDir: b.biosDir, saveDir: saveDir}, nil
}

// ValidateROMPath returns the ROM path, or an error matching
// core.ErrIncompatibleRom if it does not name a GBA ROM.
func ValidateROMPath(s Settings) (string, error) {
	if err := rom.CheckPath(s.romPath); err != nil {
		return "", err
	}
	return s.romPath, nil
}

// ValidateBIOSPath returns the path of the BIOS image if it is a regular
// file, otherwise a *core.InvalidBiosFileError.
func ValidateBIOSPath(s Settings) (string, error) {
	path := filepath.Join(s.biosDir, BIOSFileName)
	info, err := os.Stat(path)
	if err != nil {
		return "", &core.InvalidBiosFileError{Path: path, Err: err}
	}
	if !info.Mode().IsRegular() {
		return "", &core.InvalidBiosFileError{Path: path}
	}
	return path, nil
}

// SavePath is <save dir>/<ROM stem>.sav. Validate the ROM path first.
func SavePath(s Settings) string {
	base := filepath.Base(s.romPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(s.saveDir, stem+SaveExtension)
}
