package core

import (
	"errors"
	"fmt"
)

var (
	// ErrIncompatibleRom means the ROM is not for this core, either by file
	// extension or by size.
	ErrIncompatibleRom = errors.New("incompatible ROM")

	// ErrInvalidBiosFile is matched by every *InvalidBiosFileError.
	ErrInvalidBiosFile = errors.New("invalid BIOS file")

	// ErrIO wraps file system failures while building a core.
	ErrIO = errors.New("I/O error")

	// ErrFatal marks an error after which the core must not be updated again.
	ErrFatal = errors.New("fatal emulation error")

	// ErrNoCompatibleCore is returned by FindRunnable when every factory
	// rejected the ROM.
	ErrNoCompatibleCore = errors.New("no compatible emulator core")
)

// InvalidBiosFileError names the BIOS file that was missing or malformed.
type InvalidBiosFileError struct {
	Path string
	Err  error // underlying cause, may be nil
}

func (e *InvalidBiosFileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid BIOS file %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("invalid BIOS file %s", e.Path)
}

func (e *InvalidBiosFileError) Is(target error) bool {
	return target == ErrInvalidBiosFile
}

func (e *InvalidBiosFileError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err should stop the host loop.
func IsFatal(err error) bool {
	return errors.Is(err, ErrFatal)
}
