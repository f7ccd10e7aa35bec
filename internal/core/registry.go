package core

import (
	"errors"
	"fmt"
)

// FindRunnable returns the first core whose factory accepts the ROM. A
// factory rejecting the ROM as incompatible moves on to the next one; any
// other error stops the search.
func FindRunnable(romPath string, factories ...Factory) (EmulatorCore, error) {
	for _, factory := range factories {
		c, err := factory(romPath)
		if errors.Is(err, ErrIncompatibleRom) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf("%w for %s", ErrNoCompatibleCore, romPath)
}
