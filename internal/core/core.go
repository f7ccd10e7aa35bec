// Package core defines the contract between an emulator core and the host
// that drives it.
package core

import "time"

// EmulatorCore is a device the host loop can run.
type EmulatorCore interface {
	// Update runs the device for roughly the elapsed wall-clock time and
	// returns how long the host should wait before the next call.
	Update(elapsed time.Duration) (time.Duration, error)

	// Pause and Resume are notifications. The host stops calling Update
	// while paused.
	Pause() error
	Resume()
}

// Factory builds a core for the ROM at romPath. It returns an error matching
// ErrIncompatibleRom when the ROM belongs to some other device.
type Factory func(romPath string) (EmulatorCore, error)
