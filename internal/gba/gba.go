// Package gba assembles the Game Boy Advance from its parts and drives it
// in cycle budgets sized from wall-clock time.
package gba

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/golang/glog"

	"gbacore/internal/bus"
	"gbacore/internal/cartridge"
	"gbacore/internal/core"
	"gbacore/internal/cpu"
	"gbacore/internal/interfaces"
	"gbacore/internal/io"
	"gbacore/internal/memory"
	"gbacore/internal/ppu"
	"gbacore/internal/settings"
	"gbacore/rom"
)

const (
	// ClockSpeed is the ARM7TDMI clock in Hz.
	ClockSpeed = 16_780_000

	// MinCycleBudget is the least an Update runs, however little time passed.
	MinCycleBudget = 100

	// MaxCycleBudget caps an Update at one frame (228 lines of 1232 cycles)
	// so a stalled host does not make the core race to catch up.
	MaxCycleBudget = 280896

	// PausedWait is returned by Update while the core is paused.
	PausedWait = time.Duration(MaxCycleBudget) * time.Second / ClockSpeed
)

var (
	_ core.EmulatorCore         = (*GBA)(nil)
	_ interfaces.RegisterSource = (*GBA)(nil)
	_ interfaces.FrameSource    = (*GBA)(nil)
)

type GBA struct {
	savePath string

	cpu    *cpu.CPU
	bus    *bus.Bus
	cart   *cartridge.Cartridge
	ppu    *ppu.PPU
	ioRegs *io.IORegs

	paused bool
}

// Create validates every input before allocating any part of the machine.
// Errors match core.ErrIncompatibleRom, core.ErrInvalidBiosFile or
// core.ErrIO.
func Create(s settings.Settings) (*GBA, error) {
	romPath, err := settings.ValidateROMPath(s)
	if err != nil {
		return nil, err
	}
	biosPath, err := settings.ValidateBIOSPath(s)
	if err != nil {
		return nil, err
	}
	savePath := settings.SavePath(s)

	cartROM, err := rom.Load(romPath)
	if err != nil {
		return nil, err
	}
	bios, err := memory.LoadBIOS(biosPath)
	if err != nil {
		return nil, &core.InvalidBiosFileError{Path: biosPath, Err: err}
	}

	cart, err := cartridge.NewCartridge(cartROM.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrIncompatibleRom, err)
	}
	if err := cart.LoadSave(savePath); err != nil {
		return nil, fmt.Errorf("%w: unable to read save file: %w", core.ErrIO, err)
	}

	ioRegs := io.NewIORegs()
	p := ppu.NewPPU(ioRegs)
	b, err := bus.NewBus(bios, memory.NewEWRAM(), memory.NewIWRAM(), p, cart, ioRegs)
	if err != nil {
		return nil, err
	}

	glog.Infof("gba: loaded %s (%d bytes), save file %s", romPath, cart.Size(), savePath)
	return &GBA{
		savePath: savePath,
		cpu:      cpu.NewCPU(b),
		bus:      b,
		cart:     cart,
		ppu:      p,
		ioRegs:   ioRegs,
	}, nil
}

// Factory returns a core.Factory building GBA cores with the given BIOS
// and save directories. An empty saveDir keeps saves next to the ROM.
func Factory(biosDir, saveDir string) core.Factory {
	return func(romPath string) (core.EmulatorCore, error) {
		s, err := settings.NewBuilder().
			WithROMPath(romPath).
			WithBIOSDir(biosDir).
			WithSaveDir(saveDir).
			Build()
		if err != nil {
			return nil, err
		}
		g, err := Create(s)
		if err != nil {
			return nil, err
		}
		return g, nil
	}
}

// CyclesFor converts wall-clock time to CPU cycles.
func CyclesFor(elapsed time.Duration) int {
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= time.Second {
		return ClockSpeed
	}
	return int(int64(elapsed) * ClockSpeed / int64(time.Second))
}

// WaitFor converts CPU cycles to wall-clock time.
func WaitFor(cycles int) time.Duration {
	return time.Duration(cycles) * time.Second / ClockSpeed
}

func budgetFor(elapsed time.Duration) int {
	return min(max(CyclesFor(elapsed), MinCycleBudget), MaxCycleBudget)
}

// Update runs whole pipeline steps until the cycle budget for elapsed is
// spent, and returns the time those cycles take on hardware. A decode
// failure is fatal; a bus fault ends the update early but the core can be
// updated again.
func (g *GBA) Update(elapsed time.Duration) (time.Duration, error) {
	if g.paused {
		return PausedWait, nil
	}

	budget := budgetFor(elapsed)
	ran := 0
	var err error

	if !g.cpu.Seeded() {
		ran, err = g.cpu.Fetch()
	}
	for err == nil && ran < budget {
		var n int
		n, err = g.cpu.Step()
		ran += max(n, 1)
	}

	wait := WaitFor(ran)
	var de *cpu.DecodeError
	if errors.As(err, &de) {
		return wait, fmt.Errorf("%w: %w", core.ErrFatal, err)
	}
	return wait, err
}

// Pause stops the core and writes SRAM to the save file if it changed.
func (g *GBA) Pause() error {
	g.paused = true
	return g.flush()
}

func (g *GBA) Resume() {
	g.paused = false
}

func (g *GBA) Paused() bool {
	return g.paused
}

// Close writes SRAM to the save file if it changed.
func (g *GBA) Close() error {
	return g.flush()
}

func (g *GBA) flush() error {
	wrote, err := g.cart.Flush(g.savePath)
	if err != nil {
		return fmt.Errorf("%w: unable to write save file: %w", core.ErrIO, err)
	}
	if wrote {
		glog.Infof("gba: SRAM written to %s", g.savePath)
	}
	return nil
}

func (g *GBA) Registers() interfaces.RegistersInterface {
	return g.cpu.Registers()
}

// Frame renders the current contents of video memory.
func (g *GBA) Frame() *image.RGBA {
	return g.ppu.RenderFrame()
}

// SavePath is where SRAM is persisted.
func (g *GBA) SavePath() string {
	return g.savePath
}
