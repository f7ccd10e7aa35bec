// Package ppu owns video memory. It does not emulate the display pipeline;
// it only converts the mode 3 bitmap into an image a host can show.
package ppu

import (
	"encoding/binary"
	"image"
	"image/color"

	"gbacore/internal/io"
	"gbacore/internal/memory"
)

const (
	ScreenWidth  = 240
	ScreenHeight = 160
)

// DISPCNT fields used by the frame snapshot.
const (
	dispcntModeMask   = 0x7
	dispcntForceBlank = 1 << 7
)

type PPU struct {
	Frame *image.RGBA

	palette []byte
	vram    []byte
	oam     []byte
	ioRegs  *io.IORegs
}

func NewPPU(ioRegs *io.IORegs) *PPU {
	return &PPU{
		Frame:   image.NewRGBA(image.Rect(0, 0, ScreenWidth, ScreenHeight)),
		palette: make([]byte, memory.PALRAMSize),
		vram:    make([]byte, memory.VRAMSize),
		oam:     make([]byte, memory.OAMSize),
		ioRegs:  ioRegs,
	}
}

// Regions returns palette RAM, VRAM and OAM for the bus. Palette RAM and
// VRAM sit on a 16-bit bus and pay an extra cycle for words.
func (p *PPU) Regions() []*memory.Region {
	rw := memory.Everyone(memory.ReadWrite)
	return []*memory.Region{
		memory.NewRegion("PALRAM", memory.PALRAMAddrStart, p.palette, rw, [3]int{1, 1, 2}),
		memory.NewRegion("VRAM", memory.VRAMAddrStart, p.vram, rw, [3]int{1, 1, 2}),
		memory.NewRegion("OAM", memory.OAMAddrStart, p.oam, rw, [3]int{1, 1, 1}),
	}
}

// RenderFrame redraws Frame from video memory and returns it.
func (p *PPU) RenderFrame() *image.RGBA {
	dispcnt := p.ioRegs.Read16(io.DISPCNT)

	switch {
	case dispcnt&dispcntForceBlank != 0:
		p.fill(color.RGBA{255, 255, 255, 255})
	case dispcnt&dispcntModeMask == 3: // 16-bit color bitmap mode
		p.renderMode3()
	default:
		// Clear screen to black for unsupported modes
		p.fill(color.RGBA{0, 0, 0, 255})
	}
	return p.Frame
}

func (p *PPU) renderMode3() {
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			offset := (y*ScreenWidth + x) * 2
			p.Frame.SetRGBA(x, y, bgr555(binary.LittleEndian.Uint16(p.vram[offset:])))
		}
	}
}

func (p *PPU) fill(c color.RGBA) {
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			p.Frame.SetRGBA(x, y, c)
		}
	}
}

// bgr555 expands a 15-bit GBA colour to RGBA8888.
func bgr555(c uint16) color.RGBA {
	r := uint8(c&0x1F) << 3
	g := uint8((c>>5)&0x1F) << 3
	b := uint8((c>>10)&0x1F) << 3
	return color.RGBA{r, g, b, 255}
}
