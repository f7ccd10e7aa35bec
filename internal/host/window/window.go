// Package window is a desktop host window backed by ebiten. It shows the
// last presented frame with a register overlay.
package window

import (
	"sync"

	"github.com/golang/glog"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"gbacore/internal/core"
	"gbacore/internal/host"
	"gbacore/internal/interfaces"
	"gbacore/internal/ppu"
)

const (
	Title = "gbacore"
	Scale = 3
)

type Window struct {
	events chan host.Event
	done   chan struct{}

	mu        sync.Mutex
	pixels    []byte
	registers string
	overlay   bool
	closing   bool

	screen *ebiten.Image
}

var (
	_ host.Window    = (*Window)(nil)
	_ host.Presenter = (*Window)(nil)
	_ ebiten.Game    = (*Window)(nil)
)

// Open starts the ebiten game loop on its own goroutine.
func Open() *Window {
	w := &Window{
		events:  make(chan host.Event, 16),
		done:    make(chan struct{}),
		pixels:  make([]byte, ppu.ScreenWidth*ppu.ScreenHeight*4),
		overlay: true,
	}

	ebiten.SetWindowSize(ppu.ScreenWidth*Scale, ppu.ScreenHeight*Scale)
	ebiten.SetWindowTitle(Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetRunnableOnUnfocused(true)

	go func() {
		defer close(w.done)
		if err := ebiten.RunGame(w); err != nil {
			glog.Errorf("window: %v", err)
		}
		w.push(host.WindowClosed)
	}()
	return w
}

func (w *Window) push(ev host.Event) {
	select {
	case w.events <- ev:
	default:
		glog.Warningf("window: event queue full, dropped %s", ev)
	}
}

func (w *Window) PollEvents() []host.Event {
	var evs []host.Event
	for {
		select {
		case ev := <-w.events:
			evs = append(evs, ev)
		default:
			return evs
		}
	}
}

// Close ends the ebiten loop and waits for it to return.
func (w *Window) Close() error {
	w.mu.Lock()
	w.closing = true
	w.mu.Unlock()
	<-w.done
	return nil
}

// Present copies the core's frame and registers for the next Draw.
func (w *Window) Present(c core.EmulatorCore) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if fs, ok := c.(interfaces.FrameSource); ok {
		copy(w.pixels, fs.Frame().Pix)
	}
	if rs, ok := c.(interfaces.RegisterSource); ok && w.overlay {
		w.registers = rs.Registers().String()
	}
}

func (w *Window) Update() error {
	w.mu.Lock()
	closing := w.closing
	w.mu.Unlock()

	if closing || ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		w.push(host.PauseToggled)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		w.mu.Lock()
		w.overlay = !w.overlay
		w.mu.Unlock()
	}
	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	if w.screen == nil {
		w.screen = ebiten.NewImage(ppu.ScreenWidth, ppu.ScreenHeight)
	}

	w.mu.Lock()
	w.screen.WritePixels(w.pixels)
	overlay, registers := w.overlay, w.registers
	w.mu.Unlock()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(Scale, Scale)
	screen.DrawImage(w.screen, op)
	if overlay {
		ebitenutil.DebugPrint(screen, registers)
	}
}

func (w *Window) Layout(_, _ int) (int, int) {
	return ppu.ScreenWidth * Scale, ppu.ScreenHeight * Scale
}
