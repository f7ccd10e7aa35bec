// Package terminal is a text host window: a tcell screen showing the
// running core's registers.
package terminal

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell"

	"gbacore/internal/core"
	"gbacore/internal/host"
	"gbacore/internal/interfaces"
)

type Terminal struct {
	screen tcell.Screen
	events chan host.Event
	done   chan struct{}

	paused bool
}

var (
	_ host.Window    = (*Terminal)(nil)
	_ host.Presenter = (*Terminal)(nil)
)

// Open takes over the terminal until Close.
func Open() (*Terminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	return open(s)
}

func open(s tcell.Screen) (*Terminal, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	s.HideCursor()
	s.Clear()

	t := &Terminal{
		screen: s,
		events: make(chan host.Event, 16),
		done:   make(chan struct{}),
	}
	go t.poll()
	return t, nil
}

// poll forwards key presses until the screen is finalized.
func (t *Terminal) poll() {
	defer close(t.done)
	for {
		switch ev := t.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			if e, ok := keyEvent(ev); ok {
				select {
				case t.events <- e:
				default:
				}
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

func keyEvent(ev *tcell.EventKey) (host.Event, bool) {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return host.WindowClosed, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return host.WindowClosed, true
		case 'p', 'P':
			return host.PauseToggled, true
		}
	}
	return 0, false
}

func (t *Terminal) PollEvents() []host.Event {
	var evs []host.Event
	for {
		select {
		case ev := <-t.events:
			if ev == host.PauseToggled {
				t.paused = !t.paused
			}
			evs = append(evs, ev)
		default:
			return evs
		}
	}
}

func (t *Terminal) Close() error {
	t.screen.Fini()
	<-t.done
	return nil
}

// Present redraws the register dump.
func (t *Terminal) Present(c core.EmulatorCore) {
	t.screen.Clear()

	header := "gbacore  [p] pause  [q] quit"
	if t.paused {
		header += "  PAUSED"
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	drawString(t.screen, 0, 0, style, header)

	if rs, ok := c.(interfaces.RegisterSource); ok {
		style = tcell.StyleDefault.Foreground(tcell.ColorGreen)
		for i, line := range strings.Split(rs.Registers().String(), "\n") {
			drawString(t.screen, 2, 2+i, style, line)
		}
	}
	t.screen.Show()
}

func drawString(s tcell.Screen, x, y int, style tcell.Style, str string) {
	for _, c := range str {
		s.SetContent(x, y, c, nil, style)
		x++
	}
}
