// Package host drives an emulator core from a window: it paces Update calls
// against wall-clock time and turns window events into pause and quit.
package host

import (
	"context"
	"time"

	"github.com/golang/glog"

	"gbacore/internal/core"
)

// Event is something the user did to the window.
type Event int

const (
	WindowClosed Event = iota
	PauseToggled
	Pause
	Resume
)

func (e Event) String() string {
	switch e {
	case WindowClosed:
		return "WindowClosed"
	case PauseToggled:
		return "PauseToggled"
	case Pause:
		return "Pause"
	case Resume:
		return "Resume"
	}
	return "Unknown"
}

// Window is the host surface a core runs in.
type Window interface {
	// PollEvents returns the events since the last call without blocking.
	PollEvents() []Event
	Close() error
}

// Presenter is implemented by windows that show core state after each
// update.
type Presenter interface {
	Present(c core.EmulatorCore)
}

// PausedPoll is how often a paused loop checks for events.
const PausedPoll = 16 * time.Millisecond

// Clock abstracts time for the loop.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// Loop runs a core in a window.
type Loop struct {
	Window Window
	Core   core.EmulatorCore
	Clock  Clock

	paused bool
	last   time.Time     // time of the last Update
	wait   time.Duration // requested by the last Update
}

// Run is a Loop with the wall clock.
func Run(ctx context.Context, w Window, c core.EmulatorCore) error {
	l := &Loop{Window: w, Core: c, Clock: realClock{}}
	return l.Run(ctx)
}

// Run updates the core until the window closes, ctx is done or the core
// fails fatally. Update is called once the wait it last asked for has
// passed, and never while paused. Non-fatal core errors are logged and the
// next update follows without waiting.
func (l *Loop) Run(ctx context.Context) error {
	l.last = l.Clock.Now()
	l.wait = 0
	presenter, _ := l.Window.(Presenter)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		for _, ev := range l.Window.PollEvents() {
			quit, err := l.handle(ev)
			if err != nil {
				glog.Warningf("host: %v", err)
			}
			if quit {
				return nil
			}
		}

		if l.paused {
			l.Clock.Sleep(ctx, PausedPoll)
			continue
		}

		now := l.Clock.Now()
		elapsed := now.Sub(l.last)
		if elapsed < l.wait {
			l.Clock.Sleep(ctx, l.wait-elapsed)
			continue
		}
		l.last = now

		wait, err := l.Core.Update(elapsed)
		if err != nil {
			if core.IsFatal(err) {
				return err
			}
			glog.Warningf("host: %v", err)
			wait = 0
		}
		l.wait = wait

		if presenter != nil {
			presenter.Present(l.Core)
		}
	}
}

// handle reports whether ev ends the loop.
func (l *Loop) handle(ev Event) (bool, error) {
	switch ev {
	case WindowClosed:
		return true, nil
	case PauseToggled:
		if l.paused {
			return false, l.resume()
		}
		return false, l.pause()
	case Pause:
		if !l.paused {
			return false, l.pause()
		}
	case Resume:
		if l.paused {
			return false, l.resume()
		}
	}
	return false, nil
}

func (l *Loop) pause() error {
	l.paused = true
	glog.Info("host: paused")
	return l.Core.Pause()
}

// resume restarts pacing from now so the paused time is not handed to the
// core as elapsed time.
func (l *Loop) resume() error {
	l.paused = false
	l.last = l.Clock.Now()
	l.wait = 0
	glog.Info("host: resumed")
	l.Core.Resume()
	return nil
}

// Paused reports whether the loop paused the core.
func (l *Loop) Paused() bool {
	return l.paused
}
