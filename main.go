package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"

	"github.com/golang/glog"
	"github.com/pkg/profile"
	"golang.org/x/term"

	"gbacore/internal/core"
	"gbacore/internal/gba"
	"gbacore/internal/host"
	"gbacore/internal/host/terminal"
	"gbacore/internal/host/window"
	"gbacore/internal/interfaces"
	"gbacore/internal/statsview"
)

func main() {
	romPath := flag.String("rom", "", "Path to ROM file")
	biosDir := flag.String("bios-dir", "emulator_games", "Directory holding GBA_BIOS.bin")
	saveDir := flag.String("save-dir", "", "Directory for .sav files (default: next to the ROM)")
	hostKind := flag.String("host", "auto", "Host window: auto, terminal, window or headless")
	frames := flag.Int("frames", 0, "Stop a headless run after this many updates (0 runs forever)")
	cpuProfile := flag.Bool("cpuprofile", false, "Write a CPU profile to the working directory")
	stats := flag.Bool("statsview", false, "Serve runtime charts (needs the statsview build tag)")
	snapshot := flag.String("snapshot", "", "Save the last frame as PNG to this path on exit")
	flag.Parse()
	defer glog.Flush()

	if *romPath == "" {
		glog.Exit("ROM file path is required")
	}
	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}
	if *stats {
		statsview.Launch()
	}

	c, err := core.FindRunnable(*romPath, gba.Factory(*biosDir, *saveDir))
	if err != nil {
		glog.Exitf("unable to start %s: %v", *romPath, err)
	}

	w, err := openWindow(*hostKind, *frames)
	if err != nil {
		glog.Exitf("unable to open host: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	runErr := host.Run(ctx, w, c)
	stop()

	if err := w.Close(); err != nil {
		glog.Warningf("closing host: %v", err)
	}
	if closer, ok := c.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			glog.Errorf("closing core: %v", err)
		}
	}
	if *snapshot != "" {
		if fs, ok := c.(interfaces.FrameSource); ok {
			if err := saveFrame(fs.Frame(), *snapshot); err != nil {
				glog.Errorf("snapshot: %v", err)
			}
		}
	}

	if runErr != nil {
		if rs, ok := c.(interfaces.RegisterSource); ok {
			glog.Errorf("registers at failure:\n%s", rs.Registers())
		}
		glog.Exitf("emulation stopped: %v", runErr)
	}
}

func openWindow(kind string, frames int) (host.Window, error) {
	if kind == "auto" {
		kind = autoHost()
	}
	glog.Infof("host: %s", kind)

	switch kind {
	case "terminal":
		return terminal.Open()
	case "window":
		return window.Open(), nil
	case "headless":
		return host.NewHeadless(frames), nil
	}
	return nil, fmt.Errorf("unknown host %q", kind)
}

func autoHost() string {
	if os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != "" {
		return "window"
	}
	if term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
		return "terminal"
	}
	return "headless"
}

func saveFrame(img *image.RGBA, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return err
	}
	glog.Infof("saved frame to %s", filename)
	return file.Close()
}
