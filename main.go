package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/errors"

	"roam/app"
	"roam/hal"
	"roam/internal/buildinfo"
	"roam/roamos/tuning"
)

func main() {
	var (
		headless hal.HeadlessConfig
		term     hal.TerminalConfig
		path     string
		seed     uint64
		lang     string
		version  bool
	)
	flag.BoolVar(&headless.Enabled, "headless", false, "Run without a window.")
	flag.BoolVar(&term.Enabled, "term", false, "Run in the terminal with half-block pixels.")
	flag.IntVar(&headless.Hz, "hz", 60, "Tick rate in headless and terminal mode.")
	flag.Uint64Var(&headless.Ticks, "ticks", 0, "Stop after N ticks in headless and terminal mode (0 = run forever).")
	flag.StringVar(&term.LogPath, "log", "logs/roam.log", "Log file for terminal mode (empty = discard).")
	flag.StringVar(&path, "config", "", "YAML tuning file.")
	flag.Uint64Var(&seed, "seed", 0, "Layout seed (0 = derive from the clock unless the config sets one).")
	flag.StringVar(&lang, "locale", "", "HUD language, e.g. en or fr.")
	flag.BoolVar(&version, "version", false, "Print the version and exit.")
	flag.Parse()

	if version {
		fmt.Println(buildinfo.String())
		return
	}

	tu, err := tuning.Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if seed != 0 {
		tu.Seed = uint32(seed)
	}
	if tu.Seed == 0 {
		tu.Seed = uint32(time.Now().UnixNano()) | 1
	}
	if lang != "" {
		tu.Locale = lang
	}

	newApp := func(h hal.HAL) func() error {
		return app.New(h, app.Config{Tuning: tu})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case term.Enabled:
		term.Hz, term.Ticks = headless.Hz, headless.Ticks
		err = hal.RunTerminal(ctx, newApp, term)
	case headless.Enabled:
		headless.Width, headless.Height = tu.Render.Width, tu.Render.Height
		err = hal.RunHeadless(ctx, newApp, headless)
	default:
		err = hal.RunWindow(hal.WindowConfig{
			Width:  tu.Render.Width,
			Height: tu.Render.Height,
			Scale:  tu.Render.Scale,
		}, newApp)
	}
	if err != nil && errors.Cause(err) != context.Canceled {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
