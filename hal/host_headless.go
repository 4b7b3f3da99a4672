package hal

import (
	"context"
	"fmt"
	"time"
)

// RunHeadless runs the app without opening a window. Input devices exist
// but stay silent, and audio is discarded.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 320, 240
	}

	h := newHostHAL(cfg.Width, cfg.Height, newStdoutLogger(), discardAudio{})
	step := newApp(h)

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	return runTicker(ctx, d, cfg.Ticks, step)
}

// runTicker calls step every d until ctx ends, step fails, or ticks steps
// have run (0 = forever).
func runTicker(ctx context.Context, d time.Duration, ticks uint64, step func() error) error {
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			tick++
			if ticks > 0 && tick >= ticks {
				return nil
			}
		}
	}
}
