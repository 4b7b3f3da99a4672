package hal

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
)

// A terminal cell counts as this many pointer units, so mouse look feels
// similar to the window.
const (
	termCellW = 8
	termCellH = 16
)

// RunTerminal runs the app inside the terminal. Each cell shows two
// framebuffer pixels with an upper half block, the framebuffer follows the
// terminal size, and the mouse drives the pointer. Ctrl-C quits.
func RunTerminal(ctx context.Context, newApp func(HAL) func() error, cfg TerminalConfig) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()
	return runTerminal(ctx, screen, newApp, cfg, newSpeakerAudio())
}

func runTerminal(ctx context.Context, screen tcell.Screen, newApp func(HAL) func() error, cfg TerminalConfig, aud Audio) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()

	var log Logger = discardLogger{}
	if cfg.LogPath != "" {
		fl, err := openFileLogger(cfg.LogPath, LogFileMax)
		if err != nil {
			return err
		}
		defer fl.Close()
		log = fl
	}

	cols, rows := screen.Size()
	h := newHostHAL(cols, rows*2, log, aud)
	defer aud.Stop()
	step := newApp(h)

	t := &termHost{screen: screen, h: h, keys: newTermKeys(h.kbd), focused: true}

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, eventQueueLen)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	tk := time.NewTicker(time.Second / time.Duration(cfg.Hz))
	defer tk.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !t.handle(ev, time.Now()) {
				return nil
			}
		case now := <-tk.C:
			t.frame(now)
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			t.scratch = presentHalfBlocks(screen, h.fb, t.scratch)
			screen.Show()
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}

type termHost struct {
	screen  tcell.Screen
	h       *hostHAL
	keys    *termKeys
	scratch []byte

	mouseX, mouseY int
	button         bool
	click          bool
	escape         bool
	focused        bool
}

// handle applies one terminal event. It returns false on Ctrl-C.
func (t *termHost) handle(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyEscape {
			t.escape = true
		}
		if code, ok := termKeyCode(ev); ok {
			t.keys.press(code, now)
		}
	case *tcell.EventMouse:
		t.mouseX, t.mouseY = ev.Position()
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !t.button {
			t.click = true
		}
		t.button = down
	case *tcell.EventFocus:
		t.focused = ev.Focused
	case *tcell.EventResize:
		t.screen.Sync()
		cols, rows := t.screen.Size()
		t.h.fb.Resize(cols, rows*2)
	}
	return true
}

// frame feeds the input gathered since the last frame to the HAL devices.
func (t *termHost) frame(now time.Time) {
	t.keys.expire(now)
	t.h.ptr.update(pointerSample{
		X:       t.mouseX * termCellW,
		Y:       t.mouseY * termCellH,
		Click:   t.click,
		Escape:  t.escape,
		Focused: t.focused,
	})
	t.click = false
	t.escape = false
}

func presentHalfBlocks(s tcell.Screen, fb *MemFramebuffer, scratch []byte) []byte {
	buf, w, h := fb.Snapshot(scratch)
	cols, rows := s.Size()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := pixel565(buf, w, h, x, 2*y)
			bottom := pixel565(buf, w, h, x, 2*y+1)
			style := tcell.StyleDefault.Foreground(color565(top)).Background(color565(bottom))
			s.SetContent(x, y, '▀', nil, style)
		}
	}
	return buf
}

func color565(p uint16) tcell.Color {
	r, g, b := rgb888From565(p)
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
