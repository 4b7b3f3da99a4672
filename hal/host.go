package hal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/ttacon/chalk"
	"golang.org/x/term"
)

type hostHAL struct {
	logger Logger
	fb     *MemFramebuffer
	kbd    *keyQueue
	ptr    *pointerState
	aud    Audio
}

func newHostHAL(width, height int, log Logger, aud Audio) *hostHAL {
	return &hostHAL{
		logger: log,
		fb:     NewMemFramebuffer(width, height),
		kbd:    newKeyQueue(),
		ptr:    newPointerState(),
		aud:    aud,
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd, ptr: h.ptr} }
func (h *hostHAL) Audio() Audio     { return h.aud }

type hostDisplay struct {
	fb *MemFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *keyQueue
	ptr *pointerState
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
func (in hostInput) Pointer() Pointer   { return in.ptr }

// hostLogger writes lines to w, colored by their source prefix when w is a
// terminal.
type hostLogger struct {
	mu    sync.Mutex
	w     io.Writer
	color bool
}

func newStdoutLogger() *hostLogger {
	return &hostLogger{w: os.Stdout, color: term.IsTerminal(int(os.Stdout.Fd()))}
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.color {
		s = colorize(s)
	}
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

func colorize(s string) string {
	switch {
	case strings.HasPrefix(s, "panic"):
		return chalk.Red.Color(s)
	case strings.HasPrefix(s, "collision"):
		return chalk.Yellow.Color(s)
	case strings.HasPrefix(s, "task"):
		return chalk.Green.Color(s)
	case strings.HasPrefix(s, "sound"):
		return chalk.Magenta.Color(s)
	default:
		return s
	}
}

type discardLogger struct{}

func (discardLogger) WriteLineString(string) {}
func (discardLogger) WriteLineBytes([]byte)  {}
