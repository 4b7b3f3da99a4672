package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
//
// The host may resize it between frames; callers re-read Width, Height and
// Buffer each frame instead of caching them.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode identifies a physical key.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyE
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyTab
)

func (k KeyCode) String() string {
	switch k {
	case KeyW:
		return "W"
	case KeyA:
		return "A"
	case KeyS:
		return "S"
	case KeyD:
		return "D"
	case KeyE:
		return "E"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyEnter:
		return "Enter"
	case KeyEscape:
		return "Escape"
	case KeyTab:
		return "Tab"
	default:
		return "Unknown"
	}
}

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// PointerEventKind tags a PointerEvent.
type PointerEventKind uint8

const (
	PointerMove PointerEventKind = iota + 1
	PointerClick
	PointerLocked
	PointerUnlocked
)

// PointerEvent is a pointer motion, a primary click or a lock state change.
// DX and DY are only set for PointerMove.
type PointerEvent struct {
	Kind   PointerEventKind
	DX, DY int
}

// Pointer is a lockable pointer. While locked the host hides and captures
// the cursor and reports relative motion. The host drops the lock on Escape
// or focus loss and reports it with PointerUnlocked.
type Pointer interface {
	Events() <-chan PointerEvent
	// RequestLock asks for the lock. It is granted on a later frame, or not
	// at all when the window is unfocused.
	RequestLock()
	Unlock()
	Locked() bool
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
	Pointer() Pointer
}

// Audio is a mono 16-bit PCM sink.
//
// WriteSamples never blocks: it queues as many samples as fit and returns
// the count. PendingSamples reports what is queued but not yet played.
type Audio interface {
	Start(sampleRate uint32) error
	Stop() error
	SetVolume(vol uint8)
	WriteSamples(s []int16) int
	PendingSamples() int
}

// HAL provides the only contact point between the OS and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Audio() Audio
}
