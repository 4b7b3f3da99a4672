package hal

import "sync"

const eventQueueLen = 64

// keyQueue buffers key events for the frame loop. Events are dropped when
// the queue is full.
type keyQueue struct {
	ch chan KeyEvent
}

func newKeyQueue() *keyQueue {
	return &keyQueue{ch: make(chan KeyEvent, eventQueueLen)}
}

func (q *keyQueue) Events() <-chan KeyEvent { return q.ch }

func (q *keyQueue) emit(ev KeyEvent) {
	select {
	case q.ch <- ev:
	default:
	}
}

// pointerSample is what a host backend observed during one frame. X and Y
// are absolute positions in host units; the state machine derives deltas.
type pointerSample struct {
	X, Y    int
	Click   bool
	Escape  bool
	Focused bool
}

// captureChange tells the backend what to do with the system cursor.
type captureChange int8

const (
	captureKeep captureChange = iota
	captureGrab
	captureRelease
)

// pointerState is the pointer-lock state machine shared by the window and
// terminal backends.
type pointerState struct {
	mu     sync.Mutex
	ch     chan PointerEvent
	locked bool
	want   bool
	drop   bool
	primed bool
	lastX  int
	lastY  int
}

func newPointerState() *pointerState {
	return &pointerState{ch: make(chan PointerEvent, eventQueueLen)}
}

func (p *pointerState) Events() <-chan PointerEvent { return p.ch }

func (p *pointerState) RequestLock() {
	p.mu.Lock()
	p.want = true
	p.mu.Unlock()
}

func (p *pointerState) Unlock() {
	p.mu.Lock()
	p.drop = true
	p.mu.Unlock()
}

func (p *pointerState) Locked() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.locked
}

func (p *pointerState) emit(ev PointerEvent) {
	select {
	case p.ch <- ev:
	default:
	}
}

// update applies one frame of host input. A pending lock request is granted
// only while focused; Escape, focus loss or Unlock drop the lock. The first
// sample after a grab only records the position so the cursor warp does
// not turn into a jump.
func (p *pointerState) update(s pointerSample) captureChange {
	p.mu.Lock()
	defer p.mu.Unlock()

	if s.Click {
		p.emit(PointerEvent{Kind: PointerClick})
	}

	if p.locked {
		if s.Escape || !s.Focused || p.drop {
			p.locked = false
			p.want = false
			p.drop = false
			p.emit(PointerEvent{Kind: PointerUnlocked})
			return captureRelease
		}
		if !p.primed {
			p.primed = true
		} else if dx, dy := s.X-p.lastX, s.Y-p.lastY; dx != 0 || dy != 0 {
			p.emit(PointerEvent{Kind: PointerMove, DX: dx, DY: dy})
		}
		p.lastX, p.lastY = s.X, s.Y
		return captureKeep
	}

	p.drop = false
	if !p.want {
		return captureKeep
	}
	p.want = false
	if !s.Focused {
		return captureKeep
	}
	p.locked = true
	p.primed = false
	p.emit(PointerEvent{Kind: PointerLocked})
	return captureGrab
}
