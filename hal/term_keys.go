package hal

import (
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Terminals report key presses and autorepeat but never releases. A held
// key is released once no repeat arrives in time: the first wait covers the
// autorepeat delay, later ones the repeat interval.
const (
	termHoldFirst  = 550 * time.Millisecond
	termHoldRepeat = 150 * time.Millisecond
)

type termHold struct {
	last    time.Time
	repeats int
}

// termKeys turns terminal key presses into press/release pairs.
type termKeys struct {
	q    *keyQueue
	held map[KeyCode]termHold
}

func newTermKeys(q *keyQueue) *termKeys {
	return &termKeys{q: q, held: make(map[KeyCode]termHold)}
}

func (k *termKeys) press(code KeyCode, now time.Time) {
	h, ok := k.held[code]
	if !ok {
		k.held[code] = termHold{last: now}
		k.q.emit(KeyEvent{Code: code, Press: true})
		return
	}
	h.last = now
	h.repeats++
	k.held[code] = h
}

func (k *termKeys) expire(now time.Time) {
	for code, h := range k.held {
		limit := termHoldFirst
		if h.repeats > 0 {
			limit = termHoldRepeat
		}
		if now.Sub(h.last) >= limit {
			delete(k.held, code)
			k.q.emit(KeyEvent{Code: code, Press: false})
		}
	}
}

func termKeyCode(ev *tcell.EventKey) (KeyCode, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return KeyUp, true
	case tcell.KeyDown:
		return KeyDown, true
	case tcell.KeyLeft:
		return KeyLeft, true
	case tcell.KeyRight:
		return KeyRight, true
	case tcell.KeyEnter:
		return KeyEnter, true
	case tcell.KeyEscape:
		return KeyEscape, true
	case tcell.KeyTab:
		return KeyTab, true
	case tcell.KeyRune:
		switch unicode.ToLower(ev.Rune()) {
		case 'w':
			return KeyW, true
		case 'a':
			return KeyA, true
		case 's':
			return KeyS, true
		case 'd':
			return KeyD, true
		case 'e':
			return KeyE, true
		}
	}
	return KeyUnknown, false
}
