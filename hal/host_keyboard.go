//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Ebiten key values name physical keys, so WASD stays put on other layouts.
var ebitenKeys = []struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyW, KeyW},
	{ebiten.KeyA, KeyA},
	{ebiten.KeyS, KeyS},
	{ebiten.KeyD, KeyD},
	{ebiten.KeyE, KeyE},
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeyEnter, KeyEnter},
	{ebiten.KeyEscape, KeyEscape},
	{ebiten.KeyTab, KeyTab},
}

func pollKeys(q *keyQueue) {
	for _, k := range ebitenKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			q.emit(KeyEvent{Code: k.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(k.key) {
			q.emit(KeyEvent{Code: k.code, Press: false})
		}
	}
}

func pollPointer(p *pointerState, scale int) {
	x, y := ebiten.CursorPosition()
	s := pointerSample{
		X:       x * scale,
		Y:       y * scale,
		Click:   inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Escape:  inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		Focused: ebiten.IsFocused(),
	}
	switch p.update(s) {
	case captureGrab:
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	case captureRelease:
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
}
