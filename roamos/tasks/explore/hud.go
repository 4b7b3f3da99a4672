package explore

import (
	"image/color"

	"roam/roamos/locale"
	"roam/roamos/quarkgl"
)

var (
	colorHUD     = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorPrompt  = color.RGBA{R: 0xff, G: 0xdd, B: 0x66, A: 0xff}
	colorDone    = color.RGBA{R: 0x4a, G: 0xdf, B: 0x6a, A: 0xff}
	colorDim     = color.RGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 0xff}
	colorBlocker = color.RGBA{A: 0x80}
)

const hudMargin = 4

func (t *Task) render() {
	w, h := t.fb.Width(), t.fb.Height()
	if w <= 0 || h <= 0 {
		return
	}
	target := &quarkgl.RGB565Target{
		Buf:    t.fb.Buffer(),
		Stride: t.fb.StrideBytes(),
		W:      w,
		H:      h,
	}
	t.r.Render(target, t.s)
	t.drawHUD(w, h)
	_ = t.fb.Present()
}

// drawHUD draws the counters, the interaction prompt, and the blocker overlay
// while the pointer is free.
func (t *Task) drawHUD(w, h int) {
	line := t.hud.LineHeight()

	t.hud.Text(hudMargin, hudMargin, t.text(locale.TasksRemaining, t.sess.Remaining()), colorHUD)
	t.hud.Text(hudMargin, hudMargin+line, t.text(locale.Score, t.sess.Score()), colorHUD)

	if t.sess.Remaining() == 0 {
		t.hud.Centered(hudMargin+line, t.text(locale.AllDone), colorDone)
	} else if _, ok := t.sess.Near(); ok {
		t.hud.Centered(h-hudMargin-line, t.text(locale.NearTask), colorPrompt)
	}

	if t.look.Locked() {
		return
	}
	_ = t.hud.Display().FillRectangle(0, 0, int16(w), int16(h), colorBlocker)
	t.hud.Centered(h/2-line, t.text(locale.ClickToPlay), colorHUD)
	t.hud.Centered(h/2+line/2, t.text(locale.Controls), colorDim)
}
