// Package fbtext draws tinyfont text and filled boxes onto an RGB565
// hal.Framebuffer.
package fbtext

import (
	"image/color"

	"roam/hal"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var _ drivers.Displayer = (*Display)(nil)

// Display adapts a framebuffer to drivers.Displayer. Size and bounds are
// read from the framebuffer on every call so a resize between frames is
// picked up.
type Display struct {
	fb hal.Framebuffer
}

func NewDisplay(fb hal.Framebuffer) *Display { return &Display{fb: fb} }

func (d *Display) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *Display) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	pixel := RGB565(c)
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d *Display) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

func (d *Display) SetRotation(drivers.Rotation) error { return nil }

// FillRectangle fills the clipped rectangle with c. Alpha below 255 blends
// with what is already there.
func (d *Display) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return nil
	}
	buf := d.fb.Buffer()
	w, h := d.fb.Width(), d.fb.Height()
	x0 := clampInt(int(x), 0, w)
	y0 := clampInt(int(y), 0, h)
	x1 := clampInt(int(x)+int(width), 0, w)
	y1 := clampInt(int(y)+int(height), 0, h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	stride := d.fb.StrideBytes()
	solid := RGB565(c)
	for py := y0; py < y1; py++ {
		row := py * stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			if off+1 >= len(buf) {
				break
			}
			pixel := solid
			if c.A < 255 {
				under := uint16(buf[off]) | uint16(buf[off+1])<<8
				pixel = blend565(under, c)
			}
			buf[off] = byte(pixel)
			buf[off+1] = byte(pixel >> 8)
		}
	}
	return nil
}

// Writer draws single lines of text with one font.
type Writer struct {
	d    *Display
	font tinyfont.Fonter
	line int16
}

// NewWriter returns a writer using the proggy 8pt font.
func NewWriter(fb hal.Framebuffer) *Writer {
	font := &proggy.TinySZ8pt7b
	line := int16(font.GetYAdvance())
	if line <= 0 {
		line = 12
	}
	return &Writer{d: NewDisplay(fb), font: font, line: line}
}

func (w *Writer) Display() *Display { return w.d }

// LineHeight is the vertical advance between lines.
func (w *Writer) LineHeight() int { return int(w.line) }

// Width returns the pixel width of s.
func (w *Writer) Width(s string) int {
	_, outbox := tinyfont.LineWidth(w.font, s)
	return int(outbox)
}

// Text draws s with its top-left corner at x, y.
func (w *Writer) Text(x, y int, s string, c color.RGBA) {
	tinyfont.WriteLine(w.d, w.font, int16(x), int16(y)+w.line-3, s, c)
}

// Centered draws s horizontally centered on row y.
func (w *Writer) Centered(y int, s string, c color.RGBA) {
	sw, _ := w.d.Size()
	w.Text((int(sw)-w.Width(s))/2, y, s, c)
}

// RGB565 packs c, ignoring alpha.
func RGB565(c color.RGBA) uint16 {
	return uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
}

func blend565(under uint16, c color.RGBA) uint16 {
	ur := uint32(under>>11&0x1F) * 255 / 31
	ug := uint32(under>>5&0x3F) * 255 / 63
	ub := uint32(under&0x1F) * 255 / 31
	a := uint32(c.A)
	mix := func(top uint8, bottom uint32) uint8 {
		return uint8((uint32(top)*a + bottom*(255-a)) / 255)
	}
	return RGB565(color.RGBA{R: mix(c.R, ur), G: mix(c.G, ug), B: mix(c.B, ub), A: 255})
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
