package quarkgl

// Target is a minimal pixel target for software rendering.
//
// Implementations clip out-of-bounds coordinates.
type Target interface {
	Size() (w, h int)
	SetPixel(x, y int, c Color)
	Clear(c Color)
}

// RenderMode selects the rasterization mode.
type RenderMode uint8

const (
	RenderSolidFlat RenderMode = iota
	RenderWireframe
)

func (m RenderMode) String() string {
	switch m {
	case RenderWireframe:
		return "wireframe"
	default:
		return "solid"
	}
}

// RGB565Target renders into a little-endian RGB565 buffer with the given row
// stride in bytes.
type RGB565Target struct {
	Buf    []byte
	Stride int
	W      int
	H      int
}

func (t *RGB565Target) Size() (w, h int) { return t.W, t.H }

func (t *RGB565Target) Clear(c Color) {
	if t.W <= 0 || t.H <= 0 || t.Stride < t.W*2 || len(t.Buf) < (t.H-1)*t.Stride+t.W*2 {
		return
	}
	p := RGB565(c)
	lo, hi := byte(p), byte(p>>8)
	for y := 0; y < t.H; y++ {
		row := t.Buf[y*t.Stride : y*t.Stride+t.W*2]
		for x := 0; x < len(row); x += 2 {
			row[x] = lo
			row[x+1] = hi
		}
	}
}

func (t *RGB565Target) SetPixel(x, y int, c Color) {
	if x < 0 || y < 0 || x >= t.W || y >= t.H {
		return
	}
	off := y*t.Stride + x*2
	if off < 0 || off+1 >= len(t.Buf) {
		return
	}
	p := RGB565(c)
	t.Buf[off] = byte(p)
	t.Buf[off+1] = byte(p >> 8)
}

// RGB565 packs c as rrrrrggggggbbbbb.
func RGB565(c Color) uint16 {
	return uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
}
