package quarkgl

// Color is an RGBA color in 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 0xFF} }

// Hex converts a 0xRRGGBB literal.
func Hex(rgb uint32) Color {
	return RGB(uint8(rgb>>16), uint8(rgb>>8), uint8(rgb))
}

// MulScalar scales the color channels by s, clamped to 0..1.
func (c Color) MulScalar(s Scalar) Color {
	t := uint32(Clamp01(s)*255 + 0.5)
	mul := func(ch uint8) uint8 {
		return uint8((uint32(ch) * t) / 255)
	}
	return Color{R: mul(c.R), G: mul(c.G), B: mul(c.B), A: c.A}
}
