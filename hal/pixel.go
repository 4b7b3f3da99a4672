package hal

// RGB565 helpers. Pixels are stored little-endian, two bytes each.

func rgb565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

// rgb888From565 widens each channel back to 8 bits, so 0x1F maps to 0xFF.
func rgb888From565(p uint16) (r, g, b uint8) {
	return uint8(uint32(p>>11&0x1F) * 255 / 31),
		uint8(uint32(p>>5&0x3F) * 255 / 63),
		uint8(uint32(p&0x1F) * 255 / 31)
}

// pixel565 reads pixel x, y of a packed w×h buffer. Out of range reads are
// black.
func pixel565(buf []byte, w, h, x, y int) uint16 {
	if x < 0 || y < 0 || x >= w || y >= h {
		return 0
	}
	off := (y*w + x) * 2
	if off+1 >= len(buf) {
		return 0
	}
	return uint16(buf[off]) | uint16(buf[off+1])<<8
}
