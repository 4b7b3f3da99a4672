package hal

import "sync"

// MemFramebuffer is an RGB565 framebuffer in memory. Hosts present it by
// snapshotting the buffer; Resize reallocates it.
type MemFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
}

func NewMemFramebuffer(width, height int) *MemFramebuffer {
	f := &MemFramebuffer{}
	f.Resize(width, height)
	return f
}

func (f *MemFramebuffer) Width() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.width
}

func (f *MemFramebuffer) Height() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.height
}

func (f *MemFramebuffer) StrideBytes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stride
}

func (f *MemFramebuffer) Buffer() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.buf
}

func (f *MemFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *MemFramebuffer) Present() error      { return nil }

func (f *MemFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pixel := rgb565(r, g, b)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

// Resize changes the dimensions, clamped to at least 1×1. It reports whether
// anything changed; the contents are cleared when it does.
func (f *MemFramebuffer) Resize(width, height int) bool {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if width == f.width && height == f.height {
		return false
	}
	f.width = width
	f.height = height
	f.stride = width * 2
	f.buf = make([]byte, f.stride*height)
	return true
}

// Snapshot copies the pixels into dst, growing it if needed, and returns it
// with the dimensions it was taken at.
func (f *MemFramebuffer) Snapshot(dst []byte) (out []byte, width, height int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cap(dst) < len(f.buf) {
		dst = make([]byte, len(f.buf))
	}
	dst = dst[:len(f.buf)]
	copy(dst, f.buf)
	return dst, f.width, f.height
}
