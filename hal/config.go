package hal

// WindowConfig sizes the desktop window. Width and Height are the initial
// framebuffer size; the window is Scale times larger.
type WindowConfig struct {
	Width  int
	Height int
	Scale  int
	TPS    int
}

func (c WindowConfig) normalize() WindowConfig {
	if c.Width <= 0 {
		c.Width = 320
	}
	if c.Height <= 0 {
		c.Height = 240
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.TPS <= 0 {
		c.TPS = 60
	}
	return c
}

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64
	Width   int
	Height  int
}

// TerminalConfig controls the tcell host runner. Logs go to LogPath since
// the screen owns stdout; an empty LogPath discards them.
type TerminalConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64
	LogPath string
}
