package app

import (
	"fmt"
	"image/color"
	"strings"
	"unicode/utf8"

	"roam/hal"
	"roam/roamos/fbtext"
	"roam/roamos/kernel"
	"roam/roamos/locale"
)

var (
	panicBackground = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	panicForeground = color.RGBA{A: 0xFF}
)

// installPanicHandler logs the first task panic and replaces the frame with
// a panic screen. The handler runs inside the kernel step, so it returns
// instead of blocking; the frame loop stops stepping once InPanicMode is set.
func installPanicHandler(h hal.HAL, text *locale.Catalog) {
	kernel.SetPanicHandler(func(info kernel.PanicInfo) {
		logPanic(h.Logger(), info)
		if d := h.Display(); d != nil {
			drawPanic(d.Framebuffer(), text, info)
		}
	})
}

func logPanic(l hal.Logger, info kernel.PanicInfo) {
	if l == nil {
		return
	}
	l.WriteLineString(fmt.Sprintf("panic: task=%d %v", info.TaskID, info.Value))
	for _, line := range stackLines(info.Stack) {
		l.WriteLineString(line)
	}
}

func panicLines(text *locale.Catalog, info kernel.PanicInfo) []string {
	title := "panic"
	if text != nil {
		title = locale.ASCII(text.Get(locale.Panic))
	}
	lines := []string{
		title,
		fmt.Sprintf("task: %d", info.TaskID),
		fmt.Sprintf("panic: %v", info.Value),
	}
	if stack := stackLines(info.Stack); len(stack) > 0 {
		lines = append(lines, "stack:")
		lines = append(lines, stack...)
	} else {
		lines = append(lines, "stack: unavailable")
	}
	return lines
}

func drawPanic(fb hal.Framebuffer, text *locale.Catalog, info kernel.PanicInfo) {
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	fb.ClearRGB(panicBackground.R, panicBackground.G, panicBackground.B)

	w := fbtext.NewWriter(fb)
	cols := 1
	if cw := w.Width("0"); cw > 0 && fb.Width() > cw {
		cols = fb.Width() / cw
	}

	y, line := 0, w.LineHeight()
	for _, l := range panicLines(text, info) {
		for _, chunk := range wrapRunes(locale.ASCII(l), cols) {
			if y+line > fb.Height() {
				_ = fb.Present()
				return
			}
			w.Text(0, y, chunk, panicForeground)
			y += line
		}
	}
	_ = fb.Present()
}

func stackLines(stack []byte) []string {
	var out []string
	for _, line := range strings.Split(string(stack), "\n") {
		if line = strings.TrimRight(line, "\r"); line != "" {
			out = append(out, strings.ReplaceAll(line, "\t", "  "))
		}
	}
	return out
}

// wrapRunes splits s into chunks of at most n runes. Continuation chunks drop
// their leading spaces.
func wrapRunes(s string, n int) []string {
	if n <= 0 {
		n = 1
	}
	var out []string
	for {
		if utf8.RuneCountInString(s) <= n {
			return append(out, s)
		}
		i := 0
		for count := 0; count < n; count++ {
			_, size := utf8.DecodeRuneInString(s[i:])
			i += size
		}
		out = append(out, s[:i])
		s = strings.TrimLeft(s[i:], " ")
		if s == "" {
			return out
		}
	}
}
