//go:build cgo

package hal

import (
	"image"

	"roam/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow starts a desktop window that displays the framebuffer and
// forwards keyboard and pointer input. It blocks until the window closes.
func RunWindow(cfg WindowConfig, newApp func(HAL) func() error) error {
	cfg = cfg.normalize()
	h := newHostHAL(cfg.Width, cfg.Height, newStdoutLogger(), newHostAudio())
	step := newApp(h)

	g := &hostGame{h: h, step: step, scale: cfg.Scale}
	ebiten.SetWindowTitle("roam (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)
	err := ebiten.RunGame(g)
	_ = h.aud.Stop()
	return err
}

type hostGame struct {
	h       *hostHAL
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	step    func() error
	scale   int
}

func (g *hostGame) Update() error {
	pollKeys(g.h.kbd)
	pollPointer(g.h.ptr, g.scale)
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	var w, h int
	g.scratch, w, h = g.h.fb.Snapshot(g.scratch)
	if g.img == nil || g.img.Bounds().Dx() != w || g.img.Bounds().Dy() != h {
		g.img = image.NewRGBA(image.Rect(0, 0, w, h))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(w, h)
	}

	src := g.scratch
	dst := g.img.Pix
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		r, gg, b := rgb888From565(uint16(src[i]) | uint16(src[i+1])<<8)
		j := (i / 2) * 4
		dst[j+0] = r
		dst[j+1] = gg
		dst[j+2] = b
		dst[j+3] = 0xFF
	}

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

// Layout keeps the framebuffer at the window size divided by the scale, so
// resizing the window resizes the render target.
func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := outsideWidth / g.scale
	h := outsideHeight / g.scale
	g.h.fb.Resize(w, h)
	return g.h.fb.Width(), g.h.fb.Height()
}
