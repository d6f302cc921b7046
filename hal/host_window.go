//go:build cgo

package hal

import (
	"image"

	"fbcon/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunWindow starts a desktop window that displays both screens stacked and
// maps F12 to KeyScreenshot and Escape to KeyQuit.
// It blocks until the window closes or a step returns ErrStop.
func RunWindow(cfg HostConfig, newApp func(HAL) (func() error, error)) error {
	h, err := newHost(cfg)
	if err != nil {
		return err
	}
	step, err := newApp(h)
	if err != nil {
		return err
	}

	g := &hostGame{h: h, step: step}
	w, hh := previewSize(h.disp)
	ebiten.SetWindowTitle("fbcon (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(w*2, hh*2)
	ebiten.SetTPS(60)
	return stopErr(ebiten.RunGame(g))
}

type hostGame struct {
	h       *hostHAL
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	step    func() error
}

func (g *hostGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		g.h.kbd.emit(KeyScreenshot)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.h.kbd.emit(KeyQuit)
	}
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	w, h := previewSize(g.h.disp)
	if g.img == nil || g.img.Bounds().Dx() != w || g.img.Bounds().Dy() != h {
		g.img = image.NewRGBA(image.Rect(0, 0, w, h))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(w, h)
	}

	g.scratch = composePreview(g.img, g.h.disp, g.scratch)
	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return previewSize(g.h.disp)
}
