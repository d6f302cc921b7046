package hal

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/gdamore/tcell/v2"
)

const terminalFrameTime = time.Second / 30

// RunTerminal previews both screens inside the terminal using half-block
// cells, scaled down to fit. 's' or F12 emits KeyScreenshot, 'q' or Escape
// emits KeyQuit.
func RunTerminal(ctx context.Context, cfg HostConfig, newApp func(HAL) (func() error, error)) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()

	return runTerminal(ctx, screen, cfg, newApp)
}

func runTerminal(ctx context.Context, screen tcell.Screen, cfg HostConfig, newApp func(HAL) (func() error, error)) error {
	h, err := newHost(cfg)
	if err != nil {
		return err
	}
	step, err := newApp(h)
	if err != nil {
		return err
	}

	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()

	w, hh := previewSize(h.disp)
	img := image.NewRGBA(image.Rect(0, 0, w, hh))
	var scratch []byte
	var shown [2]uint64
	first := true

	t := time.NewTicker(terminalFrameTime)
	defer t.Stop()
	for {
		for screen.HasPendingEvent() {
			switch ev := screen.PollEvent().(type) {
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyF12 || ev.Rune() == 's':
					h.kbd.emit(KeyScreenshot)
				case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q':
					h.kbd.emit(KeyQuit)
				}
			case *tcell.EventResize:
				screen.Sync()
				first = true
			}
		}

		if step != nil {
			if err := step(); err != nil {
				return stopErr(err)
			}
		}

		now := [2]uint64{h.disp.top.presentCount(), h.disp.bot.presentCount()}
		if first || now != shown {
			scratch = composePreview(img, h.disp, scratch)
			drawHalfBlocks(screen, img)
			screen.Show()
			shown = now
			first = false
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}

// drawHalfBlocks samples img onto the terminal grid. Each cell shows two
// vertically stacked samples: the upper one as foreground of '▀', the lower
// one as background.
func drawHalfBlocks(screen tcell.Screen, img *image.RGBA) {
	cols, rows := screen.Size()
	if cols <= 0 || rows <= 0 {
		return
	}
	b := img.Bounds()
	scale := 1
	for b.Dx()/scale > cols || b.Dy()/scale > rows*2 {
		scale++
	}

	sample := func(x, y int) tcell.Color {
		if x >= b.Dx() || y >= b.Dy() {
			return tcell.ColorBlack
		}
		o := img.PixOffset(x, y)
		return tcell.NewRGBColor(int32(img.Pix[o]), int32(img.Pix[o+1]), int32(img.Pix[o+2]))
	}

	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			x := cx * scale
			y := cy * 2 * scale
			style := tcell.StyleDefault.Foreground(sample(x, y)).Background(sample(x, y+scale))
			screen.SetContent(cx, cy, '▀', nil, style)
		}
	}
}
