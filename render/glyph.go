package render

import (
	"fmt"

	"fbcon/fonts"
	"fbcon/hal"
)

// DrawGlyph rasterizes r at (x, y) and returns its advance width.
//
// Set bits are painted fg; clear bits are painted bg unless bg is
// Transparent. The whole cell must be on screen: nothing is written
// otherwise.
func (s *Surface) DrawGlyph(face *fonts.Face, r rune, x, y int, fg, bg Color) (int, error) {
	if fg == Transparent {
		return 0, ErrTransparentForeground
	}
	g, ok := face.Glyph(r)
	if !ok {
		return 0, fmt.Errorf("rune %U: %w", r, ErrNoGlyph)
	}
	h := face.Height()
	if g.Width <= 0 || h <= 0 {
		return 0, nil
	}
	if len(g.Rows) < h*g.Stride() {
		return 0, fmt.Errorf("rune %U: short bitmap: %w", r, ErrNoGlyph)
	}
	if !s.inside(x, y) || !s.inside(x+g.Width-1, y+h-1) {
		return 0, fmt.Errorf("glyph %U at (%d,%d): %w", r, x, y, ErrOffscreen)
	}

	buf := s.fb.Buffer()
	height := s.fb.Height()
	colStride := hal.BytesPerPixel * height
	stride := g.Stride()
	fgc, bgc := fg.BGR(), bg.BGR()
	for yy := 0; yy < h; yy++ {
		pos := Offset(x, y+yy, height, hal.BytesPerPixel)
		row := g.Rows[yy*stride : yy*stride+stride]
		for xx := 0; xx < g.Width; xx++ {
			switch {
			case row[xx/8]&(0x80>>(xx%8)) != 0:
				buf[pos+0], buf[pos+1], buf[pos+2] = fgc[0], fgc[1], fgc[2]
			case bg != Transparent:
				buf[pos+0], buf[pos+1], buf[pos+2] = bgc[0], bgc[1], bgc[2]
			}
			pos += colStride
		}
	}
	return g.Width, nil
}
