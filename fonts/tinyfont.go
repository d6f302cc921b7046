package fonts

import (
	"image/color"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// canvas is a drivers.Displayer that records set pixels of one glyph cell.
type canvas struct {
	w, h int
	set  []bool
}

func newCanvas(w, h int) *canvas {
	return &canvas{w: w, h: h, set: make([]bool, w*h)}
}

func (c *canvas) Size() (x, y int16) { return int16(c.w), int16(c.h) }

func (c *canvas) SetPixel(x, y int16, col color.RGBA) {
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= c.w || iy < 0 || iy >= c.h {
		return
	}
	if col.A == 0 && col.R == 0 && col.G == 0 && col.B == 0 {
		return
	}
	c.set[iy*c.w+ix] = true
}

func (c *canvas) Display() error { return nil }

// glyph packs the recorded pixels of a width-wide cell into MSB-first rows.
func (c *canvas) glyph(width int) Glyph {
	g := Glyph{Width: width}
	stride := g.Stride()
	g.Rows = make([]byte, stride*c.h)
	for y := 0; y < c.h; y++ {
		for x := 0; x < width && x < c.w; x++ {
			if c.set[y*c.w+x] {
				g.Rows[y*stride+x/8] |= 0x80 >> (x % 8)
			}
		}
	}
	return g
}

// FromFonter rasterizes the runes of a tinyfont font into a table. The
// baseline is placed so that the tallest glyph fits; glyphs the font does
// not define are left out.
func FromFonter(name string, f tinyfont.Fonter, runes []rune) *Face {
	type sampled struct {
		r    rune
		g    tinyfont.Glypher
		info tinyfont.GlyphInfo
	}
	var found []sampled
	ascent, descent := 0, 0
	for _, r := range runes {
		g := f.GetGlyph(r)
		info := g.Info()
		// Missing runes come back as empty placeholder glyphs.
		if info.Rune != r || (info.Width == 0 && info.Height == 0 && r != ' ') {
			continue
		}
		if a := -int(info.YOffset); a > ascent {
			ascent = a
		}
		if d := int(info.YOffset) + int(info.Height); d > descent {
			descent = d
		}
		found = append(found, sampled{r: r, g: g, info: info})
	}

	face := newFace(name, ascent+descent)
	for _, s := range found {
		w := int(s.info.XAdvance)
		if cw := int(s.info.XOffset) + int(s.info.Width); cw > w {
			w = cw
		}
		if w <= 0 {
			continue
		}
		c := newCanvas(w, face.height)
		s.g.Draw(c, 0, int16(ascent), color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})
		g := c.glyph(int(s.info.XAdvance))
		if g.Width == 0 {
			g = c.glyph(w)
		}
		face.add(s.r, g)
	}
	return face.finish('?')
}

func buildPicopixel() *Face {
	return FromFonter(NamePicopixel, &tinyfont.Picopixel, defaultRunes())
}

func buildProggy() *Face {
	return FromFonter(NameProggy, &proggy.TinySZ8pt7b, defaultRunes())
}
