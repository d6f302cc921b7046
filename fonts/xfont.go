package fonts

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// FromFace rasterizes the runes of an x/image font face into a table. Mask
// pixels with at least half coverage become set bits.
func FromFace(name string, face font.Face, runes []rune) *Face {
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	height := m.Height.Ceil()
	if d := ascent + m.Descent.Ceil(); d > height {
		height = d
	}

	out := newFace(name, height)
	for _, r := range runes {
		dr, mask, maskp, advance, ok := face.Glyph(fixed.P(0, ascent), r)
		if !ok {
			continue
		}
		w := advance.Round()
		if w <= 0 {
			continue
		}
		g := Glyph{Width: w}
		stride := g.Stride()
		g.Rows = make([]byte, stride*height)
		for y := dr.Min.Y; y < dr.Max.Y; y++ {
			if y < 0 || y >= height {
				continue
			}
			for x := dr.Min.X; x < dr.Max.X; x++ {
				if x < 0 || x >= w {
					continue
				}
				_, _, _, a := mask.At(maskp.X+x-dr.Min.X, maskp.Y+y-dr.Min.Y).RGBA()
				if a >= 0x8000 {
					g.Rows[y*stride+x/8] |= 0x80 >> (x % 8)
				}
			}
		}
		out.add(r, g)
	}
	return out.finish('?')
}

func buildBasic7x13() *Face {
	return FromFace(NameBasic7x13, basicfont.Face7x13, defaultRunes())
}
