package render

import (
	"image/color"

	"tinygo.org/x/drivers"
)

var _ drivers.Displayer = (*Displayer)(nil)

// Displayer adapts a Surface to drivers.Displayer so tinyfont can draw onto
// the rotated buffer. Pixels outside the screen are dropped.
type Displayer struct {
	s *Surface
}

// Displayer returns a drivers.Displayer view of s.
func (s *Surface) Displayer() *Displayer { return &Displayer{s: s} }

func (d *Displayer) Size() (x, y int16) {
	return int16(d.s.Width()), int16(d.s.Height())
}

func (d *Displayer) SetPixel(x, y int16, c color.RGBA) {
	_ = d.s.SetPixel(int(x), int(y), FromRGBA(c))
}

func (d *Displayer) Display() error { return d.s.Present() }

func (d *Displayer) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	d.s.FillRect(int(x), int(y), int(width), int(height), FromRGBA(c))
	return nil
}
