// Package render draws text into rotated BGR888 framebuffers.
//
// Pixel (x, y) of a screen of height H lives at byte offset
// x*3*H + (H-y-1)*3: columns are contiguous and each column runs from the
// bottom of the screen to the top.
package render

import (
	"errors"
	"fmt"

	"fbcon/hal"
)

var (
	// ErrOffscreen is returned when a write would fall outside the screen.
	ErrOffscreen = errors.New("render: offscreen")
	// ErrNoGlyph is returned for code points the face cannot draw.
	ErrNoGlyph = errors.New("render: no glyph")
	// ErrTransparentForeground is returned when Transparent is used as a
	// foreground color.
	ErrTransparentForeground = errors.New("render: transparent foreground")
)

// Offset returns the byte offset of pixel (x, y) in a rotated buffer of the
// given screen height.
func Offset(x, y, height, bpp int) int {
	return x*bpp*height + (height-y-1)*bpp
}

// Surface is a bounds-checked view of one framebuffer.
type Surface struct {
	fb hal.Framebuffer
}

// NewSurface wraps fb. fb must use PixelFormatBGR888.
func NewSurface(fb hal.Framebuffer) *Surface {
	return &Surface{fb: fb}
}

func (s *Surface) Width() int  { return s.fb.Width() }
func (s *Surface) Height() int { return s.fb.Height() }

// Framebuffer returns the wrapped framebuffer.
func (s *Surface) Framebuffer() hal.Framebuffer { return s.fb }

func (s *Surface) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.fb.Width() && y < s.fb.Height()
}

func (s *Surface) offset(x, y int) (int, bool) {
	if !s.inside(x, y) {
		return 0, false
	}
	off := Offset(x, y, s.fb.Height(), hal.BytesPerPixel)
	if off < 0 || off+2 >= len(s.fb.Buffer()) {
		return 0, false
	}
	return off, true
}

// SetPixel writes c at (x, y). Transparent leaves the pixel untouched.
func (s *Surface) SetPixel(x, y int, c Color) error {
	off, ok := s.offset(x, y)
	if !ok {
		return fmt.Errorf("pixel (%d,%d): %w", x, y, ErrOffscreen)
	}
	if c == Transparent {
		return nil
	}
	s.put(off, c)
	return nil
}

// Pixel reads the color at (x, y).
func (s *Surface) Pixel(x, y int) (Color, error) {
	off, ok := s.offset(x, y)
	if !ok {
		return 0, fmt.Errorf("pixel (%d,%d): %w", x, y, ErrOffscreen)
	}
	buf := s.fb.Buffer()
	return FromBGR(buf[off], buf[off+1], buf[off+2]), nil
}

func (s *Surface) put(off int, c Color) {
	buf := s.fb.Buffer()
	bgr := c.BGR()
	buf[off+0] = bgr[0]
	buf[off+1] = bgr[1]
	buf[off+2] = bgr[2]
}

// Fill paints the whole screen with c. Transparent paints black.
func (s *Surface) Fill(c Color) {
	if c == Transparent {
		c = Black
	}
	bgr := c.BGR()
	buf := s.fb.Buffer()
	n := s.fb.Width() * s.fb.Height() * hal.BytesPerPixel
	if n > len(buf) {
		n = len(buf)
	}
	for i := 0; i+2 < n; i += hal.BytesPerPixel {
		buf[i+0] = bgr[0]
		buf[i+1] = bgr[1]
		buf[i+2] = bgr[2]
	}
}

// FillRect paints the rectangle [x, x+w) x [y, y+h), clipped to the screen.
func (s *Surface) FillRect(x, y, w, h int, c Color) {
	if c == Transparent {
		return
	}
	x0, y0 := clampInt(x, 0, s.Width()), clampInt(y, 0, s.Height())
	x1, y1 := clampInt(x+w, 0, s.Width()), clampInt(y+h, 0, s.Height())
	for px := x0; px < x1; px++ {
		for py := y0; py < y1; py++ {
			if off, ok := s.offset(px, py); ok {
				s.put(off, c)
			}
		}
	}
}

// Present forwards to the framebuffer's present hook.
func (s *Surface) Present() error { return s.fb.Present() }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
