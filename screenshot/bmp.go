// Package screenshot composes both screens into one 24-bit BMP image.
package screenshot

import (
	"encoding/binary"

	"fbcon/hal"
)

const (
	// HeaderSize is the size of the file header plus BITMAPINFOHEADER.
	HeaderSize = 54
	infoSize   = 40
	// pixelsPerMeter is 72 DPI.
	pixelsPerMeter = 2834
	// Background fills canvas areas not covered by a screen.
	Background = 0x1F
)

// Canvas is a composed image in BMP pixel order: bottom-up rows of
// Stride bytes, BGR per pixel.
type Canvas struct {
	Width  int
	Height int
	Stride int
	Pix    []byte
}

func rowStride(width int) int {
	return (width*hal.BytesPerPixel + 3) &^ 3
}

// Header returns the 54-byte BMP header for a width x height, 24-bit,
// uncompressed image.
func Header(width, height int) [HeaderSize]byte {
	var h [HeaderSize]byte
	imageSize := rowStride(width) * height
	le := binary.LittleEndian

	h[0], h[1] = 'B', 'M'
	le.PutUint32(h[2:], uint32(HeaderSize+imageSize))
	le.PutUint32(h[10:], HeaderSize)
	le.PutUint32(h[14:], infoSize)
	le.PutUint32(h[18:], uint32(width))
	le.PutUint32(h[22:], uint32(height))
	le.PutUint16(h[26:], 1)
	le.PutUint16(h[28:], 24)
	le.PutUint32(h[34:], uint32(imageSize))
	le.PutUint32(h[38:], pixelsPerMeter)
	le.PutUint32(h[42:], pixelsPerMeter)
	return h
}

// Composite stacks top above bottom on one canvas. Each screen is centered
// horizontally; the canvas is as wide as the wider screen.
func Composite(top, bottom hal.Framebuffer) *Canvas {
	w := top.Width()
	if bottom.Width() > w {
		w = bottom.Width()
	}
	c := &Canvas{
		Width:  w,
		Height: top.Height() + bottom.Height(),
		Stride: rowStride(w),
	}
	c.Pix = make([]byte, c.Stride*c.Height)
	for i := range c.Pix {
		c.Pix[i] = Background
	}

	// BMP rows run bottom-up, so the bottom screen fills the first rows.
	c.blit(bottom, (w-bottom.Width())/2, 0)
	c.blit(top, (w-top.Width())/2, bottom.Height())
	return c
}

// blit copies a rotated framebuffer whose lowest row lands on canvas row
// row0. Inside a column the framebuffer already runs bottom-up, which is the
// BMP row order.
func (c *Canvas) blit(fb hal.Framebuffer, x0, row0 int) {
	src := fb.Buffer()
	height := fb.Height()
	for x := 0; x < fb.Width(); x++ {
		col := x * height * hal.BytesPerPixel
		for y := 0; y < height; y++ {
			s := col + y*hal.BytesPerPixel
			if s+2 >= len(src) {
				return
			}
			d := (row0+y)*c.Stride + (x0+x)*hal.BytesPerPixel
			copy(c.Pix[d:d+hal.BytesPerPixel], src[s:s+hal.BytesPerPixel])
		}
	}
}

// Encode returns header plus pixel data.
func (c *Canvas) Encode() []byte {
	h := Header(c.Width, c.Height)
	out := make([]byte, 0, HeaderSize+len(c.Pix))
	out = append(out, h[:]...)
	return append(out, c.Pix...)
}
