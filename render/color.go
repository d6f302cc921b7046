package render

import "image/color"

// Color is a 24-bit 0xRRGGBB value. Transparent is the only value with bits
// above 24 set and is valid as a background only.
type Color uint32

// Transparent as a background leaves the pixels under a glyph untouched;
// as a fill it clears to black.
const Transparent Color = 1 << 24

// Palette of the device firmware.
const (
	Black  Color = 0x000000
	White  Color = 0xFFFFFF
	Red    Color = 0xFF0000
	Green  Color = 0x00FF00
	Blue   Color = 0x0000FF
	Grey   Color = 0x808080
	Purple Color = 0x660033
	Orange Color = 0xFF9900
)

// Default colors of the standard and debug text layers.
const (
	StdFont Color = White
	StdBG   Color = Black
	DbgFont Color = White
	DbgBG   Color = Black
	Accent  Color = Green
	Ask     Color = Orange
)

// RGB returns the three channels of c.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// BGR returns c in framebuffer byte order.
func (c Color) BGR() [3]byte {
	r, g, b := c.RGB()
	return [3]byte{b, g, r}
}

// FromBGR builds a color from framebuffer byte order.
func FromBGR(b, g, r byte) Color {
	return Color(r)<<16 | Color(g)<<8 | Color(b)
}

// FromRGBA drops alpha from c.
func FromRGBA(c color.RGBA) Color {
	return Color(c.R)<<16 | Color(c.G)<<8 | Color(c.B)
}

// RGBA converts c to an opaque image color.
func (c Color) RGBA() color.RGBA {
	r, g, b := c.RGB()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}
