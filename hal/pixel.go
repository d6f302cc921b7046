package hal

import "image"

// previewBackground matches the fill used for screenshot canvases.
const previewBackground = 0x1F

// bgrToRGBA re-projects a rotated BGR888 framebuffer into dst with its
// top-left corner at (ox, oy).
func bgrToRGBA(dst *image.RGBA, src []byte, width, height, ox, oy int) {
	for x := 0; x < width; x++ {
		col := x * height * BytesPerPixel
		for y := 0; y < height; y++ {
			s := col + (height-y-1)*BytesPerPixel
			if s+2 >= len(src) {
				return
			}
			d := dst.PixOffset(ox+x, oy+y)
			if d < 0 || d+3 >= len(dst.Pix) {
				continue
			}
			dst.Pix[d+0] = src[s+2]
			dst.Pix[d+1] = src[s+1]
			dst.Pix[d+2] = src[s+0]
			dst.Pix[d+3] = 0xFF
		}
	}
}

// previewSize returns the size of the stacked top/bottom preview.
func previewSize(d hostDisplay) (w, h int) {
	w = d.top.width
	if d.bot.width > w {
		w = d.bot.width
	}
	return w, d.top.height + d.bot.height
}

// composePreview draws the top screen above the bottom screen, each centered
// horizontally, into img. scratch is reused between calls and returned.
func composePreview(img *image.RGBA, d hostDisplay, scratch []byte) []byte {
	w, _ := previewSize(d)
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = previewBackground
		img.Pix[i+1] = previewBackground
		img.Pix[i+2] = previewBackground
		img.Pix[i+3] = 0xFF
	}

	scratch = d.top.snapshot(scratch)
	bgrToRGBA(img, scratch, d.top.width, d.top.height, (w-d.top.width)/2, 0)
	scratch = d.bot.snapshot(scratch)
	bgrToRGBA(img, scratch, d.bot.width, d.bot.height, (w-d.bot.width)/2, d.top.height)
	return scratch
}
