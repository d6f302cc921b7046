package app

import (
	"fmt"
	"image/color"
	"strings"
	"unicode/utf8"

	"fbcon/hal"
	"fbcon/render"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// PanicError carries a recovered panic out of a step.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string { return fmt.Sprintf("panic: %v", e.Value) }

// showPanic logs the panic and paints it on the bottom screen in black on
// white, wrapping long lines and dropping whatever does not fit.
func showPanic(h hal.HAL, s *render.Surface, p *PanicError) {
	lines := []string{
		"fbcon panic:",
		fmt.Sprintf("panic: %v", p.Value),
	}
	if len(p.Stack) > 0 {
		lines = append(lines, "stack:")
		for _, line := range strings.Split(string(p.Stack), "\n") {
			if line == "" {
				continue
			}
			lines = append(lines, strings.ReplaceAll(line, "\t", " "))
		}
	} else {
		lines = append(lines, "stack: unavailable")
	}

	if l := h.Logger(); l != nil {
		for _, line := range lines {
			l.WriteLineString(line)
		}
	}

	if s == nil {
		return
	}
	s.Fill(render.White)

	font := &proggy.TinySZ8pt7b
	_, adv := tinyfont.LineWidth(font, "0")
	fontWidth := int16(adv)
	const fontHeight, fontOffset = int16(10), int16(8)
	if fontWidth <= 0 {
		_ = s.Present()
		return
	}

	d := s.Displayer()
	fg := color.RGBA{A: 0xFF}
	maxH := int16(s.Height())
	cols := int16(s.Width()) / fontWidth
	if cols <= 0 {
		cols = 1
	}

	y := int16(0)
	for _, line := range lines {
		for len(line) > 0 {
			if y+fontHeight > maxH {
				_ = s.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			drawTextLine(d, font, fontWidth, fontOffset, 0, y, chunk, fg)
			y += fontHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = s.Present()
}

func drawTextLine(d *render.Displayer, font tinyfont.Fonter, fontWidth, fontOffset, x0, y0 int16, s string, fg color.RGBA) {
	x := x0
	for _, r := range s {
		tinyfont.DrawChar(d, font, x, y0+fontOffset, r, fg)
		x += fontWidth
	}
}

func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= int(n) {
		return s, ""
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
