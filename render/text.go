package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"fbcon/fonts"
)

const (
	// LinePitch is the vertical distance between formatted lines.
	LinePitch = 10
	// ScratchSize caps the formatted output of Printf, in bytes.
	ScratchSize = 512
)

// DrawLine draws text starting at (x, y) and returns the cursor position
// after the last glyph.
//
// Drawing stops silently at the first malformed UTF-8 sequence. Surrogate
// code points are skipped without advancing. Rasterizer errors stop the
// line and are returned.
func (s *Surface) DrawLine(face *fonts.Face, text string, x, y int, fg, bg Color) (int, error) {
	p := []byte(text)
	for len(p) > 0 {
		r, n, ok := Decode(p)
		if !ok {
			break
		}
		p = p[n:]
		if isSurrogate(r) {
			continue
		}
		w, err := s.DrawGlyph(face, r, x, y, fg, bg)
		if err != nil {
			return x, err
		}
		x += w
	}
	return x, nil
}

// Printf formats into a bounded scratch buffer and draws each non-empty line
// at x, moving down by LinePitch per line. Output beyond ScratchSize bytes is
// dropped.
func (s *Surface) Printf(face *fonts.Face, x, y int, fg, bg Color, format string, args ...any) error {
	text := Truncate(fmt.Sprintf(format, args...), ScratchSize)
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}
		if _, err := s.DrawLine(face, line, x, y, fg, bg); err != nil {
			return err
		}
		y += LinePitch
	}
	return nil
}

// Truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
