package render

// Decode decodes one code point from the start of p and returns it with the
// number of bytes consumed (1..4). ok is false for malformed, overlong,
// out-of-range or truncated sequences; Decode never reads past len(p).
//
// Unlike unicode/utf8, encoded surrogate halves (0xED 0xA0..0xBF ..) are
// accepted; the line renderer skips them.
func Decode(p []byte) (r rune, size int, ok bool) {
	if len(p) == 0 {
		return 0, 0, false
	}
	c1 := p[0]
	switch {
	case c1 < 0x80:
		return rune(c1), 1, true
	case c1 < 0xC2:
		return 0, 0, false
	case c1 < 0xE0:
		if len(p) < 2 || !isCont(p[1]) {
			return 0, 0, false
		}
		return rune(c1&0x1F)<<6 | rune(p[1]&0x3F), 2, true
	case c1 < 0xF0:
		if len(p) < 2 || !isCont(p[1]) {
			return 0, 0, false
		}
		if c1 == 0xE0 && p[1] < 0xA0 {
			return 0, 0, false
		}
		if len(p) < 3 || !isCont(p[2]) {
			return 0, 0, false
		}
		return rune(c1&0x0F)<<12 | rune(p[1]&0x3F)<<6 | rune(p[2]&0x3F), 3, true
	case c1 < 0xF5:
		if len(p) < 2 || !isCont(p[1]) {
			return 0, 0, false
		}
		if c1 == 0xF0 && p[1] < 0x90 {
			return 0, 0, false
		}
		if c1 == 0xF4 && p[1] >= 0x90 {
			return 0, 0, false
		}
		if len(p) < 3 || !isCont(p[2]) {
			return 0, 0, false
		}
		if len(p) < 4 || !isCont(p[3]) {
			return 0, 0, false
		}
		return rune(c1&0x07)<<18 | rune(p[1]&0x3F)<<12 | rune(p[2]&0x3F)<<6 | rune(p[3]&0x3F), 4, true
	}
	return 0, 0, false
}

func isCont(b byte) bool { return b&0xC0 == 0x80 }

// isSurrogate reports whether r is half of a UTF-16 surrogate pair.
func isSurrogate(r rune) bool { return r >= 0xD800 && r <= 0xDFFF }
