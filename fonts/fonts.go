// Package fonts holds the glyph tables used by the renderer.
//
// A table is built once (at first use) and never mutated afterwards. Glyph
// rows are MSB-first: bit 7 of the first byte of a row is the leftmost pixel,
// and a row always spans a whole number of bytes.
package fonts

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownFace is returned by ByName for names that are not registered.
var ErrUnknownFace = errors.New("fonts: unknown face")

// Glyph is one rasterizable code point.
type Glyph struct {
	// Width is the advance width in pixels.
	Width int
	// Rows holds Face.Height scan-lines of Stride() bytes each.
	Rows []byte
}

// Stride returns the number of bytes per scan-line.
func (g Glyph) Stride() int { return (g.Width + 7) / 8 }

// Bit reports whether pixel (x, y) of the glyph cell is set.
func (g Glyph) Bit(x, y int) bool {
	if x < 0 || x >= g.Width || y < 0 {
		return false
	}
	i := y*g.Stride() + x/8
	if i >= len(g.Rows) {
		return false
	}
	return g.Rows[i]&(0x80>>(x%8)) != 0
}

// Face is an immutable glyph table with a fixed cell height.
type Face struct {
	name        string
	height      int
	fixed       bool
	glyphs      map[rune]Glyph
	replacement rune
}

func newFace(name string, height int) *Face {
	return &Face{name: name, height: height, glyphs: make(map[rune]Glyph), replacement: -1}
}

func (f *Face) Name() string { return f.name }
func (f *Face) Height() int  { return f.height }

// Fixed reports whether every glyph has the same width.
func (f *Face) Fixed() bool { return f.fixed }

// Len returns the number of glyphs in the table.
func (f *Face) Len() int { return len(f.glyphs) }

// Lookup returns the glyph for r without any fallback.
func (f *Face) Lookup(r rune) (Glyph, bool) {
	g, ok := f.glyphs[r]
	return g, ok
}

// Glyph returns the glyph for r, or the replacement glyph when r is not in
// the table and the face defines one.
func (f *Face) Glyph(r rune) (Glyph, bool) {
	if g, ok := f.glyphs[r]; ok {
		return g, true
	}
	if f.replacement >= 0 {
		g, ok := f.glyphs[f.replacement]
		return g, ok
	}
	return Glyph{}, false
}

// Runes returns the code points of the table in ascending order.
func (f *Face) Runes() []rune {
	rs := make([]rune, 0, len(f.glyphs))
	for r := range f.glyphs {
		rs = append(rs, r)
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i] < rs[j] })
	return rs
}

func (f *Face) add(r rune, g Glyph) {
	f.glyphs[r] = g
}

// finish validates the table and records whether it is fixed-width.
func (f *Face) finish(replacement rune) *Face {
	if _, ok := f.glyphs[replacement]; ok {
		f.replacement = replacement
	}
	f.fixed = true
	w := -1
	for _, g := range f.glyphs {
		if w >= 0 && g.Width != w {
			f.fixed = false
		}
		w = g.Width
	}
	return f
}

// Face names accepted by ByName.
const (
	NameFixed8x8  = "fixed8x8"
	NamePicopixel = "picopixel"
	NameProggy    = "proggy"
	NameBasic7x13 = "basic7x13"
)

var registry = map[string]func() *Face{
	NameFixed8x8:  sync.OnceValue(buildFixed8x8),
	NamePicopixel: sync.OnceValue(buildPicopixel),
	NameProggy:    sync.OnceValue(buildProggy),
	NameBasic7x13: sync.OnceValue(buildBasic7x13),
}

// ByName returns the registered face called name.
func ByName(name string) (*Face, error) {
	build, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFace, name)
	}
	return build(), nil
}

// Names lists the registered face names.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Fixed8x8 returns the default fixed-width face.
func Fixed8x8() *Face {
	return registry[NameFixed8x8]()
}

// defaultRunes is the repertoire sampled from scalable or foreign tables.
func defaultRunes() []rune {
	rs := make([]rune, 0, 0x7F-0x20+0x100-0xA0+1)
	for r := rune(0x20); r < 0x7F; r++ {
		rs = append(rs, r)
	}
	for r := rune(0xA0); r <= 0xFF; r++ {
		rs = append(rs, r)
	}
	return append(rs, '█')
}
