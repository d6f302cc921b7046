package fonts

import (
	"math/bits"

	"golang.org/x/text/encoding/charmap"
)

// FixedWidth and FixedHeight describe the default cell font.
const (
	FixedWidth  = 8
	FixedHeight = 8
)

// buildFixed8x8 keys the 8x8 cells by the Unicode code point of their CP437
// position, so '█' resolves to cell 0xDB.
func buildFixed8x8() *Face {
	f := newFace(NameFixed8x8, FixedHeight)
	put := func(b byte, cell [8]byte) {
		rows := make([]byte, FixedHeight)
		for i, row := range cell {
			rows[i] = bits.Reverse8(row)
		}
		f.add(charmap.CodePage437.DecodeByte(b), Glyph{Width: FixedWidth, Rows: rows})
	}
	for i, cell := range asciiCells {
		put(byte(0x20+i), cell)
	}
	for b, cell := range cp437Cells {
		put(b, cell)
	}
	return f.finish('?')
}
