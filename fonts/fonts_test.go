package fonts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBits(g Glyph, height int) int {
	n := 0
	for y := 0; y < height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Bit(x, y) {
				n++
			}
		}
	}
	return n
}

func TestFixed8x8(t *testing.T) {
	f := Fixed8x8()
	assert.Equal(t, NameFixed8x8, f.Name())
	assert.Equal(t, FixedHeight, f.Height())
	assert.True(t, f.Fixed())

	for r := rune(0x20); r < 0x7F; r++ {
		g, ok := f.Lookup(r)
		require.True(t, ok, "rune %q", r)
		assert.Equal(t, FixedWidth, g.Width)
		assert.Len(t, g.Rows, FixedHeight)
	}

	// Rows are stored MSB-first: the first row of '/' has its two pixels
	// on the right.
	slash, _ := f.Lookup('/')
	assert.True(t, slash.Bit(5, 0))
	assert.True(t, slash.Bit(6, 0))
	assert.False(t, slash.Bit(1, 0))
	assert.Equal(t, byte(0x06), slash.Rows[0])
}

func TestFixed8x8BlockGlyph(t *testing.T) {
	g, ok := Fixed8x8().Lookup('█')
	require.True(t, ok)
	assert.Equal(t, 64, setBits(g, FixedHeight))

	_, ok = Fixed8x8().Lookup('░')
	assert.True(t, ok)
}

func TestGlyphReplacement(t *testing.T) {
	f := Fixed8x8()
	_, ok := f.Lookup('語')
	assert.False(t, ok)

	g, ok := f.Glyph('語')
	require.True(t, ok)
	q, _ := f.Lookup('?')
	assert.Equal(t, q, g)
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		f, err := ByName(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, f.Name())
		assert.Greater(t, f.Len(), 0, name)
		assert.Greater(t, f.Height(), 0, name)
	}

	_, err := ByName("comic-sans")
	assert.ErrorIs(t, err, ErrUnknownFace)

	a, _ := ByName(NameFixed8x8)
	assert.Same(t, a, Fixed8x8())
}

func TestNamesSorted(t *testing.T) {
	assert.Equal(t, []string{NameBasic7x13, NameFixed8x8, NamePicopixel, NameProggy}, Names())
}

func TestPicopixelIsVariableWidth(t *testing.T) {
	f, err := ByName(NamePicopixel)
	require.NoError(t, err)
	assert.False(t, f.Fixed())

	i, ok := f.Lookup('i')
	require.True(t, ok)
	m, ok := f.Lookup('m')
	require.True(t, ok)
	assert.Less(t, i.Width, m.Width)
	assert.Greater(t, setBits(m, f.Height()), 0)

	space, ok := f.Lookup(' ')
	require.True(t, ok)
	assert.Equal(t, 0, setBits(space, f.Height()))
}

func TestBasic7x13(t *testing.T) {
	f, err := ByName(NameBasic7x13)
	require.NoError(t, err)
	assert.Equal(t, 13, f.Height())

	a, ok := f.Lookup('A')
	require.True(t, ok)
	assert.Equal(t, 7, a.Width)
	assert.Greater(t, setBits(a, f.Height()), 0)
}

func TestGlyphBitBounds(t *testing.T) {
	g := Glyph{Width: 3, Rows: []byte{0xE0}}
	assert.Equal(t, 1, g.Stride())
	assert.True(t, g.Bit(0, 0))
	assert.True(t, g.Bit(2, 0))
	assert.False(t, g.Bit(3, 0))
	assert.False(t, g.Bit(0, 1))
	assert.False(t, g.Bit(-1, 0))
}
