package theme

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"fbcon/hal"
	"fbcon/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

type testDisplay struct {
	top, bot hal.Framebuffer
}

func (d testDisplay) Top() hal.Framebuffer    { return d.top }
func (d testDisplay) Bottom() hal.Framebuffer { return d.bot }

func newDisplay() testDisplay {
	return testDisplay{
		top: hal.NewFramebuffer(hal.ScreenWidthTop, hal.ScreenHeight),
		bot: hal.NewFramebuffer(hal.ScreenWidthBot, hal.ScreenHeight),
	}
}

// solid returns a native image file of one color for a w x h screen.
func solid(w, h int, c render.Color) []byte {
	buf := make([]byte, w*h*hal.BytesPerPixel)
	bgr := c.BGR()
	for i := 0; i < len(buf); i += 3 {
		copy(buf[i:], bgr[:])
	}
	return buf
}

func pixel(t *testing.T, fb hal.Framebuffer, x, y int) render.Color {
	t.Helper()
	c, err := render.NewSurface(fb).Pixel(x, y)
	require.NoError(t, err)
	return c
}

func TestCandidates(t *testing.T) {
	l := NewLoader(Config{Title: "app", Dir: "themes"}, hal.NewMemFS(), newDisplay())
	assert.Equal(t, []string{"3ds/app/UI/logo.bin", "themes/logo.bin"}, l.Candidates(LogoName))

	l = NewLoader(Config{Dir: "themes"}, hal.NewMemFS(), newDisplay())
	assert.Equal(t, []string{"themes/logo.bin"}, l.Candidates(LogoName))

	l = NewLoader(Config{}, hal.NewMemFS(), newDisplay())
	assert.Empty(t, l.Candidates(LogoName))
}

func TestLoadPrefersTitleDirectory(t *testing.T) {
	fsys := hal.NewMemFS()
	require.NoError(t, fsys.WriteFile("3ds/app/UI/logo.bin", solid(320, 240, render.Red)))
	require.NoError(t, fsys.WriteFile("themes/logo.bin", solid(320, 240, render.Blue)))
	d := newDisplay()
	l := NewLoader(Config{Title: "app", Dir: "themes", LogoScreen: hal.ScreenBottom}, fsys, d)

	require.NoError(t, l.LoadLogo())
	assert.Equal(t, render.Red, pixel(t, d.bot, 0, 0))
	assert.Equal(t, render.Red, pixel(t, d.bot, 319, 239))
}

func TestLoadFallsBackToThemeDirectory(t *testing.T) {
	fsys := hal.NewMemFS()
	require.NoError(t, fsys.WriteFile("themes/debug.bin", solid(400, 240, render.Purple)))
	d := newDisplay()
	l := NewLoader(Config{Title: "app", Dir: "themes"}, fsys, d)

	require.NoError(t, l.LoadDebugBackground())
	assert.Equal(t, render.Purple, pixel(t, d.top, 200, 120))
}

func TestLoadNotFound(t *testing.T) {
	l := NewLoader(Config{Title: "app", Dir: "themes"}, hal.NewMemFS(), newDisplay())
	assert.ErrorIs(t, l.LoadLogo(), ErrNotFound)

	l = NewLoader(Config{}, hal.NewMemFS(), newDisplay())
	assert.ErrorIs(t, l.LoadLogo(), ErrNotFound)
}

func TestLoadSizeMismatch(t *testing.T) {
	fsys := hal.NewMemFS()
	require.NoError(t, fsys.WriteFile("themes/logo.bin", solid(400, 240, render.Red)))
	d := newDisplay()
	l := NewLoader(Config{Dir: "themes", LogoScreen: hal.ScreenBottom}, fsys, d)

	err := l.LoadLogo()
	assert.ErrorIs(t, err, ErrSize)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, render.Black, pixel(t, d.bot, 0, 0))
}

func TestLoadMenu(t *testing.T) {
	assert.Equal(t, "menu0003.bin", MenuName(3))

	fsys := hal.NewMemFS()
	require.NoError(t, fsys.WriteFile("themes/menu0003.bin", solid(400, 240, render.Green)))
	d := newDisplay()
	l := NewLoader(Config{Dir: "themes", LogoScreen: hal.ScreenBottom}, fsys, d)

	require.NoError(t, l.LoadMenu(3))
	assert.Equal(t, render.Green, pixel(t, d.top, 10, 10))
}

func TestImportBMP(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 320, 240))
	for y := 0; y < 240; y++ {
		for x := 0; x < 320; x++ {
			img.Set(x, y, color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xFF})
		}
	}
	img.Set(7, 3, color.RGBA{R: 0xFF, A: 0xFF})
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, img))

	fsys := hal.NewMemFS()
	require.NoError(t, fsys.WriteFile("themes/logo.bmp", buf.Bytes()))
	d := newDisplay()
	l := NewLoader(Config{Dir: "themes"}, fsys, d)

	require.NoError(t, l.Import("themes/logo.bmp", hal.ScreenBottom))
	assert.Equal(t, render.Color(0x102030), pixel(t, d.bot, 0, 0))
	assert.Equal(t, render.Red, pixel(t, d.bot, 7, 3))
}

func TestImportBMPWrongSize(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 10, 10))))
	fsys := hal.NewMemFS()
	require.NoError(t, fsys.WriteFile("small.bmp", buf.Bytes()))

	l := NewLoader(Config{}, fsys, newDisplay())
	assert.ErrorIs(t, l.Import("small.bmp", hal.ScreenTop), ErrSize)
}

func TestEncodeMatchesSurfaceLayout(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 2, color.RGBA{R: 0xAB, G: 0xCD, B: 0xEF, A: 0xFF})

	fb := hal.NewFramebuffer(4, 3)
	require.NoError(t, Blit(fb, img))
	assert.Equal(t, render.Color(0xABCDEF), pixel(t, fb, 1, 2))
	assert.Equal(t, render.Black, pixel(t, fb, 2, 1))
}
