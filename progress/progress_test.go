package progress

import (
	"strings"
	"testing"

	"fbcon/fonts"
	"fbcon/hal"
	"fbcon/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func surfaces() (top, bottom *render.Surface) {
	return render.NewSurface(hal.NewFramebuffer(hal.ScreenWidthTop, hal.ScreenHeight)),
		render.NewSurface(hal.NewFramebuffer(hal.ScreenWidthBot, hal.ScreenHeight))
}

func TestPercentText(t *testing.T) {
	p := &Percent{}
	tcs := []struct {
		cur, total uint64
		want       string
	}{
		{0, 0, "    "},
		{5, 0, "    "},
		{0, 100, "  0%"},
		{50, 100, " 50%"},
		{1, 3, " 33%"},
		{100, 100, "100%"},
	}
	for _, tc := range tcs {
		assert.Equal(t, tc.want, p.Text(tc.cur, tc.total), "%d/%d", tc.cur, tc.total)
	}
}

func TestBarText(t *testing.T) {
	b := &Bar{Width: 240}
	require.Equal(t, 30, b.Segments())

	half := b.Text(50, 100)
	assert.Equal(t, 15, strings.Count(half, string(BlockRune)))
	assert.Equal(t, 15, strings.Count(half, " "))

	assert.Equal(t, strings.Repeat(" ", 30), b.Text(0, 0))
	assert.Equal(t, strings.Repeat(string(BlockRune), 30), b.Text(100, 100))
	assert.Equal(t, strings.Repeat(string(BlockRune), 30), b.Text(200, 100))
}

func TestNew(t *testing.T) {
	top, bot := surfaces()
	face := fonts.Fixed8x8()

	ind, err := New(DefaultConfig(), top, bot, face)
	require.NoError(t, err)
	assert.IsType(t, &Percent{}, ind)

	cfg := DefaultConfig()
	cfg.Kind = KindBar
	ind, err = New(cfg, top, bot, face)
	require.NoError(t, err)
	assert.IsType(t, &Bar{}, ind)

	cfg.Kind = "spinner"
	_, err = New(cfg, top, bot, face)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestPercentShowDrawsOnTop(t *testing.T) {
	top, bot := surfaces()
	top.Fill(render.Blue)
	cfg := DefaultConfig()
	ind, err := New(cfg, top, bot, fonts.Fixed8x8())
	require.NoError(t, err)

	require.NoError(t, ind.Show(0, 0))
	// Blank text still paints the background over the field.
	px, _ := top.Pixel(cfg.PercentX, cfg.PercentY)
	assert.Equal(t, cfg.PercentBG, px)
	px, _ = top.Pixel(cfg.PercentX+4*fonts.FixedWidth, cfg.PercentY)
	assert.Equal(t, render.Blue, px)
}

func TestBarShowDrawsOnBottom(t *testing.T) {
	top, bot := surfaces()
	cfg := DefaultConfig()
	cfg.Kind = KindBar
	ind, err := New(cfg, top, bot, fonts.Fixed8x8())
	require.NoError(t, err)

	require.NoError(t, ind.Show(50, 100))
	px, _ := bot.Pixel(cfg.BarX, cfg.BarY)
	assert.Equal(t, cfg.BarFG, px)
	px, _ = bot.Pixel(cfg.BarX+14*fonts.FixedWidth+7, cfg.BarY+7)
	assert.Equal(t, cfg.BarFG, px)
	px, _ = bot.Pixel(cfg.BarX+15*fonts.FixedWidth, cfg.BarY)
	assert.Equal(t, cfg.BarBG, px)
}
