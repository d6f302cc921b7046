package console

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"fbcon/fonts"
	"fbcon/hal"
	"fbcon/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLog struct {
	lines     []string
	truncated int
}

func (l *recordingLog) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *recordingLog) Truncate() error {
	l.truncated++
	l.lines = nil
	return nil
}

func newConsole(t *testing.T, opts ...Option) (*Console, *render.Surface, *recordingLog) {
	t.Helper()
	surf := render.NewSurface(hal.NewFramebuffer(hal.ScreenWidthTop, hal.ScreenHeight))
	log := &recordingLog{}
	return New(surf, fonts.Fixed8x8(), log, DefaultConfig(), opts...), surf, log
}

func text(l Line) string { return strings.TrimRight(l.Text, " ") }

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 22, cfg.Rows)
	assert.Equal(t, 48, cfg.CellWidth)
	assert.Equal(t, 10, cfg.X)
	assert.Equal(t, 10, cfg.Y)
	assert.Equal(t, 10, cfg.Step)
}

func TestNewConsoleIsEmpty(t *testing.T) {
	c, _, _ := newConsole(t)
	for i, l := range c.Lines() {
		assert.Empty(t, l.Text, "row %d", i)
		assert.Equal(t, render.DbgFont, l.Color)
	}
}

func TestAppendScrollsAndLogs(t *testing.T) {
	c, _, log := newConsole(t)
	rows := c.Config().Rows
	for i := 0; i <= rows; i++ {
		require.NoError(t, c.AppendColor(render.Color(i+1), "line %d", i))
	}

	// Line 0 was pushed out; row i holds line rows-i in its own color.
	lines := c.Lines()
	for i, l := range lines {
		assert.Equal(t, fmt.Sprintf("line %d", rows-i), text(l), "row %d", i)
		assert.Equal(t, render.Color(rows-i+1), l.Color, "row %d", i)
	}
	assert.Len(t, log.lines, rows+1)
	assert.Equal(t, "line 0", log.lines[0])
}

func TestAppendTransient(t *testing.T) {
	c, _, log := newConsole(t)
	require.NoError(t, c.Append("Y"))
	require.NoError(t, c.AppendTransient(render.Orange, "X"))

	lines := c.Lines()
	assert.Equal(t, "X", text(lines[0]))
	assert.Equal(t, render.Orange, lines[0].Color)
	assert.Equal(t, "Y", text(lines[1]))
	assert.Equal(t, []string{"Y"}, log.lines)

	require.NoError(t, c.AppendTransient(render.Orange, "X2"))
	lines = c.Lines()
	assert.Equal(t, "X2", text(lines[0]))
	assert.Equal(t, "Y", text(lines[1]))
	assert.Empty(t, lines[2].Text)

	require.NoError(t, c.AppendColor(render.Green, "Z"))
	lines = c.Lines()
	assert.Equal(t, "Z", text(lines[0]))
	assert.Equal(t, render.Green, lines[0].Color)
	assert.Equal(t, "Y", text(lines[1]))
	assert.Equal(t, render.DbgFont, lines[1].Color)
	assert.Empty(t, lines[2].Text)
	assert.Equal(t, []string{"Y", "Z"}, log.lines)

	// Scrolling resumes after the overwrite.
	require.NoError(t, c.Append("W"))
	assert.Equal(t, []string{"W", "Z", "Y"}, []string{text(c.Lines()[0]), text(c.Lines()[1]), text(c.Lines()[2])})
}

func TestAppendColorShiftsColors(t *testing.T) {
	c, _, _ := newConsole(t)
	require.NoError(t, c.AppendColor(render.Red, "red"))
	require.NoError(t, c.AppendColor(render.Green, "green"))

	lines := c.Lines()
	assert.Equal(t, Line{Text: lines[0].Text, Color: render.Green}, lines[0])
	assert.Equal(t, "red", text(lines[1]))
	assert.Equal(t, render.Red, lines[1].Color)
}

func TestAppendTruncatesRowButNotLog(t *testing.T) {
	c, _, log := newConsole(t)
	long := strings.Repeat("a", 60)
	require.NoError(t, c.Append("%s", long))
	assert.Len(t, c.Lines()[0].Text, c.Config().CellWidth)
	assert.Equal(t, long, log.lines[0])

	huge := strings.Repeat("b", 200)
	require.NoError(t, c.Append("%s", huge))
	assert.Len(t, log.lines[1], ScratchSize)
}

func TestReplaceTop(t *testing.T) {
	c, _, log := newConsole(t)
	require.NoError(t, c.Append("first"))
	require.NoError(t, c.Append("working 0%%"))
	require.NoError(t, c.ReplaceTop(render.Orange, "working 50%%"))

	lines := c.Lines()
	assert.Equal(t, "working 50%", text(lines[0]))
	assert.Equal(t, render.Orange, lines[0].Color)
	assert.Equal(t, "first", text(lines[1]))
	assert.Empty(t, lines[2].Text)
	assert.Equal(t, []string{"first", "working 0%"}, log.lines)
}

func TestSetAll(t *testing.T) {
	c, _, _ := newConsole(t)
	require.NoError(t, c.AppendColor(render.Red, "old"))

	err := c.SetAll([]string{"too", "few"})
	assert.ErrorIs(t, err, ErrRowCount)

	rows := make([]string, c.Config().Rows)
	for i := range rows {
		rows[i] = fmt.Sprintf("row %d", i)
	}
	require.NoError(t, c.SetAll(rows))

	lines := c.Lines()
	n := len(rows)
	for i := range rows {
		assert.Equal(t, rows[i], text(lines[n-1-i]))
		assert.Equal(t, render.DbgFont, lines[i].Color)
	}
}

func TestRepaintOldestFirst(t *testing.T) {
	c, surf, _ := newConsole(t)
	require.NoError(t, c.Append("█"))
	require.NoError(t, c.Append(" "))

	cfg := c.Config()
	px, err := surf.Pixel(cfg.X, cfg.Y)
	require.NoError(t, err)
	assert.Equal(t, render.DbgFont, px)

	px, err = surf.Pixel(cfg.X, cfg.Y+cfg.Step)
	require.NoError(t, err)
	assert.Equal(t, render.DbgBG, px)
}

func TestRepaintSkipsEmptyRows(t *testing.T) {
	c, surf, _ := newConsole(t)
	require.NoError(t, c.Append("█"))

	// Only one row is written, so it is painted at the origin.
	px, _ := surf.Pixel(c.Config().X, c.Config().Y)
	assert.Equal(t, render.DbgFont, px)
}

func TestClear(t *testing.T) {
	var hooked int
	c, surf, log := newConsole(t, WithBackground(func() error {
		hooked++
		return nil
	}))
	require.NoError(t, c.AppendColor(render.Red, "█"))
	require.NoError(t, c.Clear())

	assert.Equal(t, 1, hooked)
	assert.Equal(t, 1, log.truncated)
	for _, l := range c.Lines() {
		assert.Empty(t, l.Text)
		assert.Equal(t, render.DbgFont, l.Color)
	}
	px, _ := surf.Pixel(c.Config().X, c.Config().Y)
	assert.Equal(t, render.DbgBG, px)
}

func TestClearReportsBackgroundError(t *testing.T) {
	boom := errors.New("boom")
	c, _, log := newConsole(t, WithBackground(func() error { return boom }))
	err := c.Clear()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, log.truncated)
}

func TestNilLogger(t *testing.T) {
	surf := render.NewSurface(hal.NewFramebuffer(hal.ScreenWidthTop, hal.ScreenHeight))
	c := New(surf, fonts.Fixed8x8(), nil, DefaultConfig())
	require.NoError(t, c.Append("no log"))
	require.NoError(t, c.Clear())
}
