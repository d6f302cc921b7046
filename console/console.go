// Package console implements the on-screen debug log: a fixed grid of text
// rows, most recent first, each row carrying its own color.
package console

import (
	"bytes"
	"errors"
	"fmt"

	"fbcon/fonts"
	"fbcon/hal"
	"fbcon/render"
)

// ScratchSize caps the formatted text of one appended line. The log
// collaborator receives up to this many bytes; the grid keeps CellWidth.
const ScratchSize = 128

// ErrRowCount is returned by SetAll when the number of rows does not match.
var ErrRowCount = errors.New("console: row count mismatch")

// Config describes the grid geometry and colors.
type Config struct {
	Rows      int
	CellWidth int
	X, Y      int
	Step      int
	FG, BG    render.Color
}

// DefaultConfig fits the 400x240 top screen with the 8x8 face: 22 rows of
// 48 cells at a 10px origin.
func DefaultConfig() Config {
	const margin, step = 10, 10
	return Config{
		Rows:      (hal.ScreenHeight - 2*margin) / step,
		CellWidth: (hal.ScreenWidthTop - margin) / fonts.FixedWidth,
		X:         margin,
		Y:         margin,
		Step:      step,
		FG:        render.DbgFont,
		BG:        render.DbgBG,
	}
}

// Line is a snapshot of one grid row.
type Line struct {
	Text  string
	Color render.Color
}

// Option customizes a Console.
type Option func(*Console)

// WithBackground installs a hook that repaints the console background after
// Clear, e.g. from a theme image.
func WithBackground(fn func() error) Option {
	return func(c *Console) { c.background = fn }
}

// Console is the debug console. Row 0 is the most recent line.
type Console struct {
	cfg  Config
	surf *render.Surface
	face *fonts.Face
	log  hal.Logger

	background func() error

	// grid holds Rows rows of CellWidth bytes; a row starting with 0 has
	// never been written.
	grid   []byte
	colors []render.Color

	// transient is set while row 0 holds a line the next append overwrites.
	transient bool
}

// New returns an empty console drawing onto surf. log may be nil.
func New(surf *render.Surface, face *fonts.Face, log hal.Logger, cfg Config, opts ...Option) *Console {
	if cfg.Rows <= 0 || cfg.CellWidth <= 0 {
		def := DefaultConfig()
		cfg.Rows, cfg.CellWidth = def.Rows, def.CellWidth
	}
	if cfg.Step <= 0 {
		cfg.Step = face.Height() + 2
	}
	c := &Console{
		cfg:    cfg,
		surf:   surf,
		face:   face,
		log:    log,
		grid:   make([]byte, cfg.Rows*cfg.CellWidth),
		colors: make([]render.Color, cfg.Rows),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.reset()
	return c
}

func (c *Console) Config() Config { return c.cfg }

func (c *Console) reset() {
	c.transient = false
	clear(c.grid)
	for i := range c.colors {
		c.colors[i] = c.cfg.FG
	}
}

func (c *Console) row(i int) []byte {
	return c.grid[i*c.cfg.CellWidth : (i+1)*c.cfg.CellWidth]
}

// setRow writes s left-justified into row i, padded with spaces and cut to
// CellWidth bytes on a rune boundary.
func (c *Console) setRow(i int, s string) {
	row := c.row(i)
	n := copy(row, render.Truncate(s, c.cfg.CellWidth))
	for j := n; j < len(row); j++ {
		row[j] = ' '
	}
	// A row starting with NUL would read as empty.
	if len(row) > 0 && row[0] == 0 {
		row[0] = ' '
	}
}

// Clear empties the grid, resets every row color, repaints the background
// and truncates the log.
func (c *Console) Clear() error {
	c.reset()
	c.surf.Fill(c.cfg.BG)
	var errs []error
	if c.background != nil {
		if err := c.background(); err != nil {
			errs = append(errs, fmt.Errorf("console background: %w", err))
		}
	}
	if c.log != nil {
		if err := c.log.Truncate(); err != nil {
			errs = append(errs, err)
		}
	}
	errs = append(errs, c.surf.Present())
	return errors.Join(errs...)
}

// SetAll replaces every row. rows[0] becomes the topmost (oldest) row and
// rows[len-1] becomes row 0. All colors reset to the default. The console is
// repainted.
func (c *Console) SetAll(rows []string) error {
	if len(rows) != c.cfg.Rows {
		return fmt.Errorf("%w: got %d, want %d", ErrRowCount, len(rows), c.cfg.Rows)
	}
	for y, s := range rows {
		c.setRow(c.cfg.Rows-1-y, s)
		c.colors[y] = c.cfg.FG
	}
	return c.Repaint()
}

// Repaint draws every written row from the oldest to the newest, starting at
// the configured origin and moving down one step per drawn row.
func (c *Console) Repaint() error {
	y := c.cfg.Y
	for i := c.cfg.Rows - 1; i >= 0; i-- {
		row := c.row(i)
		if row[0] == 0 {
			continue
		}
		if _, err := c.surf.DrawLine(c.face, string(row), c.cfg.X, y, c.colors[i], c.cfg.BG); err != nil {
			return err
		}
		y += c.cfg.Step
	}
	return c.surf.Present()
}

// Append adds a line in the default color.
func (c *Console) Append(format string, args ...any) error {
	return c.AppendColor(c.cfg.FG, format, args...)
}

// AppendColor scrolls every row down by one, discarding the oldest, writes
// the formatted text as row 0 and forwards it to the log. After
// AppendTransient the scroll is skipped and row 0 is overwritten instead.
func (c *Console) AppendColor(color render.Color, format string, args ...any) error {
	text := render.Truncate(fmt.Sprintf(format, args...), ScratchSize)
	c.push(color, text)
	if c.log != nil {
		c.log.WriteLineString(text)
	}
	return c.Repaint()
}

// AppendTransient adds a line like AppendColor but does not log it, and
// lets the next Append or AppendColor overwrite it in place.
func (c *Console) AppendTransient(color render.Color, format string, args ...any) error {
	text := render.Truncate(fmt.Sprintf(format, args...), ScratchSize)
	c.push(color, text)
	c.transient = true
	return c.Repaint()
}

func (c *Console) push(color render.Color, text string) {
	if c.transient {
		c.transient = false
	} else {
		w := c.cfg.CellWidth
		copy(c.grid[w:], c.grid[:len(c.grid)-w])
		copy(c.colors[1:], c.colors[:len(c.colors)-1])
	}
	c.colors[0] = color
	c.setRow(0, text)
}

// ReplaceTop overwrites row 0 in place, without scrolling and without
// logging. It is meant for lines that are updated repeatedly, such as
// progress messages.
func (c *Console) ReplaceTop(color render.Color, format string, args ...any) error {
	text := render.Truncate(fmt.Sprintf(format, args...), ScratchSize)
	c.colors[0] = color
	c.setRow(0, text)
	return c.Repaint()
}

// Lines returns a copy of the grid, row 0 first. Empty rows have an empty
// Text.
func (c *Console) Lines() []Line {
	out := make([]Line, c.cfg.Rows)
	for i := range out {
		row := c.row(i)
		if row[0] != 0 {
			out[i].Text = string(bytes.TrimRight(row, "\x00"))
		}
		out[i].Color = c.colors[i]
	}
	return out
}
