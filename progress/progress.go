// Package progress draws the progress widget. Two renderings exist and one
// is selected at startup; both redraw fully on every call.
package progress

import (
	"errors"
	"fmt"
	"strings"

	"fbcon/fonts"
	"fbcon/render"
)

// ErrUnknownKind is returned by New for unsupported widget kinds.
var ErrUnknownKind = errors.New("progress: unknown kind")

// Kind names a widget rendering.
type Kind string

const (
	KindPercent Kind = "percent"
	KindBar     Kind = "bar"
)

// BlockRune fills bar segments; it is cell 0xDB of the fixed face.
const BlockRune = '█'

// Indicator shows current/total.
type Indicator interface {
	Show(current, total uint64) error
}

// Percent draws "NNN%" right-aligned in a four-cell field.
type Percent struct {
	Surface *render.Surface
	Face    *fonts.Face
	X, Y    int
	FG, BG  render.Color
}

// Text returns the string Show draws.
func (p *Percent) Text(current, total uint64) string {
	if total == 0 {
		return "    "
	}
	return fmt.Sprintf("%3d%%", current*100/total)
}

func (p *Percent) Show(current, total uint64) error {
	if _, err := p.Surface.DrawLine(p.Face, p.Text(current, total), p.X, p.Y, p.FG, p.BG); err != nil {
		return err
	}
	return p.Surface.Present()
}

// Bar draws Width/8 segments and fills current*segments/total of them.
type Bar struct {
	Surface *render.Surface
	Face    *fonts.Face
	X, Y    int
	Width   int
	FG, BG  render.Color
}

// Segments returns the number of cells of the bar.
func (b *Bar) Segments() int {
	return b.Width / fonts.FixedWidth
}

// Text returns the string Show draws.
func (b *Bar) Text(current, total uint64) string {
	n := b.Segments()
	filled := 0
	if total > 0 {
		filled = int(uint64(n) * current / total)
	}
	if filled > n {
		filled = n
	}
	return strings.Repeat(string(BlockRune), filled) + strings.Repeat(" ", n-filled)
}

func (b *Bar) Show(current, total uint64) error {
	if _, err := b.Surface.DrawLine(b.Face, b.Text(current, total), b.X, b.Y, b.FG, b.BG); err != nil {
		return err
	}
	return b.Surface.Present()
}

// Config places both widget kinds.
type Config struct {
	Kind Kind

	// Percent widget, on the top screen.
	PercentX, PercentY int
	PercentFG          render.Color
	PercentBG          render.Color

	// Bar widget, on the bottom screen.
	BarX, BarY, BarWidth int
	BarFG, BarBG         render.Color
}

// DefaultConfig returns the stock placement for 400x240 / 320x240 screens.
func DefaultConfig() Config {
	return Config{
		Kind:      KindPercent,
		PercentX:  400 - 40,
		PercentY:  240 - 20,
		PercentFG: render.DbgFont,
		PercentBG: render.DbgBG,
		BarX:      40,
		BarY:      225,
		BarWidth:  240,
		BarFG:     render.StdFont,
		BarBG:     render.StdBG,
	}
}

// New builds the indicator selected by cfg.Kind.
func New(cfg Config, top, bottom *render.Surface, face *fonts.Face) (Indicator, error) {
	switch cfg.Kind {
	case KindPercent, "":
		return &Percent{Surface: top, Face: face, X: cfg.PercentX, Y: cfg.PercentY, FG: cfg.PercentFG, BG: cfg.PercentBG}, nil
	case KindBar:
		return &Bar{Surface: bottom, Face: face, X: cfg.BarX, Y: cfg.BarY, Width: cfg.BarWidth, FG: cfg.BarFG, BG: cfg.BarBG}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, cfg.Kind)
}
