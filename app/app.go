package app

import (
	"errors"
	"fmt"
	"log/slog"

	"fbcon/console"
	"fbcon/fonts"
	"fbcon/hal"
	"fbcon/progress"
	"fbcon/render"
	"fbcon/screenshot"
	"fbcon/theme"
)

// Config selects the rendering strategies once at startup.
type Config struct {
	// Font is a fonts registry name; empty selects the fixed 8x8 face.
	Font     string
	Progress progress.Kind
	Theme    theme.Config
	// Console overrides the console geometry when Rows is non-zero.
	Console console.Config
	// WorkDir is reported by the boot banner.
	WorkDir string
}

// Context owns the engine state for one display: both surfaces, the debug
// console, the progress widget and the screenshot and theme collaborators.
type Context struct {
	h    hal.HAL
	cfg  Config
	face *fonts.Face

	top *render.Surface
	bot *render.Surface

	con    *console.Console
	prog   progress.Indicator
	shots  *screenshot.Capturer
	themes *theme.Loader
}

// New wires an engine context onto h.
func New(h hal.HAL, cfg Config) (*Context, error) {
	if cfg.Font == "" {
		cfg.Font = fonts.NameFixed8x8
	}
	face, err := fonts.ByName(cfg.Font)
	if err != nil {
		return nil, err
	}

	disp := h.Display()
	c := &Context{
		h:      h,
		cfg:    cfg,
		face:   face,
		top:    render.NewSurface(disp.Top()),
		bot:    render.NewSurface(disp.Bottom()),
		shots:  screenshot.NewCapturer(disp, h.FS()),
		themes: theme.NewLoader(cfg.Theme, h.FS(), disp),
	}

	ccfg := cfg.Console
	if ccfg.Rows == 0 {
		ccfg = consoleConfigFor(face, c.top)
	}
	c.con = console.New(c.top, face, h.Logger(), ccfg, console.WithBackground(c.debugBackground))

	pcfg := progress.DefaultConfig()
	if cfg.Progress != "" {
		pcfg.Kind = cfg.Progress
	}
	pface := face
	if _, ok := face.Lookup(progress.BlockRune); !ok && pcfg.Kind == progress.KindBar {
		pface = fonts.Fixed8x8()
	}
	c.prog, err = progress.New(pcfg, c.top, c.bot, pface)
	if err != nil {
		return nil, err
	}

	slog.Debug("engine context ready", "font", face.Name(), "progress", pcfg.Kind, "rows", ccfg.Rows, "cells", ccfg.CellWidth)
	return c, nil
}

// consoleConfigFor fits the console grid to the face and the top screen.
func consoleConfigFor(face *fonts.Face, top *render.Surface) console.Config {
	cfg := console.DefaultConfig()
	if face.Height()+2 > cfg.Step {
		cfg.Step = face.Height() + 2
	}
	cfg.Rows = (top.Height() - 2*cfg.Y) / cfg.Step
	widest := 0
	for _, r := range face.Runes() {
		if g, ok := face.Lookup(r); ok && g.Width > widest {
			widest = g.Width
		}
	}
	if widest > 0 {
		cfg.CellWidth = (top.Width() - cfg.X) / widest
	}
	return cfg
}

func (c *Context) Face() *fonts.Face            { return c.face }
func (c *Context) Top() *render.Surface         { return c.top }
func (c *Context) Bottom() *render.Surface      { return c.bot }
func (c *Context) Console() *console.Console    { return c.con }
func (c *Context) Progress() progress.Indicator { return c.prog }
func (c *Context) Themes() *theme.Loader        { return c.themes }

func (c *Context) surface(top bool) *render.Surface {
	if top {
		return c.top
	}
	return c.bot
}

// ClearScreen fills one screen with color; Transparent clears to black.
func (c *Context) ClearScreen(top bool, color render.Color) error {
	s := c.surface(top)
	s.Fill(color)
	return s.Present()
}

// ClearScreenFull clears the selected screens to the standard background.
func (c *Context) ClearScreenFull(top, bottom bool) error {
	var errs []error
	if top {
		errs = append(errs, c.ClearScreen(true, render.StdBG))
	}
	if bottom {
		errs = append(errs, c.ClearScreen(false, render.StdBG))
	}
	return errors.Join(errs...)
}

// DrawStringF draws formatted text in the standard colors.
func (c *Context) DrawStringF(x, y int, top bool, format string, args ...any) error {
	return c.DrawStringFC(x, y, top, render.StdFont, format, args...)
}

// DrawStringFC draws formatted text in color on the standard background.
func (c *Context) DrawStringFC(x, y int, top bool, color render.Color, format string, args ...any) error {
	s := c.surface(top)
	if err := s.Printf(c.face, x, y, color, render.StdBG, format, args...); err != nil {
		return err
	}
	return s.Present()
}

// Debug appends a console line in the default color.
func (c *Context) Debug(format string, args ...any) error {
	return c.con.Append(format, args...)
}

// DebugColor appends a console line in color.
func (c *Context) DebugColor(color render.Color, format string, args ...any) error {
	return c.con.AppendColor(color, format, args...)
}

// DebugReplace overwrites the newest console line.
func (c *Context) DebugReplace(color render.Color, format string, args ...any) error {
	return c.con.ReplaceTop(color, format, args...)
}

// DebugTransient appends a line that the next Debug or DebugColor call
// overwrites. It is not logged.
func (c *Context) DebugTransient(color render.Color, format string, args ...any) error {
	return c.con.AppendTransient(color, format, args...)
}

// DebugSet replaces every console row.
func (c *Context) DebugSet(rows []string) error {
	return c.con.SetAll(rows)
}

// DebugClear empties the console and truncates the log.
func (c *Context) DebugClear() error {
	return c.con.Clear()
}

// ShowProgress redraws the progress widget.
func (c *Context) ShowProgress(current, total uint64) error {
	return c.prog.Show(current, total)
}

// Screenshot captures both screens; an empty path picks the next free
// snapNNN.bmp. A full set of automatic names is reported with
// screenshot.ErrNoFreeName and nothing is written.
func (c *Context) Screenshot(path string) (string, error) {
	name, err := c.shots.Capture(path)
	if err != nil {
		return "", err
	}
	slog.Info("Saved screenshot", "path", name)
	return name, nil
}

func (c *Context) debugBackground() error {
	err := c.themes.LoadDebugBackground()
	if errors.Is(err, theme.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("debug background: %w", err)
	}
	return nil
}
