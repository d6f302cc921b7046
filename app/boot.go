package app

import (
	"errors"
	"fmt"

	"fbcon/internal/buildinfo"
	"fbcon/render"
	"fbcon/theme"
)

// Boot paints the start-up banner: both screens cleared, the logo on the
// bottom screen when the theme has one, then a short status report on the
// debug console. A missing logo is not an error.
func (c *Context) Boot(name string) error {
	if name == "" {
		name = "fbcon"
	}
	if err := c.ClearScreenFull(true, true); err != nil {
		return err
	}

	logoErr := c.themes.LoadLogo()
	if logoErr != nil && !errors.Is(logoErr, theme.ErrNotFound) {
		logoErr = fmt.Errorf("logo: %w", logoErr)
	} else {
		logoErr = nil
	}

	if err := c.DebugClear(); err != nil {
		return err
	}
	lines := []struct {
		color  render.Color
		format string
		args   []any
	}{
		{render.Accent, "-- %s --", []any{name}},
		{render.DbgFont, "Font: %s, %d glyphs", []any{c.face.Name(), c.face.Len()}},
		{render.DbgFont, "Initializing, please wait...", nil},
		{render.DbgFont, "", nil},
		{render.DbgFont, "Build: %s", []any{buildinfo.Short()}},
		{render.DbgFont, "Work dir: %s", []any{c.cfg.WorkDir}},
		{render.DbgFont, "", nil},
	}
	for _, l := range lines {
		if err := c.DebugColor(l.color, l.format, l.args...); err != nil {
			return err
		}
	}

	status := "success"
	if logoErr != nil {
		status = "failed"
	}
	if err := c.Debug("Initialization: %s", status); err != nil {
		return err
	}
	if logoErr != nil {
		_ = c.DebugColor(render.Ask, "%v", logoErr)
	}
	return logoErr
}
