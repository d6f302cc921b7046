package app

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"runtime/debug"
	"strings"

	"fbcon/hal"
	"fbcon/render"
	"fbcon/screenshot"
)

// RunConfig drives a Context from host input.
type RunConfig struct {
	Config

	// Banner is the boot banner title; empty skips the banner.
	Banner string
	// Input, when set, is read line by line into the console. A line
	// starting with '\r' is shown but not logged, and the line after it
	// takes its place.
	Input io.Reader
	// StopOnEOF ends the run once Input is exhausted.
	StopOnEOF bool
	// ScreenshotPath is used for KeyScreenshot; empty auto-names.
	ScreenshotPath string
	// DemoTotal animates the progress widget from 0 to DemoTotal.
	DemoTotal uint64
}

// Runner is the per-tick application state handed to the host runners.
type Runner struct {
	ctx   *Context
	h     hal.HAL
	cfg   RunConfig
	lines chan string
	eof   chan struct{}

	demo  uint64
	crash *PanicError
}

// NewRunner builds a Context on h, shows the boot banner and returns a
// runner whose Step is called once per host tick.
func NewRunner(h hal.HAL, cfg RunConfig) (*Runner, error) {
	c, err := New(h, cfg.Config)
	if err != nil {
		return nil, err
	}
	r := &Runner{ctx: c, h: h, cfg: cfg}
	if cfg.Banner != "" {
		if err := c.Boot(cfg.Banner); err != nil {
			slog.Warn("boot banner incomplete", "err", err)
		}
	}
	if cfg.Input != nil {
		r.lines = make(chan string, 64)
		r.eof = make(chan struct{})
		go r.readLines(cfg.Input)
	}
	return r, nil
}

// Step adapts NewRunner to the host runner signature.
func Step(cfg RunConfig) func(hal.HAL) (func() error, error) {
	return func(h hal.HAL) (func() error, error) {
		r, err := NewRunner(h, cfg)
		if err != nil {
			return nil, err
		}
		return r.Step, nil
	}
}

func (r *Runner) Context() *Context { return r.ctx }

// Panicked returns the recovered panic, if any.
func (r *Runner) Panicked() *PanicError { return r.crash }

func (r *Runner) readLines(in io.Reader) {
	defer close(r.eof)
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	for sc.Scan() {
		r.lines <- sc.Text()
	}
	if err := sc.Err(); err != nil {
		slog.Warn("input read failed", "err", err)
	}
}

// Step handles pending keys and input lines and advances the demo.
//
// A panic is painted on the bottom screen and the runner goes idle so the
// screen stays visible; the quit key then ends the run with the
// *PanicError.
func (r *Runner) Step() (err error) {
	if r.crash != nil {
		if err := r.keys(); errors.Is(err, hal.ErrStop) {
			return r.crash
		}
		return nil
	}
	defer func() {
		if v := recover(); v != nil {
			r.crash = &PanicError{Value: v, Stack: debug.Stack()}
			showPanic(r.h, r.ctx.Bottom(), r.crash)
			err = nil
		}
	}()

	if err := r.keys(); err != nil {
		return err
	}
	if err := r.input(); err != nil {
		return err
	}
	return r.advanceDemo()
}

func (r *Runner) keys() error {
	kbd := r.h.Keyboard()
	if kbd == nil {
		return nil
	}
	for {
		select {
		case k := <-kbd.Events():
			switch k {
			case hal.KeyQuit:
				return hal.ErrStop
			case hal.KeyScreenshot:
				if r.crash != nil {
					continue
				}
				name, err := r.ctx.Screenshot(r.cfg.ScreenshotPath)
				switch {
				case errors.Is(err, screenshot.ErrNoFreeName):
					_ = r.ctx.DebugColor(render.Ask, "No free screenshot name")
				case err != nil:
					return err
				default:
					_ = r.ctx.Debug("Saved %s", name)
				}
			}
		default:
			return nil
		}
	}
}

func (r *Runner) input() error {
	if r.lines == nil {
		return nil
	}
	for {
		select {
		case line := <-r.lines:
			if err := r.writeLine(line); err != nil {
				return err
			}
		default:
			select {
			case <-r.eof:
				if len(r.lines) > 0 {
					continue
				}
				if r.cfg.StopOnEOF {
					return hal.ErrStop
				}
				r.lines = nil
			default:
			}
			return nil
		}
	}
}

func (r *Runner) writeLine(line string) error {
	if rest, ok := strings.CutPrefix(line, "\r"); ok {
		return r.ctx.DebugTransient(r.ctx.con.Config().FG, "%s", rest)
	}
	return r.ctx.Debug("%s", line)
}

func (r *Runner) advanceDemo() error {
	if r.cfg.DemoTotal == 0 || r.demo > r.cfg.DemoTotal {
		return nil
	}
	if err := r.ctx.ShowProgress(r.demo, r.cfg.DemoTotal); err != nil {
		return err
	}
	if r.demo == r.cfg.DemoTotal {
		_ = r.ctx.DebugColor(render.Accent, "Done")
	}
	r.demo++
	return nil
}
