package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"fbcon/app"
	"fbcon/fonts"
	"fbcon/hal"
	"fbcon/internal/buildinfo"
	"fbcon/progress"
	"fbcon/theme"

	"github.com/urfave/cli"
)

func main() {
	a := cli.NewApp()
	a.Name = "fbcon"
	a.Description = "A framebuffer debug console for a dual-screen handheld"
	a.Usage = "fbcon [options]"
	a.Version = buildinfo.Short()
	a.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "mode",
			Usage: "Preview mode: window, terminal or headless",
			Value: "window",
		},
		cli.StringFlag{
			Name:  "font",
			Usage: "Glyph table: " + strings.Join(fonts.Names(), ", "),
			Value: fonts.NameFixed8x8,
		},
		cli.StringFlag{
			Name:  "progress",
			Usage: "Progress widget: percent or bar",
			Value: string(progress.KindPercent),
		},
		cli.StringFlag{
			Name:  "data",
			Usage: "Data directory for the log, screenshots and themes (empty = in memory)",
			Value: ".",
		},
		cli.StringFlag{
			Name:  "theme-dir",
			Usage: "Shared theme directory inside the data directory",
		},
		cli.StringFlag{
			Name:  "title",
			Usage: "Application title; 3ds/<title>/UI is searched for theme images first",
		},
		cli.StringFlag{
			Name:  "banner",
			Usage: "Boot banner title (empty = no banner)",
			Value: "fbcon",
		},
		cli.BoolFlag{
			Name:  "stdin",
			Usage: "Append stdin lines to the console; a leading CR overwrites the newest line",
		},
		cli.StringFlag{
			Name:  "screenshot",
			Usage: "Screenshot file name (default: next free snapNNN.bmp)",
		},
		cli.Uint64Flag{
			Name:  "demo",
			Usage: "Animate the progress widget up to N",
		},
		cli.IntFlag{
			Name:  "hz",
			Usage: "Tick rate in headless mode",
			Value: 60,
		},
		cli.Uint64Flag{
			Name:  "ticks",
			Usage: "Stop after N ticks in headless mode (0 = run until input ends)",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable debug logging",
		},
	}
	a.Action = run

	if err := a.Run(os.Args); err != nil {
		slog.Error("Error running fbcon", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	level := slog.LevelInfo
	if c.Bool("debug") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	mode := c.String("mode")
	wd, _ := os.Getwd()

	hcfg := hal.HostConfig{DataDir: c.String("data")}
	if mode != "terminal" {
		hcfg.Mirror = os.Stderr
	}

	rcfg := app.RunConfig{
		Config: app.Config{
			Font:     c.String("font"),
			Progress: progress.Kind(c.String("progress")),
			Theme: theme.Config{
				Title:      c.String("title"),
				Dir:        c.String("theme-dir"),
				LogoScreen: hal.ScreenBottom,
			},
			WorkDir: wd,
		},
		Banner:         c.String("banner"),
		ScreenshotPath: c.String("screenshot"),
		DemoTotal:      c.Uint64("demo"),
	}
	if c.Bool("stdin") {
		rcfg.Input = os.Stdin
		rcfg.StopOnEOF = mode == "headless" && c.Uint64("ticks") == 0
	}

	slog.Info("Starting fbcon", "mode", mode, "font", rcfg.Font, "progress", rcfg.Progress, "data", hcfg.DataDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch mode {
	case "window":
		err = hal.RunWindow(hcfg, app.Step(rcfg))
	case "terminal":
		err = hal.RunTerminal(ctx, hcfg, app.Step(rcfg))
	case "headless":
		err = hal.RunHeadless(ctx, hcfg, app.Step(rcfg), hal.HeadlessConfig{
			Hz:    c.Int("hz"),
			Ticks: c.Uint64("ticks"),
		})
	default:
		cli.ShowAppHelp(c)
		return fmt.Errorf("unknown mode %q", mode)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
