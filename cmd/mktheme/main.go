// Command mktheme converts PNG, JPEG or BMP images into native theme files:
// raw BGR888 pixels, column-major with the bottom row first, exactly
// 3*W*H bytes for the selected screen.
package main

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"

	"fbcon/hal"
	"fbcon/theme"

	"github.com/urfave/cli"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

func main() {
	a := cli.NewApp()
	a.Name = "mktheme"
	a.Usage = "mktheme [options] <input-image> <output.bin>"
	a.Description = "Converts an image into a native theme file"
	a.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "screen",
			Usage: "Target screen: top (400x240) or bottom (320x240)",
			Value: "bottom",
		},
		cli.BoolFlag{
			Name:  "fit",
			Usage: "Scale the image to the screen size instead of requiring an exact match",
		},
	}
	a.Action = convert

	if err := a.Run(os.Args); err != nil {
		slog.Error("Error converting image", "error", err)
		os.Exit(1)
	}
}

func screenSize(name string) (w, h int, err error) {
	switch name {
	case "top":
		return hal.ScreenWidthTop, hal.ScreenHeight, nil
	case "bottom", "bot":
		return hal.ScreenWidthBot, hal.ScreenHeight, nil
	}
	return 0, 0, fmt.Errorf("unknown screen %q", name)
}

func convert(c *cli.Context) error {
	if c.NArg() != 2 {
		cli.ShowAppHelp(c)
		return fmt.Errorf("want 2 arguments, got %d", c.NArg())
	}
	in, out := c.Args().Get(0), c.Args().Get(1)

	w, h, err := screenSize(c.String("screen"))
	if err != nil {
		return err
	}

	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %q: %w", in, err)
	}
	b := img.Bounds()
	slog.Info("Decoded image", "path", in, "format", format, "width", b.Dx(), "height", b.Dy())

	if b.Dx() != w || b.Dy() != h {
		if !c.Bool("fit") {
			return fmt.Errorf("image is %dx%d, screen is %dx%d (use --fit): %w", b.Dx(), b.Dy(), w, h, theme.ErrSize)
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		img = dst
	}

	buf := make([]byte, w*h*hal.BytesPerPixel)
	theme.Encode(buf, img)
	if err := os.WriteFile(out, buf, 0o644); err != nil {
		return err
	}
	slog.Info("Wrote theme file", "path", out, "bytes", len(buf))
	return nil
}
