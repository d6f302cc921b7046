// Package theme loads full-screen background images through the file system
// collaborator.
//
// Two formats are accepted: native .bin files holding the framebuffer bytes
// as stored (rotated BGR888, exactly width*height*3 bytes), and .bmp images
// of the screen size, which are rotated into place.
package theme

import (
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"path"
	"strings"

	"fbcon/hal"
	"fbcon/render"

	"golang.org/x/image/bmp"
)

var (
	// ErrNotFound is returned when no candidate path exists.
	ErrNotFound = errors.New("theme: not found")
	// ErrSize is returned when an image does not match the screen size.
	ErrSize = errors.New("theme: size mismatch")
)

// Well-known image names.
const (
	LogoName    = "logo.bin"
	DebugBGName = "debug.bin"
)

// Config locates theme images.
type Config struct {
	// Title selects the per-application directory 3ds/<Title>/UI, tried first.
	Title string
	// Dir is the shared theme directory.
	Dir string
	// LogoScreen receives the logo; menu images go to the other screen.
	LogoScreen hal.Screen
}

// Loader loads theme images onto a display.
type Loader struct {
	cfg  Config
	fs   hal.FileSystem
	disp hal.Display
}

func NewLoader(cfg Config, fsys hal.FileSystem, disp hal.Display) *Loader {
	return &Loader{cfg: cfg, fs: fsys, disp: disp}
}

// Candidates lists the paths Load tries for name, in order.
func (l *Loader) Candidates(name string) []string {
	var out []string
	if l.cfg.Title != "" {
		out = append(out, path.Join("3ds", l.cfg.Title, "UI", name))
	}
	if l.cfg.Dir != "" {
		out = append(out, path.Join(l.cfg.Dir, name))
	}
	return out
}

// Load imports the first candidate for name that loads successfully.
func (l *Loader) Load(name string, screen hal.Screen) error {
	var errs []error
	for _, p := range l.Candidates(name) {
		err := l.Import(p, screen)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	for _, err := range errs {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, name)
}

// LoadLogo loads the logo onto the configured logo screen.
func (l *Loader) LoadLogo() error {
	return l.Load(LogoName, l.cfg.LogoScreen)
}

// MenuName formats the image name of menu index.
func MenuName(index int) string {
	return fmt.Sprintf("menu%04d.bin", index)
}

// LoadMenu loads the menu image for index onto the screen without the logo.
func (l *Loader) LoadMenu(index int) error {
	screen := hal.ScreenTop
	if l.cfg.LogoScreen == hal.ScreenTop {
		screen = hal.ScreenBottom
	}
	return l.Load(MenuName(index), screen)
}

// LoadDebugBackground loads the console background onto the top screen.
func (l *Loader) LoadDebugBackground() error {
	return l.Load(DebugBGName, hal.ScreenTop)
}

// Import reads one image file into the selected framebuffer.
func (l *Loader) Import(name string, screen hal.Screen) error {
	fb := hal.ScreenOf(l.disp, screen)
	f, err := l.fs.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	if strings.EqualFold(path.Ext(name), ".bmp") {
		img, err := bmp.Decode(io.NewSectionReader(f, 0, 1<<31-1))
		if err != nil {
			return fmt.Errorf("decode %q: %w", name, err)
		}
		if err := Blit(fb, img); err != nil {
			return fmt.Errorf("%q: %w", name, err)
		}
		return fb.Present()
	}

	st, err := l.fs.Stat(name)
	if err != nil {
		return err
	}
	buf := fb.Buffer()
	size := fb.Width() * fb.Height() * hal.BytesPerPixel
	if st.Size() != int64(size) || len(buf) < size {
		return fmt.Errorf("%q is %d bytes, want %d: %w", name, st.Size(), size, ErrSize)
	}
	if _, err := f.ReadAt(buf[:size], 0); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read %q: %w", name, err)
	}
	return fb.Present()
}

// Blit rotates img into fb. img must have the framebuffer's size.
func Blit(fb hal.Framebuffer, img image.Image) error {
	b := img.Bounds()
	if b.Dx() != fb.Width() || b.Dy() != fb.Height() {
		return fmt.Errorf("image %dx%d, screen %dx%d: %w", b.Dx(), b.Dy(), fb.Width(), fb.Height(), ErrSize)
	}
	Encode(fb.Buffer(), img)
	return nil
}

// Encode writes img into buf in native rotated BGR888 order. buf must hold
// at least Dx*Dy*3 bytes.
func Encode(buf []byte, img image.Image) {
	b := img.Bounds()
	h := b.Dy()
	for x := 0; x < b.Dx(); x++ {
		for y := 0; y < h; y++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			off := render.Offset(x, y, h, hal.BytesPerPixel)
			buf[off+0] = byte(bl >> 8)
			buf[off+1] = byte(g >> 8)
			buf[off+2] = byte(r >> 8)
		}
	}
}
