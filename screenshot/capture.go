package screenshot

import (
	"errors"
	"fmt"
	"io/fs"

	"fbcon/hal"
)

// MaxAutoNames is the number of snapNNN.bmp names probed by Capture.
const MaxAutoNames = 1000

// ErrNoFreeName is returned when every automatic file name is taken.
var ErrNoFreeName = errors.New("screenshot: no free file name")

// Capturer writes screenshots of a display through the file system
// collaborator.
type Capturer struct {
	disp hal.Display
	fs   hal.FileSystem
	next int
}

func NewCapturer(disp hal.Display, fsys hal.FileSystem) *Capturer {
	return &Capturer{disp: disp, fs: fsys}
}

// AutoName formats the n-th automatic screenshot name.
func AutoName(n int) string {
	return fmt.Sprintf("snap%03d.bmp", n)
}

// Capture writes a screenshot to path, overwriting it. An empty path picks
// the first unused snapNNN.bmp; probing resumes where the previous call
// stopped. The name written is returned.
func (c *Capturer) Capture(path string) (string, error) {
	if path == "" {
		name, err := c.freeName()
		if err != nil {
			return "", err
		}
		path = name
	}

	canvas := Composite(c.disp.Top(), c.disp.Bottom())
	f, err := c.fs.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %q: %w", path, err)
	}
	h := Header(canvas.Width, canvas.Height)
	if _, err := f.WriteAt(h[:], 0); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write header %q: %w", path, err)
	}
	if _, err := f.WriteAt(canvas.Pix, HeaderSize); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write pixels %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %q: %w", path, err)
	}
	return path, nil
}

func (c *Capturer) freeName() (string, error) {
	for ; c.next < MaxAutoNames; c.next++ {
		name := AutoName(c.next)
		if _, err := c.fs.Stat(name); errors.Is(err, fs.ErrNotExist) {
			return name, nil
		}
	}
	return "", ErrNoFreeName
}
