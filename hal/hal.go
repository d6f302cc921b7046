package hal

import (
	"errors"
	"io"
	"io/fs"
)

// Logger writes newline-delimited log lines to the persistent log.
type Logger interface {
	WriteLineString(s string)
	// Truncate discards everything written so far.
	Truncate() error
}

// ErrStop is returned by an application step to end a host run normally.
var ErrStop = errors.New("stop")

func stopErr(err error) error {
	if errors.Is(err, ErrStop) {
		return nil
	}
	return err
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyScreenshot
	KeyQuit
)

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyCode
}

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatBGR888 is 24bpp stored as blue, green, red.
	PixelFormatBGR888 PixelFormat = iota + 1
)

// BytesPerPixel is the size of one BGR888 pixel.
const BytesPerPixel = 3

// Standard screen geometry of the device.
const (
	ScreenHeight   = 240
	ScreenWidthTop = 400
	ScreenWidthBot = 320
	ScreenBytesTop = ScreenWidthTop * ScreenHeight * BytesPerPixel
	ScreenBytesBot = ScreenWidthBot * ScreenHeight * BytesPerPixel
)

// Framebuffer is a raw pixel buffer plus a "present" hook.
//
// The buffer is stored rotated: column x starts at x*Height()*3 and the
// bottom screen row comes first inside a column.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	Buffer() []byte
	Present() error
}

// Screen selects one of the two physical screens.
type Screen uint8

const (
	ScreenTop Screen = iota
	ScreenBottom
)

func (s Screen) String() string {
	if s == ScreenTop {
		return "top"
	}
	return "bottom"
}

// Display provides access to both framebuffers.
type Display interface {
	Top() Framebuffer
	Bottom() Framebuffer
}

// File is an open file of the storage collaborator.
type File interface {
	io.ReaderAt
	io.WriterAt
	io.Closer
}

// FileSystem is the storage collaborator. Names use forward slashes.
type FileSystem interface {
	Open(name string) (File, error)
	// Create creates or truncates name.
	Create(name string) (File, error)
	Stat(name string) (fs.FileInfo, error)
}

// HAL provides the only contact point between the engine and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Keyboard() Keyboard
	FS() FileSystem
}

// ScreenOf returns the framebuffer of d selected by s.
func ScreenOf(d Display, s Screen) Framebuffer {
	if s == ScreenTop {
		return d.Top()
	}
	return d.Bottom()
}
