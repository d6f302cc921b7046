package hal

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

const hostLogName = "fbcon.log"

// HostConfig configures the host HAL.
type HostConfig struct {
	// DataDir is the root of the file system collaborator. Empty means an
	// in-memory file system.
	DataDir string
	// Mirror receives a copy of every console log line (nil disables it).
	Mirror io.Writer

	TopWidth    int
	BottomWidth int
	Height      int
}

func (c *HostConfig) setDefaults() {
	if c.TopWidth <= 0 {
		c.TopWidth = ScreenWidthTop
	}
	if c.BottomWidth <= 0 {
		c.BottomWidth = ScreenWidthBot
	}
	if c.Height <= 0 {
		c.Height = ScreenHeight
	}
}

type hostHAL struct {
	logger *hostLogger
	disp   hostDisplay
	kbd    *hostKeyboard
	fs     FileSystem
}

// New returns a host HAL implementation.
func New(cfg HostConfig) (HAL, error) {
	return newHost(cfg)
}

func newHost(cfg HostConfig) (*hostHAL, error) {
	cfg.setDefaults()

	var fsys FileSystem
	if cfg.DataDir == "" {
		fsys = NewMemFS()
	} else {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir %q: %w", cfg.DataDir, err)
		}
		fsys = DirFS(cfg.DataDir)
	}

	return &hostHAL{
		logger: &hostLogger{fs: fsys, name: hostLogName, mirror: cfg.Mirror, color: isTerminal(cfg.Mirror)},
		disp: hostDisplay{
			top: newHostFramebuffer(cfg.TopWidth, cfg.Height),
			bot: newHostFramebuffer(cfg.BottomWidth, cfg.Height),
		},
		kbd: newHostKeyboard(),
		fs:  fsys,
	}, nil
}

func (h *hostHAL) Logger() Logger     { return h.logger }
func (h *hostHAL) Display() Display   { return h.disp }
func (h *hostHAL) Keyboard() Keyboard { return h.kbd }
func (h *hostHAL) FS() FileSystem     { return h.fs }

type hostKeyboard struct {
	ch chan KeyCode
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyCode, 16)}
}

func (k *hostKeyboard) Events() <-chan KeyCode { return k.ch }

func (k *hostKeyboard) emit(code KeyCode) {
	select {
	case k.ch <- code:
	default:
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// hostLogger appends lines to a log file of the file system collaborator.
type hostLogger struct {
	mu     sync.Mutex
	fs     FileSystem
	name   string
	off    int64
	mirror io.Writer
	color  bool
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.mirror != nil {
		if l.color {
			fmt.Fprintf(l.mirror, "\x1b[36m%s\x1b[0m\n", s)
		} else {
			fmt.Fprintln(l.mirror, s)
		}
	}

	f, err := l.open()
	if err != nil {
		return
	}
	defer f.Close()
	n, _ := f.WriteAt([]byte(s+"\n"), l.off)
	l.off += int64(n)
}

func (l *hostLogger) Truncate() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := l.fs.Create(l.name)
	if err != nil {
		return fmt.Errorf("truncate log %q: %w", l.name, err)
	}
	l.off = 0
	return f.Close()
}

func (l *hostLogger) open() (File, error) {
	if l.off == 0 {
		if st, err := l.fs.Stat(l.name); err == nil {
			l.off = st.Size()
			return l.fs.Open(l.name)
		}
		return l.fs.Create(l.name)
	}
	return l.fs.Open(l.name)
}
