package hal

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// aferoFS adapts an afero.Fs to FileSystem. Names are cleaned against a
// virtual root, so "../x" resolves to "x".
type aferoFS struct {
	fs afero.Fs
}

func fsName(name string) string {
	return path.Clean("/" + name)
}

func (a aferoFS) Open(name string) (File, error) {
	p := fsName(name)
	f, err := a.fs.OpenFile(p, os.O_RDWR, 0)
	if errors.Is(err, fs.ErrPermission) {
		f, err = a.fs.Open(p)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (a aferoFS) Create(name string) (File, error) {
	p := fsName(name)
	if p == "/" {
		return nil, &fs.PathError{Op: "create", Path: name, Err: fs.ErrInvalid}
	}
	if err := a.fs.MkdirAll(path.Dir(p), 0o755); err != nil {
		return nil, err
	}
	f, err := a.fs.Create(p)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (a aferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.fs.Stat(fsName(name))
}

// DirFS returns a FileSystem rooted at dir on the host.
func DirFS(dir string) FileSystem {
	return aferoFS{fs: afero.NewBasePathFs(afero.NewOsFs(), dir)}
}

// MemFS is an in-memory FileSystem. It backs headless runs and tests.
type MemFS struct {
	aferoFS
}

// NewMemFS returns an empty in-memory file system.
func NewMemFS() *MemFS {
	return &MemFS{aferoFS{fs: afero.NewMemMapFs()}}
}

// WriteFile stores data under name, replacing any previous content.
func (m *MemFS) WriteFile(name string, data []byte) error {
	p := fsName(name)
	if err := m.fs.MkdirAll(path.Dir(p), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(m.fs, p, data, 0o644)
}

// ReadFile returns the content stored under name.
func (m *MemFS) ReadFile(name string) ([]byte, error) {
	return afero.ReadFile(m.fs, fsName(name))
}

// Names lists every stored file, sorted.
func (m *MemFS) Names() []string {
	var names []string
	_ = afero.Walk(m.fs, "/", func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			names = append(names, strings.TrimPrefix(p, "/"))
		}
		return nil
	})
	sort.Strings(names)
	return names
}
