package testsupport

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"

	"pngresize/internal/imagefs"
)

// MemFS is an in-memory imagefs.FS. Paths use forward slashes and are
// cleaned with path.Clean; "." is the implicit root and always exists.
type MemFS struct {
	mu    sync.Mutex
	dirs  map[string]bool
	files map[string][]byte

	// FailCreate makes Create fail for the named paths.
	FailCreate map[string]error
	// Opened records every Open call in order.
	Opened []string
}

var _ imagefs.FS = (*MemFS)(nil)

// NewMemFS returns an empty tree.
func NewMemFS() *MemFS {
	return &MemFS{
		dirs:       map[string]bool{".": true, "/": true},
		files:      map[string][]byte{},
		FailCreate: map[string]error{},
	}
}

// AddDir creates dir and all parents.
func (m *MemFS) AddDir(dir string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addDirLocked(path.Clean(dir))
}

func (m *MemFS) addDirLocked(dir string) {
	for d := dir; ; d = path.Dir(d) {
		m.dirs[d] = true
		if d == "." || d == "/" {
			return
		}
	}
}

// AddFile stores data at name, creating parents.
func (m *MemFS) AddFile(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name = path.Clean(name)
	m.addDirLocked(path.Dir(name))
	m.files[name] = append([]byte(nil), data...)
}

// File returns the bytes stored at name.
func (m *MemFS) File(name string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[path.Clean(name)]
	return data, ok
}

// HasDir reports whether dir exists.
func (m *MemFS) HasDir(dir string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dirs[path.Clean(dir)]
}

func (m *MemFS) List(dir string) ([]imagefs.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	dir = path.Clean(dir)
	if !m.dirs[dir] {
		return nil, &fs.PathError{Op: "readdir", Path: dir, Err: fs.ErrNotExist}
	}
	var entries []imagefs.Entry
	for d := range m.dirs {
		if d != dir && path.Dir(d) == dir {
			entries = append(entries, imagefs.Entry{Name: path.Base(d), Path: path.Join(dir, path.Base(d)), IsDir: true})
		}
	}
	for f := range m.files {
		if path.Dir(f) == dir {
			entries = append(entries, imagefs.Entry{Name: path.Base(f), Path: path.Join(dir, path.Base(f))})
		}
	}
	imagefs.SortEntries(entries)
	return entries, nil
}

func (m *MemFS) Stat(name string) (imagefs.Info, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name = path.Clean(name)
	if m.dirs[name] {
		return imagefs.Info{IsDir: true}, nil
	}
	if data, ok := m.files[name]; ok {
		return imagefs.Info{Size: int64(len(data))}, nil
	}
	return imagefs.Info{}, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
}

func (m *MemFS) Open(name string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name = path.Clean(name)
	m.Opened = append(m.Opened, name)
	data, ok := m.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *MemFS) Mkdir(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	name = path.Clean(name)
	if m.dirs[name] {
		return &fs.PathError{Op: "mkdir", Path: name, Err: fs.ErrExist}
	}
	if _, ok := m.files[name]; ok {
		return &fs.PathError{Op: "mkdir", Path: name, Err: fs.ErrExist}
	}
	if !m.dirs[path.Dir(name)] {
		return &fs.PathError{Op: "mkdir", Path: name, Err: fs.ErrNotExist}
	}
	m.dirs[name] = true
	return nil
}

func (m *MemFS) Create(name string) (io.WriteCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name = path.Clean(name)
	if err, ok := m.FailCreate[name]; ok {
		return nil, &fs.PathError{Op: "create", Path: name, Err: err}
	}
	if !m.dirs[path.Dir(name)] {
		return nil, &fs.PathError{Op: "create", Path: name, Err: fs.ErrNotExist}
	}
	if m.dirs[name] {
		return nil, &fs.PathError{Op: "create", Path: name, Err: errors.New("is a directory")}
	}
	m.files[name] = nil
	return &memFile{fs: m, name: name}, nil
}

// Paths returns every stored file path, for assertions.
func (m *MemFS) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.files))
	for f := range m.files {
		out = append(out, f)
	}
	return out
}

func (m *MemFS) String() string {
	return fmt.Sprintf("MemFS(%s)", strings.Join(m.Paths(), ", "))
}

type memFile struct {
	fs   *MemFS
	name string
	buf  bytes.Buffer
}

func (f *memFile) Write(p []byte) (int, error) {
	return f.buf.Write(p)
}

func (f *memFile) Close() error {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()
	f.fs.files[f.name] = append([]byte(nil), f.buf.Bytes()...)
	return nil
}
