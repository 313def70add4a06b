// Package imagefs is the filesystem boundary of the resize pipeline.
//
// The pipeline only ever lists one directory level, opens source files,
// creates a single output directory and creates destination files. Those four
// operations are gathered behind FS so tests can swap the operating system
// for an in-memory tree.
package imagefs

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// ErrNotExist is returned by Stat when the path is absent.
var ErrNotExist = fs.ErrNotExist

// Entry describes one direct child of a listed directory.
type Entry struct {
	Name  string
	Path  string
	IsDir bool
}

// Info is the subset of file metadata the pipeline consults.
type Info struct {
	IsDir bool
	Size  int64
}

// DirectoryLister returns the direct children of dir, sorted by name.
type DirectoryLister interface {
	List(dir string) ([]Entry, error)
}

// FS is everything the pipeline needs from a filesystem.
type FS interface {
	DirectoryLister
	Stat(path string) (Info, error)
	Open(path string) (io.ReadCloser, error)
	// Mkdir creates exactly one directory level; missing parents are an error.
	Mkdir(path string) error
	// Create truncates or creates path for writing.
	Create(path string) (io.WriteCloser, error)
}

// OS implements FS on the host filesystem.
type OS struct{}

var _ FS = OS{}

func (OS) List(dir string) ([]Entry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, Entry{
			Name:  e.Name(),
			Path:  filepath.Join(dir, e.Name()),
			IsDir: e.IsDir(),
		})
	}
	SortEntries(out)
	return out, nil
}

func (OS) Stat(path string) (Info, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Info{}, err
	}
	return Info{IsDir: info.IsDir(), Size: info.Size()}, nil
}

func (OS) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

func (OS) Mkdir(path string) error {
	return os.Mkdir(path, 0o755)
}

func (OS) Create(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
}

// SortEntries orders entries by name so listings are stable across platforms.
func SortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
}

// IsDir reports whether path exists and is a directory. A missing path is not
// an error.
func IsDir(fsys FS, path string) (bool, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		if errors.Is(err, ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir, nil
}
