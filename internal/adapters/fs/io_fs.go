package fs

import (
	"errors"
	iofs "io/fs"
	"path"
	"path/filepath"
	"strings"
)

var ErrReadOnly = errors.New("filesystem is read-only")

// ReadOnlyFileSystem serves sources from an io/fs.FS such as an
// embed.FS or fstest.MapFS. Paths are slash-cleaned and may carry a
// leading "./".
type ReadOnlyFileSystem struct {
	fs iofs.FS
}

func NewReadOnlyFileSystem(fsys iofs.FS) *ReadOnlyFileSystem {
	return &ReadOnlyFileSystem{fs: fsys}
}

func (fs *ReadOnlyFileSystem) ReadFile(name string) ([]byte, error) {
	return iofs.ReadFile(fs.fs, clean(name))
}

func (fs *ReadOnlyFileSystem) ReadDir(name string) ([]iofs.DirEntry, error) {
	return iofs.ReadDir(fs.fs, clean(name))
}

func (fs *ReadOnlyFileSystem) FileExists(name string) bool {
	_, err := iofs.Stat(fs.fs, clean(name))
	return err == nil
}

func (fs *ReadOnlyFileSystem) WriteFile(name string, data []byte, perm iofs.FileMode) error {
	return ErrReadOnly
}

func (fs *ReadOnlyFileSystem) MkdirAll(name string, perm iofs.FileMode) error {
	return ErrReadOnly
}

func (fs *ReadOnlyFileSystem) Remove(name string) error {
	return ErrReadOnly
}

func clean(name string) string {
	name = path.Clean(filepath.ToSlash(name))
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		return "."
	}
	return name
}
