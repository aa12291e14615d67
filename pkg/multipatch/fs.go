package multipatch

import (
	"errors"
	"io/fs"
	"os"
)

// FS is the filesystem the orchestrator reads from and writes to.
type FS interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte) error
	MkdirAll(path string) error
	Remove(name string) error
	Exists(name string) bool
}

// OSFS implements FS on the local filesystem.
type OSFS struct{}

// ReadFile implements FS.
func (OSFS) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }

// WriteFile implements FS. Existing files keep their permissions; new
// files are created with 0o644.
func (OSFS) WriteFile(name string, data []byte) error {
	perm := fs.FileMode(0o644)
	if info, err := os.Stat(name); err == nil {
		perm = info.Mode().Perm()
	}
	return os.WriteFile(name, data, perm)
}

// MkdirAll implements FS.
func (OSFS) MkdirAll(path string) error { return os.MkdirAll(path, 0o755) }

// Remove implements FS.
func (OSFS) Remove(name string) error { return os.Remove(name) }

// Exists implements FS.
func (OSFS) Exists(name string) bool {
	_, err := os.Stat(name)
	return !errors.Is(err, fs.ErrNotExist)
}
