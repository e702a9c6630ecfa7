package vfs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// OSFS is the host file system. Regular files are read through a
// read-only memory mapping where the platform supports it.
type OSFS struct{}

func NewOS() *OSFS { return &OSFS{} }

func (fsys *OSFS) ReadFile(name string) ([]byte, error) { return readMapped(name) }

func (fsys *OSFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(name, data, perm)
}

func (fsys *OSFS) Stat(name string) (fs.FileInfo, error)      { return os.Stat(name) }
func (fsys *OSFS) ReadDir(name string) ([]fs.DirEntry, error) { return os.ReadDir(name) }

func (fsys *OSFS) Walk(root string, fn fs.WalkDirFunc) error {
	if fn == nil {
		return errors.New("nil walk fn")
	}
	return filepath.WalkDir(root, fn)
}
