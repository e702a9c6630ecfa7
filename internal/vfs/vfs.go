// Package vfs abstracts the file system the front end reads sources from
// and writes listings to, and watches sources for changes.
package vfs

import (
	"io/fs"
	"path"
	"time"
)

// FileSystem is the subset of file operations the front end needs.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Stat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	// Walk visits root and everything below it in lexical order, with the
	// semantics of filepath.WalkDir, fs.SkipDir included.
	Walk(root string, fn fs.WalkDirFunc) error
}

// WatchOp indicates a change operation in the filesystem.
type WatchOp uint32

const (
	OpCreate WatchOp = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

var opNames = []struct {
	op   WatchOp
	name string
}{
	{OpCreate, "CREATE"},
	{OpWrite, "WRITE"},
	{OpRemove, "REMOVE"},
	{OpRename, "RENAME"},
	{OpChmod, "CHMOD"},
}

func (op WatchOp) String() string {
	s := ""
	for _, n := range opNames {
		if op&n.op == 0 {
			continue
		}
		if s != "" {
			s += "|"
		}
		s += n.name
	}
	if s == "" {
		return "NONE"
	}
	return s
}

// Has reports whether op includes other.
func (op WatchOp) Has(other WatchOp) bool { return op&other != 0 }

// Event describes a filesystem change event.
type Event struct {
	Path string
	Op   WatchOp
	Time time.Time
}

// Watcher provides a platform-independent file watching API.
type Watcher interface {
	Events() <-chan Event
	Errors() <-chan error
	Add(name string) error
	Remove(name string) error
	Close() error
}

// Clean returns the shortest slash-separated path equivalent to p.
func Clean(p string) string { return path.Clean(p) }
