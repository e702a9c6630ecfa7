package vfs

import (
	"errors"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"time"
)

type fileInfo struct {
	name string
	size int64
	mode fs.FileMode
	mod  time.Time
}

func (fi fileInfo) Name() string       { return fi.name }
func (fi fileInfo) Size() int64        { return fi.size }
func (fi fileInfo) Mode() fs.FileMode  { return fi.mode }
func (fi fileInfo) ModTime() time.Time { return fi.mod }
func (fi fileInfo) IsDir() bool        { return fi.mode.IsDir() }
func (fi fileInfo) Sys() any           { return nil }

// MemFS is an in-memory FileSystem. Parent directories are created
// implicitly by WriteFile.
type MemFS struct {
	mu   sync.RWMutex
	ents map[string]*memEnt
}

type memEnt struct {
	data []byte
	dir  bool
	mode fs.FileMode
	mod  time.Time
}

func NewMem() *MemFS { return &MemFS{ents: make(map[string]*memEnt)} }

func norm(p string) string {
	q := strings.TrimPrefix(Clean(p), "/")
	if q == "." {
		return ""
	}
	return q
}

// ensureDir creates p and its parents. Callers hold m.mu.
func (m *MemFS) ensureDir(p string) {
	cur := ""
	for _, part := range strings.Split(norm(p), "/") {
		if part == "" {
			continue
		}
		cur = path.Join(cur, part)
		if _, ok := m.ents[cur]; !ok {
			m.ents[cur] = &memEnt{dir: true, mode: fs.ModeDir | 0o755, mod: time.Now()}
		}
	}
}

func (m *MemFS) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e := m.ents[norm(name)]
	if e == nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	if e.dir {
		return nil, &fs.PathError{Op: "read", Path: name, Err: errors.New("is a directory")}
	}
	return append([]byte(nil), e.data...), nil
}

func (m *MemFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := norm(name)
	if e := m.ents[key]; e != nil && e.dir {
		return &fs.PathError{Op: "write", Path: name, Err: errors.New("is a directory")}
	}
	m.ensureDir(path.Dir(key))
	m.ents[key] = &memEnt{data: append([]byte(nil), data...), mode: perm, mod: time.Now()}
	return nil
}

// Remove deletes name and everything below it.
func (m *MemFS) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := norm(name)
	if _, ok := m.ents[key]; !ok {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
	}
	for k := range m.ents {
		if k == key || strings.HasPrefix(k, key+"/") {
			delete(m.ents, k)
		}
	}
	return nil
}

func (m *MemFS) Stat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stat(name)
}

func (m *MemFS) stat(name string) (fs.FileInfo, error) {
	key := norm(name)
	if key == "" {
		return fileInfo{name: "/", mode: fs.ModeDir | 0o755}, nil
	}
	e := m.ents[key]
	if e == nil {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return fileInfo{name: path.Base(key), size: int64(len(e.data)), mode: e.mode, mod: e.mod}, nil
}

// ReadDir lists the direct children of name sorted by name.
func (m *MemFS) ReadDir(name string) ([]fs.DirEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	prefix := norm(name)
	if prefix != "" {
		if e := m.ents[prefix]; e == nil || !e.dir {
			return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
		}
		prefix += "/"
	}

	var out []fs.DirEntry
	for p := range m.ents {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		rest := strings.TrimPrefix(p, prefix)
		if rest == "" || strings.Contains(rest, "/") {
			continue
		}
		info, err := m.stat(p)
		if err != nil {
			continue
		}
		out = append(out, fs.FileInfoToDirEntry(info))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

func (m *MemFS) Walk(root string, fn fs.WalkDirFunc) error {
	if fn == nil {
		return errors.New("nil walk fn")
	}
	info, err := m.Stat(root)
	if err != nil {
		err = fn(root, nil, err)
	} else {
		err = m.walk(root, fs.FileInfoToDirEntry(info), fn)
	}
	if err == fs.SkipDir || err == fs.SkipAll {
		return nil
	}
	return err
}

func (m *MemFS) walk(p string, d fs.DirEntry, fn fs.WalkDirFunc) error {
	if err := fn(p, d, nil); err != nil || !d.IsDir() {
		if err == fs.SkipDir && d.IsDir() {
			err = nil
		}
		return err
	}

	entries, err := m.ReadDir(p)
	if err != nil {
		err = fn(p, d, err)
		if err != nil {
			if err == fs.SkipDir && d.IsDir() {
				err = nil
			}
			return err
		}
	}
	for _, de := range entries {
		if err := m.walk(path.Join(p, de.Name()), de, fn); err != nil {
			if err == fs.SkipDir {
				break
			}
			return err
		}
	}
	return nil
}
