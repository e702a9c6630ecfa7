package frontend

import (
	"context"

	"github.com/xs-lang/xs/internal/source"
	"github.com/xs-lang/xs/internal/vfs"
)

// Watch re-parses source files with extension ext each time w reports them
// created or written, and hands every result to onOutcome. Unchanged
// content is served from cache. Watch returns when ctx is done, when the
// watcher closes its event channel or with the first watcher error.
func Watch(ctx context.Context, w vfs.Watcher, fsys vfs.FileSystem, cache *Cache, ext string, onOutcome func(Outcome)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			return err
		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			if !ev.Op.Has(vfs.OpCreate|vfs.OpWrite) || !HasExtension(ev.Path, ext) {
				continue
			}
			onOutcome(ParseCached(fsys, cache, ev.Path))
		}
	}
}

// ParseCached loads path and parses it through cache.
func ParseCached(fsys vfs.FileSystem, cache *Cache, path string) Outcome {
	file, err := source.Load(fsys, path)
	if err != nil {
		return Outcome{Path: path, Err: err}
	}
	s, _, err := cache.Parse(file)
	return Outcome{Path: path, Session: s, Err: err}
}
