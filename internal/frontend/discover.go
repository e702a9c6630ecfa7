package frontend

import (
	"context"
	"io/fs"
	"path"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/xs-lang/xs/internal/vfs"
)

// DefaultExtension is the extension of xs source files.
const DefaultExtension = "xs"

// HasExtension reports whether name ends in "."+ext. ext may carry the dot.
func HasExtension(name, ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = DefaultExtension
	}
	return path.Ext(name) == "."+ext
}

// Discover lists the source files with extension ext under root in lexical
// order. Hidden directories are skipped.
func Discover(fsys vfs.FileSystem, root, ext string) ([]string, error) {
	var files []string
	err := fsys.Walk(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if HasExtension(p, ext) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Outcome is the result of parsing one file.
type Outcome struct {
	Path    string
	Session *Session
	Err     error
}

// ParseAll parses paths with at most workers files in flight. Outcomes are
// returned in the order of paths; per-file failures are reported in
// Outcome.Err and do not stop the others. The error is non-nil only when
// ctx is cancelled.
func ParseAll(ctx context.Context, fsys vfs.FileSystem, paths []string, workers int, opts Options) ([]Outcome, error) {
	if workers <= 0 {
		workers = 1
	}
	out := make([]Outcome, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := ParseFile(fsys, p, opts)
			out[i] = Outcome{Path: p, Session: s, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
