package frontend

import (
	"bytes"
	stderrors "errors"
	"io/fs"
	"path"

	"github.com/xs-lang/xs/internal/printer"
	"github.com/xs-lang/xs/internal/vfs"
)

// Suffixes of the outputs written next to each source.
const (
	TokensSuffix = ".lex.txt"
	TreeSuffix   = ".tree.html"
)

// ArtifactOptions selects the outputs of a session.
type ArtifactOptions struct {
	// Dir receives the outputs; empty means next to the source.
	Dir    string
	Tokens bool
	Tree   bool
}

// Artifact is one rendered output file.
type Artifact struct {
	Path    string
	Content []byte
	// Saved is the content found on disk by Stale; nil when missing.
	Saved []byte
}

// Diff renders the difference between the saved and the rendered content.
func (a Artifact) Diff() string {
	return FormatDiff(a.Path, Diff(string(a.Saved), string(a.Content), DefaultDiffContext))
}

// Artifacts renders the token listing and the HTML tree of s. Stages the
// session did not reach produce nothing.
func Artifacts(s *Session, opts ArtifactOptions) ([]Artifact, error) {
	base := s.File.Path
	if opts.Dir != "" {
		base = path.Join(opts.Dir, path.Base(base))
	}

	var arts []Artifact
	if opts.Tokens && s.Tokens != nil {
		var buf bytes.Buffer
		if err := printer.Tokens(&buf, s.Tokens); err != nil {
			return nil, err
		}
		arts = append(arts, Artifact{Path: base + TokensSuffix, Content: buf.Bytes()})
	}
	if opts.Tree && s.Root != nil {
		html := printer.HTML(s.Root, path.Base(s.File.Path))
		arts = append(arts, Artifact{Path: base + TreeSuffix, Content: []byte(html)})
	}
	return arts, nil
}

// Stale returns the artifacts whose file is missing or differs, with Saved
// filled in.
func Stale(fsys vfs.FileSystem, arts []Artifact) ([]Artifact, error) {
	var stale []Artifact
	for _, a := range arts {
		have, err := fsys.ReadFile(a.Path)
		if err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				stale = append(stale, a)
				continue
			}
			return nil, err
		}
		if !bytes.Equal(have, a.Content) {
			a.Saved = have
			stale = append(stale, a)
		}
	}
	return stale, nil
}

// Write saves arts to fsys.
func Write(fsys vfs.FileSystem, arts []Artifact) error {
	for _, a := range arts {
		if err := fsys.WriteFile(a.Path, a.Content, 0o644); err != nil {
			return err
		}
	}
	return nil
}
