// Package source loads xs source files: it checks the encoding, detects the
// line ending and normalizes it to "\n" for the tokenizer.
package source

import (
	stderrors "errors"
	"strings"
	"unicode/utf8"

	"github.com/xs-lang/xs/internal/errors"
	"github.com/xs-lang/xs/internal/vfs"
)

// Line endings recognized by DetectEOL.
const (
	EOLUnix    = "\n"
	EOLWindows = "\r\n"
	EOLMac     = "\r"
)

// File is a loaded source.
type File struct {
	Path    string
	Content string // line endings normalized to "\n"
	EOL     string // line ending of the original file
}

// Lines returns the normalized content split into lines, without
// terminators.
func (f *File) Lines() []string {
	if f.Content == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(f.Content, "\n"), "\n")
}

// Restore returns the content with the original line endings.
func (f *File) Restore() string {
	if f.EOL == EOLUnix {
		return f.Content
	}
	return strings.ReplaceAll(f.Content, "\n", f.EOL)
}

// DetectEOL returns the line ending of the first line break in data, or
// "\n" when data has none.
func DetectEOL(data []byte) string {
	for i, c := range data {
		switch c {
		case '\n':
			return EOLUnix
		case '\r':
			if i+1 < len(data) && data[i+1] == '\n' {
				return EOLWindows
			}
			return EOLMac
		}
	}
	return EOLUnix
}

// Normalize rewrites every eol in data to "\n". Other line breaks are left
// alone; a lone '\r' is whitespace to the tokenizer.
func Normalize(data []byte, eol string) string {
	s := string(data)
	if eol == EOLUnix {
		return s
	}
	return strings.ReplaceAll(s, eol, EOLUnix)
}

// FromBytes validates and normalizes data read from path.
func FromBytes(path string, data []byte) (*File, error) {
	if !utf8.Valid(data) {
		return nil, errors.Source(path, errors.CodeInvalidEncoding, errInvalidUTF8)
	}
	eol := DetectEOL(data)
	return &File{Path: path, Content: Normalize(data, eol), EOL: eol}, nil
}

// FromString wraps in-memory source text.
func FromString(path, content string) (*File, error) {
	return FromBytes(path, []byte(content))
}

// Load reads path from fsys.
func Load(fsys vfs.FileSystem, path string) (*File, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Source(path, errors.CodeUnreadableSource, err)
	}
	return FromBytes(path, data)
}

var errInvalidUTF8 = stderrors.New("not valid UTF-8")
