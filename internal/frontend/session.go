// Package frontend drives the tokenizer and the parser over source files:
// single parse sessions, a content-addressed session cache, concurrent
// parsing of a source tree, golden output comparison and re-parsing on
// file changes.
package frontend

import (
	"encoding/hex"

	"github.com/google/uuid"
	"golang.org/x/crypto/sha3"

	"github.com/xs-lang/xs/internal/ast"
	"github.com/xs-lang/xs/internal/lexer"
	"github.com/xs-lang/xs/internal/parser"
	"github.com/xs-lang/xs/internal/position"
	"github.com/xs-lang/xs/internal/source"
	"github.com/xs-lang/xs/internal/vfs"
)

// Logger receives debug traces of parse sessions.
type Logger interface {
	Debug(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}

// Options configures a parse.
type Options struct {
	AutoSemicolons bool
	Logger         Logger
}

func (o Options) logger() Logger {
	if o.Logger == nil {
		return nopLogger{}
	}
	return o.Logger
}

// Digest identifies a source by path, content and the options it was
// parsed with.
type Digest [32]byte

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// DigestOf hashes file together with the options that change its tree.
func DigestOf(file *source.File, opts Options) Digest {
	h := sha3.New256()
	h.Write([]byte(file.Path))
	h.Write([]byte{0})
	h.Write([]byte(file.Content))
	if opts.AutoSemicolons {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}

	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// Session is one run of the tokenizer and the parser over a file.
// When parsing fails the session still carries the stages that completed:
// Tokens is set after a parse error, Root only after success.
type Session struct {
	ID     uuid.UUID
	File   *source.File
	Digest Digest
	Arena  *ast.Arena
	Tokens *lexer.Sequence
	Root   *ast.Block
}

// SourceFile returns the file split into lines for error snippets.
func (s *Session) SourceFile() *position.SourceFile {
	return position.NewSourceFile(s.File.Path, s.File.Content)
}

// ParseSource tokenizes and parses file.
func ParseSource(file *source.File, opts Options) (*Session, error) {
	log := opts.logger()
	s := &Session{
		ID:     uuid.New(),
		File:   file,
		Digest: DigestOf(file, opts),
		Arena:  ast.NewArena(),
	}
	log.Debug("session %s: parsing %s", s.ID, file.Path)

	seq, err := lexer.Scan(file.Content, lexer.Options{
		Filename:       file.Path,
		AutoSemicolons: opts.AutoSemicolons,
	})
	if err != nil {
		log.Debug("session %s: tokenizer failed: %v", s.ID, err)
		return s, err
	}
	s.Tokens = seq

	root, err := parser.NewParser(seq, s.Arena).Parse()
	if err != nil {
		log.Debug("session %s: parser failed: %v", s.ID, err)
		return s, err
	}
	s.Root = root

	log.Debug("session %s: %d tokens, %d nodes", s.ID, seq.Len(), s.Arena.Len())
	return s, nil
}

// ParseFile loads path from fsys and parses it. A file that cannot be
// loaded yields a nil session.
func ParseFile(fsys vfs.FileSystem, path string, opts Options) (*Session, error) {
	file, err := source.Load(fsys, path)
	if err != nil {
		return nil, err
	}
	return ParseSource(file, opts)
}
