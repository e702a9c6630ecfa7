// Package position provides source code position tracking for the xs front
// end. Every token and every diagnostic carries a Position.
package position

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Position represents a single point in source code
type Position struct {
	Filename string // Source file name
	Line     int    // 1-based line number
	Column   int    // 1-based byte column
	Offset   int    // 0-based byte offset in source
}

// IsValid returns true if the position is valid
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0 && p.Offset >= 0
}

// String returns a string representation of the position
func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", filepath.Base(p.Filename), p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before returns true if this position comes before other
func (p Position) Before(other Position) bool {
	if p.Filename != other.Filename {
		return p.Filename < other.Filename
	}
	return p.Offset < other.Offset
}

// Span represents a range of source code between two positions
type Span struct {
	Start Position // Starting position (inclusive)
	End   Position // Ending position (exclusive)
}

// IsValid returns true if the span is valid
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid() &&
		s.Start.Filename == s.End.Filename &&
		!s.End.Before(s.Start)
}

// Width is the number of columns the span covers on its first line, at
// least 1. Invalid and multi-line spans have width 1.
func (s Span) Width() int {
	if !s.IsValid() || s.Start.Line != s.End.Line || s.End.Column <= s.Start.Column {
		return 1
	}
	return s.End.Column - s.Start.Column
}

// String returns a string representation of the span
func (s Span) String() string {
	prefix := ""
	if s.Start.Filename != "" {
		prefix = filepath.Base(s.Start.Filename) + ":"
	}
	if s.Start.Line == s.End.Line {
		return fmt.Sprintf("%s%d:%d-%d", prefix, s.Start.Line, s.Start.Column, s.End.Column)
	}
	return fmt.Sprintf("%s%d:%d-%d:%d", prefix, s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}

// SourceFile represents a source file split into lines for diagnostics
type SourceFile struct {
	Filename string
	Content  string
	Lines    []string
}

// NewSourceFile creates a new source file from content. Content is expected
// to use "\n" line endings.
func NewSourceFile(filename, content string) *SourceFile {
	return &SourceFile{
		Filename: filename,
		Content:  content,
		Lines:    strings.Split(content, "\n"),
	}
}

// GetLine returns the specified line (1-based) or empty string if invalid
func (sf *SourceFile) GetLine(lineNum int) string {
	if lineNum < 1 || lineNum > len(sf.Lines) {
		return ""
	}
	return sf.Lines[lineNum-1]
}
