package frontend

import (
	"fmt"
	"strings"
)

// DefaultDiffContext is the number of unchanged lines shown around a change.
const DefaultDiffContext = 3

// LineType represents the type of a diff line.
type LineType int

const (
	LineContext LineType = iota // unchanged
	LineAdded                   // only in the current output
	LineRemoved                 // only in the saved output
)

// Line is one line of a hunk.
type Line struct {
	Type    LineType
	Content string
}

// Hunk is a contiguous block of changes with its surrounding context.
// Starts are 1-based line numbers.
type Hunk struct {
	OldStart, OldCount int
	NewStart, NewCount int
	Lines              []Line
}

// edit is one step of the edit script with the line numbers reached
// before it.
type edit struct {
	Line
	old, new int
}

// Diff compares saved and current line by line and groups the changes into
// hunks with context unchanged lines around them.
func Diff(saved, current string, context int) []Hunk {
	script := editScript(splitLines(saved), splitLines(current))

	var changes []int
	for i, e := range script {
		if e.Type != LineContext {
			changes = append(changes, i)
		}
	}

	var hunks []Hunk
	for len(changes) > 0 {
		last := 0
		for last+1 < len(changes) && changes[last+1]-changes[last] <= 2*context {
			last++
		}
		start := max(0, changes[0]-context)
		end := min(len(script), changes[last]+context+1)
		hunks = append(hunks, newHunk(script[start:end]))
		changes = changes[last+1:]
	}
	return hunks
}

func newHunk(edits []edit) Hunk {
	h := Hunk{OldStart: edits[0].old, NewStart: edits[0].new}
	for _, e := range edits {
		h.Lines = append(h.Lines, e.Line)
		if e.Type != LineAdded {
			h.OldCount++
		}
		if e.Type != LineRemoved {
			h.NewCount++
		}
	}
	if h.OldCount == 0 {
		h.OldStart--
	}
	if h.NewCount == 0 {
		h.NewStart--
	}
	return h
}

// editScript derives a shortest edit script from the longest common
// subsequence of a and b. Removals come before additions.
func editScript(a, b []string) []edit {
	n, m := len(a), len(b)
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	var script []edit
	i, j := 0, 0
	for i < n || j < m {
		switch {
		case i < n && j < m && a[i] == b[j]:
			script = append(script, edit{Line{LineContext, a[i]}, i + 1, j + 1})
			i++
			j++
		case i < n && (j == m || lcs[i+1][j] >= lcs[i][j+1]):
			script = append(script, edit{Line{LineRemoved, a[i]}, i + 1, j + 1})
			i++
		default:
			script = append(script, edit{Line{LineAdded, b[j]}, i + 1, j + 1})
			j++
		}
	}
	return script
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// FormatDiff renders hunks in unified diff format.
func FormatDiff(name string, hunks []Hunk) string {
	if len(hunks) == 0 {
		return ""
	}

	var out strings.Builder
	fmt.Fprintf(&out, "--- %s\t(saved)\n", name)
	fmt.Fprintf(&out, "+++ %s\t(current)\n", name)
	for _, h := range hunks {
		fmt.Fprintf(&out, "@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
		for _, l := range h.Lines {
			switch l.Type {
			case LineContext:
				out.WriteByte(' ')
			case LineAdded:
				out.WriteByte('+')
			case LineRemoved:
				out.WriteByte('-')
			}
			out.WriteString(l.Content)
			out.WriteByte('\n')
		}
	}
	return out.String()
}
