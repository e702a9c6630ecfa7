package position

import (
	"fmt"
	"strings"
)

// Snippet renders the line holding the start of span, with up to context
// lines before it, and carets under the columns the span covers on that
// line. Tabs in the prefix are preserved so the carets line up in a
// terminal.
func (sf *SourceFile) Snippet(span Span, context int) string {
	pos := span.Start
	if sf == nil || pos.Line < 1 || pos.Line > len(sf.Lines) {
		return ""
	}

	var result strings.Builder
	startLine := max(1, pos.Line-context)
	for lineNum := startLine; lineNum <= pos.Line; lineNum++ {
		result.WriteString(fmt.Sprintf("%4d | %s\n", lineNum, sf.GetLine(lineNum)))
	}

	result.WriteString("     | ")
	line := sf.GetLine(pos.Line)
	for i := 1; i < pos.Column; i++ {
		if i <= len(line) && line[i-1] == '\t' {
			result.WriteByte('\t')
		} else {
			result.WriteByte(' ')
		}
	}
	result.WriteString(strings.Repeat("^", span.Width()))
	result.WriteByte('\n')

	return result.String()
}
