package cli

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/xs-lang/xs/internal/errors"
	"github.com/xs-lang/xs/internal/position"
)

// SnippetContext is the number of source lines shown above an error.
const SnippetContext = 2

// FormatError renders err as "file: [row,col] message" followed by the
// offending source line with the token underlined. sf may be nil; errors without a
// position are rendered alone.
func FormatError(err error, sf *position.SourceFile) string {
	var se *errors.StandardError
	if !stderrors.As(err, &se) {
		return err.Error() + "\n"
	}

	var b strings.Builder
	if sf != nil && sf.Filename != "" && se.Category != errors.CategorySource {
		fmt.Fprintf(&b, "%s: ", sf.Filename)
	}
	b.WriteString(se.Error())
	b.WriteByte('\n')
	if sf != nil && se.Pos.Line > 0 {
		b.WriteString(sf.Snippet(se.Span(), SnippetContext))
	}
	return b.String()
}

// Report writes err with its snippet. The first line is coloured like an
// error tag.
func (l *Logger) Report(err error, sf *position.SourceFile) {
	text := FormatError(err, sf)
	head, rest, _ := strings.Cut(text, "\n")
	fmt.Fprintln(l.out, l.fail.Sprint(head))
	fmt.Fprint(l.out, rest)
	var se *errors.StandardError
	if stderrors.As(err, &se) {
		l.Debug("%s", se.Detail())
	}
}
