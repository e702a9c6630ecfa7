package printer

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/xs-lang/xs/internal/lexer"
)

// Tokens writes one line per token in the form
//
//	(kind,type) [row,col] value
//
// with the row right-aligned to the width of the last row and the column
// to two places. Kind and type are the numeric enum values.
func Tokens(w io.Writer, seq *lexer.Sequence) error {
	toks := seq.Tokens()
	if len(toks) == 0 {
		return nil
	}
	width := len(strconv.Itoa(toks[len(toks)-1].Pos.Line))

	for _, tok := range toks {
		_, err := fmt.Fprintf(w, "(%d,%d) [%*d,%2d] %s\n",
			int(tok.Kind), int(tok.Type), width, tok.Pos.Line, tok.Pos.Column, tok.Literal)
		if err != nil {
			return err
		}
	}
	return nil
}

// TokenTable writes the tokens as a table with symbolic kind and type names.
func TokenTable(w io.Writer, seq *lexer.Sequence) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Kind", "Type", "Span", "Literal"})
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, tok := range seq.Tokens() {
		table.Append([]string{
			strconv.Itoa(tok.Index),
			tok.Kind.String(),
			tok.Type.String(),
			tok.Span().String(),
			tok.Text(),
		})
	}
	table.Render()
}
