package printer

import (
	"strings"

	"github.com/xs-lang/xs/internal/ast"
)

// SExpr renders n as an S-expression. The statements of a Block go on
// their own lines, indented by depth.
func SExpr(n ast.Node) string {
	var b strings.Builder
	writeSExpr(&b, n, 0)
	b.WriteByte('\n')
	return b.String()
}

func writeSExpr(b *strings.Builder, n ast.Node, depth int) {
	block, ok := n.(*ast.Block)
	if !ok || len(block.Statements) == 0 {
		b.WriteString(n.String())
		return
	}
	b.WriteString("(block")
	for _, s := range block.Statements {
		b.WriteByte('\n')
		b.WriteString(strings.Repeat("  ", depth+1))
		writeSExpr(b, s, depth+1)
	}
	b.WriteByte(')')
}
