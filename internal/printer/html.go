package printer

import (
	"html"
	"strings"

	"github.com/xs-lang/xs/internal/ast"
)

const htmlHead = `<!DOCTYPE html><html><head><style type="text/css">` +
	`td{ vertical-align: top; }` +
	`span{ display: block; text-align:center; }` +
	`div{ border-style: solid; border-width: 1px; text-align:center; padding:2px; }` +
	`.kind{ color: gray; font-size: small; }` +
	`</style></head><body><table><tr><td>`

const htmlTail = `</td></tr></table></body></html>`

// HTML renders n as nested boxes: every node is a div holding its caption
// and a one-row table of its children. title, when set, is shown above the
// tree.
func HTML(n ast.Node, title string) string {
	var b strings.Builder
	b.WriteString(htmlHead)
	if title != "" {
		b.WriteString("<span>" + html.EscapeString(title) + "</span>")
	}
	writeHTML(&b, n)
	b.WriteString(htmlTail)
	b.WriteByte('\n')
	return b.String()
}

func writeHTML(b *strings.Builder, n ast.Node) {
	b.WriteString("<div>")
	b.WriteString(`<span class="kind">` + n.Kind().String() + "</span>")
	if label := Label(n); label != "" {
		b.WriteString("<span>" + html.EscapeString(label) + "</span>")
	}
	if children := ast.Children(n); len(children) > 0 {
		b.WriteString("<table><tr>")
		for _, c := range children {
			b.WriteString("<td>")
			writeHTML(b, c)
			b.WriteString("</td>")
		}
		b.WriteString("</tr></table>")
	}
	b.WriteString("</div>")
}
