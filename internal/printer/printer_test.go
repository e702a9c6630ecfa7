package printer

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xs-lang/xs/internal/ast"
	"github.com/xs-lang/xs/internal/lexer"
	"github.com/xs-lang/xs/internal/parser"
)

func mustParse(t *testing.T, input string) *ast.Block {
	t.Helper()
	root, err := parser.ParseString(input)
	require.NoError(t, err)
	return root
}

func TestTokensListing(t *testing.T) {
	src := "var x = 1; // one\n"
	for i := 0; i < 9; i++ {
		src += "\n"
	}
	src += "x;"
	seq, err := lexer.Scan(src, lexer.Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Tokens(&buf, seq))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, fmt.Sprintf("(%d,%d) [ 1, 1] var", lexer.KindKeyword, lexer.TokenVar), lines[0])
	assert.Equal(t, fmt.Sprintf("(%d,%d) [ 1, 9] 1", lexer.KindLiteral, lexer.TokenInteger), lines[3])
	assert.Equal(t, fmt.Sprintf("(%d,%d) [11, 1] x", lexer.KindIdentifier, lexer.TokenIdentifier), lines[5])

	buf.Reset()
	require.NoError(t, Tokens(&buf, lexer.NewSequence(nil)))
	assert.Empty(t, buf.String())
}

func TestTokenTable(t *testing.T) {
	seq, err := lexer.Scan(`say("hi");`, lexer.Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	TokenTable(&buf, seq)
	out := buf.String()
	assert.Contains(t, out, "IDENTIFIER")
	assert.Contains(t, out, `"hi"`)
	assert.Contains(t, out, "1:4-8")
}

func TestSExpr(t *testing.T) {
	root := mustParse(t, "var x: int = 1; loop { x += 1; }")
	assert.Equal(t,
		"(block\n  (= (var x (type int)) 1)\n  (loop (block (+= x 1))))\n",
		SExpr(root))
	assert.Equal(t, "(block)\n", SExpr(mustParse(t, "")))
}

func TestOutlineAndYAML(t *testing.T) {
	root := mustParse(t, "a = -b;")

	outline := Outline(root)
	want := &OutlineNode{
		Kind: "Block",
		Children: []*OutlineNode{{
			Kind: "Assign", Text: "=", Pos: "1:3",
			Children: []*OutlineNode{
				{Kind: "Identifier", Text: "a", Pos: "1:1"},
				{Kind: "UnaryOperator", Text: "-", Pos: "1:5", Children: []*OutlineNode{
					{Kind: "Identifier", Text: "b", Pos: "1:6"},
				}},
			},
		}},
	}
	if diff := cmp.Diff(want, outline); diff != "" {
		t.Errorf("outline mismatch (-want +got):\n%s", diff)
	}

	text, err := YAML(root)
	require.NoError(t, err)
	assert.Contains(t, text, "kind: Assign")

	back, err := ParseYAML([]byte(text))
	require.NoError(t, err)
	if diff := cmp.Diff(outline, back); diff != "" {
		t.Errorf("yaml round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLabels(t *testing.T) {
	root := mustParse(t, "loop if a { } var s: &int[4] = \"q\"; fn f(const c: int) { }")
	var labels []string
	ast.Inspect(root, func(n ast.Node) bool {
		if l := Label(n); l != "" {
			labels = append(labels, n.Kind().String()+"="+l)
		}
		return true
	})
	assert.Equal(t, []string{
		"Identifier=a", "Break=synthesized",
		"Assign==", "Identifier=s", "Type=& [4]", "Identifier=int", `Literal="q"`,
		"DefineFunc=fn", "Identifier=f", "Field=const", "Identifier=c", "Identifier=int",
	}, labels)
}

func TestHTML(t *testing.T) {
	out := HTML(mustParse(t, `a < "b";`), "a < b")
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<span>a &lt; b</span>")
	assert.Contains(t, out, `<span class="kind">BinaryOperator</span><span>&lt;</span>`)
	assert.Contains(t, out, "<span>&#34;b&#34;</span>")
	assert.True(t, strings.HasSuffix(out, "</body></html>\n"))
}

func TestDump(t *testing.T) {
	out := Dump(mustParse(t, "x;"))
	assert.Contains(t, out, `Kind: (string) (len=10) "Identifier"`)
	assert.NotContains(t, out, "0x")
}
