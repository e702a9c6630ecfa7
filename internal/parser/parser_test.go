package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xs-lang/xs/internal/ast"
	"github.com/xs-lang/xs/internal/errors"
	"github.com/xs-lang/xs/internal/lexer"
)

// parseOK parses input and returns the rendered root block.
func parseOK(t *testing.T, input string) string {
	t.Helper()
	root, err := ParseString(input)
	require.NoError(t, err)
	require.NotNil(t, root)
	return root.String()
}

// parseErr parses input and returns the error, which must be a parse error.
func parseErr(t *testing.T, input string) error {
	t.Helper()
	root, err := ParseString(input)
	require.Error(t, err)
	assert.Nil(t, root)
	return err
}

func TestParseEmptyInput(t *testing.T) {
	assert.Equal(t, "(block)", parseOK(t, ""))
	assert.Equal(t, "(block)", parseOK(t, ";;  ; // nothing\n"))
}

func TestParseStatements(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"expression statement", "a + b;", "(block (+ a b))"},
		{"nested block", "{ a; { b; } }", "(block (block a (block b)))"},
		{"return value", "return a + 1;", "(block (return (+ a 1)))"},
		{"bare return", "return;", "(block (return))"},
		{"return before brace", "fn f() { return }", "(block (fn f (params) (block (return))))"},
		{"break and continue", "loop { break; continue; }", "(block (loop (block (break) (continue))))"},
		{"self", "self.x;", "(block (. self x))"},
		{"literals", `1; 2.5; "s"; true;`, `(block 1 2.5 "s" true)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseOK(t, tt.input))
		})
	}
}

func TestAssignRewritesLastStatement(t *testing.T) {
	root, err := ParseString("var x: int = 5;")
	require.NoError(t, err)
	require.Len(t, root.Statements, 1)

	assign, ok := root.Statements[0].(*ast.Assign)
	require.True(t, ok, "expected Assign, got %T", root.Statements[0])
	assert.Equal(t, lexer.TokenAssign, assign.Op)

	decl, ok := assign.Target.(*ast.DeclVar)
	require.True(t, ok, "expected DeclVar target, got %T", assign.Target)
	assert.Equal(t, "x", decl.Name.Name)
	assert.Equal(t, "(type int)", decl.Type.String())
	assert.Equal(t, "5", assign.Value.String())
}

func TestAssignForms(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "x = 1;", "(block (= x 1))"},
		{"compound", "x += 1; y -= 2; z *= 3; w /= 4; v %= 5;",
			"(block (+= x 1) (-= y 2) (*= z 3) (/= w 4) (%= v 5))"},
		{"member", "a.b = c;", "(block (= (. a b) c))"},
		{"subscript", "a[0] = c;", "(block (= (index a 0) c))"},
		{"reference", "&r = c;", "(block (= (& r) c))"},
		{"untyped var", "var x = 1;", "(block (= (var x) 1))"},
		{"const", "const c: int = 1;", "(block (= (const c (type int)) 1))"},
		{"only last statement", "a; b = 2;", "(block a (= b 2))"},
		{"tuple swap", "(a, b) = (b, a);", "(block (= (tuple a b) (tuple b a)))"},
		{"call result", "get() = 5;", "(block (= (call get) 5))"},
		{"arithmetic", "a + b = 1;", "(block (= (+ a b) 1))"},
		{"literal", "1 = 2;", "(block (= 1 2))"},
		{"compound on call", "f() += 1;", "(block (+= (call f) 1))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseOK(t, tt.input))
		})
	}
}

func TestAssignErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		code    string
		message string
	}{
		{"no target", "= 2;", errors.CodeLvalueNotFound, "[1,1] lvalue not found"},
		{"no target in block", "{ = 2; }", errors.CodeLvalueNotFound, "[1,3] lvalue not found"},
		{"compound on declaration", "var x: int += 1;", errors.CodeInvalidLvalue, "[1,12] invalid assignment target DeclVar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseErr(t, tt.input)
			assert.True(t, errors.IsParse(err))
			assert.Equal(t, tt.code, errors.CodeOf(err))
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestBlockErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		code    string
		message string
	}{
		{"stray brace", "a; }", errors.CodeUnmatchedStatement, "[1,4] unmatched statement, got `}`"},
		{"unclosed block", "{ a;", errors.CodeUnexpectedToken, "[1,5] expect `}`, got `EOF`"},
		{"stray keyword", "else { }", errors.CodeUnmatchedStatement, "[1,1] unmatched statement, got `else`"},
		{"stray comma", ", a", errors.CodeUnmatchedStatement, "[1,1] unmatched statement, got `,`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseErr(t, tt.input)
			assert.Equal(t, tt.code, errors.CodeOf(err))
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestErrorSpanCoversToken(t *testing.T) {
	tests := []struct {
		input string
		width int
	}{
		{"else { }", 4},
		{"a; }", 1},
		{"x = 1 +", 1},
		{"loop each x xs { }", 2},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var se *errors.StandardError
			require.ErrorAs(t, parseErr(t, tt.input), &se)
			assert.Equal(t, tt.width, se.Span().Width())
		})
	}
}

func TestLexErrorsSurface(t *testing.T) {
	err := parseErr(t, `"abc`)
	assert.True(t, errors.IsLex(err))
	assert.False(t, errors.IsParse(err))
	assert.Equal(t, errors.CodeUnterminatedString, errors.CodeOf(err))
	assert.Equal(t, "[1,1] unterminated string", err.Error())
}

func TestScopeChain(t *testing.T) {
	root, err := ParseString("fn f() { loop { if a { b; } } }")
	require.NoError(t, err)
	assert.Nil(t, root.Enclosing())

	var innermost ast.Scope
	ast.Inspect(root, func(n ast.Node) bool {
		if b, ok := n.(*ast.Block); ok && len(b.Statements) == 1 {
			if _, ok := b.Statements[0].(*ast.Identifier); ok {
				innermost = b
			}
		}
		return true
	})
	require.NotNil(t, innermost)

	var chain []ast.NodeKind
	for s := innermost; s != nil; s = s.Enclosing() {
		chain = append(chain, s.Kind())
	}
	assert.Equal(t, []ast.NodeKind{
		ast.KindBlock, ast.KindIf, ast.KindBlock, ast.KindLoop,
		ast.KindBlock, ast.KindDefineFunc, ast.KindBlock,
	}, chain)
}

func TestArenaOwnsNodes(t *testing.T) {
	seq, err := lexer.Scan("a = b + 1;", lexer.Options{Filename: "arena.xs"})
	require.NoError(t, err)

	arena := ast.NewArena()
	root, err := NewParser(seq, arena).Parse()
	require.NoError(t, err)

	// a, b, 1, +, Assign, root block
	assert.Equal(t, 6, arena.Len())
	for i, n := range arena.Nodes() {
		assert.Equal(t, ast.NodeID(i), n.ID())
	}
	assert.Same(t, root, arena.Get(root.ID()))
	assert.Equal(t, "arena.xs", root.Statements[0].Pos().Filename)
}

func TestParseIsRepeatable(t *testing.T) {
	seq, err := lexer.Scan("x = 1;", lexer.Options{})
	require.NoError(t, err)

	p := NewParser(seq, ast.NewArena())
	first, err := p.Parse()
	require.NoError(t, err)
	second, err := p.Parse()
	require.NoError(t, err)
	assert.Equal(t, first.String(), second.String())
}

func TestAutoSemicolons(t *testing.T) {
	src := "var x: int = 1\nx += 2\nif x > 2 {\n  f(x)\n} else {\n  g()\n}\n"
	seq, err := lexer.Scan(src, lexer.Options{AutoSemicolons: true})
	require.NoError(t, err)

	root, err := NewParser(seq, ast.NewArena()).Parse()
	require.NoError(t, err)
	assert.Equal(t,
		"(block (= (var x (type int)) 1) (+= x 2) (if (> x 2) (block (call f x)) (block (call g))))",
		root.String())
}

func TestQuote(t *testing.T) {
	assert.Equal(t, "`}`", quote(lexer.TokenRBrace))
	assert.Equal(t, "`{` or `if`", quote(lexer.TokenLBrace, lexer.TokenIf))
	assert.Equal(t, "`{`, `if` or `each`", quote(lexer.TokenLBrace, lexer.TokenIf, lexer.TokenEach))
	assert.Equal(t, "`identifier`", quote(lexer.TokenIdentifier))
}
