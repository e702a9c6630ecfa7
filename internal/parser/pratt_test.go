package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xs-lang/xs/internal/ast"
	"github.com/xs-lang/xs/internal/errors"
	"github.com/xs-lang/xs/internal/lexer"
)

// parseExpr parses a single expression statement and renders it.
func parseExpr(t *testing.T, input string) string {
	t.Helper()
	root, err := ParseString(input + ";")
	require.NoError(t, err)
	require.Len(t, root.Statements, 1)
	return root.Statements[0].String()
}

// TestOperatorPrecedence tests the complete operator precedence hierarchy
func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"multiplicative over additive", "1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"additive over comparison", "a + 1 < b * 2", "(< (+ a 1) (* b 2))"},
		{"comparison over and", "a == b && c != d", "(&& (== a b) (!= c d))"},
		{"and over or", "a || b && c", "(|| a (&& b c))"},
		{"or lowest", "a && b || c && d", "(|| (&& a b) (&& c d))"},
		{"unary over multiplicative", "-a * b", "(* (- a) b)"},
		{"unary right operand", "a * -b", "(* a (- b))"},
		{"postfix over unary", "-f(x)", "(- (call f x))"},
		{"not over and", "!a && b", "(&& (! a) b)"},
		{"tilde", "~a + 1", "(+ (~ a) 1)"},
		{"member over additive", "a.b + c.d", "(+ (. a b) (. c d))"},
		{"parentheses", "(1 + 2) * 3", "(* (+ 1 2) 3)"},
		{"relational", "a <= b", "(<= a b)"},
		{"modulo", "a % b / c", "(/ (% a b) c)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseExpr(t, tt.input))
		})
	}
}

// TestAssociativity checks that binary chains group to the left and prefix
// chains to the right.
func TestAssociativity(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"subtraction", "a - b - c", "(- (- a b) c)"},
		{"division", "a / b / c", "(/ (/ a b) c)"},
		{"mixed additive", "a + b - c + d", "(+ (- (+ a b) c) d)"},
		{"logical or", "a || b || c", "(|| (|| a b) c)"},
		{"member chain", "a.b.c", "(. (. a b) c)"},
		{"double negation", "- - a", "(- (- a))"},
		{"not not", "!!a", "(! (! a))"},
		{"negated operands", "-a - -b", "(- (- a) (- b))"},
		{"unary plus", "+a + +b", "(+ (+ a) (+ b))"},
		{"reference", "&a.b", "(& (. a b))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseExpr(t, tt.input))
		})
	}
}

func TestPostfixOperators(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"call then subscript", "f(x)[0]", "(index (call f x) 0)"},
		{"subscript then call", "a[0](x)", "(call (index a 0) x)"},
		{"method call", "a.b(x)", "(call (. a b) x)"},
		{"chained calls", "f()()", "(call (call f))"},
		{"call arguments", "f(a, b + 1, g(c))", "(call f a (+ b 1) (call g c))"},
		{"nested subscript", "m[i][j + 1]", "(index (index m i) (+ j 1))"},
		{"call on paren", "(f)(x)", "(call f x)"},
		{"call on function value", "(fn() {})()", "(call (fn-value (params) (block)))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseExpr(t, tt.input))
		})
	}
}

func TestParenthesesAndTuples(t *testing.T) {
	root, err := ParseString("(a); (a, b); (a,); ((a, b), c);")
	require.NoError(t, err)
	require.Len(t, root.Statements, 4)

	_, ok := root.Statements[0].(*ast.Identifier)
	assert.True(t, ok, "(a) should be a plain identifier, got %T", root.Statements[0])

	tuple, ok := root.Statements[1].(*ast.Tuple)
	require.True(t, ok, "(a, b) should be a tuple, got %T", root.Statements[1])
	assert.Len(t, tuple.Elements, 2)

	assert.Equal(t, "(tuple a)", root.Statements[2].String())
	assert.Equal(t, "(tuple (tuple a b) c)", root.Statements[3].String())
}

func TestUnaryOperatorIsPositional(t *testing.T) {
	root, err := ParseString("a - -b;")
	require.NoError(t, err)

	bin, ok := root.Statements[0].(*ast.BinaryOperator)
	require.True(t, ok)
	assert.Equal(t, lexer.TokenMinus, bin.Op)

	un, ok := bin.Right.(*ast.UnaryOperator)
	require.True(t, ok)
	assert.Equal(t, lexer.TokenUnaryMinus, un.Op)
	// The source token keeps its binary type.
	assert.Equal(t, lexer.TokenMinus, un.Token().Type)
}

func TestExpressionErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		code    string
		message string
	}{
		{"bare minus", "-;", errors.CodeIncompleteExpression, "[1,1] incomplete expression, end with `-`"},
		{"dangling binary", "a +;", errors.CodeIncompleteExpression, "[1,3] incomplete expression, end with `+`"},
		{"binary at start", "* a;", errors.CodeExpectedUnary, "[1,1] expect unary operator, got `*`"},
		{"two binaries", "a * / b;", errors.CodeExpectedUnary, "[1,5] expect unary operator, got `/`"},
		{"ampersand between operands", "a & b;", errors.CodeUnexpectedOperator, "[1,3] unexpected operator `&`"},
		{"not after operand", "a ! b;", errors.CodeUnexpectedOperator, "[1,3] unexpected operator `!`"},
		{"unary after member access", "a.-b;", errors.CodeUnexpectedOperator, "[1,3] unexpected operator `-`"},
		{"missing operand in parens", "();", errors.CodeExpectedExpression, "[1,2] expect expression, got `)`"},
		{"missing call argument", "f(,);", errors.CodeExpectedExpression, "[1,3] expect expression, got `,`"},
		{"unclosed call", "f(a;", errors.CodeUnexpectedToken, "[1,4] expect `,` or `)`, got `;`"},
		{"unclosed subscript", "a[1;", errors.CodeUnexpectedToken, "[1,4] expect `]`, got `;`"},
		{"unclosed paren", "(a;", errors.CodeUnexpectedToken, "[1,3] expect `)`, got `;`"},
		{"missing value", "x = ;", errors.CodeExpectedExpression, "[1,5] expect expression, got `;`"},
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

func TestBuildTreePanicsOnBrokenRange(t *testing.T) {
	p := NewParser(lexer.NewSequence(nil), ast.NewArena())
	assert.Panics(t, func() {
		_, _ = p.buildTree(nil, 0, 0)
	})
}
