package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xs-lang/xs/internal/errors"
)

type expectedToken struct {
	expectedType  TokenType
	expectedValue string
}

func checkTokens(t *testing.T, input string, tests []expectedToken) {
	t.Helper()

	l := New(input)
	for i, tt := range tests {
		tok, err := l.NextToken()
		require.NoError(t, err, "tests[%d]", i)
		require.Equal(t, tt.expectedType, tok.Type, "tests[%d] - tokentype wrong, literal %q", i, tok.Literal)
		require.Equal(t, tt.expectedValue, tok.Literal, "tests[%d] - literal wrong", i)
	}
}

func TestBasicTokens(t *testing.T) {
	input := `fn main() {
	print("Hello, xs!");
}`

	checkTokens(t, input, []expectedToken{
		{TokenFn, "fn"},
		{TokenIdentifier, "main"},
		{TokenLParen, "("},
		{TokenRParen, ")"},
		{TokenLBrace, "{"},
		{TokenIdentifier, "print"},
		{TokenLParen, "("},
		{TokenString, "Hello, xs!"},
		{TokenRParen, ")"},
		{TokenSemicolon, ";"},
		{TokenRBrace, "}"},
		{TokenEOF, ""},
	})
}

func TestKeywords(t *testing.T) {
	input := `fn if else var const return struct impl interface loop each in break continue self for where true false`

	checkTokens(t, input, []expectedToken{
		{TokenFn, "fn"},
		{TokenIf, "if"},
		{TokenElse, "else"},
		{TokenVar, "var"},
		{TokenConst, "const"},
		{TokenReturn, "return"},
		{TokenStruct, "struct"},
		{TokenImpl, "impl"},
		{TokenInterface, "interface"},
		{TokenLoop, "loop"},
		{TokenEach, "each"},
		{TokenIn, "in"},
		{TokenBreak, "break"},
		{TokenContinue, "continue"},
		{TokenSelf, "self"},
		{TokenFor, "for"},
		{TokenWhere, "where"},
		{TokenBoolean, "true"},
		{TokenBoolean, "false"},
		{TokenEOF, ""},
	})
}

func TestOperators(t *testing.T) {
	input := `+ - * / % = += -= *= /= %= == != < <= > >= && || ! & ~ . , : ; -> ( ) [ ] { }`

	checkTokens(t, input, []expectedToken{
		{TokenPlus, "+"},
		{TokenMinus, "-"},
		{TokenMul, "*"},
		{TokenDiv, "/"},
		{TokenMod, "%"},
		{TokenAssign, "="},
		{TokenPlusAssign, "+="},
		{TokenMinusAssign, "-="},
		{TokenMulAssign, "*="},
		{TokenDivAssign, "/="},
		{TokenModAssign, "%="},
		{TokenEq, "=="},
		{TokenNe, "!="},
		{TokenLt, "<"},
		{TokenLe, "<="},
		{TokenGt, ">"},
		{TokenGe, ">="},
		{TokenAnd, "&&"},
		{TokenOr, "||"},
		{TokenNot, "!"},
		{TokenAmpersand, "&"},
		{TokenTilde, "~"},
		{TokenDot, "."},
		{TokenComma, ","},
		{TokenColon, ":"},
		{TokenSemicolon, ";"},
		{TokenArrow, "->"},
		{TokenLParen, "("},
		{TokenRParen, ")"},
		{TokenLBracket, "["},
		{TokenRBracket, "]"},
		{TokenLBrace, "{"},
		{TokenRBrace, "}"},
		{TokenEOF, ""},
	})
}

func TestGreedyOperatorsWithoutSpaces(t *testing.T) {
	checkTokens(t, "a->b&&!c<=-d", []expectedToken{
		{TokenIdentifier, "a"},
		{TokenArrow, "->"},
		{TokenIdentifier, "b"},
		{TokenAnd, "&&"},
		{TokenNot, "!"},
		{TokenIdentifier, "c"},
		{TokenLe, "<="},
		{TokenMinus, "-"},
		{TokenIdentifier, "d"},
		{TokenEOF, ""},
	})
}

func TestTokenPositions(t *testing.T) {
	raw, err := New("var x = 1.5;\n  y").Tokenize()
	require.NoError(t, err)

	want := []struct {
		line, column int
	}{
		{1, 1}, {1, 5}, {1, 7}, {1, 9}, {1, 12}, {2, 3}, {2, 4},
	}
	require.Len(t, raw, len(want))
	for i, w := range want {
		assert.Equal(t, w.line, raw[i].Pos.Line, "token %d line", i)
		assert.Equal(t, w.column, raw[i].Pos.Column, "token %d column", i)
	}
	assert.Equal(t, 12, raw[3].End.Column)
	assert.Equal(t, "1:9-12", raw[3].Span().String())
	assert.Equal(t, 3, raw[3].Span().Width())
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []expectedToken
	}{
		{"integer", "42", []expectedToken{{TokenInteger, "42"}, {TokenEOF, ""}}},
		{"float", "3.14", []expectedToken{{TokenFloat, "3.14"}, {TokenEOF, ""}}},
		{"trailing dot is member access", "1.foo", []expectedToken{
			{TokenInteger, "1"}, {TokenDot, "."}, {TokenIdentifier, "foo"}, {TokenEOF, ""},
		}},
		{"dot at end", "7.", []expectedToken{{TokenInteger, "7"}, {TokenDot, "."}, {TokenEOF, ""}}},
		{"digits then letters", "12abc", []expectedToken{
			{TokenInteger, "12"}, {TokenIdentifier, "abc"}, {TokenEOF, ""},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkTokens(t, tt.input, tt.want)
		})
	}
}

func TestStrings(t *testing.T) {
	checkTokens(t, `"a\tb\\c\"d\n" "line
two"`, []expectedToken{
		{TokenString, "a\tb\\c\"d\n"},
		{TokenString, "line\ntwo"},
		{TokenEOF, ""},
	})
}

func TestComments(t *testing.T) {
	raw, err := New("a // trailing\n/* outer /* inner */ still */ b").Tokenize()
	require.NoError(t, err)

	types := make([]TokenType, len(raw))
	for i, tok := range raw {
		types[i] = tok.Type
	}
	assert.Equal(t, []TokenType{
		TokenIdentifier, TokenLineComment, TokenBlockComment, TokenIdentifier, TokenEOF,
	}, types)
	assert.Equal(t, "// trailing", raw[1].Literal)
	assert.Equal(t, "/* outer /* inner */ still */", raw[2].Literal)
	assert.Equal(t, KindComment, raw[2].Kind)
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		code    string
		message string
	}{
		{"unterminated string", `"abc`, errors.CodeUnterminatedString, "[1,1] unterminated string"},
		{"backslash at end", `"abc\`, errors.CodeUnterminatedString, "[1,1] unterminated string"},
		{"unknown escape", `"a\qb"`, errors.CodeUnknownEscape, "[1,3] unknown escape `\\q`"},
		{"unterminated comment", "x /* a /* b */", errors.CodeUnterminatedComment, "[1,3] unterminated comment"},
		{"unmatched comment end", "x */", errors.CodeUnmatchedCommentEnd, "[1,3] unmatched `*/`"},
		{"malformed number", "1.2.3", errors.CodeMalformedNumber, "[1,1] malformed number `1.2.3`"},
		{"unexpected character", "a @ b", errors.CodeUnexpectedChar, "[1,3] unexpected character `@`"},
		{"single pipe", "a | b", errors.CodeUnexpectedChar, "[1,3] unexpected character `|`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.input).Tokenize()
			require.Error(t, err)
			assert.True(t, errors.IsLex(err))
			assert.Equal(t, tt.code, errors.CodeOf(err))
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestUTF8Identifiers(t *testing.T) {
	checkTokens(t, "var 名前 = x_1;", []expectedToken{
		{TokenVar, "var"},
		{TokenIdentifier, "名前"},
		{TokenAssign, "="},
		{TokenIdentifier, "x_1"},
		{TokenSemicolon, ";"},
		{TokenEOF, ""},
	})
}

func TestSequence(t *testing.T) {
	seq, err := Scan("a /* c */ + // d\n b", Options{Filename: "main.xs"})
	require.NoError(t, err)

	require.Equal(t, 3, seq.Len())
	for i, tok := range seq.Tokens() {
		assert.Equal(t, i, tok.Index)
		assert.Equal(t, "main.xs", tok.Pos.Filename)
	}

	first := seq.At(0)
	assert.Equal(t, TokenPlus, first.Next(1).Type)
	assert.Equal(t, "b", first.Next(2).Literal)
	assert.Equal(t, TokenEOF, first.Next(3).Type)
	assert.Equal(t, TokenEOF, first.Next(-1).Type)
	assert.Equal(t, 3, seq.EOF().Index)
	assert.Equal(t, 2, seq.EOF().Pos.Line)
}

func TestSequenceWithoutEOF(t *testing.T) {
	raw, err := New("x y").Tokenize()
	require.NoError(t, err)

	seq := NewSequence(raw[:2])
	assert.Equal(t, 2, seq.Len())
	assert.Equal(t, TokenEOF, seq.At(2).Type)
	assert.Equal(t, 4, seq.At(2).Pos.Column)
}

func TestToUnary(t *testing.T) {
	tests := []struct {
		in   TokenType
		want TokenType
		ok   bool
	}{
		{TokenPlus, TokenUnaryPlus, true},
		{TokenMinus, TokenUnaryMinus, true},
		{TokenAmpersand, TokenRef, true},
		{TokenNot, TokenNot, true},
		{TokenTilde, TokenTilde, true},
		{TokenMul, TokenMul, false},
		{TokenDot, TokenDot, false},
		{TokenIdentifier, TokenIdentifier, false},
	}

	for _, tt := range tests {
		got, ok := tt.in.ToUnary()
		assert.Equal(t, tt.ok, ok, "%s", tt.in)
		assert.Equal(t, tt.want, got, "%s", tt.in)
	}
}

func TestClassification(t *testing.T) {
	assert.True(t, TokenMinus.IsBinaryOperator())
	assert.True(t, TokenMinus.IsAmbiguous())
	assert.False(t, TokenMinus.IsUnaryOperator())
	assert.False(t, TokenAmpersand.IsBinaryOperator())
	assert.True(t, TokenAmpersand.IsAmbiguous())
	assert.True(t, TokenNot.IsUnaryOperator())
	assert.True(t, TokenModAssign.IsAssignOperator())
	assert.False(t, TokenEq.IsAssignOperator())
	assert.Equal(t, KindKeyword, TokenWhere.Kind())
	assert.Equal(t, KindLiteral, TokenBoolean.Kind())
	assert.Equal(t, KindOperator, TokenSubscript.Kind())
}

func TestPrecedence(t *testing.T) {
	ordered := [][]TokenType{
		{TokenOr},
		{TokenAnd},
		{TokenEq, TokenNe, TokenLt, TokenLe, TokenGt, TokenGe},
		{TokenPlus, TokenMinus},
		{TokenMul, TokenDiv, TokenMod},
		{TokenNot, TokenTilde, TokenUnaryPlus, TokenUnaryMinus, TokenRef},
		{TokenDot, TokenCall, TokenSubscript},
	}

	for level, group := range ordered {
		for _, tt := range group {
			assert.Equal(t, level+1, tt.Precedence(), "%s", tt)
		}
	}
}

func TestPrecedencePanicsOutsideTable(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		c, _ := errors.CategoryOf(err)
		assert.Equal(t, errors.CategoryInternal, c)
		assert.Equal(t, errors.CodeUnknownPrecedence, errors.CodeOf(err))
	}()

	TokenComma.Precedence()
}

func TestInsertSemicolons(t *testing.T) {
	input := "var x = 1 // one\nx += 2\nif x {\n}\nelse {\n}\nreturn\n"

	seq, err := Scan(input, Options{AutoSemicolons: true})
	require.NoError(t, err)

	var got []TokenType
	for _, tok := range seq.Tokens() {
		got = append(got, tok.Type)
	}
	assert.Equal(t, []TokenType{
		TokenVar, TokenIdentifier, TokenAssign, TokenInteger, TokenSemicolon,
		TokenIdentifier, TokenPlusAssign, TokenInteger, TokenSemicolon,
		TokenIf, TokenIdentifier, TokenLBrace, TokenRBrace,
		TokenElse, TokenLBrace, TokenRBrace, TokenSemicolon,
		TokenReturn, TokenSemicolon,
	}, got)

	inserted := seq.At(4)
	assert.Equal(t, 1, inserted.Pos.Line)
	assert.Equal(t, 10, inserted.Pos.Column)
}

func TestInsertSemicolonsKeepsExplicitOnes(t *testing.T) {
	seq, err := Scan("a;\nb\n;", Options{AutoSemicolons: true})
	require.NoError(t, err)

	var got []TokenType
	for _, tok := range seq.Tokens() {
		got = append(got, tok.Type)
	}
	assert.Equal(t, []TokenType{TokenIdentifier, TokenSemicolon, TokenIdentifier, TokenSemicolon}, got)
}

func TestInsertSemicolonsOffByDefault(t *testing.T) {
	seq, err := Scan("a\nb", Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, seq.Len())
}
