package lexer

import (
	"fmt"

	"github.com/xs-lang/xs/internal/errors"
	"github.com/xs-lang/xs/internal/position"
)

// Kind is the broad category of a token.
type Kind int

const (
	KindUnknown Kind = iota
	KindKeyword
	KindLiteral
	KindIdentifier
	KindOperator
	KindComment
)

var kindNames = [...]string{
	KindUnknown:    "unknown",
	KindKeyword:    "keyword",
	KindLiteral:    "literal",
	KindIdentifier: "identifier",
	KindOperator:   "operator",
	KindComment:    "comment",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// TokenType represents the specific subtype of a token
type TokenType int

// Token types - xs言語のトークン定義
const (
	TokenEOF TokenType = iota

	// リテラル
	TokenInteger
	TokenFloat
	TokenString
	TokenBoolean

	TokenIdentifier

	// コメント
	TokenLineComment
	TokenBlockComment

	// キーワード
	TokenFn
	TokenIf
	TokenElse
	TokenVar
	TokenConst
	TokenReturn
	TokenStruct
	TokenImpl
	TokenInterface
	TokenLoop
	TokenEach
	TokenIn
	TokenBreak
	TokenContinue
	TokenSelf
	TokenFor
	TokenWhere

	// 演算子
	TokenPlus
	TokenMinus
	TokenMul
	TokenDiv
	TokenMod
	TokenAssign
	TokenPlusAssign
	TokenMinusAssign
	TokenMulAssign
	TokenDivAssign
	TokenModAssign
	TokenEq
	TokenNe
	TokenLt
	TokenLe
	TokenGt
	TokenGe
	TokenAnd
	TokenOr
	TokenNot
	TokenAmpersand
	TokenTilde

	// 記号
	TokenDot
	TokenComma
	TokenColon
	TokenSemicolon
	TokenArrow
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenLBrace
	TokenRBrace

	// Operator forms that the tokenizer never produces. The expression
	// engine assigns them to entries of its linearized list.
	TokenUnaryPlus
	TokenUnaryMinus
	TokenRef
	TokenCall
	TokenSubscript
)

// tokenNames provides string representations for token types
var tokenNames = map[TokenType]string{
	TokenEOF: "EOF",

	TokenInteger:    "INTEGER",
	TokenFloat:      "FLOAT",
	TokenString:     "STRING",
	TokenBoolean:    "BOOLEAN",
	TokenIdentifier: "IDENTIFIER",

	TokenLineComment:  "LINE_COMMENT",
	TokenBlockComment: "BLOCK_COMMENT",

	TokenFn:        "FN",
	TokenIf:        "IF",
	TokenElse:      "ELSE",
	TokenVar:       "VAR",
	TokenConst:     "CONST",
	TokenReturn:    "RETURN",
	TokenStruct:    "STRUCT",
	TokenImpl:      "IMPL",
	TokenInterface: "INTERFACE",
	TokenLoop:      "LOOP",
	TokenEach:      "EACH",
	TokenIn:        "IN",
	TokenBreak:     "BREAK",
	TokenContinue:  "CONTINUE",
	TokenSelf:      "SELF",
	TokenFor:       "FOR",
	TokenWhere:     "WHERE",

	TokenPlus:        "PLUS",
	TokenMinus:       "MINUS",
	TokenMul:         "MUL",
	TokenDiv:         "DIV",
	TokenMod:         "MOD",
	TokenAssign:      "ASSIGN",
	TokenPlusAssign:  "PLUS_ASSIGN",
	TokenMinusAssign: "MINUS_ASSIGN",
	TokenMulAssign:   "MUL_ASSIGN",
	TokenDivAssign:   "DIV_ASSIGN",
	TokenModAssign:   "MOD_ASSIGN",
	TokenEq:          "EQ",
	TokenNe:          "NE",
	TokenLt:          "LT",
	TokenLe:          "LE",
	TokenGt:          "GT",
	TokenGe:          "GE",
	TokenAnd:         "AND",
	TokenOr:          "OR",
	TokenNot:         "NOT",
	TokenAmpersand:   "AMPERSAND",
	TokenTilde:       "TILDE",

	TokenDot:       "DOT",
	TokenComma:     "COMMA",
	TokenColon:     "COLON",
	TokenSemicolon: "SEMICOLON",
	TokenArrow:     "ARROW",
	TokenLParen:    "LPAREN",
	TokenRParen:    "RPAREN",
	TokenLBracket:  "LBRACKET",
	TokenRBracket:  "RBRACKET",
	TokenLBrace:    "LBRACE",
	TokenRBrace:    "RBRACE",

	TokenUnaryPlus:  "UNARY_PLUS",
	TokenUnaryMinus: "UNARY_MINUS",
	TokenRef:        "REF",
	TokenCall:       "CALL",
	TokenSubscript:  "SUBSCRIPT",
}

// String returns a string representation of the token type
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(tt))
}

// keywords maps string keywords to their token types
var keywords = map[string]TokenType{
	"fn":        TokenFn,
	"if":        TokenIf,
	"else":      TokenElse,
	"var":       TokenVar,
	"const":     TokenConst,
	"return":    TokenReturn,
	"struct":    TokenStruct,
	"impl":      TokenImpl,
	"interface": TokenInterface,
	"loop":      TokenLoop,
	"each":      TokenEach,
	"in":        TokenIn,
	"break":     TokenBreak,
	"continue":  TokenContinue,
	"self":      TokenSelf,
	"for":       TokenFor,
	"where":     TokenWhere,
	"true":      TokenBoolean,
	"false":     TokenBoolean,
}

// lookupIdent classifies an identifier run.
func lookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdentifier
}

// Kind returns the broad category of the token type.
func (tt TokenType) Kind() Kind {
	switch {
	case tt >= TokenInteger && tt <= TokenBoolean:
		return KindLiteral
	case tt == TokenIdentifier:
		return KindIdentifier
	case tt == TokenLineComment || tt == TokenBlockComment:
		return KindComment
	case tt >= TokenFn && tt <= TokenWhere:
		return KindKeyword
	case tt >= TokenPlus && tt <= TokenSubscript:
		return KindOperator
	}
	return KindUnknown
}

// IsBinaryOperator reports whether tt joins two operands.
func (tt TokenType) IsBinaryOperator() bool {
	switch tt {
	case TokenPlus, TokenMinus, TokenMul, TokenDiv, TokenMod,
		TokenEq, TokenNe, TokenLt, TokenLe, TokenGt, TokenGe,
		TokenAnd, TokenOr, TokenDot, TokenCall, TokenSubscript:
		return true
	}
	return false
}

// IsUnaryOperator reports whether tt is already a prefix operator.
func (tt TokenType) IsUnaryOperator() bool {
	switch tt {
	case TokenNot, TokenTilde, TokenUnaryPlus, TokenUnaryMinus, TokenRef:
		return true
	}
	return false
}

// IsAmbiguous reports whether tt reads as unary or binary depending on
// the position it occupies in an expression.
func (tt TokenType) IsAmbiguous() bool {
	return tt == TokenPlus || tt == TokenMinus || tt == TokenAmpersand
}

// IsExpressionOperator reports whether tt may appear between or before
// operands of an expression.
func (tt TokenType) IsExpressionOperator() bool {
	return tt.IsBinaryOperator() || tt.IsUnaryOperator() || tt.IsAmbiguous()
}

// IsAssignOperator reports whether tt is `=` or one of its compound forms.
func (tt TokenType) IsAssignOperator() bool {
	switch tt {
	case TokenAssign, TokenPlusAssign, TokenMinusAssign, TokenMulAssign, TokenDivAssign, TokenModAssign:
		return true
	}
	return false
}

// ToUnary returns the prefix form of tt. Purely unary types convert to
// themselves; anything that has no prefix form reports false.
func (tt TokenType) ToUnary() (TokenType, bool) {
	switch tt {
	case TokenPlus:
		return TokenUnaryPlus, true
	case TokenMinus:
		return TokenUnaryMinus, true
	case TokenAmpersand:
		return TokenRef, true
	}
	if tt.IsUnaryOperator() {
		return tt, true
	}
	return tt, false
}

// Precedence levels, lowest binding first.
const (
	PrecLogicalOr      = 1
	PrecLogicalAnd     = 2
	PrecComparison     = 3
	PrecAdditive       = 4
	PrecMultiplicative = 5
	PrecUnary          = 6
	PrecPostfix        = 7
)

// Precedence returns the binding strength of an operator. Asking for the
// precedence of a type outside the table is a programming error and panics
// with an INTERNAL StandardError.
func (tt TokenType) Precedence() int {
	switch tt {
	case TokenOr:
		return PrecLogicalOr
	case TokenAnd:
		return PrecLogicalAnd
	case TokenEq, TokenNe, TokenLt, TokenLe, TokenGt, TokenGe:
		return PrecComparison
	case TokenPlus, TokenMinus:
		return PrecAdditive
	case TokenMul, TokenDiv, TokenMod:
		return PrecMultiplicative
	case TokenNot, TokenTilde, TokenUnaryPlus, TokenUnaryMinus, TokenRef:
		return PrecUnary
	case TokenDot, TokenCall, TokenSubscript:
		return PrecPostfix
	}
	panic(errors.Internal(errors.CodeUnknownPrecedence, "no precedence for operator %s", tt))
}

// Token represents a lexical token with position information
type Token struct {
	Kind    Kind
	Type    TokenType
	Literal string
	Pos     position.Position
	End     position.Position // position just past the last source byte

	// Index is the position of the token in its Sequence, -1 for raw tokens.
	Index int
	seq   *Sequence
}

// Span returns the source range of the token.
func (t Token) Span() position.Span {
	return position.Span{Start: t.Pos, End: t.End}
}

// Is reports whether the token has type tt.
func (t Token) Is(tt TokenType) bool { return t.Type == tt }

// Next returns the token offset places away in the owning sequence, or the
// sequence's EOF token when out of range.
func (t Token) Next(offset int) Token {
	if t.seq == nil {
		return Token{Type: TokenEOF, Index: -1, Pos: t.Pos}
	}
	return t.seq.At(t.Index + offset)
}

// Text is the token as quoted in diagnostics.
func (t Token) Text() string {
	if t.Type == TokenEOF {
		return "EOF"
	}
	if t.Type == TokenString {
		return fmt.Sprintf("%q", t.Literal)
	}
	return t.Literal
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("{Type: %s, Literal: %q, Line: %d, Column: %d}",
		t.Type, t.Literal, t.Pos.Line, t.Pos.Column)
}

// spellings maps operator and keyword types back to their source text.
var spellings = func() map[TokenType]string {
	m := make(map[TokenType]string, len(twoCharOperators)+len(oneCharOperators)+len(keywords))
	for s, tt := range twoCharOperators {
		m[tt] = s
	}
	for c, tt := range oneCharOperators {
		m[tt] = string(c)
	}
	for s, tt := range keywords {
		if tt != TokenBoolean {
			m[tt] = s
		}
	}
	return m
}()

// Spelling returns the fixed source text of an operator or keyword type.
func Spelling(tt TokenType) (string, bool) {
	s, ok := spellings[tt]
	return s, ok
}
